package aggregate

import (
	"fmt"

	"scaph2cc/internal/scaphandre"
)

// Metrics is the aggregate of one process over a snapshot sequence.
type Metrics struct {
	Process        string  // Target process as requested
	Samples        int     // Number of matched readings
	MeanPower      float64 // Microwatts
	Duration       float64 // Seconds
	FirstTimestamp float64 // Timestamp of the first matched reading
	LastTimestamp  float64 // Timestamp of the last matched reading
	Energy         Energy
}

// Aggregate filters snapshots for target and computes its metrics.
// Returns ErrEmptyMatchSet when no snapshot contains the process.
func Aggregate(snapshots []scaphandre.Snapshot, target string, policy MatchPolicy) (Metrics, error) {
	matches := Filter(snapshots, target, policy)
	return FromMatches(target, matches)
}

// FromMatches computes metrics from an already filtered match set.
func FromMatches(target string, matches MatchSet) (Metrics, error) {
	power, err := MeanPower(matches)
	if err != nil {
		return Metrics{}, fmt.Errorf("process '%s': %w", target, err)
	}

	duration, err := Duration(matches)
	if err != nil {
		return Metrics{}, fmt.Errorf("process '%s': %w", target, err)
	}

	energy, err := ComputeEnergy(power, duration)
	if err != nil {
		return Metrics{}, fmt.Errorf("process '%s': %w", target, err)
	}

	return Metrics{
		Process:        target,
		Samples:        len(matches),
		MeanPower:      power,
		Duration:       duration,
		FirstTimestamp: matches[0].Timestamp,
		LastTimestamp:  matches[len(matches)-1].Timestamp,
		Energy:         energy,
	}, nil
}
