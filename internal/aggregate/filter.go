// Package aggregate turns a snapshot sequence into mean power, active
// duration and energy for one process. All functions are pure.
package aggregate

import (
	"fmt"
	"strings"

	"scaph2cc/internal/scaphandre"
)

// MatchPolicy decides whether a reading's executable identifies the target process.
type MatchPolicy string

const (
	// MatchSuffix matches when the target equals the trailing path components
	// of the executable, so "stress-ng" matches "/usr/bin/stress-ng".
	MatchSuffix MatchPolicy = "suffix"
	// MatchExact matches only identical strings.
	MatchExact MatchPolicy = "exact"
)

// ParseMatchPolicy validates a policy name. An empty name selects MatchSuffix.
func ParseMatchPolicy(name string) (MatchPolicy, error) {
	switch MatchPolicy(name) {
	case "", MatchSuffix:
		return MatchSuffix, nil
	case MatchExact:
		return MatchExact, nil
	}
	return "", fmt.Errorf("%w '%s', must be one of: %s, %s", ErrInvalidMatchPolicy, name, MatchSuffix, MatchExact)
}

// Matches reports whether exe identifies target under the policy.
func (p MatchPolicy) Matches(exe, target string) bool {
	if exe == target {
		return true
	}
	if p == MatchExact || target == "" {
		return false
	}
	return hasPathSuffix(exe, target)
}

// hasPathSuffix compares path components from the end.
// "/usr/bin/stress-ng" ends with "stress-ng" and "bin/stress-ng", not "ng".
func hasPathSuffix(path, suffix string) bool {
	pathParts := splitPath(path)
	suffixParts := splitPath(suffix)
	if len(suffixParts) == 0 || len(suffixParts) > len(pathParts) {
		return false
	}
	offset := len(pathParts) - len(suffixParts)
	for i, part := range suffixParts {
		if pathParts[offset+i] != part {
			return false
		}
	}
	// An absolute suffix must cover the whole path
	if strings.HasPrefix(suffix, "/") && offset != 0 {
		return false
	}
	return true
}

// splitPath splits on "/" dropping empty and "." components.
func splitPath(p string) []string {
	fields := strings.Split(p, "/")
	parts := fields[:0]
	for _, f := range fields {
		if f == "" || f == "." {
			continue
		}
		parts = append(parts, f)
	}
	return parts
}

// Reading is one matched process reading.
type Reading struct {
	Index       int     // Position of the snapshot in the sequence
	Exe         string  // Executable as recorded in the snapshot
	PID         int64   // Process id
	Consumption float64 // Power in microwatts
	Timestamp   float64 // Seconds
}

// MatchSet is the ordered subsequence of readings for one target process.
type MatchSet []Reading

// Filter selects, in snapshot order, every consumer reading matching target.
// A snapshot may contribute several readings when several processes match.
func Filter(snapshots []scaphandre.Snapshot, target string, policy MatchPolicy) MatchSet {
	var matches MatchSet
	for i, snap := range snapshots {
		for _, c := range snap.Consumers {
			if !policy.Matches(c.Exe, target) {
				continue
			}
			matches = append(matches, Reading{
				Index:       i,
				Exe:         c.Exe,
				PID:         c.PID,
				Consumption: c.Consumption,
				Timestamp:   c.Timestamp,
			})
		}
	}
	return matches
}

// PIDs returns the distinct process ids in order of first appearance.
func (m MatchSet) PIDs() []int64 {
	seen := make(map[int64]bool)
	var pids []int64
	for _, r := range m {
		if seen[r.PID] {
			continue
		}
		seen[r.PID] = true
		pids = append(pids, r.PID)
	}
	return pids
}
