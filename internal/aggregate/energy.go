package aggregate

import (
	"fmt"
	"math"
)

const (
	wattsPerMicrowatt = 1e-6
	secondsPerHour    = 3600
)

// Energy is mean power integrated over a duration.
type Energy struct {
	MicrowattSeconds float64
	WattHours        float64
}

// ComputeEnergy derives energy from mean power (microwatts) and duration (seconds).
func ComputeEnergy(power, duration float64) (Energy, error) {
	if !isFinite(power) {
		return Energy{}, fmt.Errorf("%w: power is %v", ErrInvalidMeasurement, power)
	}
	if !isFinite(duration) {
		return Energy{}, fmt.Errorf("%w: duration is %v", ErrInvalidMeasurement, duration)
	}

	e := Energy{
		MicrowattSeconds: power * duration,
		WattHours:        (power * wattsPerMicrowatt) * (duration / secondsPerHour),
	}
	if !isFinite(e.MicrowattSeconds) || !isFinite(e.WattHours) {
		return Energy{}, fmt.Errorf("%w: energy overflows for power %v and duration %v", ErrInvalidMeasurement, power, duration)
	}
	return e, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
