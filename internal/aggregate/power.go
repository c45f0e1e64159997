package aggregate

import "scaph2cc/internal/numeric"

// MeanPower returns the arithmetic mean of the matched power readings in
// microwatts. Every reading weighs the same regardless of the time gap to
// its neighbours.
func MeanPower(m MatchSet) (float64, error) {
	var sum numeric.Sum
	for _, r := range m {
		sum.Add(r.Consumption)
	}

	mean, ok := sum.Mean()
	if !ok {
		return 0, ErrEmptyMatchSet
	}
	return mean, nil
}
