package aggregate

// Duration returns the seconds elapsed between the first and the last
// matched reading. A single reading yields 0. Timestamps are assumed
// non-decreasing; out of order input gives an undefined result.
func Duration(m MatchSet) (float64, error) {
	if len(m) == 0 {
		return 0, ErrEmptyMatchSet
	}
	if len(m) == 1 {
		return 0, nil
	}
	return m[len(m)-1].Timestamp - m[0].Timestamp, nil
}
