package aggregate

import "errors"

// ErrEmptyMatchSet is returned when no snapshot contains a reading for the
// requested process. There is no meaningful aggregate in that case.
var ErrEmptyMatchSet = errors.New("no readings found for process")

// ErrInvalidMeasurement is returned when a non-finite power or duration
// reaches the energy calculation.
var ErrInvalidMeasurement = errors.New("invalid measurement")

// ErrInvalidMatchPolicy is returned for an unknown match policy name.
var ErrInvalidMatchPolicy = errors.New("unknown match policy")
