// Package numeric holds the float accumulation shared by every mean the
// command reports.
package numeric

import "math"

// Sum is a Neumaier compensated accumulator. The zero value is an empty sum.
type Sum struct {
	sum          float64
	compensation float64
	count        int
}

// Add accumulates v.
func (s *Sum) Add(v float64) {
	t := s.sum + v
	if math.Abs(s.sum) >= math.Abs(v) {
		s.compensation += (s.sum - t) + v
	} else {
		s.compensation += (v - t) + s.sum
	}
	s.sum = t
	s.count++
}

// Value returns the compensated total.
func (s *Sum) Value() float64 {
	return s.sum + s.compensation
}

// Count returns the number of values added.
func (s *Sum) Count() int {
	return s.count
}

// Mean returns Value divided by Count, or false for an empty sum.
func (s *Sum) Mean() (float64, bool) {
	if s.count == 0 {
		return 0, false
	}
	return s.Value() / float64(s.count), true
}
