package scaphandre

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"scaph2cc/internal/numeric"
)

// ErrFileNotFound is returned when the measurement file doesn't exist.
var ErrFileNotFound = errors.New("measurement file not found")

// ErrMalformedInput is returned when the measurement file is not a valid snapshot array.
var ErrMalformedInput = errors.New("malformed measurement file")

// Store holds the snapshot sequence of one measurement file, in file order.
type Store struct {
	snapshots []Snapshot
}

// NewStore wraps an already materialized snapshot sequence.
func NewStore(snapshots []Snapshot) *Store {
	return &Store{snapshots: snapshots}
}

// Load reads and decodes the measurement file at path.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to open measurement file: %w", err)
	}
	defer f.Close()

	store, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return store, nil
}

// Parse decodes a snapshot array from r.
// An empty array is valid and yields an empty store.
func Parse(r io.Reader) (*Store, error) {
	dec := json.NewDecoder(r)

	var snapshots []Snapshot
	if err := dec.Decode(&snapshots); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	// Only whitespace may follow the array
	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after snapshot array at offset %d", ErrMalformedInput, dec.InputOffset())
	}

	return &Store{snapshots: snapshots}, nil
}

// Snapshots returns the snapshot sequence.
// Callers must treat the returned slice as read-only.
func (s *Store) Snapshots() []Snapshot {
	return s.snapshots
}

// Len returns the number of snapshots.
func (s *Store) Len() int {
	return len(s.snapshots)
}

// Span returns the first and last host timestamps.
// Both are zero for an empty store.
func (s *Store) Span() (first, last float64) {
	if len(s.snapshots) == 0 {
		return 0, 0
	}
	return s.snapshots[0].Host.Timestamp, s.snapshots[len(s.snapshots)-1].Host.Timestamp
}

// HostMeanPower returns the mean host-level consumption in microwatts.
// Returns false for an empty store.
func (s *Store) HostMeanPower() (float64, bool) {
	var sum numeric.Sum
	for _, snap := range s.snapshots {
		sum.Add(snap.Host.Consumption)
	}
	return sum.Mean()
}
