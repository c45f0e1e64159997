// Package scaphandre loads measurement snapshots produced by the Scaphandre
// JSON exporter. A file holds an array of snapshots, each with one host-level
// reading and the per-process readings taken at the same instant.
package scaphandre

import "encoding/json"

// Snapshot is one sample in time.
type Snapshot struct {
	Host      Host              `json:"host"`
	Consumers []Consumer        `json:"consumers"`
	Sockets   []json.RawMessage `json:"sockets,omitempty"` // Kept as-is, never interpreted
}

// Host is the host-level aggregate reading of a snapshot.
type Host struct {
	Consumption float64 `json:"consumption"` // Power in microwatts
	Timestamp   float64 `json:"timestamp"`   // Seconds since epoch
}

// Consumer is one process's instantaneous reading inside a snapshot.
type Consumer struct {
	Exe         string  `json:"exe"`         // Executable name or full path
	PID         int64   `json:"pid"`         // Process id
	Consumption float64 `json:"consumption"` // Power in microwatts
	Timestamp   float64 `json:"timestamp"`   // Seconds since epoch
}
