// Package measure is an opt-in byte-size accounting recorder. Serialization
// paths add labeled byte counts when Enabled is set; analysis tooling
// snapshots and resets the global map between runs.
package measure

import "sync"

// Enabled gates all recording. Off by default so library callers pay
// nothing; tooling flips it before exercising serialization.
var Enabled bool

// Recorder accumulates byte counts per label.
type Recorder struct {
	mu sync.Mutex
	m  map[string]uint64
}

// Global is the recorder used by the wire layer and snapshotted by tooling.
var Global = &Recorder{m: make(map[string]uint64)}

// Add accumulates n bytes under label.
func (r *Recorder) Add(label string, n uint64) {
	r.mu.Lock()
	r.m[label] += n
	r.mu.Unlock()
}

// SnapshotAndReset returns the accumulated counts and clears the recorder.
func (r *Recorder) SnapshotAndReset() map[string]uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.m
	r.m = make(map[string]uint64)
	return out
}
