package models

import "time"

// TouchResult records the outcome of setting the timestamps of one path
type TouchResult struct {
	Path  string    // Absolute path that was touched
	Time  time.Time // Timestamp assigned as both atime and mtime
	Error error     // Error if the timestamp could not be set
}

// OK reports whether the timestamp was applied.
func (r TouchResult) OK() bool {
	return r.Error == nil
}

// PassReport summarizes one ordering pass over a single root
type PassReport struct {
	PassID     string        // Correlation id shared by every log line of the pass
	Root       Root          // Root that was processed
	Order      FinalOrder    // Resolved order (empty when skipped)
	Results    []TouchResult // Per-entry outcomes, in order
	Skipped    bool          // True when the pass stopped early with nothing to do
	SkipReason string        // Why the pass was skipped
	Duration   time.Duration // Wall time of the pass
}

// Touched returns the number of entries whose timestamps were applied.
func (p PassReport) Touched() int {
	n := 0
	for _, r := range p.Results {
		if r.OK() {
			n++
		}
	}
	return n
}

// Failed returns the entries whose timestamps could not be applied.
func (p PassReport) Failed() []TouchResult {
	var failed []TouchResult
	for _, r := range p.Results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}
