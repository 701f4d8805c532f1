// Package timestamp applies a final order by writing strictly increasing
// access and modification times.
package timestamp

import (
	"fmt"
	"os"
	"time"

	"github.com/harrison/ordertouch/internal/logger"
	"github.com/harrison/ordertouch/internal/models"
)

// DefaultStep separates consecutive entries. It exceeds the one second
// resolution of the coarsest common filesystems so every entry gets a
// distinct, orderable timestamp.
const DefaultStep = 1100 * time.Millisecond

// TouchFunc sets the access and modification time of path.
type TouchFunc func(path string, atime, mtime time.Time) error

// Timestamper assigns base + i*Step to the i-th entry of a final order.
type Timestamper struct {
	Touch  TouchFunc
	Step   time.Duration
	Now    func() time.Time
	Logger logger.Logger
}

// New creates a Timestamper that writes through os.Chtimes.
func New(log logger.Logger) *Timestamper {
	return &Timestamper{
		Touch:  os.Chtimes,
		Step:   DefaultStep,
		Now:    time.Now,
		Logger: log,
	}
}

// Plan computes the timestamps Apply would assign, without touching anything.
func (ts *Timestamper) Plan(order models.FinalOrder, base time.Time) []models.TouchResult {
	step := ts.step()
	plan := make([]models.TouchResult, len(order))
	for i, path := range order {
		plan[i] = models.TouchResult{Path: path, Time: base.Add(time.Duration(i) * step)}
	}
	return plan
}

// Preview plans timestamps starting from the current time.
func (ts *Timestamper) Preview(order models.FinalOrder) []models.TouchResult {
	return ts.Plan(order, ts.now())
}

// Apply sets both timestamps of every entry in order, starting from the
// current time. A failing entry is logged and skipped; the batch always runs
// to the end. Results are returned in order.
func (ts *Timestamper) Apply(order models.FinalOrder) []models.TouchResult {
	results := ts.Plan(order, ts.now())
	touch := ts.touch()

	ts.log().LogInfo(fmt.Sprintf("=== Modifying timestamps for %d entries ===", len(order)))
	for i := range results {
		if err := touch(results[i].Path, results[i].Time, results[i].Time); err != nil {
			results[i].Error = err
		}
		ts.log().LogTouch(results[i])
	}

	return results
}

func (ts *Timestamper) step() time.Duration {
	if ts.Step <= 0 {
		return DefaultStep
	}
	return ts.Step
}

func (ts *Timestamper) now() time.Time {
	if ts.Now == nil {
		return time.Now()
	}
	return ts.Now()
}

func (ts *Timestamper) touch() TouchFunc {
	if ts.Touch == nil {
		return os.Chtimes
	}
	return ts.Touch
}

func (ts *Timestamper) log() logger.Logger {
	if ts.Logger == nil {
		return logger.NewNoOpLogger()
	}
	return ts.Logger
}
