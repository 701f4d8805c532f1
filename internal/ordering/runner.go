// Package ordering drives ordering passes over one or more roots.
//
// A pass reads the root's .order file, loads its ignore matcher, discovers
// entries, resolves the final order and applies it as timestamps. Every pass
// recomputes everything from the filesystem; nothing is cached between passes
// and no lock serializes them. Overlapping passes converge because each one
// reapplies the complete order.
package ordering

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/harrison/ordertouch/internal/fileutil"
	"github.com/harrison/ordertouch/internal/ignore"
	"github.com/harrison/ordertouch/internal/logger"
	"github.com/harrison/ordertouch/internal/models"
	"github.com/harrison/ordertouch/internal/orderspec"
	"github.com/harrison/ordertouch/internal/resolver"
	"github.com/harrison/ordertouch/internal/timestamp"
)

// ErrNoWorkspace is returned when a pass is started without any root.
var ErrNoWorkspace = errors.New("no roots to order")

// Skip reasons reported on skipped passes
const (
	SkipNoOrderFile   = "no .order file"
	SkipEmptyOrder    = "no order entries"
	SkipUnreadableCfg = "order file unreadable"
)

// Filesystem is what a pass needs to read a root.
type Filesystem interface {
	billy.Basic
	billy.Dir
}

// Runner executes ordering passes.
type Runner struct {
	FS          Filesystem
	Logger      logger.Logger
	Timestamper *timestamp.Timestamper
	NewPassID   func() string
	Now         func() time.Time
}

// NewRunner creates a Runner reading through fs, logging to log and writing
// timestamps with ts.
func NewRunner(fs Filesystem, log logger.Logger, ts *timestamp.Timestamper) *Runner {
	return &Runner{
		FS:          fs,
		Logger:      log,
		Timestamper: ts,
		NewPassID:   func() string { return uuid.NewString() },
		Now:         time.Now,
	}
}

// ApplyAll runs one pass per root, strictly one after another. A root that
// fails is logged and the remaining roots still run; the returned error
// aggregates every root failure. Without roots the pass aborts with
// ErrNoWorkspace.
func (r *Runner) ApplyAll(roots []models.Root) ([]models.PassReport, error) {
	r.Logger.LogInfo("Starting ordering pass")

	if len(roots) == 0 {
		r.Logger.LogError("No roots detected - cannot order entries")
		return nil, ErrNoWorkspace
	}

	r.Logger.LogInfo(fmt.Sprintf("Processing %d root(s)", len(roots)))

	var errs *multierror.Error
	reports := make([]models.PassReport, 0, len(roots))
	for _, root := range roots {
		report, err := r.ApplyRoot(root)
		reports = append(reports, report)
		if err != nil {
			r.Logger.LogError(fmt.Sprintf("[pass %s] Error ordering %s: %v", shortID(report.PassID), root.Path, err))
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", root.Path, err))
		}
	}

	r.Logger.LogInfo("=== All roots processed ===")
	return reports, errs.ErrorOrNil()
}

// ApplyRoot runs a full pass over a single root and writes timestamps.
func (r *Runner) ApplyRoot(root models.Root) (models.PassReport, error) {
	report, err := r.resolve(root)
	if err != nil || report.Skipped {
		r.finish(&report)
		return report, err
	}

	tag := passTag(report.PassID)
	r.Logger.LogInfo(fmt.Sprintf("%s Processing %d entries for timestamp modification", tag, len(report.Order)))
	report.Results = r.timestamper().Apply(report.Order)
	r.Logger.LogInfo(fmt.Sprintf("%s Sorting completed for %s", tag, root.Name))

	r.finish(&report)
	return report, nil
}

// Preview resolves a root's final order and the timestamps that would be
// assigned, without writing anything.
func (r *Runner) Preview(root models.Root) (models.PassReport, error) {
	report, err := r.resolve(root)
	if err != nil || report.Skipped {
		return report, err
	}

	report.Results = r.timestamper().Preview(report.Order)
	return report, nil
}

// resolve performs every phase of a pass up to the final order.
func (r *Runner) resolve(root models.Root) (report models.PassReport, err error) {
	report = models.PassReport{PassID: r.passID(), Root: root}
	started := r.now()
	defer func() { report.Duration = r.now().Sub(started) }()

	tag := passTag(report.PassID)
	rootPath := root.RootPath()
	r.Logger.LogInfo(fmt.Sprintf("%s --- Processing root: %s (%s) ---", tag, root.Name, rootPath))

	order, err := orderspec.Read(r.FS, root.Path)
	switch {
	case errors.Is(err, orderspec.ErrNoRoot):
		return report, fmt.Errorf("root path not available: %w", err)
	case errors.Is(err, orderspec.ErrNoOrderFile):
		r.Logger.LogInfo(fmt.Sprintf("%s Config file %q not found in %s - nothing to do", tag, orderspec.FileName, root.Name))
		return skip(report, SkipNoOrderFile), nil
	case err != nil:
		r.Logger.LogWarn(fmt.Sprintf("%s Failed to load configuration for %s: %v", tag, root.Name, err))
		return skip(report, SkipUnreadableCfg), nil
	case order.Empty():
		r.Logger.LogInfo(fmt.Sprintf("%s %s file is empty in %s - nothing to do", tag, orderspec.FileName, root.Name))
		return skip(report, SkipEmptyOrder), nil
	}

	r.Logger.LogInfo(fmt.Sprintf("%s Config loaded with %d entries: %s", tag, len(order.Lines), toJSON(order.Lines)))

	plainLines := orderspec.PlainEntries(order.Lines)
	regexLines := orderspec.ExtractRegexEntries(order.Lines)
	r.Logger.LogDebug(fmt.Sprintf("%s After filtering regex: %s", tag, toJSON(plainLines)))

	plain := orderspec.ResolvePlain(plainLines, rootPath)
	r.Logger.LogDebug(fmt.Sprintf("%s Prefixed file order: %s", tag, toJSON(plain)))

	matcher, err := ignore.Load(r.FS, root.Path)
	if err != nil {
		r.Logger.LogWarn(fmt.Sprintf("%s Ignoring unusable %s, using default pattern: %v", tag, ignore.FileName, err))
	}
	r.Logger.LogDebug(fmt.Sprintf("%s Ignore pattern: %s", tag, matcher.Pattern()))

	entries := fileutil.NewEntrySet()
	if err := fileutil.Discover(r.FS, root.Path, matcher, entries); err != nil {
		return report, fmt.Errorf("discovery failed: %w", err)
	}

	res := resolver.New()
	report.Order = res.Resolve(entries.Paths(), plain, regexLines)
	for _, w := range res.Warnings() {
		r.Logger.LogWarn(fmt.Sprintf("%s Skipping regex rule: %s", tag, w))
	}

	r.Logger.LogInfo(fmt.Sprintf("%s Non-config entries count: %d", tag, len(report.Order)-len(plain)))
	return report, nil
}

func (r *Runner) finish(report *models.PassReport) {
	r.Logger.LogPassSummary(*report)
}

func (r *Runner) timestamper() *timestamp.Timestamper {
	if r.Timestamper == nil {
		return timestamp.New(r.Logger)
	}
	return r.Timestamper
}

func (r *Runner) passID() string {
	if r.NewPassID == nil {
		return uuid.NewString()
	}
	return r.NewPassID()
}

func (r *Runner) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func skip(report models.PassReport, reason string) models.PassReport {
	report.Skipped = true
	report.SkipReason = reason
	return report
}

func passTag(id string) string {
	return "[pass " + shortID(id) + "]"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func toJSON(v []string) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
