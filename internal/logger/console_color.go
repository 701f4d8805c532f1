package logger

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harrison/ordertouch/internal/models"
)

// colorScheme defines consistent colors for pass summaries.
// Green: applied entries
// Red: failed entries
// Yellow: skipped passes
// Cyan: root labels
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	warn    *color.Color
	label   *color.Color
}

// newColorScheme creates the standard color scheme. When enabled is false every
// color prints plain text.
func newColorScheme(enabled bool) *colorScheme {
	scheme := &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
	}
	if !enabled {
		scheme.success.DisableColor()
		scheme.fail.DisableColor()
		scheme.warn.DisableColor()
		scheme.label.DisableColor()
	}
	return scheme
}

// formatPassSummary renders one pass report as a single log line.
func formatPassSummary(ts string, report models.PassReport, scheme *colorScheme) string {
	label := scheme.label.Sprint(report.Root.Path)

	if report.Skipped {
		return fmt.Sprintf("[%s] %s: %s\n", ts, label, scheme.warn.Sprintf("skipped (%s)", report.SkipReason))
	}

	failed := len(report.Failed())
	failedText := fmt.Sprintf("%d failed", failed)
	if failed > 0 {
		failedText = scheme.fail.Sprint(failedText)
	}

	touched := scheme.success.Sprintf("%d/%d entries ordered", report.Touched(), len(report.Results))
	return fmt.Sprintf("[%s] %s: %s, %s (%s)\n", ts, label, touched, failedText, formatDuration(report.Duration))
}
