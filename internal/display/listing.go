package display

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/ordertouch/internal/models"
)

// TimeLayout is the timestamp format used in listings
const TimeLayout = "2006-01-02 15:04:05.000"

// OrderListing prints a resolved order the way a file browser sorting by
// modification time (newest first) would show it.
type OrderListing struct {
	writer io.Writer
	report models.PassReport
}

// NewOrderListing creates a listing for a previewed or applied pass
func NewOrderListing(w io.Writer, report models.PassReport) *OrderListing {
	return &OrderListing{writer: w, report: report}
}

// Print writes the header and one line per entry
func (l *OrderListing) Print() {
	root := l.report.Root
	if l.report.Skipped {
		fmt.Fprintf(l.writer, "%s: skipped (%s)\n", root.Path, l.report.SkipReason)
		return
	}

	fmt.Fprintf(l.writer, "Order for %s (%d entries, newest first):\n", root.Path, len(l.report.Results))

	index := paint(l.writer, color.FgCyan)
	total := len(l.report.Results)
	for i := total - 1; i >= 0; i-- {
		r := l.report.Results[i]
		index.Fprintf(l.writer, "  [%d/%d]", total-i, total)
		fmt.Fprintf(l.writer, " %s  %s\n", relativeName(root, r.Path), r.Time.Format(TimeLayout))
	}
}

// relativeName shows path relative to root, falling back to the full path
func relativeName(root models.Root, path string) string {
	rel, err := filepath.Rel(root.Path, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}
