package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/ordertouch/internal/models"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// String renders the warning without color
func (w Warning) String() string {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected file:\n")
		} else {
			b.WriteString("Affected files:\n")
		}

		for i, file := range w.Files {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, file))
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	return b.String()
}

// Display shows the warning, in yellow on terminals
func (w Warning) Display(out io.Writer) {
	paint(out, color.FgYellow).Fprint(out, w.String())
}

// WarnFailedEntries creates a warning listing the entries of a pass whose
// timestamps could not be set. ok is false when nothing failed.
func WarnFailedEntries(report models.PassReport) (Warning, bool) {
	failed := report.Failed()
	if len(failed) == 0 {
		return Warning{}, false
	}

	files := make([]string, 0, len(failed))
	for _, r := range failed {
		files = append(files, fmt.Sprintf("%s (%v)", r.Path, r.Error))
	}

	return Warning{
		Title:      fmt.Sprintf("Could not set timestamps for %d of %d entries in %s", len(failed), len(report.Results), report.Root.Name),
		Message:    "These entries keep their previous position.",
		Files:      files,
		Suggestion: "Check that the entries exist and are writable, or remove stale lines from .order",
	}, true
}
