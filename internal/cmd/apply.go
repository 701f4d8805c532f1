package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/ordertouch/internal/display"
	"github.com/harrison/ordertouch/internal/models"
	"github.com/harrison/ordertouch/internal/ordering"
)

// NewApplyCommand creates the apply command
func NewApplyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply [root...]",
		Short: "Apply the declared order once",
		Long: `Apply runs a single ordering pass over each root and rewrites entry
timestamps so a newest-first listing shows the order from .order.

Roots default to the roots in the config file, then to the working directory.
A root without a .order file is skipped without changes.

Examples:
  ordertouch apply
  ordertouch apply ~/notes ~/projects/site
  ordertouch apply --verbose --step 2s .`,
		RunE: runApply,
	}

	return cmd
}

func runApply(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	roots, err := s.roots(args)
	if err != nil {
		return err
	}

	_, err = applyRoots(cmd, s, roots)
	return err
}

// applyRoots runs one pass over roots and reports entries that could not be
// touched. Only a missing workspace is returned as an error; failures of
// individual roots are already logged by the runner.
func applyRoots(cmd *cobra.Command, s *session, roots []models.Root) ([]models.PassReport, error) {
	reports, err := s.runner().ApplyAll(roots)
	if err != nil {
		if errors.Is(err, ordering.ErrNoWorkspace) {
			return reports, err
		}
		s.log.LogWarn(fmt.Sprintf("Ordering finished with errors: %v", err))
	}

	for _, report := range reports {
		if w, ok := display.WarnFailedEntries(report); ok {
			w.Display(cmd.ErrOrStderr())
		}
	}
	return reports, nil
}
