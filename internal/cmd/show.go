package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/ordertouch/internal/display"
)

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [root...]",
		Short: "Preview the resolved order without changing anything",
		Long: `Show resolves the order for each root exactly as apply would and prints
it newest first, together with the timestamp each entry would receive.
No timestamps are written.`,
		RunE: runShow,
	}

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	roots, err := s.roots(args)
	if err != nil {
		return err
	}

	runner := s.runner()
	for i, root := range roots {
		report, err := runner.Preview(root)
		if err != nil {
			return fmt.Errorf("failed to resolve order for %s: %w", root.Path, err)
		}
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		display.NewOrderListing(cmd.OutOrStdout(), report).Print()
	}

	return nil
}
