package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/ordertouch/internal/models"
	"github.com/harrison/ordertouch/internal/orderspec"
)

// NewPlaceCommand creates the place command
func NewPlaceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "place <entry>...",
		Short: "Move entries to the top of .order",
		Long: `Place moves the given entries to the top of the root's .order file, in
the order given, removing their previous lines. Missing .order files are
created. Paths inside the root are stored relative to it.

Examples:
  ordertouch place README.md docs
  ordertouch place --root ~/notes --apply inbox.md`,
		Args: cobra.MinimumNArgs(1),
		RunE: runPlace,
	}

	cmd.Flags().String("root", "", "Root whose .order file is edited (default: working directory)")
	cmd.Flags().Bool("apply", false, "Apply the new order immediately")

	return cmd
}

func runPlace(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	rootFlag, _ := cmd.Flags().GetString("root")
	root, err := s.singleRoot(rootFlag)
	if err != nil {
		return err
	}

	entries := make([]string, 0, len(args))
	for _, arg := range args {
		entries = append(entries, orderEntry(root, arg))
	}

	lines, err := orderspec.Prepend(root.Path, entries)
	if err != nil {
		return err
	}
	s.log.LogDebug(fmt.Sprintf("New order for %s: %s", root.Name, strings.Join(lines, ", ")))
	fmt.Fprintf(cmd.OutOrStdout(), "Placed %d entries at the top of %s\n", len(entries), root.File(orderspec.FileName))

	if apply, _ := cmd.Flags().GetBool("apply"); apply {
		if _, err := applyRoots(cmd, s, []models.Root{root}); err != nil {
			return err
		}
	}
	return nil
}

// orderEntry converts an argument to the form stored in .order: paths inside
// root become relative slash paths, everything else is kept as given.
func orderEntry(root models.Root, arg string) string {
	if strings.HasPrefix(arg, models.RegexMarker) {
		return arg
	}
	abs := arg
	if !filepath.IsAbs(abs) {
		var err error
		if abs, err = filepath.Abs(arg); err != nil {
			return arg
		}
	}
	rel, err := filepath.Rel(root.Path, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return arg
	}
	return filepath.ToSlash(rel)
}
