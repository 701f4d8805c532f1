package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/harrison/ordertouch/internal/display"
	"github.com/harrison/ordertouch/internal/fileutil"
	"github.com/harrison/ordertouch/internal/ignore"
	"github.com/harrison/ordertouch/internal/orderspec"
	"github.com/harrison/ordertouch/internal/resolver"
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [root]",
		Short: "Create a starter .order file",
		Long: `Init writes a .order file listing the root's direct children in
alphabetical order, skipping entries matched by .gitignore. Reorder the lines
afterwards to taste.

An existing .order file is never replaced unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}

	cmd.Flags().Bool("force", false, "Overwrite an existing .order file")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	var path string
	if len(args) == 1 {
		path = args[0]
	}
	root, err := s.singleRoot(path)
	if err != nil {
		return err
	}

	matcher, err := ignore.Load(osfs.Default, root.Path)
	if err != nil {
		s.log.LogWarn(fmt.Sprintf("Invalid ignore pattern, using default: %v", err))
	}

	children, err := fileutil.ListChildren(osfs.Default, root.Path, matcher)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(children))
	for _, child := range children {
		name := filepath.Base(child.Path)
		if name == orderspec.FileName {
			continue
		}
		names = append(names, name)
	}
	resolver.New().SortAlphabetic(names)

	force, _ := cmd.Flags().GetBool("force")
	if err := orderspec.Create(root.Path, names, force); err != nil {
		if errors.Is(err, orderspec.ErrOrderFileExists) {
			display.Warning{
				Title:      "Order file already exists",
				Files:      []string{root.File(orderspec.FileName)},
				Suggestion: "Use --force to overwrite it",
			}.Display(cmd.ErrOrStderr())
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s with %d entries\n", root.File(orderspec.FileName), len(names))
	return nil
}
