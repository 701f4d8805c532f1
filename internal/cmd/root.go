package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for ordertouch
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ordertouch",
		Short: "Order directory listings by rewriting timestamps",
		Long: `ordertouch makes a file browser that sorts by "modified, newest first"
show the entries of a directory tree in the order you choose.

The order is declared in a .order file at the root of the tree, one entry per
line. Entries listed first appear first. Lines starting with (regex) hold glob
rules whose matches are pushed below everything else. Entries matched by the
root's .gitignore are left alone, and all remaining entries appear after the
listed ones in alphabetical order.

Configuration is loaded from .ordertouch/config.yaml if present.
CLI flags override configuration file settings.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: .ordertouch/config.yaml)")
	cmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.PersistentFlags().String("log-file", "", "Append diagnostic logs to this file")
	cmd.PersistentFlags().Bool("verbose", false, "Show every timestamp change (same as --log-level debug)")
	cmd.PersistentFlags().Duration("step", 0, "Time between consecutive entries (minimum 1s)")

	cmd.AddCommand(NewApplyCommand())
	cmd.AddCommand(NewWatchCommand())
	cmd.AddCommand(NewShowCommand())
	cmd.AddCommand(NewInitCommand())
	cmd.AddCommand(NewPlaceCommand())

	return cmd
}
