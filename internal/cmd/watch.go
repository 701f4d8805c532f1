package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harrison/ordertouch/internal/watcher"
)

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [root...]",
		Short: "Keep roots ordered as files change",
		Long: `Watch applies the order once and then re-applies it whenever a root's
.order or .gitignore changes. With watch_all_saves enabled (the default) any
file write under a root also triggers a pass.

Bursts of changes are coalesced using the debounce delay. Stop with Ctrl+C.

Examples:
  ordertouch watch
  ordertouch watch --debounce 1s ~/notes`,
		RunE: runWatch,
	}

	cmd.Flags().Duration("debounce", 0, "Delay used to coalesce bursts of changes (default from config, 250ms)")
	cmd.Flags().Bool("no-saves", false, "Only react to .order and .gitignore changes")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	roots, err := s.roots(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Activation pass
	if _, err := applyRoots(cmd, s, roots); err != nil {
		return err
	}

	allSaves := s.cfg.WatchAllSaves
	if noSaves, _ := cmd.Flags().GetBool("no-saves"); noSaves {
		allSaves = false
	}

	opts := watcher.Options{Debounce: s.cfg.Debounce, AllSaves: allSaves}
	if s.cfg.LogFile != "" {
		// Our own log writes must not start another pass.
		opts.SkipPaths = append(opts.SkipPaths, s.cfg.LogFile)
	}

	w, err := watcher.New(roots, opts)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Close()

	s.log.LogInfo(fmt.Sprintf("Watching %d root(s) for changes (Ctrl+C to stop)", len(roots)))

	for {
		select {
		case <-ctx.Done():
			s.log.LogInfo("Stopping watcher")
			return nil
		case t := <-w.Triggers():
			s.log.LogInfo(fmt.Sprintf("Change detected in %s (%s): %s", t.Root.Name, t.Reason, t.Path))
			if _, err := applyRoots(cmd, s, roots); err != nil {
				return err
			}
		case err := <-w.Errors():
			s.log.LogWarn(fmt.Sprintf("Watch error: %v", err))
		}
	}
}
