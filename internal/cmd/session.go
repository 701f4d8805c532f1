package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/harrison/ordertouch/internal/config"
	"github.com/harrison/ordertouch/internal/logger"
	"github.com/harrison/ordertouch/internal/models"
	"github.com/harrison/ordertouch/internal/ordering"
	"github.com/harrison/ordertouch/internal/timestamp"
)

// session holds what every subcommand needs: merged configuration and loggers
type session struct {
	cfg        *config.Config
	configPath string
	log        logger.Logger
	fileLog    *logger.FileLogger
}

// newSession loads configuration, applies flag overrides and builds loggers
func newSession(cmd *cobra.Command) (*session, error) {
	configPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config
	var err error

	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, configPath, err = config.LoadDefault(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	var logLevelPtr, logFilePtr *string
	var stepPtr, debouncePtr *time.Duration

	if cmd.Flags().Changed("log-level") {
		v, _ := cmd.Flags().GetString("log-level")
		logLevelPtr = &v
	}
	if cmd.Flags().Changed("log-file") {
		v, _ := cmd.Flags().GetString("log-file")
		logFilePtr = &v
	}
	if cmd.Flags().Changed("step") {
		v, _ := cmd.Flags().GetDuration("step")
		stepPtr = &v
	}
	if cmd.Flags().Changed("debounce") {
		v, _ := cmd.Flags().GetDuration("debounce")
		debouncePtr = &v
	}

	cfg.MergeWithFlags(logLevelPtr, logFilePtr, stepPtr, debouncePtr)

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	s := &session{cfg: cfg, configPath: configPath}

	consoleLog := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	s.log = consoleLog
	if cfg.LogFile != "" {
		s.fileLog, err = logger.NewFileLoggerWithLevel(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to create file logger: %w", err)
		}
		s.log = logger.NewMultiLogger(consoleLog, s.fileLog)
	}

	if configPath != "" {
		s.log.LogDebug(fmt.Sprintf("Loaded config from %s", configPath))
	}
	return s, nil
}

// Close flushes and closes the file logger, if any
func (s *session) Close() {
	if s.fileLog != nil {
		s.fileLog.Close()
	}
}

// runner builds an ordering runner on the real filesystem
func (s *session) runner() *ordering.Runner {
	ts := timestamp.New(s.log)
	ts.Step = s.cfg.Step
	return ordering.NewRunner(osfs.Default, s.log, ts)
}

// roots picks the roots to operate on: explicit arguments first, then the
// configured roots, then the working directory.
func (s *session) roots(args []string) ([]models.Root, error) {
	if len(args) > 0 {
		roots := make([]models.Root, 0, len(args))
		for _, arg := range args {
			root, err := models.NewRoot(arg)
			if err != nil {
				return nil, fmt.Errorf("invalid root %s: %w", arg, err)
			}
			roots = append(roots, root)
		}
		return roots, nil
	}

	if len(s.cfg.Roots) > 0 {
		// Configured roots that are missing are reported by the pass itself.
		roots := make([]models.Root, 0, len(s.cfg.Roots))
		for _, r := range s.cfg.Roots {
			abs, err := filepath.Abs(r)
			if err != nil {
				return nil, fmt.Errorf("invalid root %s: %w", r, err)
			}
			roots = append(roots, models.RootAt(abs))
		}
		return roots, nil
	}

	root, err := s.workingRoot()
	if err != nil {
		return nil, err
	}
	return []models.Root{root}, nil
}

// singleRoot resolves the root for commands that edit one .order file
func (s *session) singleRoot(path string) (models.Root, error) {
	if path == "" {
		return s.workingRoot()
	}
	root, err := models.NewRoot(path)
	if err != nil {
		return models.Root{}, fmt.Errorf("invalid root %s: %w", path, err)
	}
	return root, nil
}

func (s *session) workingRoot() (models.Root, error) {
	wd, err := os.Getwd()
	if err != nil {
		return models.Root{}, fmt.Errorf("failed to determine working directory: %w", err)
	}
	return models.NewRoot(wd)
}
