package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harrison/ordertouch/internal/logger"
)

// DirName is the per-project configuration directory
const DirName = ".ordertouch"

// FileName is the configuration file inside DirName or the home directory
const FileName = "config.yaml"

// MinStep is the smallest timestamp step that still orders entries on
// filesystems with one second timestamp resolution.
const MinStep = time.Second

// Config represents ordertouch configuration options
type Config struct {
	// Roots lists the directories to order when none are given on the command line
	Roots []string `yaml:"roots"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogFile is the diagnostic log file; empty disables file logging
	LogFile string `yaml:"log_file"`

	// Step separates the timestamps of consecutive entries
	Step time.Duration `yaml:"step"`

	// Debounce coalesces bursts of watch events into a single pass
	Debounce time.Duration `yaml:"debounce"`

	// WatchAllSaves re-applies ordering on any file write, not only on
	// .order and .gitignore changes
	WatchAllSaves bool `yaml:"watch_all_saves"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Roots:         nil,
		LogLevel:      "info",
		LogFile:       "",
		Step:          1100 * time.Millisecond,
		Debounce:      250 * time.Millisecond,
		WatchAllSaves: true,
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations are parsed from strings ("1.5s", "300ms")
	type yamlConfig struct {
		Roots         []string `yaml:"roots"`
		LogLevel      string   `yaml:"log_level"`
		LogFile       string   `yaml:"log_file"`
		Step          string   `yaml:"step"`
		Debounce      string   `yaml:"debounce"`
		WatchAllSaves bool     `yaml:"watch_all_saves"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if len(yamlCfg.Roots) > 0 {
		cfg.Roots = resolveRoots(yamlCfg.Roots, filepath.Dir(path))
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.LogFile != "" {
		cfg.LogFile = yamlCfg.LogFile
	}
	if yamlCfg.Step != "" {
		step, err := time.ParseDuration(yamlCfg.Step)
		if err != nil {
			return nil, fmt.Errorf("invalid step format %q: %w", yamlCfg.Step, err)
		}
		cfg.Step = step
	}
	if yamlCfg.Debounce != "" {
		debounce, err := time.ParseDuration(yamlCfg.Debounce)
		if err != nil {
			return nil, fmt.Errorf("invalid debounce format %q: %w", yamlCfg.Debounce, err)
		}
		cfg.Debounce = debounce
	}

	// watch_all_saves defaults to true, so only an explicit key may change it
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if _, exists := rawMap["watch_all_saves"]; exists {
			cfg.WatchAllSaves = yamlCfg.WatchAllSaves
		}
	}

	return cfg, nil
}

// resolveRoots makes relative roots relative to the directory holding the
// config file's project, i.e. the parent of .ordertouch/.
func resolveRoots(roots []string, configDir string) []string {
	base := configDir
	if filepath.Base(configDir) == DirName {
		base = filepath.Dir(configDir)
	}

	out := make([]string, 0, len(roots))
	for _, r := range roots {
		if filepath.IsAbs(r) {
			out = append(out, filepath.Clean(r))
			continue
		}
		out = append(out, filepath.Join(base, r))
	}
	return out
}

// LoadConfigFromDir loads configuration from .ordertouch/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, DirName, FileName))
}

// LoadDefault looks for .ordertouch/config.yaml in dir first, then for
// config.yaml in the ordertouch home directory. Returns the loaded config and
// the path it came from ("" when defaults were used).
func LoadDefault(dir string) (*Config, string, error) {
	candidates := []string{filepath.Join(dir, DirName, FileName)}
	if home, err := Home(); err == nil {
		candidates = append(candidates, filepath.Join(home, FileName))
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		cfg, err := LoadConfig(candidate)
		if err != nil {
			return nil, candidate, err
		}
		return cfg, candidate, nil
	}

	return DefaultConfig(), "", nil
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(logLevel *string, logFile *string, step *time.Duration, debounce *time.Duration) {
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if logFile != nil {
		c.LogFile = *logFile
	}
	if step != nil {
		c.Step = *step
	}
	if debounce != nil {
		c.Debounce = *debounce
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if !logger.IsValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.Step < MinStep {
		return fmt.Errorf("step must be >= %v, got %v", MinStep, c.Step)
	}

	if c.Debounce < 0 {
		return fmt.Errorf("debounce must be >= 0, got %v", c.Debounce)
	}

	for _, r := range c.Roots {
		if r == "" {
			return fmt.Errorf("roots must not contain empty paths")
		}
	}

	return nil
}
