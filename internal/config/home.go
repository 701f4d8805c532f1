package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnv overrides the ordertouch home directory
const HomeEnv = "ORDERTOUCH_HOME"

// Home returns the ordertouch home directory.
// Priority order:
//  1. ORDERTOUCH_HOME environment variable (if set)
//  2. <user config dir>/ordertouch
//
// The directory is not created; callers only read from it.
func Home() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return home, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config directory: %w", err)
	}

	return filepath.Join(configDir, "ordertouch"), nil
}
