package config

import (
	"os"
	"path/filepath"
)

// Dir returns the attest config directory.
// Uses XDG_CONFIG_HOME/attest, defaulting to ~/.config/attest.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "attest"), nil
}
