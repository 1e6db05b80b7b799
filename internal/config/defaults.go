package config

import (
	"os"
	"path/filepath"

	"github.com/opd-ai/sysfetch/internal/platform"
)

// Default values for configuration options.
const (
	// DefaultKeyColor is the label colour.
	DefaultKeyColor = "#5fafff"
	// DefaultSeparator sits between the label column and the value.
	DefaultSeparator = "  "
	// DefaultRemotePort is the SSH port used when none is configured.
	DefaultRemotePort = 22
)

// DefaultConfig returns a Config that shows every field with the default
// formatting.
func DefaultConfig() Config {
	return Config{
		ProbeTimeout: platform.DefaultProbeTimeout,
		KeyColor:     DefaultKeyColor,
		Separator:    DefaultSeparator,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/sysfetch/config.lua, falling back to
// ~/.config/sysfetch/config.lua. It returns "" when neither base directory
// can be determined.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "sysfetch", "config.lua")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "sysfetch", "config.lua")
}
