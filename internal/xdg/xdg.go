// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CredGate Contributors

// Package xdg provides XDG Base Directory paths for CredGate.
package xdg

import (
	"os"
	"path/filepath"
)

const appName = "credgate"

// ConfigDir returns the XDG config directory for credgate.
// Checks XDG_CONFIG_HOME first, falls back to ~/.config.
func ConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, appName)
}

// DefaultConfigFile returns the conventional config file path, or "" when
// no file exists there. Explicit --config always wins over this.
func DefaultConfigFile() string {
	path := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
