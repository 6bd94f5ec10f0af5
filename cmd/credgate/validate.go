// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CredGate Contributors

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/credgate/credgate/internal/config"
	"github.com/credgate/credgate/internal/xdg"
)

// NewValidateCmd creates the validate subcommand.
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate gateway configuration without starting the server",
		Long: `Validates the configuration file against the JSON Schema and the
runtime invariants, without opening any listener or contacting the
upstream directory. Exits with code 0 on success, non-zero on failure.

Useful in CI pipelines and deploy hooks:
  credgate validate --config /etc/credgate/config.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd)
		},
	}
}

func runValidate(cmd *cobra.Command) error {
	path := configFile
	if path == "" {
		path = xdg.DefaultConfigFile()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if err := config.ValidateSchema(data); err != nil {
			return fmt.Errorf("config file failed schema validation: %w", err)
		}
	}

	cfg, err := config.Load(path, nil)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cmd.Println("configuration valid")
	return nil
}
