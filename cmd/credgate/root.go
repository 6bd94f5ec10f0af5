// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CredGate Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the CredGate CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credgate",
		Short: "CredGate - credential verification gateway",
		Long: `CredGate verifies username/password credentials against an upstream
user directory and exchanges them for signed, time-bounded bearer tokens.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(NewValidateCmd())

	return cmd
}
