// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CredGate Contributors

// Package config loads and validates gateway configuration.
//
// Configuration is merged from four layers in increasing precedence:
// built-in defaults, an optional YAML file, CREDGATE_* environment
// variables, and command-line flags. The result is an immutable Config
// value handed to components at construction time.
//
// Validate enforces the fail-closed rule: a gateway without a signing
// secret, a recognized signing algorithm, or a bounded upstream timeout
// refuses to start.
package config
