// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CredGate Contributors

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `http:
  addr: ":8080"
upstream:
  base_url: "http://directory.internal:8000"
  timeout: 5s
  service_token: "svc-secret"
token:
  signing_secret: "0123456789abcdef0123456789abcdef"
  algorithm: HS256
  ttl: 30m
`

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runValidateCommand(t *testing.T, path string) (string, error) {
	t.Helper()
	configFile = path
	t.Cleanup(func() { configFile = "" })

	cmd := NewValidateCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	err := cmd.Execute()
	return buf.String(), err
}

func TestValidateCommand_ValidConfig(t *testing.T) {
	path := writeConfigFile(t, validConfigYAML)

	output, err := runValidateCommand(t, path)
	require.NoError(t, err)
	assert.Contains(t, output, "configuration valid")
}

func TestValidateCommand_UnknownKeyRejected(t *testing.T) {
	path := writeConfigFile(t, validConfigYAML+`surprise: true
`)

	_, err := runValidateCommand(t, path)
	assert.Error(t, err)
}

func TestValidateCommand_MissingSigningSecret(t *testing.T) {
	path := writeConfigFile(t, `http:
  addr: ":8080"
upstream:
  base_url: "http://directory.internal:8000"
  timeout: 5s
  service_token: "svc-secret"
`)

	_, err := runValidateCommand(t, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signing_secret")
}

func TestValidateCommand_MissingFile(t *testing.T) {
	_, err := runValidateCommand(t, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
