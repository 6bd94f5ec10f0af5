// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CredGate Contributors

package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credgate/credgate/internal/logging"
)

func TestSetup_AddsServiceIdentity(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Setup("credgate", "1.2.3", "json", &buf)

	logger.Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "credgate", entry["service"])
	assert.Equal(t, "1.2.3", entry["version"])
	assert.Equal(t, "hello", entry["msg"])
}

func TestSetup_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Setup("credgate", "dev", "text", &buf)

	logger.Info("plain output")

	assert.Contains(t, buf.String(), "msg=\"plain output\"")
	assert.Contains(t, buf.String(), "service=credgate")
}

func TestSetup_RedactsSensitiveAttrs(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{name: "password attr", key: "password"},
		{name: "signing secret attr", key: "signing_secret"},
		{name: "service token attr", key: "service_token"},
		{name: "access token attr", key: "access_token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := logging.Setup("credgate", "dev", "json", &buf)

			logger.Info("attempt", tt.key, "super-secret-value")

			out := buf.String()
			assert.NotContains(t, out, "super-secret-value")
			assert.Contains(t, out, "[REDACTED]")
		})
	}
}

func TestSetup_NonSensitiveAttrsPassThrough(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Setup("credgate", "dev", "json", &buf)

	logger.Info("attempt", "username_present", true, "outcome", "success")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, true, entry["username_present"])
	assert.Equal(t, "success", entry["outcome"])
}
