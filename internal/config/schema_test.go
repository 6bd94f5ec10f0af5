// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CredGate Contributors

package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))

	assert.Equal(t, "CredGate Configuration", schema["title"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok, "schema missing properties")
	for _, section := range []string{"http", "upstream", "token", "metrics", "log"} {
		assert.Contains(t, props, section)
	}

	// Nothing is required at the schema level; presence of secrets is a
	// semantic check after env merging.
	assert.NotContains(t, schema, "required")
}

func TestValidateSchema(t *testing.T) {
	t.Run("valid config accepted", func(t *testing.T) {
		err := ValidateSchema([]byte(`http:
  addr: ":8080"
  allowed_origins:
    - "https://app.example.com"
upstream:
  base_url: "http://directory.internal:8000"
  timeout: 5s
  service_token: "svc-secret"
token:
  signing_secret: "0123456789abcdef0123456789abcdef"
  algorithm: HS256
  ttl: 30m
`))
		assert.NoError(t, err)
	})

	t.Run("duration as integer accepted", func(t *testing.T) {
		err := ValidateSchema([]byte(`token:
  ttl: 1800000000000
`))
		assert.NoError(t, err)
	})

	t.Run("partial config accepted", func(t *testing.T) {
		err := ValidateSchema([]byte(`log:
  format: text
`))
		assert.NoError(t, err)
	})

	t.Run("wrong type rejected", func(t *testing.T) {
		err := ValidateSchema([]byte(`http:
  addr: 8080
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "schema validation failed")
	})

	t.Run("unknown top-level key rejected", func(t *testing.T) {
		err := ValidateSchema([]byte(`database:
  dsn: "postgres://"
`))
		require.Error(t, err)
	})

	t.Run("unknown nested key rejected", func(t *testing.T) {
		err := ValidateSchema([]byte(`token:
  secret_key: "oops"
`))
		require.Error(t, err)
	})

	t.Run("invalid yaml rejected", func(t *testing.T) {
		err := ValidateSchema([]byte("http: [unclosed"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid YAML")
	})

	t.Run("empty data rejected", func(t *testing.T) {
		err := ValidateSchema(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})
}
