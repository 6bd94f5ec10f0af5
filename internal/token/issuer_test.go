// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CredGate Contributors

package token_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credgate/credgate/internal/config"
	"github.com/credgate/credgate/internal/token"
	"github.com/credgate/credgate/pkg/errutil"
)

func testTokenConfig() config.Token {
	return config.Token{
		SigningSecret: "0123456789abcdef0123456789abcdef",
		Algorithm:     "HS256",
		TTL:           30 * time.Minute,
		Issuer:        "credgate",
	}
}

func TestNewIssuer_FailClosed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Token)
	}{
		{"empty signing secret", func(c *config.Token) { c.SigningSecret = "" }},
		{"empty algorithm", func(c *config.Token) { c.Algorithm = "" }},
		{"asymmetric algorithm", func(c *config.Token) { c.Algorithm = "RS256" }},
		{"none algorithm", func(c *config.Token) { c.Algorithm = "none" }},
		{"zero ttl", func(c *config.Token) { c.TTL = 0 }},
		{"negative ttl", func(c *config.Token) { c.TTL = -time.Minute }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testTokenConfig()
			tt.mutate(&cfg)

			issuer, err := token.NewIssuer(cfg)
			require.Error(t, err)
			assert.Nil(t, issuer)
			errutil.AssertErrorCode(t, err, "CONFIG_INVALID")
		})
	}
}

func TestIssuer_Issue(t *testing.T) {
	issuedAt := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	clock := func() time.Time { return issuedAt }

	t.Run("token round-trips with expected claims", func(t *testing.T) {
		issuer, err := token.NewIssuerWithClock(testTokenConfig(), clock)
		require.NoError(t, err)

		access, err := issuer.Issue("user-42", 0)
		require.NoError(t, err)
		require.NotNil(t, access)
		assert.Equal(t, token.TypeBearer, access.TokenType)
		assert.Equal(t, issuedAt.Add(30*time.Minute), access.ExpiresAt)

		claims, err := issuer.Decode(access.Token)
		require.NoError(t, err)
		assert.Equal(t, "user-42", claims.Subject)
		assert.Equal(t, "credgate", claims.Issuer)
		assert.Equal(t, issuedAt.Unix(), claims.IssuedAt.Unix())
		assert.Equal(t, issuedAt.Add(30*time.Minute).Unix(), claims.ExpiresAt.Unix())
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("explicit ttl overrides the default", func(t *testing.T) {
		issuer, err := token.NewIssuerWithClock(testTokenConfig(), clock)
		require.NoError(t, err)

		access, err := issuer.Issue("user-42", 5*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, issuedAt.Add(5*time.Minute), access.ExpiresAt)
	})

	t.Run("empty subject rejected", func(t *testing.T) {
		issuer, err := token.NewIssuerWithClock(testTokenConfig(), clock)
		require.NoError(t, err)

		access, err := issuer.Issue("", 0)
		require.Error(t, err)
		assert.Nil(t, access)
		errutil.AssertErrorCode(t, err, "TOKEN_ISSUE_FAILED")
	})

	t.Run("distinct tokens get distinct ids", func(t *testing.T) {
		issuer, err := token.NewIssuerWithClock(testTokenConfig(), clock)
		require.NoError(t, err)

		first, err := issuer.Issue("user-42", 0)
		require.NoError(t, err)
		second, err := issuer.Issue("user-42", 0)
		require.NoError(t, err)
		assert.NotEqual(t, first.Token, second.Token)
	})

	t.Run("header carries configured algorithm", func(t *testing.T) {
		for _, alg := range []string{"HS256", "HS384", "HS512"} {
			cfg := testTokenConfig()
			cfg.Algorithm = alg
			issuer, err := token.NewIssuerWithClock(cfg, clock)
			require.NoError(t, err)

			access, err := issuer.Issue("user-42", 0)
			require.NoError(t, err)

			parts := strings.SplitN(access.Token, ".", 3)
			require.Len(t, parts, 3)

			headerJSON, err := jwt.NewParser().DecodeSegment(parts[0])
			require.NoError(t, err)
			var header struct {
				Alg string `json:"alg"`
			}
			require.NoError(t, json.Unmarshal(headerJSON, &header))
			assert.Equal(t, alg, header.Alg)
		}
	})
}

func TestIssuer_Decode(t *testing.T) {
	issuedAt := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	clock := func() time.Time { return issuedAt }

	t.Run("expired token rejected", func(t *testing.T) {
		issuer, err := token.NewIssuerWithClock(testTokenConfig(), clock)
		require.NoError(t, err)

		access, err := issuer.Issue("user-42", time.Minute)
		require.NoError(t, err)

		lateClock := func() time.Time { return issuedAt.Add(2 * time.Minute) }
		lateIssuer, err := token.NewIssuerWithClock(testTokenConfig(), lateClock)
		require.NoError(t, err)

		claims, decodeErr := lateIssuer.Decode(access.Token)
		require.Error(t, decodeErr)
		assert.Nil(t, claims)
		errutil.AssertErrorCode(t, decodeErr, "TOKEN_INVALID")
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		issuer, err := token.NewIssuerWithClock(testTokenConfig(), clock)
		require.NoError(t, err)

		access, err := issuer.Issue("user-42", 0)
		require.NoError(t, err)

		otherCfg := testTokenConfig()
		otherCfg.SigningSecret = "ffffffffffffffffffffffffffffffff"
		otherIssuer, err := token.NewIssuerWithClock(otherCfg, clock)
		require.NoError(t, err)

		_, decodeErr := otherIssuer.Decode(access.Token)
		require.Error(t, decodeErr)
		errutil.AssertErrorCode(t, decodeErr, "TOKEN_INVALID")
	})

	t.Run("algorithm confusion rejected", func(t *testing.T) {
		hs512Cfg := testTokenConfig()
		hs512Cfg.Algorithm = "HS512"
		hs512Issuer, err := token.NewIssuerWithClock(hs512Cfg, clock)
		require.NoError(t, err)

		access, err := hs512Issuer.Issue("user-42", 0)
		require.NoError(t, err)

		hs256Issuer, err := token.NewIssuerWithClock(testTokenConfig(), clock)
		require.NoError(t, err)

		_, decodeErr := hs256Issuer.Decode(access.Token)
		require.Error(t, decodeErr)
		errutil.AssertErrorCode(t, decodeErr, "TOKEN_INVALID")
	})

	t.Run("garbage rejected", func(t *testing.T) {
		issuer, err := token.NewIssuerWithClock(testTokenConfig(), clock)
		require.NoError(t, err)

		_, decodeErr := issuer.Decode("not.a.token")
		require.Error(t, decodeErr)
		errutil.AssertErrorCode(t, decodeErr, "TOKEN_INVALID")
	})
}
