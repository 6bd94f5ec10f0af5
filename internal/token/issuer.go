// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CredGate Contributors

package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/credgate/credgate/internal/config"
)

// TypeBearer is the token_type value returned with every access token.
const TypeBearer = "bearer"

// AccessToken is the artifact returned to a caller on successful
// authentication.
type AccessToken struct {
	Token     string    `json:"access_token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"-"`
}

// signingMethods maps configured algorithm names to jwt methods. Only HMAC
// variants are supported; the set mirrors config.Validate.
var signingMethods = map[string]jwt.SigningMethod{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// Issuer mints signed, time-bounded bearer tokens.
type Issuer struct {
	secret     []byte
	method     jwt.SigningMethod
	defaultTTL time.Duration
	issuer     string
	now        func() time.Time
}

// NewIssuer creates an Issuer from token configuration. Missing signing
// material is a construction error, never a silent default.
func NewIssuer(cfg config.Token) (*Issuer, error) {
	return NewIssuerWithClock(cfg, time.Now)
}

// NewIssuerWithClock creates an Issuer with an explicit clock, for
// deterministic expiry in tests.
func NewIssuerWithClock(cfg config.Token, clock func() time.Time) (*Issuer, error) {
	if cfg.SigningSecret == "" {
		return nil, oops.Code("CONFIG_INVALID").Errorf("signing secret is not set")
	}
	if cfg.Algorithm == "" {
		return nil, oops.Code("CONFIG_INVALID").Errorf("signing algorithm is not set")
	}
	method, ok := signingMethods[cfg.Algorithm]
	if !ok {
		return nil, oops.Code("CONFIG_INVALID").
			With("algorithm", cfg.Algorithm).
			Errorf("unsupported signing algorithm")
	}
	if cfg.TTL <= 0 {
		return nil, oops.Code("CONFIG_INVALID").Errorf("default token TTL must be positive")
	}
	if clock == nil {
		return nil, oops.Code("CONFIG_INVALID").Errorf("clock is required")
	}

	return &Issuer{
		secret:     []byte(cfg.SigningSecret),
		method:     method,
		defaultTTL: cfg.TTL,
		issuer:     cfg.Issuer,
		now:        clock,
	}, nil
}

// Issue signs a token for subject expiring after ttl. A non-positive ttl
// applies the configured default. The signing material is re-checked here:
// issuing an unsigned token is never acceptable, even if construction-time
// validation was bypassed.
func (i *Issuer) Issue(subject string, ttl time.Duration) (*AccessToken, error) {
	if len(i.secret) == 0 || i.method == nil {
		return nil, oops.Code("CONFIG_INVALID").Errorf("signing material is not configured")
	}
	if subject == "" {
		return nil, oops.Code("TOKEN_ISSUE_FAILED").Errorf("subject cannot be empty")
	}
	if ttl <= 0 {
		ttl = i.defaultTTL
	}

	now := i.now()
	expiresAt := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    i.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        ulid.Make().String(),
	}

	signed, err := jwt.NewWithClaims(i.method, claims).SignedString(i.secret)
	if err != nil {
		return nil, oops.Code("TOKEN_ISSUE_FAILED").
			With("operation", "sign claims").
			Wrap(err)
	}

	return &AccessToken{
		Token:     signed,
		TokenType: TypeBearer,
		ExpiresAt: expiresAt,
	}, nil
}

// Decode parses and verifies a token issued by this Issuer, returning its
// registered claims. Signature, algorithm, issuer and expiry are all
// enforced.
func (i *Issuer) Decode(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{i.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	}
	if i.issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.issuer))
	}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	}, opts...)
	if err != nil {
		return nil, oops.Code("TOKEN_INVALID").Wrap(err)
	}
	return claims, nil
}
