// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CredGate Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/credgate/credgate/internal/directory"
	"github.com/credgate/credgate/internal/token"
	"github.com/credgate/credgate/pkg/errutil"
)

var tracer = otel.Tracer("credgate/auth")

// dummyPasswordHash is verified against when a user doesn't exist, so that
// response time stays consistent with the found-user path. This is NOT a
// real credential; it matches no password.
//
//nolint:gosec // G101: intentionally fake hash for timing parity, not a credential.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// TokenIssuer mints access tokens for authenticated subjects.
type TokenIssuer interface {
	// Issue signs a token for subject. A non-positive ttl applies the
	// issuer's configured default.
	Issue(subject string, ttl time.Duration) (*token.AccessToken, error)
}

// Service sequences the authentication pipeline: upstream lookup, password
// verification, token issuance. It is stateless; every attempt is an
// independent unit of work.
type Service struct {
	directory directory.Client
	verifier  PasswordVerifier
	issuer    TokenIssuer
	logger    *slog.Logger
}

// NewService creates a Service with the default logger.
func NewService(dir directory.Client, verifier PasswordVerifier, issuer TokenIssuer) (*Service, error) {
	return NewServiceWithLogger(dir, verifier, issuer, slog.Default())
}

// NewServiceWithLogger creates a Service with an explicit logger.
func NewServiceWithLogger(dir directory.Client, verifier PasswordVerifier, issuer TokenIssuer, logger *slog.Logger) (*Service, error) {
	if dir == nil {
		return nil, oops.Errorf("directory client is required")
	}
	if verifier == nil {
		return nil, oops.Errorf("password verifier is required")
	}
	if issuer == nil {
		return nil, oops.Errorf("token issuer is required")
	}
	if logger == nil {
		return nil, oops.Errorf("logger is required")
	}
	return &Service{
		directory: dir,
		verifier:  verifier,
		issuer:    issuer,
		logger:    logger,
	}, nil
}

// Authenticate verifies the credential pair and returns an access token.
// Every failure maps onto the error code taxonomy in errors.go; no
// upstream detail reaches the returned error's message.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*token.AccessToken, error) {
	ctx, span := tracer.Start(ctx, "auth.authenticate")
	defer span.End()

	rec, lookupErr := s.directory.Lookup(ctx, username)

	// Pick the hash to verify against. On not-found we verify a dummy hash
	// so the response time matches the found-user path.
	var targetHash string
	var userExists bool

	switch {
	case lookupErr == nil:
		targetHash = rec.PasswordHash
		userExists = true
	case errors.Is(lookupErr, directory.ErrNotFound):
		targetHash = dummyPasswordHash
	default:
		return nil, s.classifyLookupFailure(span, lookupErr)
	}

	valid, verifyErr := s.verifier.Verify(password, targetHash)
	if verifyErr != nil && userExists {
		// A stored hash the verifier cannot parse is indistinguishable
		// from a mismatch for the caller, but worth flagging internally.
		errutil.LogError(s.logger, "stored hash rejected during verification", verifyErr)
	}

	if verifyErr != nil || !valid || !userExists {
		RecordAttempt(AttemptInvalidCredentials)
		span.SetAttributes(attribute.String("auth.outcome", AttemptInvalidCredentials))
		s.logger.Info("authentication rejected", "user_exists", userExists)
		return nil, oops.Code(CodeInvalidCredentials).Errorf("%s", InvalidCredentialsMessage)
	}

	access, err := s.issuer.Issue(rec.ID, 0)
	if err != nil {
		RecordAttempt(AttemptInternalError)
		span.SetAttributes(attribute.String("auth.outcome", AttemptInternalError))
		errutil.LogError(s.logger, "token issuance failed", err)
		if errutil.ErrorCode(err) == CodeConfigInvalid {
			return nil, err
		}
		return nil, oops.Code(CodeTokenIssueFailed).Wrap(err)
	}

	RecordAttempt(AttemptSuccess)
	span.SetAttributes(attribute.String("auth.outcome", AttemptSuccess))
	s.logger.Info("authentication succeeded", "subject", rec.ID)
	return access, nil
}

// classifyLookupFailure translates directory failures into the caller-facing
// taxonomy. Transport failure means "we don't know"; a protocol failure
// means the directory answered something unexpected. Neither is ever
// conflated with invalid credentials.
func (s *Service) classifyLookupFailure(span trace.Span, lookupErr error) error {
	var unreachable *directory.UnreachableError
	if errors.As(lookupErr, &unreachable) {
		RecordAttempt(AttemptUnreachable)
		span.SetAttributes(attribute.String("auth.outcome", AttemptUnreachable))
		errutil.LogError(s.logger, "directory unreachable", lookupErr)
		return oops.Code(CodeUpstreamUnreachable).Wrap(lookupErr)
	}

	var upstream *directory.UpstreamError
	if errors.As(lookupErr, &upstream) {
		RecordAttempt(AttemptUpstreamError)
		span.SetAttributes(attribute.String("auth.outcome", AttemptUpstreamError))
		errutil.LogError(s.logger, "directory protocol error", lookupErr)
		return oops.Code(CodeUpstreamError).
			With("upstream_status", upstream.Status).
			Wrap(lookupErr)
	}

	RecordAttempt(AttemptUpstreamError)
	span.SetAttributes(attribute.String("auth.outcome", AttemptUpstreamError))
	errutil.LogError(s.logger, "directory lookup failed", lookupErr)
	return oops.Code(CodeUpstreamError).Wrap(lookupErr)
}
