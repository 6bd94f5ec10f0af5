// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CredGate Contributors

package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/credgate/credgate/internal/config"
)

var tracer = otel.Tracer("credgate/directory")

// lookupPath is the directory service endpoint for username resolution.
const lookupPath = "/user/read_user_by_username"

// serviceTokenHeader carries the gateway's service credential to the
// directory. The directory rejects callers without it.
const serviceTokenHeader = "X-Internal-Token"

// Record is a user entry as returned by the directory service. It is held
// only for the duration of one verification step.
type Record struct {
	ID           string `json:"id"`
	PasswordHash string `json:"hashed_password"`
}

// Client resolves usernames against the upstream user directory.
type Client interface {
	// Lookup returns the record for username, ErrNotFound if the identity
	// does not resolve, *UnreachableError on transport failure, or
	// *UpstreamError on any other directory response.
	Lookup(ctx context.Context, username string) (*Record, error)
}

// HTTPClient calls the directory service over HTTP. Each lookup is a single
// attempt bounded by the configured timeout; retry policy belongs to the
// surrounding infrastructure, not this client.
type HTTPClient struct {
	client       *http.Client
	baseURL      string
	serviceToken string
}

// NewHTTPClient creates a directory client from upstream configuration.
func NewHTTPClient(cfg config.Upstream) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, oops.Code("CONFIG_INVALID").Errorf("upstream base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, oops.Code("CONFIG_INVALID").
			With("base_url", cfg.BaseURL).
			Wrap(err)
	}
	if cfg.Timeout <= 0 {
		return nil, oops.Code("CONFIG_INVALID").Errorf("upstream timeout is required")
	}
	if cfg.ServiceToken == "" {
		return nil, oops.Code("CONFIG_INVALID").Errorf("upstream service token is required")
	}

	return &HTTPClient{
		client:       &http.Client{Timeout: cfg.Timeout},
		baseURL:      cfg.BaseURL,
		serviceToken: cfg.ServiceToken,
	}, nil
}

// Lookup resolves username via the directory service.
func (c *HTTPClient) Lookup(ctx context.Context, username string) (*Record, error) {
	ctx, span := tracer.Start(ctx, "directory.lookup")
	defer span.End()

	start := time.Now()
	rec, err := c.lookup(ctx, username)
	RecordLookup(outcomeOf(err), time.Since(start))

	if err != nil {
		span.SetAttributes(attribute.String("lookup.outcome", outcomeOf(err)))
		return nil, err
	}
	span.SetAttributes(attribute.String("lookup.outcome", OutcomeFound))
	return rec, nil
}

func (c *HTTPClient) lookup(ctx context.Context, username string) (*Record, error) {
	endpoint := c.baseURL + lookupPath + "?username=" + url.QueryEscape(username)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, oops.Code("DIRECTORY_REQUEST_FAILED").Wrap(err)
	}
	req.Header.Set(serviceTokenHeader, c.serviceToken)
	req.Header.Set("X-Request-ID", ulid.Make().String())
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		// DNS failure, connection refused, timeout, cancelled context.
		// The directory's state is unknown.
		return nil, &UnreachableError{cause: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &UpstreamError{Status: resp.StatusCode}
	}

	var rec Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, &UpstreamError{Status: resp.StatusCode, cause: err}
	}
	if rec.ID == "" || rec.PasswordHash == "" {
		return nil, &UpstreamError{
			Status: resp.StatusCode,
			cause:  oops.Errorf("payload missing id or hashed_password"),
		}
	}

	return &rec, nil
}
