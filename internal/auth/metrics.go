// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CredGate Contributors

package auth

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for authentication attempt metrics.
const (
	AttemptSuccess            = "success"
	AttemptInvalidCredentials = "invalid_credentials"
	AttemptUnreachable        = "upstream_unreachable"
	AttemptUpstreamError      = "upstream_error"
	AttemptInternalError      = "internal_error"
)

// Attempts is the counter for authentication attempts by outcome.
// Use RegisterMetrics to register this with a Prometheus registry.
var Attempts = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "credgate_auth_attempts_total",
		Help: "Total number of authentication attempts by outcome",
	},
	[]string{"outcome"},
)

// TokensIssued counts successfully issued access tokens.
// Use RegisterMetrics to register this with a Prometheus registry.
var TokensIssued = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "credgate_tokens_issued_total",
		Help: "Total number of access tokens issued",
	},
)

// RegisterMetrics registers auth package metrics with the given Prometheus
// registry. Panics if registration fails (prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(Attempts)
	reg.MustRegister(TokensIssued)
}

// RecordAttempt increments the attempt counter for the given outcome.
func RecordAttempt(outcome string) {
	Attempts.WithLabelValues(outcome).Inc()
	if outcome == AttemptSuccess {
		TokensIssued.Inc()
	}
}
