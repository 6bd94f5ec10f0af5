// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CredGate Contributors

package directory

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Lookup outcome labels.
const (
	OutcomeFound       = "found"
	OutcomeNotFound    = "not_found"
	OutcomeUnreachable = "unreachable"
	OutcomeUpstreamErr = "upstream_error"
)

// LookupDuration is the histogram for directory lookup latency.
// Use RegisterMetrics to register this with a Prometheus registry.
var LookupDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "credgate_directory_lookup_duration_seconds",
		Help:    "Directory lookup duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"outcome"},
)

// Lookups is the counter for directory lookups by outcome.
// Use RegisterMetrics to register this with a Prometheus registry.
var Lookups = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "credgate_directory_lookups_total",
		Help: "Total number of directory lookups by outcome",
	},
	[]string{"outcome"},
)

// RegisterMetrics registers directory package metrics with the given
// Prometheus registry. Panics if registration fails (prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(LookupDuration)
	reg.MustRegister(Lookups)
}

// RecordLookup records one lookup attempt with its outcome and duration.
func RecordLookup(outcome string, duration time.Duration) {
	Lookups.WithLabelValues(outcome).Inc()
	LookupDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// outcomeOf classifies a lookup error into a metric label.
func outcomeOf(err error) string {
	var unreachable *UnreachableError
	var upstream *UpstreamError
	switch {
	case err == nil:
		return OutcomeFound
	case errors.Is(err, ErrNotFound):
		return OutcomeNotFound
	case errors.As(err, &unreachable):
		return OutcomeUnreachable
	case errors.As(err, &upstream):
		return OutcomeUpstreamErr
	default:
		return OutcomeUpstreamErr
	}
}
