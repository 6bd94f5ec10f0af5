// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CredGate Contributors

// Package errutil provides helpers for working with oops structured errors.
package errutil

import (
	"log/slog"

	"github.com/samber/oops"
)

// LogError logs an error with structured context if it's an oops error.
// For oops errors, it extracts and logs the message, code, and context.
// For standard errors, it logs the error string. This is the only place
// internal failure detail is surfaced; caller-facing responses never carry
// it.
func LogError(logger *slog.Logger, msg string, err error) {
	if oopsErr, ok := oops.AsOops(err); ok {
		attrs := []any{
			"error", oopsErr.Error(),
		}
		if code, ok := oopsErr.Code().(string); ok && code != "" {
			attrs = append(attrs, "code", code)
		}
		if ctx := oopsErr.Context(); len(ctx) > 0 {
			attrs = append(attrs, "context", ctx)
		}
		logger.Error(msg, attrs...)
	} else {
		logger.Error(msg, "error", err)
	}
}

// ErrorCode returns the oops code attached to err, or "" when err is nil or
// carries no code. Boundary layers use this to map errors onto caller-facing
// responses without inspecting messages.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	if oopsErr, ok := oops.AsOops(err); ok {
		// Code() is typed any; anything but a string means no code was set.
		if code, ok := oopsErr.Code().(string); ok {
			return code
		}
	}
	return ""
}
