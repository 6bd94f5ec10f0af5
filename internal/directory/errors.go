// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CredGate Contributors

package directory

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the directory does not resolve the username.
// The directory signals this with a 401 or 404; both mean "this identity
// does not exist here" and both collapse to this error.
var ErrNotFound = errors.New("user not found")

// UnreachableError reports a transport-level failure: DNS, connection
// refused, or timeout. The directory's state is unknown; callers may retry.
type UnreachableError struct {
	cause error
}

// NewUnreachableError wraps a transport-level failure.
func NewUnreachableError(cause error) *UnreachableError {
	return &UnreachableError{cause: cause}
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("directory unreachable: %v", e.cause)
}

func (e *UnreachableError) Unwrap() error { return e.cause }

// UpstreamError reports that the directory responded, but outside the
// protocol: an unexpected status, or a 2xx with a payload that could not be
// decoded. Status carries the HTTP status the directory returned.
type UpstreamError struct {
	Status int
	cause  error
}

// NewUpstreamError wraps an out-of-protocol directory response.
func NewUpstreamError(status int, cause error) *UpstreamError {
	return &UpstreamError{Status: status, cause: cause}
}

func (e *UpstreamError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("directory returned status %d: %v", e.Status, e.cause)
	}
	return fmt.Sprintf("directory returned status %d", e.Status)
}

func (e *UpstreamError) Unwrap() error { return e.cause }
