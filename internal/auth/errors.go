// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CredGate Contributors

package auth

// Error codes attached to authentication failures. The HTTP boundary maps
// codes to status lines; caller-facing messages derive from the code alone,
// never from wrapped causes.
const (
	// CodeInvalidCredentials unifies "user not found" and "password
	// mismatch". The two are never distinguished to the caller.
	CodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"

	// CodeUpstreamUnreachable means the directory could not be reached at
	// the transport level. The caller may retry later.
	CodeUpstreamUnreachable = "UPSTREAM_UNREACHABLE"

	// CodeUpstreamError means the directory responded outside the
	// protocol: an unexpected status or a malformed payload.
	CodeUpstreamError = "UPSTREAM_ERROR"

	// CodeConfigInvalid is a process-level misconfiguration, not a
	// per-request condition.
	CodeConfigInvalid = "CONFIG_INVALID"

	// CodeTokenIssueFailed covers signing failures after configuration
	// checks passed.
	CodeTokenIssueFailed = "TOKEN_ISSUE_FAILED"
)

// InvalidCredentialsMessage is the single caller-facing message for every
// invalid-credential outcome. Returning different text for an unknown user
// vs a wrong password would enable username enumeration.
const InvalidCredentialsMessage = "incorrect username or password"
