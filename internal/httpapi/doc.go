// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CredGate Contributors

// Package httpapi is the inbound HTTP boundary of the gateway.
//
// It exposes a single operation, POST /login, taking form-encoded
// credentials and returning {"access_token", "token_type"} on success. All
// failures are rendered from the pipeline's error codes into the unified
// {"error": {"code", "message"}} payload; internal causes never appear in
// a response body. Unauthorized responses carry a WWW-Authenticate: Bearer
// challenge and an identical body regardless of whether the username
// existed.
package httpapi
