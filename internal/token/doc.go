// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CredGate Contributors

// Package token mints and verifies signed bearer tokens.
//
// The Issuer signs JWT access tokens with a shared HMAC secret. It fails
// closed: absent signing material is rejected at construction and again at
// every Issue call, so a misconfigured gateway can never hand out unsigned
// tokens.
package token
