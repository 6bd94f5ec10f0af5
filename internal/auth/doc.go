// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CredGate Contributors

// Package auth implements the authentication decision pipeline.
//
// Service.Authenticate sequences the whole flow: directory lookup, password
// verification, token issuance. Any failure short-circuits; there is no
// partial success state. Two rules shape the error handling:
//
//   - "user not found" and "password mismatch" collapse into one
//     indistinguishable outcome, including timing (a dummy hash is verified
//     on the not-found path), so callers cannot enumerate usernames.
//   - transport failure ("we don't know") is never conflated with either a
//     failed credential or a directory protocol fault.
//
// PasswordVerifier treats constant-time comparison as a property of the
// hashing primitives; a malformed stored hash behaves like a mismatch.
package auth
