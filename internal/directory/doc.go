// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CredGate Contributors

// Package directory is the client for the upstream user-directory service.
//
// A lookup classifies its outcome into exactly one of four results: a
// Record, ErrNotFound (the directory answered 401 or 404), UnreachableError
// (transport failure; the directory's state is unknown), or UpstreamError
// (any other response, including malformed payloads). Downstream error
// translation depends on this distinction: "we don't know" and "this
// identity does not resolve" must never be conflated.
package directory
