// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CredGate Contributors

// Package mocks provides testify mocks for the auth package's collaborator
// interfaces.
package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/credgate/credgate/internal/directory"
	"github.com/credgate/credgate/internal/token"
)

// MockDirectoryClient is a mock implementation of directory.Client.
type MockDirectoryClient struct {
	mock.Mock
}

// NewMockDirectoryClient creates a MockDirectoryClient bound to t.
func NewMockDirectoryClient(t *testing.T) *MockDirectoryClient {
	m := &MockDirectoryClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Lookup mocks directory.Client.Lookup.
func (m *MockDirectoryClient) Lookup(ctx context.Context, username string) (*directory.Record, error) {
	args := m.Called(ctx, username)
	if rec := args.Get(0); rec != nil {
		return rec.(*directory.Record), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockPasswordVerifier is a mock implementation of auth.PasswordVerifier.
type MockPasswordVerifier struct {
	mock.Mock
}

// NewMockPasswordVerifier creates a MockPasswordVerifier bound to t.
func NewMockPasswordVerifier(t *testing.T) *MockPasswordVerifier {
	m := &MockPasswordVerifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Verify mocks auth.PasswordVerifier.Verify.
func (m *MockPasswordVerifier) Verify(password, encodedHash string) (bool, error) {
	args := m.Called(password, encodedHash)
	return args.Bool(0), args.Error(1)
}

// MockTokenIssuer is a mock implementation of auth.TokenIssuer.
type MockTokenIssuer struct {
	mock.Mock
}

// NewMockTokenIssuer creates a MockTokenIssuer bound to t.
func NewMockTokenIssuer(t *testing.T) *MockTokenIssuer {
	m := &MockTokenIssuer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Issue mocks auth.TokenIssuer.Issue.
func (m *MockTokenIssuer) Issue(subject string, ttl time.Duration) (*token.AccessToken, error) {
	args := m.Called(subject, ttl)
	if tok := args.Get(0); tok != nil {
		return tok.(*token.AccessToken), args.Error(1)
	}
	return nil, args.Error(1)
}
