// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CredGate Contributors

package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/credgate/credgate/internal/auth"
	"github.com/credgate/credgate/pkg/errutil"
)

// respondError sends the unified error payload {"error": {"code", "message"}}.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}

// handleLogin implements POST /login with form-encoded credentials.
func (s *Server) handleLogin(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "username and password are required")
		return
	}

	accessToken, err := s.auth.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		s.respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, accessToken)
}

// respondAuthError maps the pipeline's error codes onto caller-facing
// responses. The message is derived from the code alone; wrapped causes
// stay server-side.
func (s *Server) respondAuthError(c *gin.Context, err error) {
	switch errutil.ErrorCode(err) {
	case auth.CodeInvalidCredentials:
		// Identical body for unknown user and wrong password.
		c.Header("WWW-Authenticate", "Bearer")
		respondError(c, http.StatusUnauthorized, auth.CodeInvalidCredentials, auth.InvalidCredentialsMessage)
	case auth.CodeUpstreamUnreachable:
		respondError(c, http.StatusServiceUnavailable, auth.CodeUpstreamUnreachable, "authentication service temporarily unavailable")
	case auth.CodeUpstreamError:
		respondError(c, http.StatusBadGateway, auth.CodeUpstreamError, "upstream directory error")
	default:
		// Config or issuance faults. Already logged by the pipeline.
		errutil.LogError(s.logger, "authentication failed internally", err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error")
	}
}
