// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CredGate Contributors

package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// corsMiddleware validates the Origin header against the allow-list and
// sets CORS headers for allowed origins. Requests without an Origin header
// (same-origin or non-browser callers) always pass.
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.ToLower(o)] = struct{}{}
	}

	isAllowed := func(origin string) bool {
		if origin == "" {
			return true
		}
		_, ok := allowed[strings.ToLower(origin)]
		return ok
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if !isAllowed(origin) {
			respondError(c, http.StatusForbidden, "ORIGIN_NOT_ALLOWED", "origin not allowed")
			c.Abort()
			return
		}

		if origin != "" {
			setCORSHeaders(c, origin)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func setCORSHeaders(c *gin.Context, origin string) {
	c.Header("Access-Control-Allow-Origin", origin)
	c.Header("Access-Control-Allow-Credentials", "true")
	c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type")
	c.Header("Vary", "Origin")
}
