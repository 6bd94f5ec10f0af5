// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CredGate Contributors

package httpapi

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/oops"

	"github.com/credgate/credgate/internal/config"
	"github.com/credgate/credgate/internal/token"
)

// Authenticator is the decision pipeline behind the login endpoint.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*token.AccessToken, error)
}

// Server is the inbound HTTP boundary of the gateway.
type Server struct {
	addr       string
	engine     *gin.Engine
	listener   net.Listener
	httpServer *http.Server
	auth       Authenticator
	logger     *slog.Logger
	running    atomic.Bool
}

// NewServer creates the API server. The authenticator and logger are
// required; the server owns no authentication logic of its own.
func NewServer(cfg config.HTTP, authenticator Authenticator, logger *slog.Logger) (*Server, error) {
	if cfg.Addr == "" {
		return nil, oops.Code("CONFIG_INVALID").Errorf("listen address is required")
	}
	if authenticator == nil {
		return nil, oops.Errorf("authenticator is required")
	}
	if logger == nil {
		return nil, oops.Errorf("logger is required")
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		addr:   cfg.Addr,
		engine: engine,
		auth:   authenticator,
		logger: logger,
	}

	engine.Use(requestLogMiddleware(logger))
	engine.Use(corsMiddleware(cfg.AllowedOrigins))
	engine.POST("/login", s.handleLogin)

	return s, nil
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start begins serving the API. It returns an error channel that receives
// any error from the HTTP server after it starts; the channel is closed on
// graceful stop.
func (s *Server) Start() (<-chan error, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, oops.Errorf("api server already running")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.running.Store(false)
		return nil, oops.With("addr", s.addr).Wrap(err)
	}
	s.listener = listener

	httpSrv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServer = httpSrv

	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		if serveErr := httpSrv.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			s.logger.Error("api server error", "error", serveErr)
			errCh <- serveErr
		}
	}()

	s.logger.Info("api server started", "addr", listener.Addr().String())
	return errCh, nil
}

// Stop gracefully shuts down the API server. In-flight authentication
// attempts complete or are cancelled by their own contexts.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.running.Store(true)
			return oops.With("operation", "shutdown_api_server").Wrap(err)
		}
	}

	s.logger.Info("api server stopped")
	return nil
}

// Addr returns the address the server is listening on.
// Returns empty string if not running.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}

// requestLogMiddleware logs one line per request. Credentials travel in the
// body and are never part of the record.
func requestLogMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
