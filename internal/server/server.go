// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package server implements the token REST backend that the client talks to.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/toeirei/tokenmaster/internal/db"
	"github.com/toeirei/tokenmaster/internal/logging"
)

// Options tune the HTTP surface.
type Options struct {
	// AllowedOrigins for CORS. A "*" entry allows every origin.
	AllowedOrigins []string
	// MaxUploadBytes caps the multipart upload body. Zero means no cap.
	MaxUploadBytes int64
}

// DefaultOptions returns permissive CORS and a 10 MiB upload cap.
func DefaultOptions() Options {
	return Options{
		AllowedOrigins: []string{"*"},
		MaxUploadBytes: 10 << 20,
	}
}

type Server struct {
	*gin.Engine

	store   db.Store
	options Options
}

// New builds the engine with middleware and routes registered.
func New(store db.Store, opts Options) *Server {
	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	s := &Server{
		Engine:  engine,
		store:   store,
		options: opts,
	}
	s.RegisterRoutes()
	return s
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Infof("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logging.Infof("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
