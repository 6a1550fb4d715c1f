// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
)

// RegisterRoutes sets up the routes and middleware for the server.
func (s *Server) RegisterRoutes() {
	s.Use(RequestIDMiddleware())
	s.Use(LoggerMiddleware())
	s.Use(RecoveryMiddleware())
	s.Use(cors.New(s.corsConfig()))

	h := NewTokenHandler(s.store, s.options.MaxUploadBytes)

	api := s.Group("/api")
	{
		api.GET("/tokens", h.ListTokens)
		api.POST("/tokens", h.CreateToken)
		api.PUT("/tokens", h.UpdateProjectTokens)
		api.DELETE("/tokens", h.DeleteToken)
		api.POST("/upload", h.Upload)
	}
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
	}
	for _, o := range s.options.AllowedOrigins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(s.options.AllowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = s.options.AllowedOrigins
	return cfg
}
