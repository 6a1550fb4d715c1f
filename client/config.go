// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import "time"

// Config holds everything needed to reach the backend.
type Config struct {
	// BaseURL selects the backend host for every call.
	BaseURL string
	// Timeout bounds each request. Zero disables the timeout.
	Timeout   time.Duration
	UserAgent string
	// Debug makes resty log full requests and responses.
	Debug bool
}

// NewDefaultConfig returns the configuration used when nothing is set.
func NewDefaultConfig() Config {
	return Config{
		BaseURL:   "http://localhost:8080",
		Timeout:   30 * time.Second,
		UserAgent: "tokenmaster",
	}
}
