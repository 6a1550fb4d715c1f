// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package client provides the HTTP client for the token REST API, plus
// in-memory and mock implementations used by tests and the UI sandbox.
package client
