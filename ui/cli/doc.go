// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface for Tokenmaster using Cobra.
// It wires configuration, logging and the API client, and provides commands
// that delegate to `internal/core`. CLI code should remain thin and leave the
// token operations themselves to `core`.
package cli
