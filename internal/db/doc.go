// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

// package db provides the token storage used by the reference backend.
// It hides the underlying storage (a single CSV file, SQLite, PostgreSQL or
// MySQL) behind the Store interface so the HTTP handlers treat them alike.
// Records are addressed by their position in list order, which is always
// insertion order.
package db // import "github.com/toeirei/tokenmaster/internal/db"
