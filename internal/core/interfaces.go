// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package core contains the UI-independent token operations shared by the
// TUI and the CLI. Keep these functions deterministic apart from the calls
// they make through TokenAPI.
package core

import (
	"context"
	"io"

	"github.com/toeirei/tokenmaster/internal/model"
)

// TokenAPI is the backend surface the client operations depend on.
// client.Client implements it over HTTP; tests use client.Fake.
type TokenAPI interface {
	// ListTokens returns every token, or only those of projectName when it
	// is non-empty.
	ListTokens(ctx context.Context, projectName string) ([]model.Token, error)
	CreateToken(ctx context.Context, token model.Token) error
	// UpdateProjectTokens replaces the tokens of one project.
	UpdateProjectTokens(ctx context.Context, projectName string, tokens []model.Token) error
	// DeleteTokenAt removes the token at a zero-based position.
	DeleteTokenAt(ctx context.Context, index int) error
	UploadCSV(ctx context.Context, filename string, r io.Reader) error
}
