// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/toeirei/tokenmaster/internal/model"
)

// Store persists the token collection.
type Store interface {
	// List returns all tokens in list order, or only those of projectName
	// when it is non-empty. The result is never nil.
	List(ctx context.Context, projectName string) ([]model.Token, error)
	// Append adds a token at the end of the list.
	Append(ctx context.Context, token model.Token) error
	// ReplaceProject removes every token of projectName and appends tokens.
	ReplaceProject(ctx context.Context, projectName string, tokens []model.Token) error
	// DeleteAt removes the token at a zero-based position of the full list.
	DeleteAt(ctx context.Context, index int) error
	// ReplaceAll swaps the whole collection.
	ReplaceAll(ctx context.Context, tokens []model.Token) error
	Close() error
}

// Supported store types.
const (
	TypeCSV      = "csv"
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
	TypeMySQL    = "mysql"
)

// New opens the store of the given type. For csv the dsn is a file path.
func New(storeType, dsn string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(storeType)) {
	case "", TypeCSV:
		return NewCSVStore(dsn)
	case TypeSQLite, TypePostgres, TypeMySQL:
		return NewBunStore(context.Background(), strings.ToLower(storeType), dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedStore, storeType)
	}
}

// filterProject returns the tokens of projectName, or all of them.
func filterProject(tokens []model.Token, projectName string) []model.Token {
	out := make([]model.Token, 0, len(tokens))
	for _, t := range tokens {
		if projectName == "" || t.ProjectName == projectName {
			out = append(out, t)
		}
	}
	return out
}

// replaceProject drops projectName's tokens and appends the replacements.
func replaceProject(tokens []model.Token, projectName string, replacement []model.Token) []model.Token {
	out := make([]model.Token, 0, len(tokens)+len(replacement))
	for _, t := range tokens {
		if t.ProjectName != projectName {
			out = append(out, t)
		}
	}
	return append(out, replacement...)
}

// removeAt deletes position index.
func removeAt(tokens []model.Token, index int) ([]model.Token, error) {
	if index < 0 || index >= len(tokens) {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	out := make([]model.Token, 0, len(tokens)-1)
	out = append(out, tokens[:index]...)
	return append(out, tokens[index+1:]...), nil
}
