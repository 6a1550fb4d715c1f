// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/toeirei/tokenmaster/internal/logging"
	"github.com/toeirei/tokenmaster/internal/model"
)

// EditableFields are the fields the bulk update panel lets users change.
// The project name is fixed by the panel's filter.
var EditableFields = []string{
	model.FieldToken,
	model.FieldPermission,
	model.FieldUserID,
	model.FieldUserName,
	model.FieldExpiryDate,
}

// FetchAll reads the entire token collection.
func FetchAll(ctx context.Context, api TokenAPI) ([]model.Token, error) {
	tokens, err := api.ListTokens(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tokens: %w", err)
	}
	return tokens, nil
}

// CreateToken validates t and posts it. Nothing is sent when a field is empty.
func CreateToken(ctx context.Context, api TokenAPI, t model.Token) error {
	if err := ValidateToken(t); err != nil {
		return err
	}
	if err := api.CreateToken(ctx, t); err != nil {
		return fmt.Errorf("failed to add token: %w", err)
	}
	logging.Debugf("token added: %s", t)
	return nil
}

// LoadProject fetches the tokens of a single project for editing. The
// project name is passed through unvalidated; an empty result is not an error.
func LoadProject(ctx context.Context, api TokenAPI, projectName string) ([]model.Token, error) {
	tokens, err := api.ListTokens(ctx, projectName)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tokens for project %q: %w", projectName, err)
	}
	if tokens == nil {
		tokens = []model.Token{}
	}
	return tokens, nil
}

// EditField changes one field of one locally held token. It never talks to
// the backend.
func EditField(tokens []model.Token, index int, field, value string) error {
	if index < 0 || index >= len(tokens) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	if !isEditable(field) {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	tokens[index].Set(field, value)
	return nil
}

func isEditable(field string) bool {
	for _, f := range EditableFields {
		if f == field {
			return true
		}
	}
	return false
}

// SubmitProject sends the whole edited list of a project in one call.
func SubmitProject(ctx context.Context, api TokenAPI, projectName string, tokens []model.Token) error {
	if err := api.UpdateProjectTokens(ctx, projectName, tokens); err != nil {
		return fmt.Errorf("failed to update tokens: %w", err)
	}
	logging.Debugf("updated %d token(s) of project %q", len(tokens), projectName)
	return nil
}

// DeleteIndex deletes the token at a zero-based index.
func DeleteIndex(ctx context.Context, api TokenAPI, index int) error {
	if err := api.DeleteTokenAt(ctx, index); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	logging.Debugf("token at line %d deleted", index)
	return nil
}

// ImportCSV uploads the file at path as-is. The backend parses it.
func ImportCSV(ctx context.Context, api TokenAPI, path string) error {
	if path == "" {
		return ErrNoFileSelected
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if err := api.UploadCSV(ctx, filepath.Base(path), f); err != nil {
		return fmt.Errorf("failed to upload %s: %w", path, err)
	}
	logging.Infof("uploaded %s", path)
	return nil
}
