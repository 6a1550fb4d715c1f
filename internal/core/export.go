// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"os"
	"runtime"
	"strings"

	"github.com/toeirei/tokenmaster/internal/model"
)

// DefaultExportFilename is suggested when asking where to save an export.
const DefaultExportFilename = "tokens.csv"

// ExportCSV renders tokens as CSV text: no header, one line per token in
// the fixed field order, lines separated by "\n" with no trailing newline.
// Values are written verbatim; commas or newlines inside a value are not
// quoted, which matches the format the backend's importer has always
// received from this client.
func ExportCSV(tokens []model.Token) (string, error) {
	if len(tokens) == 0 {
		return "", ErrNothingToExport
	}
	lines := make([]string, 0, len(tokens))
	for _, t := range tokens {
		lines = append(lines, strings.Join(t.Fields(), ","))
	}
	return strings.Join(lines, "\n"), nil
}

// WriteExportFile writes `content` to `filename`. On Unix-like systems this
// uses 0600 since the file holds credentials. On Windows it falls back to 0644.
func WriteExportFile(filename string, content []byte) error {
	if strings.TrimSpace(filename) == "" {
		return ErrEmptyExportTarget
	}
	perm := os.FileMode(0600)
	if runtime.GOOS == "windows" {
		perm = 0644
	}
	return os.WriteFile(filename, content, perm)
}

// ExportToFile renders tokens and writes them to filename. Nothing is
// written when the list is empty.
func ExportToFile(tokens []model.Token, filename string) error {
	content, err := ExportCSV(tokens)
	if err != nil {
		return err
	}
	return WriteExportFile(filename, []byte(content))
}
