// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/toeirei/tokenmaster/internal/model"
)

func TestExportCSV_SingleRow(t *testing.T) {
	out, err := ExportCSV([]model.Token{sample})
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	if out != "proj1,abc123,read,u1,Alice,2025-01-01" {
		t.Fatalf("unexpected export %q", out)
	}
}

func TestExportCSV_LineAndCommaCounts(t *testing.T) {
	tokens := []model.Token{sample, sample, sample, sample}
	out, err := ExportCSV(tokens)
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != len(tokens) {
		t.Fatalf("expected %d lines, got %d", len(tokens), len(lines))
	}
	for i, line := range lines {
		if c := strings.Count(line, ","); c != 5 {
			t.Fatalf("line %d: expected 5 commas, got %d", i, c)
		}
	}
	if strings.HasSuffix(out, "\n") {
		t.Fatalf("export must not end with a newline")
	}
}

func TestExportCSV_EmptyWritesNothing(t *testing.T) {
	if _, err := ExportCSV(nil); !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("expected ErrNothingToExport, got %v", err)
	}
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := ExportToFile([]model.Token{}, path); !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("expected ErrNothingToExport, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("no file should be written, stat err=%v", err)
	}
}

func TestExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultExportFilename)
	if err := ExportToFile([]model.Token{sample}, path); err != nil {
		t.Fatalf("ExportToFile: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(b) != "proj1,abc123,read,u1,Alice,2025-01-01" {
		t.Fatalf("unexpected file content %q", b)
	}
}

func TestWriteExportFile_EmptyName(t *testing.T) {
	if err := WriteExportFile("  ", []byte("x")); !errors.Is(err, ErrEmptyExportTarget) {
		t.Fatalf("expected ErrEmptyExportTarget, got %v", err)
	}
}
