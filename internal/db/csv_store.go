// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/toeirei/tokenmaster/internal/model"
)

// CSVStore keeps every token in one headerless CSV file. The file is read on
// every call so edits made outside the process are picked up. Rows without
// exactly six columns are ignored and dropped on the next write.
type CSVStore struct {
	mu   sync.Mutex
	path string
}

// *CSVStore implements Store
var _ Store = (*CSVStore)(nil)

// NewCSVStore returns a store backed by path. The file does not need to
// exist yet.
func NewCSVStore(path string) (*CSVStore, error) {
	if path == "" {
		return nil, errors.New("csv store: empty file path")
	}
	return &CSVStore{path: path}, nil
}

// Path returns the backing file.
func (s *CSVStore) Path() string {
	return s.path
}

func (s *CSVStore) List(ctx context.Context, projectName string) ([]model.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tokens, err := s.read()
	if err != nil {
		return nil, err
	}
	return filterProject(tokens, projectName), nil
}

func (s *CSVStore) Append(ctx context.Context, token model.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tokens, err := s.read()
	if err != nil {
		return err
	}
	return s.write(append(tokens, token))
}

func (s *CSVStore) ReplaceProject(ctx context.Context, projectName string, replacement []model.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tokens, err := s.read()
	if err != nil {
		return err
	}
	return s.write(replaceProject(tokens, projectName, replacement))
}

func (s *CSVStore) DeleteAt(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tokens, err := s.read()
	if err != nil {
		return err
	}
	dbLogf("db: csv delete line %d of %d", index, len(tokens))
	tokens, err = removeAt(tokens, index)
	if err != nil {
		return err
	}
	return s.write(tokens)
}

func (s *CSVStore) ReplaceAll(ctx context.Context, tokens []model.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(tokens)
}

func (s *CSVStore) Close() error {
	return nil
}

func (s *CSVStore) read() ([]model.Token, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []model.Token{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv store: %w", err)
	}
	return model.ReadCSV(bytes.NewReader(data))
}

// write replaces the file through a temporary sibling so readers never see
// a half-written file.
func (s *CSVStore) write(tokens []model.Token) error {
	var buf bytes.Buffer
	if err := model.WriteCSV(&buf, tokens); err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("csv store: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".tokens-*.csv")
	if err != nil {
		return fmt.Errorf("csv store: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("csv store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("csv store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("csv store: %w", err)
	}
	return nil
}
