// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"

	"github.com/toeirei/tokenmaster/internal/model"
)

// Call is one request recorded by Fake.
type Call struct {
	Method      string
	ProjectName string
	Token       model.Token
	Tokens      []model.Token
	Index       int
	Filename    string
	Body        []byte
}

// Fake is an in-memory backend for tests and UI experiments. It mirrors the
// server's semantics and records every call it receives.
type Fake struct {
	mu     sync.Mutex
	tokens []model.Token
	calls  []Call
	// Err, when set, is returned by every call before any state changes.
	Err error
}

// *Fake implements Client
var _ Client = (*Fake)(nil)

func NewFake(tokens ...model.Token) *Fake {
	return &Fake{tokens: append([]model.Token(nil), tokens...)}
}

// Calls returns a copy of the recorded calls.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Snapshot returns a copy of the stored tokens.
func (f *Fake) Snapshot() []model.Token {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Token(nil), f.tokens...)
}

func (f *Fake) record(c Call) error {
	f.calls = append(f.calls, c)
	return f.Err
}

func (f *Fake) ListTokens(ctx context.Context, projectName string) ([]model.Token, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(Call{Method: http.MethodGet, ProjectName: projectName}); err != nil {
		return nil, err
	}
	out := []model.Token{}
	for _, t := range f.tokens {
		if projectName == "" || t.ProjectName == projectName {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *Fake) CreateToken(ctx context.Context, token model.Token) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(Call{Method: http.MethodPost, Token: token}); err != nil {
		return err
	}
	f.tokens = append(f.tokens, token)
	return nil
}

func (f *Fake) UpdateProjectTokens(ctx context.Context, projectName string, tokens []model.Token) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	sent := append([]model.Token(nil), tokens...)
	if err := f.record(Call{Method: http.MethodPut, ProjectName: projectName, Tokens: sent}); err != nil {
		return err
	}
	kept := make([]model.Token, 0, len(f.tokens)+len(tokens))
	for _, t := range f.tokens {
		if t.ProjectName != projectName {
			kept = append(kept, t)
		}
	}
	f.tokens = append(kept, sent...)
	return nil
}

func (f *Fake) DeleteTokenAt(ctx context.Context, index int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(Call{Method: http.MethodDelete, Index: index}); err != nil {
		return err
	}
	if index < 0 || index >= len(f.tokens) {
		return &APIError{Method: http.MethodDelete, Path: TokensPath, StatusCode: http.StatusBadRequest, Body: "line out of range"}
	}
	f.tokens = append(f.tokens[:index], f.tokens[index+1:]...)
	return nil
}

func (f *Fake) UploadCSV(ctx context.Context, filename string, r io.Reader) error {
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(Call{Method: http.MethodPost, Filename: filename, Body: body}); err != nil {
		return err
	}
	tokens, err := model.ReadCSV(bytes.NewReader(body))
	if err != nil {
		return &APIError{Method: http.MethodPost, Path: UploadPath, StatusCode: http.StatusBadRequest, Body: err.Error()}
	}
	f.tokens = tokens
	return nil
}
