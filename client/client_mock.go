// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"context"
	"io"

	"github.com/toeirei/tokenmaster/internal/model"
)

type MockClient struct {
	BaseClient Client
	Overwrites MockClientOverwrites
}

type MockClientOverwrites struct {
	CreateToken         func(ctx context.Context, token model.Token) error
	DeleteTokenAt       func(ctx context.Context, index int) error
	ListTokens          func(ctx context.Context, projectName string) ([]model.Token, error)
	UpdateProjectTokens func(ctx context.Context, projectName string, tokens []model.Token) error
	UploadCSV           func(ctx context.Context, filename string, r io.Reader) error
}

var _ Client = (*MockClient)(nil)

// client := NewMockClient(NewFake(), MockClientOverwrites{ /* overwrite Client methods here... */ })
func NewMockClient(base Client, overwrites MockClientOverwrites) *MockClient {
	return &MockClient{
		BaseClient: base,
		Overwrites: overwrites,
	}
}

// --- Client implementation ---

func (m *MockClient) CreateToken(ctx context.Context, token model.Token) error {
	if m.Overwrites.CreateToken != nil {
		return m.Overwrites.CreateToken(ctx, token)
	} else if m.BaseClient != nil {
		return m.BaseClient.CreateToken(ctx, token)
	}
	panic("MockClient.CreateToken not implemented")
}
func (m *MockClient) DeleteTokenAt(ctx context.Context, index int) error {
	if m.Overwrites.DeleteTokenAt != nil {
		return m.Overwrites.DeleteTokenAt(ctx, index)
	} else if m.BaseClient != nil {
		return m.BaseClient.DeleteTokenAt(ctx, index)
	}
	panic("MockClient.DeleteTokenAt not implemented")
}
func (m *MockClient) ListTokens(ctx context.Context, projectName string) ([]model.Token, error) {
	if m.Overwrites.ListTokens != nil {
		return m.Overwrites.ListTokens(ctx, projectName)
	} else if m.BaseClient != nil {
		return m.BaseClient.ListTokens(ctx, projectName)
	}
	panic("MockClient.ListTokens not implemented")
}
func (m *MockClient) UpdateProjectTokens(ctx context.Context, projectName string, tokens []model.Token) error {
	if m.Overwrites.UpdateProjectTokens != nil {
		return m.Overwrites.UpdateProjectTokens(ctx, projectName, tokens)
	} else if m.BaseClient != nil {
		return m.BaseClient.UpdateProjectTokens(ctx, projectName, tokens)
	}
	panic("MockClient.UpdateProjectTokens not implemented")
}
func (m *MockClient) UploadCSV(ctx context.Context, filename string, r io.Reader) error {
	if m.Overwrites.UploadCSV != nil {
		return m.Overwrites.UploadCSV(ctx, filename, r)
	} else if m.BaseClient != nil {
		return m.BaseClient.UploadCSV(ctx, filename, r)
	}
	panic("MockClient.UploadCSV not implemented")
}
