// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/toeirei/tokenmaster/internal/model"
)

func TestFake_ReplaceProjectKeepsOthers(t *testing.T) {
	ctx := context.Background()
	f := NewFake(
		model.Token{ProjectName: "a", Token: "1"},
		model.Token{ProjectName: "b", Token: "2"},
		model.Token{ProjectName: "a", Token: "3"},
	)
	if err := f.UpdateProjectTokens(ctx, "a", []model.Token{{ProjectName: "a", Token: "9"}}); err != nil {
		t.Fatalf("UpdateProjectTokens: %v", err)
	}
	got := f.Snapshot()
	if len(got) != 2 || got[0].Token != "2" || got[1].Token != "9" {
		t.Fatalf("unexpected tokens: %+v", got)
	}
}

func TestFake_DeleteOutOfRange(t *testing.T) {
	f := NewFake(model.Token{ProjectName: "a"})
	err := f.DeleteTokenAt(context.Background(), 1)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 400 {
		t.Fatalf("expected 400 APIError, got %v", err)
	}
	if len(f.Snapshot()) != 1 {
		t.Fatalf("store must be unchanged")
	}
}

func TestFake_UploadReplacesAll(t *testing.T) {
	f := NewFake(model.Token{ProjectName: "old"})
	err := f.UploadCSV(context.Background(), "x.csv", strings.NewReader("p,t,r,u,n,e\nbad\n"))
	if err != nil {
		t.Fatalf("UploadCSV: %v", err)
	}
	got := f.Snapshot()
	if len(got) != 1 || got[0].ProjectName != "p" {
		t.Fatalf("unexpected tokens: %+v", got)
	}
	calls := f.Calls()
	if len(calls) != 1 || calls[0].Filename != "x.csv" {
		t.Fatalf("unexpected calls: %+v", calls)
	}
}

func TestMockClient_OverwriteWins(t *testing.T) {
	boom := errors.New("boom")
	m := NewMockClient(NewFake(), MockClientOverwrites{
		CreateToken: func(ctx context.Context, token model.Token) error { return boom },
	})
	if err := m.CreateToken(context.Background(), model.Token{}); !errors.Is(err, boom) {
		t.Fatalf("expected overwrite error, got %v", err)
	}
	if _, err := m.ListTokens(context.Background(), ""); err != nil {
		t.Fatalf("base client should answer ListTokens: %v", err)
	}
}
