// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"testing"

	"github.com/toeirei/tokenmaster/internal/model"
)

func TestSession_StaleRefreshIsDropped(t *testing.T) {
	s := NewSession()
	first := s.NextSeq()
	second := s.NextSeq()

	newer := []model.Token{sample, sample}
	if !s.Apply(second, newer) {
		t.Fatalf("newest refresh should apply")
	}
	if s.Apply(first, []model.Token{sample}) {
		t.Fatalf("older refresh must be dropped")
	}
	if len(s.Tokens()) != 2 {
		t.Fatalf("expected the newer list to survive, got %d tokens", len(s.Tokens()))
	}
}

func TestSession_IsStale(t *testing.T) {
	s := NewSession()
	first := s.NextSeq()
	second := s.NextSeq()
	if s.IsStale(first) || s.IsStale(second) {
		t.Fatalf("nothing applied yet, no refresh is stale")
	}
	s.Apply(second, nil)
	if !s.IsStale(first) || !s.IsStale(second) {
		t.Fatalf("refreshes up to the applied one are stale")
	}
	if s.IsStale(s.NextSeq()) {
		t.Fatalf("a newly issued refresh is not stale")
	}
}

func TestSession_InOrderRefreshes(t *testing.T) {
	s := NewSession()
	for i := 1; i <= 3; i++ {
		seq := s.NextSeq()
		list := make([]model.Token, i)
		if !s.Apply(seq, list) {
			t.Fatalf("refresh %d should apply", i)
		}
	}
	if len(s.Tokens()) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(s.Tokens()))
	}
}

func TestSession_ListState(t *testing.T) {
	s := NewSession()
	if s.State() != ListEmpty || s.State().String() != "empty" {
		t.Fatalf("new session should be empty, got %v", s.State())
	}
	s.Apply(s.NextSeq(), []model.Token{sample})
	if s.State() != ListEmpty {
		t.Fatalf("a refresh alone must not show the table")
	}
	s.MarkImported()
	if s.State() != ListLoaded || s.State().String() != "loaded" {
		t.Fatalf("import should load the list, got %v", s.State())
	}
}
