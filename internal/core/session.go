// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import "github.com/toeirei/tokenmaster/internal/model"

// ListState is the presentation state of the token table.
type ListState int

const (
	// ListEmpty means nothing has been imported in this session yet; the
	// table stays hidden even if tokens were fetched.
	ListEmpty ListState = iota
	// ListLoaded means at least one import succeeded and the table is shown.
	ListLoaded
)

func (s ListState) String() string {
	switch s {
	case ListLoaded:
		return "loaded"
	default:
		return "empty"
	}
}

// Session holds the authoritative in-memory copy of all tokens. It is owned
// by a single event loop and is not safe for concurrent use.
//
// Every refresh takes a sequence number from NextSeq before it is issued.
// Apply discards results that are older than the newest one already
// applied, so a slow refresh can never overwrite a newer list.
type Session struct {
	tokens  []model.Token
	state   ListState
	issued  uint64
	applied uint64
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// NextSeq reserves the sequence number for a refresh about to be issued.
func (s *Session) NextSeq() uint64 {
	s.issued++
	return s.issued
}

// Apply replaces the token list with the result of refresh seq. It reports
// false and leaves the list untouched when seq is stale.
func (s *Session) Apply(seq uint64, tokens []model.Token) bool {
	if s.IsStale(seq) {
		return false
	}
	s.applied = seq
	s.tokens = tokens
	return true
}

// IsStale reports whether refresh seq is older than the list already shown.
func (s *Session) IsStale(seq uint64) bool {
	return seq <= s.applied
}

// Tokens returns the current list.
func (s *Session) Tokens() []model.Token {
	return s.tokens
}

// State returns the presentation state.
func (s *Session) State() ListState {
	return s.state
}

// MarkImported records a successful CSV import.
func (s *Session) MarkImported() {
	s.state = ListLoaded
}
