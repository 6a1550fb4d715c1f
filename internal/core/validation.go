// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"errors"
	"strconv"
	"strings"

	"github.com/toeirei/tokenmaster/internal/model"
)

// Validation failures. None of them results in a network call.
var (
	ErrMissingFields     = errors.New("all token fields are required")
	ErrInvalidRowNumber  = errors.New("row number must be a positive integer")
	ErrNoFileSelected    = errors.New("no file selected")
	ErrNothingToExport   = errors.New("no tokens to export")
	ErrUnknownField      = errors.New("unknown or read-only token field")
	ErrIndexOutOfRange   = errors.New("token index out of range")
	ErrEmptyExportTarget = errors.New("export file name is empty")
)

// ValidateToken requires every one of the six fields to be non-empty.
func ValidateToken(t model.Token) error {
	for _, v := range t.Fields() {
		if v == "" {
			return ErrMissingFields
		}
	}
	return nil
}

// ParseRowNumber converts a 1-based row number as typed by the user into a
// zero-based index. There is no upper bound check; the backend decides what
// an out-of-range index means.
func ParseRowNumber(input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, ErrInvalidRowNumber
	}
	index := n - 1
	if index < 0 {
		return 0, ErrInvalidRowNumber
	}
	return index, nil
}

// IsValidationError reports whether err is one of the client-side
// validation failures above.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrMissingFields, ErrInvalidRowNumber, ErrNoFileSelected,
		ErrNothingToExport, ErrUnknownField, ErrIndexOutOfRange, ErrEmptyExportTarget,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
