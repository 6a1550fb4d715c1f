// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ReadCSV parses headerless token rows. Rows that do not have exactly
// FieldCount columns are skipped.
func ReadCSV(r io.Reader) ([]Token, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	tokens := make([]Token, 0, len(records))
	for _, record := range records {
		t, err := TokenFromFields(record)
		if err != nil {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

// WriteCSV writes tokens as headerless rows in field order.
func WriteCSV(w io.Writer, tokens []Token) error {
	cw := csv.NewWriter(w)
	for _, t := range tokens {
		if err := cw.Write(t.Fields()); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
