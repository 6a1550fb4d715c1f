// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

// package model defines the core data structures used throughout Tokenmaster.
package model // import "github.com/toeirei/tokenmaster/internal/model"

import "fmt"

// Token is a single credential entry as exchanged with the backend.
// Records carry no identifier of their own; they are addressed by their
// position in the list the backend last returned.
type Token struct {
	ProjectName string `json:"projectName"`
	Token       string `json:"token"`
	Permission  string `json:"permission"`
	UserID      string `json:"userId"`
	UserName    string `json:"userName"`
	ExpiryDate  string `json:"expiryDate"`
}

// Field names in their fixed wire and CSV order.
const (
	FieldProjectName = "projectName"
	FieldToken       = "token"
	FieldPermission  = "permission"
	FieldUserID      = "userId"
	FieldUserName    = "userName"
	FieldExpiryDate  = "expiryDate"
)

// FieldNames lists every token field in CSV column order.
var FieldNames = []string{
	FieldProjectName,
	FieldToken,
	FieldPermission,
	FieldUserID,
	FieldUserName,
	FieldExpiryDate,
}

// FieldCount is the number of columns a token occupies in a CSV row.
const FieldCount = 6

// Fields returns the token's values in CSV column order.
func (t Token) Fields() []string {
	return []string{t.ProjectName, t.Token, t.Permission, t.UserID, t.UserName, t.ExpiryDate}
}

// TokenFromFields builds a token from a CSV row. The row must have exactly
// FieldCount columns.
func TokenFromFields(fields []string) (Token, error) {
	if len(fields) != FieldCount {
		return Token{}, fmt.Errorf("expected %d fields, got %d", FieldCount, len(fields))
	}
	return Token{
		ProjectName: fields[0],
		Token:       fields[1],
		Permission:  fields[2],
		UserID:      fields[3],
		UserName:    fields[4],
		ExpiryDate:  fields[5],
	}, nil
}

// Get returns the value of the named field.
func (t Token) Get(field string) (string, bool) {
	switch field {
	case FieldProjectName:
		return t.ProjectName, true
	case FieldToken:
		return t.Token, true
	case FieldPermission:
		return t.Permission, true
	case FieldUserID:
		return t.UserID, true
	case FieldUserName:
		return t.UserName, true
	case FieldExpiryDate:
		return t.ExpiryDate, true
	}
	return "", false
}

// Set assigns the named field. It reports false for unknown field names.
func (t *Token) Set(field, value string) bool {
	switch field {
	case FieldProjectName:
		t.ProjectName = value
	case FieldToken:
		t.Token = value
	case FieldPermission:
		t.Permission = value
	case FieldUserID:
		t.UserID = value
	case FieldUserName:
		t.UserName = value
	case FieldExpiryDate:
		t.ExpiryDate = value
	default:
		return false
	}
	return true
}

// String returns a short project/user representation used in logs.
func (t Token) String() string {
	return fmt.Sprintf("%s@%s", t.UserName, t.ProjectName)
}
