// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/toeirei/tokenmaster/internal/model"
)

type capturedRequest struct {
	method string
	path   string
	query  map[string][]string
	body   []byte
	header http.Header
}

func newTestServer(t *testing.T, status int, response string) (*HTTPClient, *capturedRequest) {
	t.Helper()
	got := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.Path
		got.query = r.URL.Query()
		got.header = r.Header.Clone()
		got.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)

	cfg := NewDefaultConfig()
	cfg.BaseURL = srv.URL + "/"
	cfg.Timeout = 5 * time.Second
	return New(cfg), got
}

var alice = model.Token{
	ProjectName: "proj1",
	Token:       "abc123",
	Permission:  "read",
	UserID:      "u1",
	UserName:    "Alice",
	ExpiryDate:  "2025-01-01",
}

func TestListTokens_All(t *testing.T) {
	c, got := newTestServer(t, http.StatusOK, `[{"projectName":"proj1","token":"abc123","permission":"read","userId":"u1","userName":"Alice","expiryDate":"2025-01-01"}]`)

	tokens, err := c.ListTokens(context.Background(), "")
	if err != nil {
		t.Fatalf("ListTokens: %v", err)
	}
	if got.method != http.MethodGet || got.path != TokensPath {
		t.Fatalf("unexpected request %s %s", got.method, got.path)
	}
	if _, ok := got.query["projectName"]; ok {
		t.Fatalf("projectName must not be sent for a full listing")
	}
	if len(tokens) != 1 || tokens[0] != alice {
		t.Fatalf("unexpected tokens: %+v", tokens)
	}
}

func TestListTokens_ProjectFilterAndNull(t *testing.T) {
	c, got := newTestServer(t, http.StatusOK, `null`)

	tokens, err := c.ListTokens(context.Background(), "proj1")
	if err != nil {
		t.Fatalf("ListTokens: %v", err)
	}
	if q := got.query["projectName"]; len(q) != 1 || q[0] != "proj1" {
		t.Fatalf("expected projectName=proj1, got %v", q)
	}
	if len(tokens) != 0 {
		t.Fatalf("expected no tokens, got %+v", tokens)
	}
}

func TestCreateToken_PostsJSON(t *testing.T) {
	c, got := newTestServer(t, http.StatusCreated, ``)

	if err := c.CreateToken(context.Background(), alice); err != nil {
		t.Fatalf("CreateToken: %v", err)
	}
	if got.method != http.MethodPost || got.path != TokensPath {
		t.Fatalf("unexpected request %s %s", got.method, got.path)
	}
	var sent model.Token
	if err := json.Unmarshal(got.body, &sent); err != nil {
		t.Fatalf("body is not a token: %v (%s)", err, got.body)
	}
	if sent != alice {
		t.Fatalf("expected %+v, got %+v", alice, sent)
	}
	if ua := got.header.Get("User-Agent"); ua != "tokenmaster" {
		t.Fatalf("unexpected user agent %q", ua)
	}
}

func TestUpdateProjectTokens_Body(t *testing.T) {
	c, got := newTestServer(t, http.StatusOK, ``)

	edited := alice
	edited.Permission = "write"
	if err := c.UpdateProjectTokens(context.Background(), "proj1", []model.Token{edited}); err != nil {
		t.Fatalf("UpdateProjectTokens: %v", err)
	}
	if got.method != http.MethodPut || got.path != TokensPath {
		t.Fatalf("unexpected request %s %s", got.method, got.path)
	}
	var sent UpdateRequest
	if err := json.Unmarshal(got.body, &sent); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if sent.ProjectName != "proj1" || len(sent.Tokens) != 1 || sent.Tokens[0].Permission != "write" {
		t.Fatalf("unexpected body: %+v", sent)
	}
}

func TestUpdateProjectTokens_NilSendsEmptyArray(t *testing.T) {
	c, got := newTestServer(t, http.StatusOK, ``)

	if err := c.UpdateProjectTokens(context.Background(), "ghost", nil); err != nil {
		t.Fatalf("UpdateProjectTokens: %v", err)
	}
	if !strings.Contains(string(got.body), `"tokens":[]`) {
		t.Fatalf("expected empty tokens array, got %s", got.body)
	}
}

func TestDeleteTokenAt_LineQuery(t *testing.T) {
	c, got := newTestServer(t, http.StatusOK, ``)

	if err := c.DeleteTokenAt(context.Background(), 2); err != nil {
		t.Fatalf("DeleteTokenAt: %v", err)
	}
	if got.method != http.MethodDelete || got.path != TokensPath {
		t.Fatalf("unexpected request %s %s", got.method, got.path)
	}
	if q := got.query["line"]; len(q) != 1 || q[0] != "2" {
		t.Fatalf("expected line=2, got %v", q)
	}
}

func TestUploadCSV_Multipart(t *testing.T) {
	var field, filename, content string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != UploadPath {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		f, hdr, err := r.FormFile(UploadField)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		field, filename, content = UploadField, hdr.Filename, string(b)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"message":"ok"}`)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
	csv := "proj1,abc123,read,u1,Alice,2025-01-01\n"
	if err := c.UploadCSV(context.Background(), "tokens.csv", strings.NewReader(csv)); err != nil {
		t.Fatalf("UploadCSV: %v", err)
	}
	if field != "file" || filename != "tokens.csv" || content != csv {
		t.Fatalf("unexpected upload field=%q filename=%q content=%q", field, filename, content)
	}
}

func TestNon2xxIsAPIError(t *testing.T) {
	c, _ := newTestServer(t, http.StatusBadRequest, `{"error":"invalid_line","message":"line out of range"}`)

	err := c.DeleteTokenAt(context.Background(), 99)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T (%v)", err, err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Error(), "line out of range") {
		t.Fatalf("error should carry the body, got %q", apiErr.Error())
	}
}

func TestTransportErrorIsReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(Config{BaseURL: url, Timeout: time.Second})
	if _, err := c.ListTokens(context.Background(), ""); err == nil {
		t.Fatalf("expected an error from a closed server")
	}
}
