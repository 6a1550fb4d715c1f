// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/toeirei/tokenmaster/internal/logging"
	"github.com/toeirei/tokenmaster/internal/model"
)

// API paths served by the backend.
const (
	TokensPath = "/api/tokens"
	UploadPath = "/api/upload"
)

// UploadField is the multipart field name carrying the CSV file.
const UploadField = "file"

type Client interface {
	ListTokens(ctx context.Context, projectName string) ([]model.Token, error)

	CreateToken(ctx context.Context, token model.Token) error

	UpdateProjectTokens(ctx context.Context, projectName string, tokens []model.Token) error

	DeleteTokenAt(ctx context.Context, index int) error

	UploadCSV(ctx context.Context, filename string, r io.Reader) error
}

// UpdateRequest is the body of PUT /api/tokens.
type UpdateRequest struct {
	ProjectName string        `json:"projectName"`
	Tokens      []model.Token `json:"tokens"`
}

// APIError is returned when the backend answers with a non-2xx status.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, body)
}

// HTTPClient talks to the token REST API with resty.
type HTTPClient struct {
	http *resty.Client
}

// *HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)

// New creates an HTTPClient for cfg. Failed requests are never retried.
func New(cfg Config) *HTTPClient {
	c := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetLogger(logging.L).
		SetDebug(cfg.Debug)

	if cfg.UserAgent != "" {
		c.SetHeader("User-Agent", cfg.UserAgent)
	}
	return &HTTPClient{http: c}
}

func (c *HTTPClient) ListTokens(ctx context.Context, projectName string) ([]model.Token, error) {
	req := c.http.R().SetContext(ctx)
	if projectName != "" {
		req.SetQueryParam("projectName", projectName)
	}
	resp, err := req.Get(TokensPath)
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	var tokens []model.Token
	if body := resp.Body(); len(body) > 0 {
		if err := json.Unmarshal(body, &tokens); err != nil {
			return nil, fmt.Errorf("decode token list: %w", err)
		}
	}
	return tokens, nil
}

func (c *HTTPClient) CreateToken(ctx context.Context, token model.Token) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(token).
		Post(TokensPath)
	if err := checkResponse(resp, err); err != nil {
		return err
	}
	logging.Debugf("token created: %s", resp.String())
	return nil
}

func (c *HTTPClient) UpdateProjectTokens(ctx context.Context, projectName string, tokens []model.Token) error {
	if tokens == nil {
		tokens = []model.Token{}
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(UpdateRequest{ProjectName: projectName, Tokens: tokens}).
		Put(TokensPath)
	if err := checkResponse(resp, err); err != nil {
		return err
	}
	logging.Debugf("tokens updated: %s", resp.String())
	return nil
}

func (c *HTTPClient) DeleteTokenAt(ctx context.Context, index int) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("line", strconv.Itoa(index)).
		Delete(TokensPath)
	if err := checkResponse(resp, err); err != nil {
		return err
	}
	logging.Debugf("token deleted: %s", resp.String())
	return nil
}

func (c *HTTPClient) UploadCSV(ctx context.Context, filename string, r io.Reader) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader(UploadField, filename, r).
		Post(UploadPath)
	if err := checkResponse(resp, err); err != nil {
		return err
	}
	logging.Debugf("file uploaded: %s", resp.String())
	return nil
}

// checkResponse folds transport failures and non-2xx answers into one error.
func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() || resp.StatusCode() >= 300 {
		return &APIError{
			Method:     resp.Request.Method,
			Path:       resp.Request.RawRequest.URL.Path,
			StatusCode: resp.StatusCode(),
			Body:       resp.String(),
		}
	}
	return nil
}
