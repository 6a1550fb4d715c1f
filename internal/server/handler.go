// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/toeirei/tokenmaster/internal/db"
	"github.com/toeirei/tokenmaster/internal/logging"
	"github.com/toeirei/tokenmaster/internal/model"
)

// TokenHandler serves /api/tokens and /api/upload.
type TokenHandler struct {
	store          db.Store
	maxUploadBytes int64
}

// NewTokenHandler creates a new TokenHandler instance
func NewTokenHandler(store db.Store, maxUploadBytes int64) *TokenHandler {
	return &TokenHandler{
		store:          store,
		maxUploadBytes: maxUploadBytes,
	}
}

// UpdateProjectRequest is the body of PUT /api/tokens.
type UpdateProjectRequest struct {
	ProjectName string        `json:"projectName"`
	Tokens      []model.Token `json:"tokens"`
}

// ListTokens handles GET /api/tokens[?projectName=].
func (h *TokenHandler) ListTokens(c *gin.Context) {
	tokens, err := h.store.List(c.Request.Context(), c.Query("projectName"))
	if err != nil {
		h.internalError(c, "failed to read tokens", err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

// CreateToken handles POST /api/tokens.
func (h *TokenHandler) CreateToken(c *gin.Context) {
	var token model.Token
	if err := c.ShouldBindJSON(&token); err != nil {
		badRequest(c, "bad_request", "invalid request body")
		return
	}
	if err := h.store.Append(c.Request.Context(), token); err != nil {
		h.internalError(c, "failed to add token", err)
		return
	}
	logging.Debugf("token added: %s", token)
	c.Status(http.StatusCreated)
}

// UpdateProjectTokens handles PUT /api/tokens.
func (h *TokenHandler) UpdateProjectTokens(c *gin.Context) {
	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "bad_request", "invalid request body")
		return
	}
	if err := h.store.ReplaceProject(c.Request.Context(), req.ProjectName, req.Tokens); err != nil {
		h.internalError(c, "failed to update tokens", err)
		return
	}
	logging.Debugf("project %q now has %d token(s)", req.ProjectName, len(req.Tokens))
	c.Status(http.StatusOK)
}

// DeleteToken handles DELETE /api/tokens?line=N.
func (h *TokenHandler) DeleteToken(c *gin.Context) {
	line, err := strconv.Atoi(c.Query("line"))
	if err != nil {
		badRequest(c, "invalid_line", "invalid line number")
		return
	}
	if err := h.store.DeleteAt(c.Request.Context(), line); err != nil {
		if errors.Is(err, db.ErrIndexOutOfRange) {
			badRequest(c, "invalid_line", "line number out of range")
			return
		}
		h.internalError(c, "failed to delete token", err)
		return
	}
	logging.Debugf("line %d deleted", line)
	c.Status(http.StatusOK)
}

// Upload handles POST /api/upload. The CSV in multipart field "file"
// replaces the whole collection.
func (h *TokenHandler) Upload(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":   "too_large",
				"message": "uploaded file is too large",
			})
			return
		}
		badRequest(c, "bad_request", "missing file")
		return
	}
	defer file.Close()

	logging.Infof("uploaded file: %s (%d bytes)", header.Filename, header.Size)

	tokens, err := model.ReadCSV(file)
	if err != nil {
		badRequest(c, "invalid_csv", err.Error())
		return
	}
	if err := h.store.ReplaceAll(c.Request.Context(), tokens); err != nil {
		h.internalError(c, "failed to store tokens", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "file uploaded successfully"})
}

func badRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   code,
		"message": message,
	})
}

func (h *TokenHandler) internalError(c *gin.Context, message string, err error) {
	_ = c.Error(err)
	logging.Errorf("%s: %v", message, err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "internal_error",
		"message": message,
	})
}
