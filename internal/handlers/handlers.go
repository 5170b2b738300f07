// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the portal's HTTP handlers. The back office
// and the public site both speak JSON; every error response uses the
// single-field {error} envelope.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"desaportal/internal/models"
	"desaportal/internal/service"
)

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// respondError writes the {error} envelope with the given status.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads the request body into dst. A false return means the
// 400 response has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// respondServiceError maps the service error taxonomy to HTTP codes:
// validation → 400, not-found → 404, anything else → 500.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case service.IsValidation(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		respondError(w, http.StatusNotFound, "article not found")
	default:
		slog.Error("article operation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "storage failure")
	}
}

// articleResponse is the aggregate shape returned by the article
// endpoints: the article's fields at the top level plus its ordered
// blocks and their count.
type articleResponse struct {
	models.Article
	ContentBlocks      []models.ContentBlock `json:"content_blocks"`
	ContentBlocksCount int                   `json:"content_blocks_count"`
}

func newArticleResponse(agg *service.Aggregate) articleResponse {
	blocks := agg.Blocks
	if blocks == nil {
		blocks = []models.ContentBlock{}
	}
	return articleResponse{
		Article:            *agg.Article,
		ContentBlocks:      blocks,
		ContentBlocksCount: len(blocks),
	}
}
