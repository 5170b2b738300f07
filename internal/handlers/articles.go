// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"desaportal/internal/cache"
	"desaportal/internal/service"
	"desaportal/internal/store"
)

// Articles groups the article aggregate endpoints used by the editor.
type Articles struct {
	svc      *service.ArticleService
	articles *store.ArticleStore
	cache    *cache.ResponseCache
}

// NewArticles creates the Articles handler group. cache may be nil when
// Valkey is not configured.
func NewArticles(svc *service.ArticleService, articles *store.ArticleStore, c *cache.ResponseCache) *Articles {
	return &Articles{svc: svc, articles: articles, cache: c}
}

// articleID parses the {id} route parameter. A false return means the
// 404 response has already been written: a non-UUID id cannot name any
// article.
func articleID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "article not found")
		return uuid.Nil, false
	}
	return id, true
}

// List returns every article, drafts included, newest first.
func (h *Articles) List(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.List()
	if err != nil {
		slog.Error("article list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "storage failure")
		return
	}
	respondJSON(w, http.StatusOK, articles)
}

// Get returns one article with its ordered blocks.
func (h *Articles) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(w, r)
	if !ok {
		return
	}

	agg, err := h.svc.Get(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newArticleResponse(agg))
}

// saveRequest is the editor's submission: article fields plus the full
// block list. Client-side block ids and order indexes are accepted but
// not trusted; position in content_blocks is the order of record.
type saveRequest struct {
	service.ArticleInput
	ContentBlocks []service.BlockInput `json:"content_blocks"`
}

// Create inserts a new article with its initial block list.
func (h *Articles) Create(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	agg, err := h.svc.Create(req.ArticleInput, req.ContentBlocks)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.invalidate(r)
	respondJSON(w, http.StatusCreated, newArticleResponse(agg))
}

// Update replaces the article's fields and its whole block list in one
// save. The response carries the merged article, the persisted blocks
// and their count.
func (h *Articles) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(w, r)
	if !ok {
		return
	}

	var req saveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	agg, err := h.svc.Update(id, req.ArticleInput, req.ContentBlocks)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.invalidate(r)
	respondJSON(w, http.StatusOK, newArticleResponse(agg))
}

// Delete removes an article; its blocks go with it.
func (h *Articles) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(id); err != nil {
		respondServiceError(w, err)
		return
	}

	h.invalidate(r)
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "article deleted",
	})
}

func (h *Articles) invalidate(r *http.Request) {
	if h.cache != nil {
		h.cache.InvalidateArticles(r.Context())
	}
}
