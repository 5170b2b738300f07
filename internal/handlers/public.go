// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"desaportal/internal/cache"
	"desaportal/internal/models"
	"desaportal/internal/render"
	"desaportal/internal/service"
	"desaportal/internal/store"
)

// Public serves the visitor-facing endpoints: published news, the
// catalogs, booklets and the village profile. List responses go through
// the Valkey cache; admin writes invalidate them.
type Public struct {
	svc      *service.ArticleService
	articles *store.ArticleStore
	products *store.ProductStore
	culinary *store.CulinaryStore
	booklets *store.BookletStore
	profile  *store.ProfileStore
	cache    *cache.ResponseCache
}

func NewPublic(svc *service.ArticleService, articles *store.ArticleStore,
	products *store.ProductStore, culinary *store.CulinaryStore,
	booklets *store.BookletStore, profile *store.ProfileStore,
	c *cache.ResponseCache) *Public {
	return &Public{
		svc:      svc,
		articles: articles,
		products: products,
		culinary: culinary,
		booklets: booklets,
		profile:  profile,
		cache:    c,
	}
}

// cached serves key from the cache when possible, otherwise loads via
// fetch and fills the cache. Cache errors degrade to a direct load.
func cachedList[T any](h *Public, w http.ResponseWriter, r *http.Request, key string, fetch func() ([]T, error)) {
	if h.cache != nil {
		var items []T
		if h.cache.Get(r.Context(), key, &items) {
			respondJSON(w, http.StatusOK, items)
			return
		}
	}

	items, err := fetch()
	if err != nil {
		slog.Error("public list failed", "key", key, "error", err)
		respondError(w, http.StatusInternalServerError, "storage failure")
		return
	}
	if items == nil {
		items = []T{}
	}
	if h.cache != nil {
		h.cache.Set(r.Context(), key, items)
	}
	respondJSON(w, http.StatusOK, items)
}

// ListArticles returns published articles, newest first.
func (h *Public) ListArticles(w http.ResponseWriter, r *http.Request) {
	cachedList(h, w, r, cache.KeyPublishedArticles, h.articles.ListPublished)
}

// ListAnnouncements returns published announcements only.
func (h *Public) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	cachedList(h, w, r, cache.KeyAnnouncements, h.articles.ListAnnouncements)
}

// publicArticle is the visitor-facing article shape: the article plus
// its blocks rendered to HTML.
type publicArticle struct {
	models.Article
	ContentBlocks []render.BlockView `json:"content_blocks"`
}

// GetArticle returns one published article by slug, blocks rendered.
func (h *Public) GetArticle(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	key := cache.ArticleKey(slug)
	if h.cache != nil {
		var cached publicArticle
		if h.cache.Get(r.Context(), key, &cached) {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	agg, err := h.svc.GetBySlug(slug)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	views, err := render.Blocks(agg.Blocks)
	if err != nil {
		slog.Error("article render failed", "slug", slug, "error", err)
		respondError(w, http.StatusInternalServerError, "render failure")
		return
	}
	if views == nil {
		views = []render.BlockView{}
	}

	resp := publicArticle{Article: *agg.Article, ContentBlocks: views}
	if h.cache != nil {
		h.cache.Set(r.Context(), key, resp)
	}
	respondJSON(w, http.StatusOK, resp)
}

// ListProducts returns the product catalog.
func (h *Public) ListProducts(w http.ResponseWriter, r *http.Request) {
	cachedList(h, w, r, cache.KeyProducts, h.products.List)
}

// ListCulinary returns the culinary catalog.
func (h *Public) ListCulinary(w http.ResponseWriter, r *http.Request) {
	cachedList(h, w, r, cache.KeyCulinary, h.culinary.List)
}

// ListBooklets returns booklets, optionally filtered by category.
// Filtered requests bypass the cache; the unfiltered list is the hot path.
func (h *Public) ListBooklets(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category != "" {
		items, err := h.booklets.List(category)
		if err != nil {
			slog.Error("booklet list failed", "error", err)
			respondError(w, http.StatusInternalServerError, "storage failure")
			return
		}
		if items == nil {
			items = []models.Booklet{}
		}
		respondJSON(w, http.StatusOK, items)
		return
	}
	cachedList(h, w, r, cache.KeyBooklets, func() ([]models.Booklet, error) {
		return h.booklets.List("")
	})
}

// GetProfile returns the village profile directory.
func (h *Public) GetProfile(w http.ResponseWriter, r *http.Request) {
	if h.cache != nil {
		var cached map[string]string
		if h.cache.Get(r.Context(), cache.KeyProfile, &cached) {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	all, err := h.profile.All()
	if err != nil {
		slog.Error("profile load failed", "error", err)
		respondError(w, http.StatusInternalServerError, "storage failure")
		return
	}
	if h.cache != nil {
		h.cache.Set(r.Context(), cache.KeyProfile, all)
	}
	respondJSON(w, http.StatusOK, all)
}
