// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"desaportal/internal/cache"
	"desaportal/internal/models"
	"desaportal/internal/store"
)

// Catalog groups the admin CRUD endpoints for village products,
// culinary items, tourism booklets and the profile directory.
type Catalog struct {
	products *store.ProductStore
	culinary *store.CulinaryStore
	booklets *store.BookletStore
	profile  *store.ProfileStore
	cache    *cache.ResponseCache
}

func NewCatalog(products *store.ProductStore, culinary *store.CulinaryStore,
	booklets *store.BookletStore, profile *store.ProfileStore, c *cache.ResponseCache) *Catalog {
	return &Catalog{
		products: products,
		culinary: culinary,
		booklets: booklets,
		profile:  profile,
		cache:    c,
	}
}

func (h *Catalog) invalidate(r *http.Request, keys ...string) {
	if h.cache != nil {
		h.cache.Invalidate(r.Context(), keys...)
	}
}

// parseID reads the {id} route parameter; a false return means the 404
// has been written.
func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "not found")
		return uuid.Nil, false
	}
	return id, true
}

// productInput is the write shape for products and culinary items; the
// two tables share it, each picking the fields it stores.
type productInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	ImageURL    *string `json:"image_url"`
	Contact     *string `json:"contact"`
	Category    *string `json:"category"`
	Seller      *string `json:"seller"`
	Location    *string `json:"location"`
}

func (in productInput) validate() string {
	if strings.TrimSpace(in.Name) == "" {
		return "name is required"
	}
	if in.Price != nil && *in.Price < 0 {
		return "price must not be negative"
	}
	return ""
}

// --- Products ---

func (h *Catalog) ListProducts(w http.ResponseWriter, r *http.Request) {
	items, err := h.products.List()
	if err != nil {
		slog.Error("product list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "storage failure")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Catalog) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if msg := in.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	p := &models.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Contact:     in.Contact,
		Category:    in.Category,
	}
	created, err := h.products.Create(p)
	if err != nil {
		slog.Error("product create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "storage failure")
		return
	}

	h.invalidate(r, cache.KeyProducts)
	respondJSON(w, http.StatusCreated, created)
}

func (h *Catalog) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var in productInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if msg := in.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	p := &models.Product{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Contact:     in.Contact,
		Category:    in.Category,
	}
	updated, err := h.products.Update(p)
	if err != nil {
		slog.Error("product update failed", "error", err)
		respondError(w, http.StatusInternalServerError, "storage failure")
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "product not found")
		return
	}

	h.invalidate(r, cache.KeyProducts)
	respondJSON(w, http.StatusOK, updated)
}

func (h *Catalog) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.products.Delete(id); err != nil {
		slog.Error("product delete failed", "error", err)
		respondError(w, http.StatusInternalServerError, "storage failure")
		return
	}

	h.invalidate(r, cache.KeyProducts)
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "product deleted"})
}

// --- Culinary ---

func (h *Catalog) ListCulinary(w http.ResponseWriter, r *http.Request) {
	items, err := h.culinary.List()
	if err != nil {
		slog.Error("culinary list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "storage failure")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Catalog) CreateCulinary(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if msg := in.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	c := &models.Culinary{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Seller:      in.Seller,
		Location:    in.Location,
	}
	created, err := h.culinary.Create(c)
	if err != nil {
		slog.Error("culinary create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "storage failure")
		return
	}

	h.invalidate(r, cache.KeyCulinary)
	respondJSON(w, http.StatusCreated, created)
}

func (h *Catalog) UpdateCulinary(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var in productInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if msg := in.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	c := &models.Culinary{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Seller:      in.Seller,
		Location:    in.Location,
	}
	updated, err := h.culinary.Update(c)
	if err != nil {
		slog.Error("culinary update failed", "error", err)
		respondError(w, http.StatusInternalServerError, "storage failure")
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "culinary item not found")
		return
	}

	h.invalidate(r, cache.KeyCulinary)
	respondJSON(w, http.StatusOK, updated)
}

func (h *Catalog) DeleteCulinary(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.culinary.Delete(id); err != nil {
		slog.Error("culinary delete failed", "error", err)
		respondError(w, http.StatusInternalServerError, "storage failure")
		return
	}

	h.invalidate(r, cache.KeyCulinary)
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "culinary item deleted"})
}

// --- Booklets ---

type bookletInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	PDFURL      string  `json:"pdf_url"`
}

func (in bookletInput) validate() string {
	if strings.TrimSpace(in.Title) == "" {
		return "title is required"
	}
	if strings.TrimSpace(in.PDFURL) == "" {
		return "pdf_url is required"
	}
	return ""
}

func (h *Catalog) ListBooklets(w http.ResponseWriter, r *http.Request) {
	items, err := h.booklets.List(r.URL.Query().Get("category"))
	if err != nil {
		slog.Error("booklet list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "storage failure")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Catalog) CreateBooklet(w http.ResponseWriter, r *http.Request) {
	var in bookletInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if msg := in.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	b := &models.Booklet{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Category:    in.Category,
		PDFURL:      in.PDFURL,
	}
	created, err := h.booklets.Create(b)
	if err != nil {
		slog.Error("booklet create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "storage failure")
		return
	}

	h.invalidate(r, cache.KeyBooklets)
	respondJSON(w, http.StatusCreated, created)
}

func (h *Catalog) UpdateBooklet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var in bookletInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if msg := in.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	b := &models.Booklet{
		ID:          id,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Category:    in.Category,
		PDFURL:      in.PDFURL,
	}
	updated, err := h.booklets.Update(b)
	if err != nil {
		slog.Error("booklet update failed", "error", err)
		respondError(w, http.StatusInternalServerError, "storage failure")
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "booklet not found")
		return
	}

	h.invalidate(r, cache.KeyBooklets)
	respondJSON(w, http.StatusOK, updated)
}

func (h *Catalog) DeleteBooklet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.booklets.Delete(id); err != nil {
		slog.Error("booklet delete failed", "error", err)
		respondError(w, http.StatusInternalServerError, "storage failure")
		return
	}

	h.invalidate(r, cache.KeyBooklets)
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "booklet deleted"})
}

// --- Village profile ---

// UpdateProfile upserts the submitted key/value entries in one shot.
func (h *Catalog) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var entries map[string]string
	if !decodeJSON(w, r, &entries) {
		return
	}
	if len(entries) == 0 {
		respondError(w, http.StatusBadRequest, "no entries submitted")
		return
	}

	if err := h.profile.SetMany(entries); err != nil {
		slog.Error("profile update failed", "error", err)
		respondError(w, http.StatusInternalServerError, "storage failure")
		return
	}

	h.invalidate(r, cache.KeyProfile)
	all, err := h.profile.All()
	if err != nil {
		slog.Error("profile reload failed", "error", err)
		respondError(w, http.StatusInternalServerError, "storage failure")
		return
	}
	respondJSON(w, http.StatusOK, all)
}
