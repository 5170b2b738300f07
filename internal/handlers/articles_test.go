// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

// savedArticle mirrors the aggregate response for decoding in tests.
type savedArticle struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Slug               string `json:"slug"`
	IsPublished        bool   `json:"is_published"`
	ContentBlocks      []struct {
		ID         string          `json:"id"`
		Type       string          `json:"type"`
		Content    string          `json:"content"`
		OrderIndex int             `json:"order_index"`
		Style      json.RawMessage `json:"style"`
	} `json:"content_blocks"`
	ContentBlocksCount int `json:"content_blocks_count"`
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) createArticle(t *testing.T, body map[string]any) savedArticle {
	t.Helper()
	w := e.do(t, "POST", "/articles", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}
	var created savedArticle
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("decode created article: %v", err)
	}
	e.cleanArticle(t, created.ID)
	return created
}

func TestArticleGet(t *testing.T) {
	env := newTestEnv(t)

	created := env.createArticle(t, map[string]any{
		"title":   "Pembangunan Jalan Desa",
		"content": "Ringkasan proyek jalan",
		"content_blocks": []map[string]any{
			{"type": "subtitle", "content": "Latar Belakang"},
			{"type": "text", "content": "Jalan utama desa rusak berat."},
		},
	})

	w := env.do(t, "GET", "/articles/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var got savedArticle
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Title != "Pembangunan Jalan Desa" {
		t.Errorf("title = %q", got.Title)
	}
	if len(got.ContentBlocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(got.ContentBlocks))
	}
	for i, b := range got.ContentBlocks {
		if b.OrderIndex != i {
			t.Errorf("block %d order_index = %d", i, b.OrderIndex)
		}
	}
}

func TestArticleGetMissing(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "GET", "/articles/"+uuid.NewString(), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] == "" {
		t.Error("expected {error} envelope")
	}

	// A malformed id names no article either.
	w = env.do(t, "GET", "/articles/not-a-uuid", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("malformed id status = %d, want 404", w.Code)
	}
}

func TestArticleUpdateReplacesBlocks(t *testing.T) {
	env := newTestEnv(t)

	created := env.createArticle(t, map[string]any{
		"title":   "Sebelum",
		"content": "isi",
		"content_blocks": []map[string]any{
			{"type": "text", "content": "lama"},
		},
	})

	// Client-side ids and order indexes must be ignored: positions win.
	w := env.do(t, "PUT", "/articles/"+created.ID, map[string]any{
		"title":        "Sesudah",
		"content":      "isi baru",
		"is_published": true,
		"content_blocks": []map[string]any{
			{"id": uuid.NewString(), "type": "image", "content": "/uploads/a.jpg", "order_index": 99,
				"style": map[string]string{"textAlign": "center", "caption": "Foto"}},
			{"id": "bogus", "type": "text", "content": "baru", "order_index": 0},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var got savedArticle
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Title != "Sesudah" || !got.IsPublished {
		t.Errorf("merged article = %+v", got)
	}
	if got.ContentBlocksCount != 2 || len(got.ContentBlocks) != 2 {
		t.Fatalf("content_blocks_count = %d, blocks = %d", got.ContentBlocksCount, len(got.ContentBlocks))
	}
	if got.ContentBlocks[0].Type != "image" || got.ContentBlocks[0].OrderIndex != 0 {
		t.Errorf("first block = %+v", got.ContentBlocks[0])
	}
	if got.ContentBlocks[1].Type != "text" || got.ContentBlocks[1].OrderIndex != 1 {
		t.Errorf("second block = %+v", got.ContentBlocks[1])
	}
}

func TestArticleUpdateValidation(t *testing.T) {
	env := newTestEnv(t)

	created := env.createArticle(t, map[string]any{
		"title":   "Tetap",
		"content": "isi",
		"content_blocks": []map[string]any{
			{"type": "text", "content": "asli"},
		},
	})

	w := env.do(t, "PUT", "/articles/"+created.ID, map[string]any{
		"title":          "",
		"content":        "isi",
		"content_blocks": []map[string]any{},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body.String())
	}
	var body map[string]string
	json.NewDecoder(w.Body).Decode(&body)
	if body["error"] == "" {
		t.Error("expected {error} envelope")
	}

	// Nothing was written: the original aggregate is intact.
	w = env.do(t, "GET", "/articles/"+created.ID, nil)
	var got savedArticle
	json.NewDecoder(w.Body).Decode(&got)
	if got.Title != "Tetap" || len(got.ContentBlocks) != 1 {
		t.Error("rejected save must leave the article unchanged")
	}
}

func TestArticleStyleDefaults(t *testing.T) {
	env := newTestEnv(t)

	created := env.createArticle(t, map[string]any{
		"title":   "Gaya",
		"content": "isi",
		"content_blocks": []map[string]any{
			{"type": "text", "content": "tanpa gaya"},
			{"type": "subtitle", "content": "judul"},
		},
	})

	w := env.do(t, "GET", "/articles/"+created.ID, nil)
	var got savedArticle
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}

	var style struct {
		TextAlign string `json:"textAlign"`
	}
	json.Unmarshal(got.ContentBlocks[0].Style, &style)
	if style.TextAlign != "justify" {
		t.Errorf("text block textAlign = %q, want justify", style.TextAlign)
	}
	json.Unmarshal(got.ContentBlocks[1].Style, &style)
	if style.TextAlign != "left" {
		t.Errorf("subtitle block textAlign = %q, want left", style.TextAlign)
	}
}

func TestArticleDelete(t *testing.T) {
	env := newTestEnv(t)

	created := env.createArticle(t, map[string]any{
		"title":   "Hapus",
		"content": "isi",
		"content_blocks": []map[string]any{
			{"type": "text", "content": "blok"},
		},
	})

	w := env.do(t, "DELETE", "/articles/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Message == "" {
		t.Errorf("body = %+v", body)
	}

	w = env.do(t, "GET", "/articles/"+created.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status after delete = %d, want 404", w.Code)
	}
}

func TestPublicArticleBySlug(t *testing.T) {
	env := newTestEnv(t)

	created := env.createArticle(t, map[string]any{
		"title":        "Festival Budaya",
		"content":      "ringkasan",
		"is_published": true,
		"content_blocks": []map[string]any{
			{"type": "subtitle", "content": "Jadwal"},
			{"type": "text", "content": "Sabtu **pagi** di lapangan."},
		},
	})

	w := env.do(t, "GET", "/berita/"+created.Slug, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var got struct {
		Title  string `json:"title"`
		Blocks []struct {
			HTML    string `json:"html"`
			IsFirst bool   `json:"is_first"`
		} `json:"content_blocks"`
	}
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Blocks) != 2 {
		t.Fatalf("blocks = %d", len(got.Blocks))
	}
	if got.Blocks[0].HTML != "<h2>Jadwal</h2>" || !got.Blocks[0].IsFirst {
		t.Errorf("subtitle view = %+v", got.Blocks[0])
	}
}

func TestPublicArticleDraftHidden(t *testing.T) {
	env := newTestEnv(t)

	created := env.createArticle(t, map[string]any{
		"title":   "Draf Rahasia",
		"content": "belum terbit",
	})

	w := env.do(t, "GET", "/berita/"+created.Slug, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("draft status = %d, want 404", w.Code)
	}
}
