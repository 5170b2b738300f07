// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"desaportal/internal/middleware"
	"desaportal/internal/models"
	"desaportal/internal/storage"
	"desaportal/internal/store"
)

const (
	// maxUploadSize is the maximum allowed file upload size (20 MB).
	maxUploadSize = 20 << 20
)

// allowedMediaTypes defines MIME types accepted for upload: images for
// articles and catalogs, PDFs for booklets.
var allowedMediaTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// allowedFolders are the S3 key prefixes an upload may target.
var allowedFolders = map[string]bool{
	"berita":  true,
	"produk":  true,
	"kuliner": true,
	"booklet": true,
	"profil":  true,
	"uploads": true,
}

// Media groups upload and media library endpoints.
type Media struct {
	storageClient *storage.Client
	mediaStore    *store.MediaStore
}

// NewMedia creates the Media handler group. storageClient may be nil
// when object storage is not configured; uploads then return 503.
func NewMedia(storageClient *storage.Client, mediaStore *store.MediaStore) *Media {
	return &Media{storageClient: storageClient, mediaStore: mediaStore}
}

// Upload accepts a multipart file plus a folder hint, stores the file
// in the public bucket under a random key, records it in the media
// table and returns the public URL.
func (h *Media) Upload(w http.ResponseWriter, r *http.Request) {
	if h.storageClient == nil {
		respondError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "file too large or malformed upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	folder := strings.Trim(r.FormValue("folder"), "/")
	if folder == "" {
		folder = "uploads"
	}
	if !allowedFolders[folder] {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown folder %q", folder))
		return
	}

	// Sniff the content type from the first 512 bytes rather than
	// trusting the client header.
	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		respondError(w, http.StatusBadRequest, "could not read file")
		return
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	// DetectContentType cannot distinguish some types; fall back to the
	// declared type for PDFs served as octet-stream.
	if contentType == "application/octet-stream" {
		contentType = header.Header.Get("Content-Type")
	}
	if !allowedMediaTypes[contentType] {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unsupported content type %q", contentType))
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	key := fmt.Sprintf("%s/%d-%s%s", folder, time.Now().Unix(), uuid.NewString()[:8], ext)

	body := io.MultiReader(bytes.NewReader(head), file)
	if err := h.storageClient.Upload(r.Context(), key, contentType, body, header.Size); err != nil {
		slog.Error("media upload failed", "key", key, "error", err)
		respondError(w, http.StatusInternalServerError, "upload failed")
		return
	}

	m := &models.Media{
		Filename:    header.Filename,
		S3Key:       key,
		URL:         h.storageClient.FileURL(key),
		ContentType: contentType,
		SizeBytes:   header.Size,
		Folder:      folder,
	}
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		m.UploadedBy = sess.UserID
	}

	created, err := h.mediaStore.Create(m)
	if err != nil {
		// The object is uploaded; a missing record is recoverable, so
		// still hand the URL back.
		slog.Error("media record failed", "key", key, "error", err)
		respondJSON(w, http.StatusCreated, map[string]string{"url": m.URL})
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// List returns the media library, newest first.
func (h *Media) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.mediaStore.List()
	if err != nil {
		slog.Error("media list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "storage failure")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// Delete removes a media record and its object from storage.
func (h *Media) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	m, err := h.mediaStore.FindByID(id)
	if err != nil {
		slog.Error("media lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "storage failure")
		return
	}
	if m == nil {
		respondError(w, http.StatusNotFound, "media not found")
		return
	}

	if h.storageClient != nil {
		if err := h.storageClient.Delete(r.Context(), m.S3Key); err != nil {
			slog.Error("media object delete failed", "key", m.S3Key, "error", err)
			respondError(w, http.StatusInternalServerError, "delete failed")
			return
		}
	}

	if err := h.mediaStore.Delete(id); err != nil {
		slog.Error("media record delete failed", "error", err)
		respondError(w, http.StatusInternalServerError, "storage failure")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "media deleted"})
}
