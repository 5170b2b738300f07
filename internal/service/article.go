// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package service coordinates article reads and writes as one unit:
// the article row and its content blocks load and save together, never
// separately.
package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"desaportal/internal/models"
	"desaportal/internal/slug"
	"desaportal/internal/store"
)

// ErrNotFound reports that no article exists for the given id or slug.
var ErrNotFound = errors.New("article not found")

// ValidationError reports rejected input. The save is refused before
// anything is written.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a validation rejection.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// BlockInput is one block as submitted by the editor. Client-supplied
// ids and order indexes are advisory only: position in the slice is the
// order of record, and ids are reassigned on save.
type BlockInput struct {
	Type    models.BlockType  `json:"type"`
	Content string            `json:"content"`
	Style   models.BlockStyle `json:"style"`
}

// ArticleInput is the editable part of an article. Optional fields left
// nil fall back to defaults on save.
type ArticleInput struct {
	Title          string  `json:"title"`
	Content        string  `json:"content"`
	Excerpt        *string `json:"excerpt"`
	ImageURL       *string `json:"image_url"`
	Category       *string `json:"category"`
	IsPublished    *bool   `json:"is_published"`
	IsAnnouncement *bool   `json:"is_announcement"`
	Author         *string `json:"author"`
}

// Aggregate is an article with its ordered blocks, as loaded or as
// returned after a save.
type Aggregate struct {
	Article *models.Article
	Blocks  []models.ContentBlock
}

// ArticleService is the aggregate boundary for articles.
type ArticleService struct {
	articles *store.ArticleStore
}

func NewArticleService(articles *store.ArticleStore) *ArticleService {
	return &ArticleService{articles: articles}
}

// Get loads an article and its blocks in display order. Returns
// ErrNotFound when the id does not exist.
func (s *ArticleService) Get(id uuid.UUID) (*Aggregate, error) {
	a, err := s.articles.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("load article: %w", err)
	}
	if a == nil {
		return nil, ErrNotFound
	}
	blocks, err := s.articles.BlocksFor(id)
	if err != nil {
		return nil, fmt.Errorf("load blocks: %w", err)
	}
	return &Aggregate{Article: a, Blocks: blocks}, nil
}

// GetBySlug loads a published article by slug for public display.
func (s *ArticleService) GetBySlug(sl string) (*Aggregate, error) {
	a, err := s.articles.FindBySlug(sl)
	if err != nil {
		return nil, fmt.Errorf("load article: %w", err)
	}
	if a == nil {
		return nil, ErrNotFound
	}
	blocks, err := s.articles.BlocksFor(a.ID)
	if err != nil {
		return nil, fmt.Errorf("load blocks: %w", err)
	}
	return &Aggregate{Article: a, Blocks: blocks}, nil
}

// Create validates the input, derives a unique slug from the title and
// saves the article with its blocks in one transaction.
func (s *ArticleService) Create(in ArticleInput, blocks []BlockInput) (*Aggregate, error) {
	if err := validate(in, blocks); err != nil {
		return nil, err
	}

	a := &models.Article{
		Title:   strings.TrimSpace(in.Title),
		Content: in.Content,
		Slug:    slug.GenerateUnique(in.Title),
		Author:  models.DefaultAuthor,
	}
	applyOptional(a, in)

	saved, savedBlocks, err := s.articles.Create(a, toModels(blocks))
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return &Aggregate{Article: saved, Blocks: savedBlocks}, nil
}

// Update replaces the article's editable fields and its entire block
// list atomically. Nothing is written when validation fails, and the
// stored blocks are untouched when any part of the save fails. Returns
// ErrNotFound when the id does not exist.
func (s *ArticleService) Update(id uuid.UUID, in ArticleInput, blocks []BlockInput) (*Aggregate, error) {
	if err := validate(in, blocks); err != nil {
		return nil, err
	}

	a := &models.Article{
		ID:      id,
		Title:   strings.TrimSpace(in.Title),
		Content: in.Content,
		Author:  models.DefaultAuthor,
	}
	applyOptional(a, in)

	saved, savedBlocks, err := s.articles.UpdateWithBlocks(a, toModels(blocks))
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	if saved == nil {
		return nil, ErrNotFound
	}
	return &Aggregate{Article: saved, Blocks: savedBlocks}, nil
}

// Delete removes the article; its blocks go with it. Returns
// ErrNotFound when the id does not exist.
func (s *ArticleService) Delete(id uuid.UUID) error {
	a, err := s.articles.FindByID(id)
	if err != nil {
		return fmt.Errorf("load article: %w", err)
	}
	if a == nil {
		return ErrNotFound
	}
	if err := s.articles.Delete(id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

func validate(in ArticleInput, blocks []BlockInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(in.Content) == "" {
		return &ValidationError{Field: "content", Reason: "must not be empty"}
	}
	for i, b := range blocks {
		if !b.Type.Valid() {
			return &ValidationError{
				Field:  fmt.Sprintf("content_blocks[%d].type", i),
				Reason: fmt.Sprintf("unknown type %q", b.Type),
			}
		}
	}
	return nil
}

func applyOptional(a *models.Article, in ArticleInput) {
	a.Excerpt = in.Excerpt
	a.ImageURL = in.ImageURL
	a.Category = in.Category
	if in.IsPublished != nil {
		a.IsPublished = *in.IsPublished
	}
	if in.IsAnnouncement != nil {
		a.IsAnnouncement = *in.IsAnnouncement
	}
	if in.Author != nil && strings.TrimSpace(*in.Author) != "" {
		a.Author = *in.Author
	}
}

func toModels(blocks []BlockInput) []models.ContentBlock {
	out := make([]models.ContentBlock, 0, len(blocks))
	for i, b := range blocks {
		out = append(out, models.ContentBlock{
			Type:       b.Type,
			Content:    b.Content,
			OrderIndex: i,
			Style:      models.NormalizeStyle(b.Type, b.Style),
		})
	}
	return out
}
