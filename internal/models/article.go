// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the domain types for the desa portal: news
// articles with ordered content blocks, catalog items, booklets, media
// records, and admin users.
package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultAuthor is used when an article is saved without an author name.
const DefaultAuthor = "Admin Desa"

// Article is a news or announcement record. Its body is complemented by
// an ordered list of content blocks that the admin editor manages.
type Article struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Excerpt        *string    `json:"excerpt,omitempty"`
	ImageURL       *string    `json:"image_url,omitempty"`
	Category       *string    `json:"category,omitempty"`
	Slug           string     `json:"slug"`
	IsPublished    bool       `json:"is_published"`
	IsAnnouncement bool       `json:"is_announcement"`
	Author         string     `json:"author"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ContentBlock is one unit of an article body: a paragraph, a subtitle,
// or an image. OrderIndex is zero-based and dense within an article —
// the save path renumbers blocks from their position in the submitted
// list, never trusting a client-sent index.
type ContentBlock struct {
	ID         uuid.UUID  `json:"id"`
	NewsID     uuid.UUID  `json:"news_id"`
	Type       BlockType  `json:"type"`
	Content    string     `json:"content"`
	OrderIndex int        `json:"order_index"`
	Style      BlockStyle `json:"style"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
