// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all desa portal
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"desaportal/internal/models"
)

// ArticleStore handles persistence for the article aggregate: the
// article row plus its ordered content blocks. The two always change
// together on save, so the store owns both tables.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates a new ArticleStore with the given database connection.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

const articleColumns = `id, title, content, excerpt, image_url, category, slug,
       is_published, is_announcement, author, created_at, updated_at`

func scanArticle(row interface{ Scan(...any) error }, a *models.Article) error {
	return row.Scan(
		&a.ID, &a.Title, &a.Content, &a.Excerpt, &a.ImageURL, &a.Category,
		&a.Slug, &a.IsPublished, &a.IsAnnouncement, &a.Author,
		&a.CreatedAt, &a.UpdatedAt,
	)
}

// List returns all articles ordered by creation date descending.
func (s *ArticleStore) List() ([]models.Article, error) {
	return s.list(`SELECT ` + articleColumns + ` FROM articles ORDER BY created_at DESC`)
}

// ListPublished returns published articles ordered by creation date
// descending. Used for the public news feed.
func (s *ArticleStore) ListPublished() ([]models.Article, error) {
	return s.list(`SELECT ` + articleColumns + ` FROM articles WHERE is_published ORDER BY created_at DESC`)
}

// ListAnnouncements returns published announcements, newest first.
func (s *ArticleStore) ListAnnouncements() ([]models.Article, error) {
	return s.list(`SELECT ` + articleColumns + ` FROM articles WHERE is_published AND is_announcement ORDER BY created_at DESC`)
}

func (s *ArticleStore) list(query string) ([]models.Article, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var items []models.Article
	for rows.Next() {
		var a models.Article
		if err := scanArticle(rows, &a); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

// FindByID retrieves an article by its UUID. Returns nil if not found.
func (s *ArticleStore) FindByID(id uuid.UUID) (*models.Article, error) {
	a := &models.Article{}
	err := scanArticle(s.db.QueryRow(`SELECT `+articleColumns+` FROM articles WHERE id = $1`, id), a)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by id: %w", err)
	}
	return a, nil
}

// FindBySlug retrieves a published article by its slug. Used for public
// article pages.
func (s *ArticleStore) FindBySlug(slug string) (*models.Article, error) {
	a := &models.Article{}
	err := scanArticle(s.db.QueryRow(`SELECT `+articleColumns+` FROM articles WHERE slug = $1 AND is_published`, slug), a)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by slug: %w", err)
	}
	return a, nil
}

// Create inserts a new article and its initial block list in one
// transaction, returning the stored article and blocks.
func (s *ArticleStore) Create(a *models.Article, blocks []models.ContentBlock) (*models.Article, []models.ContentBlock, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, nil, fmt.Errorf("create article begin: %w", err)
	}
	defer tx.Rollback()

	result := &models.Article{}
	err = scanArticle(tx.QueryRow(`
		INSERT INTO articles (title, content, excerpt, image_url, category, slug,
		                      is_published, is_announcement, author)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+articleColumns,
		a.Title, a.Content, a.Excerpt, a.ImageURL, a.Category, a.Slug,
		a.IsPublished, a.IsAnnouncement, a.Author,
	), result)
	if err != nil {
		return nil, nil, fmt.Errorf("create article: %w", err)
	}

	stored, err := insertBlocks(tx, result.ID, blocks)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("create article commit: %w", err)
	}
	return result, stored, nil
}

// UpdateWithBlocks replaces the article's metadata and its entire block
// list atomically: metadata update, delete-all blocks, insert-all blocks
// inside a single transaction. Blocks are renumbered from their position
// in the submitted slice; any client-sent order_index is ignored. If any
// step fails, the whole save rolls back and the stored aggregate is
// untouched.
func (s *ArticleStore) UpdateWithBlocks(a *models.Article, blocks []models.ContentBlock) (*models.Article, []models.ContentBlock, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, nil, fmt.Errorf("update article begin: %w", err)
	}
	defer tx.Rollback()

	result := &models.Article{}
	err = scanArticle(tx.QueryRow(`
		UPDATE articles SET
			title = $1, content = $2, excerpt = $3, image_url = $4, category = $5,
			is_published = $6, is_announcement = $7, author = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING `+articleColumns,
		a.Title, a.Content, a.Excerpt, a.ImageURL, a.Category,
		a.IsPublished, a.IsAnnouncement, a.Author, a.ID,
	), result)
	if err == sql.ErrNoRows {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("update article: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM content_blocks WHERE news_id = $1`, a.ID); err != nil {
		return nil, nil, fmt.Errorf("delete article blocks: %w", err)
	}

	stored, err := insertBlocks(tx, a.ID, blocks)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("update article commit: %w", err)
	}
	return result, stored, nil
}

// Delete removes an article by ID. The content_blocks foreign key
// cascades, removing all of its blocks in the same statement.
func (s *ArticleStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

// Count returns the total number of articles.
func (s *ArticleStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}
