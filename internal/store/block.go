// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"desaportal/internal/models"
)

// BlocksFor returns all content blocks of an article ordered by
// order_index ascending. Each style payload is deserialized with a
// fallback to the type-based default, so a corrupted row degrades to
// default styling instead of failing the read.
func (s *ArticleStore) BlocksFor(newsID uuid.UUID) ([]models.ContentBlock, error) {
	rows, err := s.db.Query(`
		SELECT id, news_id, type, content, order_index, style, created_at, updated_at
		FROM content_blocks
		WHERE news_id = $1
		ORDER BY order_index ASC
	`, newsID)
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	defer rows.Close()

	var blocks []models.ContentBlock
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

// FindBlock retrieves a single block by its ID. Returns nil if not found.
func (s *ArticleStore) FindBlock(id uuid.UUID) (*models.ContentBlock, error) {
	row := s.db.QueryRow(`
		SELECT id, news_id, type, content, order_index, style, created_at, updated_at
		FROM content_blocks WHERE id = $1
	`, id)

	b, err := scanBlock(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// scanBlock reads one content block row, normalizing the style payload.
func scanBlock(row interface{ Scan(...any) error }) (models.ContentBlock, error) {
	var b models.ContentBlock
	var rawStyle []byte
	err := row.Scan(&b.ID, &b.NewsID, &b.Type, &b.Content, &b.OrderIndex, &rawStyle, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return b, err
	}
	if err != nil {
		return b, fmt.Errorf("scan block: %w", err)
	}
	b.Style = models.ParseStyle(b.Type, rawStyle)
	return b, nil
}

// insertBlocks stores a block list for an article inside an open
// transaction. The order index of each row is its position in the slice;
// ids and indices carried by the submitted blocks are discarded and
// reassigned by the database.
func insertBlocks(tx *sql.Tx, newsID uuid.UUID, blocks []models.ContentBlock) ([]models.ContentBlock, error) {
	if len(blocks) == 0 {
		return nil, nil
	}

	stored := make([]models.ContentBlock, 0, len(blocks))
	for i, b := range blocks {
		rawStyle, err := models.MarshalStyle(b.Type, b.Style)
		if err != nil {
			return nil, fmt.Errorf("marshal block style: %w", err)
		}

		row := tx.QueryRow(`
			INSERT INTO content_blocks (news_id, type, content, order_index, style)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, news_id, type, content, order_index, style, created_at, updated_at
		`, newsID, b.Type, b.Content, i, rawStyle)

		inserted, err := scanBlock(row)
		if err != nil {
			return nil, fmt.Errorf("insert block %d: %w", i, err)
		}
		stored = append(stored, inserted)
	}
	return stored, nil
}
