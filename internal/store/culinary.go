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

// CulinaryStore handles the local culinary catalog.
type CulinaryStore struct {
	db *sql.DB
}

// NewCulinaryStore creates a new CulinaryStore with the given database connection.
func NewCulinaryStore(db *sql.DB) *CulinaryStore {
	return &CulinaryStore{db: db}
}

const culinaryColumns = `id, name, description, price, image_url, seller, location, created_at, updated_at`

func scanCulinary(row interface{ Scan(...any) error }, c *models.Culinary) error {
	return row.Scan(&c.ID, &c.Name, &c.Description, &c.Price, &c.ImageURL, &c.Seller, &c.Location, &c.CreatedAt, &c.UpdatedAt)
}

// List returns all culinary items, newest first.
func (s *CulinaryStore) List() ([]models.Culinary, error) {
	rows, err := s.db.Query(`SELECT ` + culinaryColumns + ` FROM culinary ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list culinary: %w", err)
	}
	defer rows.Close()

	var items []models.Culinary
	for rows.Next() {
		var c models.Culinary
		if err := scanCulinary(rows, &c); err != nil {
			return nil, fmt.Errorf("scan culinary: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// FindByID retrieves a culinary item by its UUID. Returns nil if not found.
func (s *CulinaryStore) FindByID(id uuid.UUID) (*models.Culinary, error) {
	c := &models.Culinary{}
	err := scanCulinary(s.db.QueryRow(`SELECT `+culinaryColumns+` FROM culinary WHERE id = $1`, id), c)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find culinary by id: %w", err)
	}
	return c, nil
}

// Create inserts a new culinary item and returns it with the generated ID.
func (s *CulinaryStore) Create(c *models.Culinary) (*models.Culinary, error) {
	result := &models.Culinary{}
	err := scanCulinary(s.db.QueryRow(`
		INSERT INTO culinary (name, description, price, image_url, seller, location)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+culinaryColumns,
		c.Name, c.Description, c.Price, c.ImageURL, c.Seller, c.Location,
	), result)
	if err != nil {
		return nil, fmt.Errorf("create culinary: %w", err)
	}
	return result, nil
}

// Update modifies an existing culinary item. Returns nil if the id does not exist.
func (s *CulinaryStore) Update(c *models.Culinary) (*models.Culinary, error) {
	result := &models.Culinary{}
	err := scanCulinary(s.db.QueryRow(`
		UPDATE culinary SET
			name = $1, description = $2, price = $3, image_url = $4,
			seller = $5, location = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING `+culinaryColumns,
		c.Name, c.Description, c.Price, c.ImageURL, c.Seller, c.Location, c.ID,
	), result)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update culinary: %w", err)
	}
	return result, nil
}

// Delete removes a culinary item by ID.
func (s *CulinaryStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM culinary WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete culinary: %w", err)
	}
	return nil
}
