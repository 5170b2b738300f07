package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"desaportal/internal/models"
)

// BookletStore handles tourism booklet and service guide PDF records.
type BookletStore struct {
	db *sql.DB
}

// NewBookletStore creates a new BookletStore with the given database connection.
func NewBookletStore(db *sql.DB) *BookletStore {
	return &BookletStore{db: db}
}

const bookletColumns = `id, title, description, category, pdf_url, created_at, updated_at`

func scanBooklet(row interface{ Scan(...any) error }, b *models.Booklet) error {
	return row.Scan(&b.ID, &b.Title, &b.Description, &b.Category, &b.PDFURL, &b.CreatedAt, &b.UpdatedAt)
}

// List returns all booklets, newest first. An empty category returns
// everything; otherwise results are filtered to that category.
func (s *BookletStore) List(category string) ([]models.Booklet, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if category == "" {
		rows, err = s.db.Query(`SELECT ` + bookletColumns + ` FROM booklets ORDER BY created_at DESC`)
	} else {
		rows, err = s.db.Query(`SELECT `+bookletColumns+` FROM booklets WHERE category = $1 ORDER BY created_at DESC`, category)
	}
	if err != nil {
		return nil, fmt.Errorf("list booklets: %w", err)
	}
	defer rows.Close()

	var items []models.Booklet
	for rows.Next() {
		var b models.Booklet
		if err := scanBooklet(rows, &b); err != nil {
			return nil, fmt.Errorf("scan booklet: %w", err)
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

// FindByID retrieves a booklet by its UUID. Returns nil if not found.
func (s *BookletStore) FindByID(id uuid.UUID) (*models.Booklet, error) {
	b := &models.Booklet{}
	err := scanBooklet(s.db.QueryRow(`SELECT `+bookletColumns+` FROM booklets WHERE id = $1`, id), b)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find booklet by id: %w", err)
	}
	return b, nil
}

// Create inserts a new booklet record and returns it with the generated ID.
func (s *BookletStore) Create(b *models.Booklet) (*models.Booklet, error) {
	result := &models.Booklet{}
	err := scanBooklet(s.db.QueryRow(`
		INSERT INTO booklets (title, description, category, pdf_url)
		VALUES ($1, $2, $3, $4)
		RETURNING `+bookletColumns,
		b.Title, b.Description, b.Category, b.PDFURL,
	), result)
	if err != nil {
		return nil, fmt.Errorf("create booklet: %w", err)
	}
	return result, nil
}

// Update modifies an existing booklet. Returns nil if the id does not exist.
func (s *BookletStore) Update(b *models.Booklet) (*models.Booklet, error) {
	result := &models.Booklet{}
	err := scanBooklet(s.db.QueryRow(`
		UPDATE booklets SET
			title = $1, description = $2, category = $3, pdf_url = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING `+bookletColumns,
		b.Title, b.Description, b.Category, b.PDFURL, b.ID,
	), result)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update booklet: %w", err)
	}
	return result, nil
}

// Delete removes a booklet by ID.
func (s *BookletStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM booklets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booklet: %w", err)
	}
	return nil
}
