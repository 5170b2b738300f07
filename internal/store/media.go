package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"desaportal/internal/models"
)

// MediaStore records files uploaded to object storage so the admin
// panel can list and delete them later.
type MediaStore struct {
	db *sql.DB
}

// NewMediaStore creates a new MediaStore with the given database connection.
func NewMediaStore(db *sql.DB) *MediaStore {
	return &MediaStore{db: db}
}

const mediaColumns = `id, filename, s3_key, url, content_type, size_bytes, folder, uploaded_by, created_at`

func scanMedia(row interface{ Scan(...any) error }, m *models.Media) error {
	return row.Scan(&m.ID, &m.Filename, &m.S3Key, &m.URL, &m.ContentType, &m.SizeBytes, &m.Folder, &m.UploadedBy, &m.CreatedAt)
}

// Create records an upload and returns it with the generated ID.
func (s *MediaStore) Create(m *models.Media) (*models.Media, error) {
	result := &models.Media{}
	err := scanMedia(s.db.QueryRow(`
		INSERT INTO media (filename, s3_key, url, content_type, size_bytes, folder, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+mediaColumns,
		m.Filename, m.S3Key, m.URL, m.ContentType, m.SizeBytes, m.Folder, m.UploadedBy,
	), result)
	if err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}
	return result, nil
}

// List returns all uploads, newest first.
func (s *MediaStore) List() ([]models.Media, error) {
	rows, err := s.db.Query(`SELECT ` + mediaColumns + ` FROM media ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var items []models.Media
	for rows.Next() {
		var m models.Media
		if err := scanMedia(rows, &m); err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// FindByID retrieves an upload record by its UUID. Returns nil if not found.
func (s *MediaStore) FindByID(id uuid.UUID) (*models.Media, error) {
	m := &models.Media{}
	err := scanMedia(s.db.QueryRow(`SELECT `+mediaColumns+` FROM media WHERE id = $1`, id), m)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find media by id: %w", err)
	}
	return m, nil
}

// Delete removes an upload record by ID.
func (s *MediaStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	return nil
}

// Count returns the number of recorded uploads.
func (s *MediaStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM media`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count media: %w", err)
	}
	return count, nil
}
