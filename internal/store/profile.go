// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"time"
)

// ProfileStore manages the village profile directory: a key/value set
// of facts about the village (name, address, contact, office hours)
// shown on the public profile page.
type ProfileStore struct {
	db *sql.DB
}

// NewProfileStore returns a new ProfileStore backed by the given database.
func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// All returns every profile entry as a convenience map.
func (s *ProfileStore) All() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT key, value FROM profile_settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profile := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		profile[k] = v
	}
	return profile, rows.Err()
}

// Get returns a single entry by key, or the fallback if not found or empty.
func (s *ProfileStore) Get(key, fallback string) (string, error) {
	var val string
	err := s.db.QueryRow(`SELECT value FROM profile_settings WHERE key = $1`, key).Scan(&val)
	if err == sql.ErrNoRows {
		return fallback, nil
	}
	if err != nil {
		return fallback, err
	}
	if val == "" {
		return fallback, nil
	}
	return val, nil
}

// SetMany upserts multiple profile entries in a single transaction.
func (s *ProfileStore) SetMany(entries map[string]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO profile_settings (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for k, v := range entries {
		if _, err := stmt.Exec(k, v, now); err != nil {
			return err
		}
	}

	return tx.Commit()
}
