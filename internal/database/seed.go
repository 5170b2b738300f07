package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// admin account and the baseline village profile keys the public pages
// expect. It is a no-op if users already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role)
		VALUES ($1, $2, $3, $4)
	`, "admin@desa.local", string(hash), "Admin Desa", "admin")
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	// Baseline profile keys so the public profile endpoint never returns
	// an empty object on a fresh install.
	for key, value := range map[string]string{
		"village_name": "Desa",
		"address":      "",
		"description":  "",
		"contact":      "",
		"office_hours": "Senin-Jumat 08.00-15.00",
	} {
		if _, err := db.Exec(`
			INSERT INTO profile_settings (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO NOTHING
		`, key, value); err != nil {
			return fmt.Errorf("seed profile key %s: %w", key, err)
		}
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@desa.local",
		"password", "admin",
	)

	return nil
}
