// Package seed creates default data on first startup
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/examsync/examsync/internal/pkg/auth"
)

const (
	defaultAdminEmail    = "admin@examsync.app"
	defaultAdminPassword = "Admin123!"
	defaultLICEmail      = "coordinator@examsync.app"
	defaultLICPassword   = "Coord123!"
)

// CreateDefaultData inserts the default admin and coordinator accounts if
// they do not exist yet. Idempotent across restarts.
func CreateDefaultData(ctx context.Context, db *pgxpool.Pool, lgr zerolog.Logger) error {
	if err := createUserIfMissing(ctx, db, lgr, "System Admin", defaultAdminEmail, defaultAdminPassword, "ADMIN"); err != nil {
		return err
	}
	return createUserIfMissing(ctx, db, lgr, "Default Coordinator", defaultLICEmail, defaultLICPassword, "LIC")
}

func createUserIfMissing(ctx context.Context, db *pgxpool.Pool, lgr zerolog.Logger, name, email, password, role string) error {
	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check for existing %s user: %w", role, err)
	}
	if exists {
		return nil
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash default %s password: %w", role, err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO users (name, email, password, role_type, nic, phone, address, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, '', '', '', true, NOW(), NOW())`,
		name, email, hashed, role)
	if err != nil {
		return fmt.Errorf("failed to create default %s user: %w", role, err)
	}

	lgr.Info().Str("email", email).Str("role", role).Msg("Default user created")
	return nil
}
