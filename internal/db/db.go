// internal/db/db.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"

	"github.com/unclebandit/mailpulse-backend/internal/config"
)

// Connect opens the Postgres handle and verifies it with a ping. Callers
// treat an error as fatal at startup; the handle is passed explicitly to
// every repository rather than held as package state.
func Connect(ctx context.Context, cfg *config.DatabaseConfig) (*sql.DB, error) {
	conn, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	log.Println("✅ Connected to database")
	return conn, nil
}

// InitSchema creates the tables if they do not exist yet.
func InitSchema(ctx context.Context, conn *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS subscribers (
			id SERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'active',
			joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS campaigns (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			subject TEXT NOT NULL,
			body_html TEXT NOT NULL,
			schedule_time TIMESTAMPTZ NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			sent_on TIMESTAMPTZ,
			sent_count INT NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_campaigns_due
			ON campaigns (schedule_time) WHERE status = 'pending'`,
	}

	for _, query := range queries {
		if _, err := conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute schema query: %w", err)
		}
	}
	return nil
}
