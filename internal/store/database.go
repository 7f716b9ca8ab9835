package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/fortuna/scorebot/internal/teams"
	_ "github.com/lib/pq" // PostgreSQL driver
)

const teamsSchema = `
	CREATE TABLE IF NOT EXISTS teams (
		team_id      SERIAL PRIMARY KEY,
		sport        VARCHAR(32)  NOT NULL,
		abbreviation VARCHAR(8)   NOT NULL,
		name         VARCHAR(64)  NOT NULL,
		is_active    BOOLEAN      NOT NULL DEFAULT TRUE,
		created_at   TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
		UNIQUE (sport, abbreviation),
		UNIQUE (sport, name)
	)
`

// Database wraps the Postgres connection holding the team directory
type Database struct {
	conn *sql.DB
	dsn  string
}

// NewDatabase creates a new database connection
func NewDatabase(dsn string) (*Database, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{
		conn: db,
		dsn:  dsn,
	}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// DB returns the underlying *sql.DB for queries
func (db *Database) DB() *sql.DB {
	return db.conn
}

// EnsureSchema creates the teams table if it does not exist yet
func (db *Database) EnsureSchema(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, teamsSchema); err != nil {
		return fmt.Errorf("failed to create teams table: %w", err)
	}
	log.Println("✓ teams schema ready")
	return nil
}

// SeedTeams inserts teams that are not already present
func (db *Database) SeedTeams(ctx context.Context, sport string, entries []teams.Team) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO teams (sport, abbreviation, name)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`
	for _, t := range entries {
		if _, err := tx.ExecContext(ctx, query, sport, t.Abbreviation, t.Name); err != nil {
			return fmt.Errorf("failed to seed team %s: %w", t.Abbreviation, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Printf("  ✓ Seeded %d %s teams", len(entries), sport)
	return nil
}
