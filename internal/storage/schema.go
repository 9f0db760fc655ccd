package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// InitSchema creates all necessary tables and indexes.
// Note: WAL mode is configured in db.go's New function.
func InitSchema(db *sql.DB) error {
	if err := createMessagesTable(db); err != nil {
		return err
	}

	return createRedirectsTable(db)
}

func createMessagesTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sender TEXT NOT NULL,
		body TEXT NOT NULL,
		department TEXT NOT NULL,
		redirected INTEGER NOT NULL DEFAULT 0,
		response_time_ms INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_messages_created_at ON messages(created_at);
	CREATE INDEX IF NOT EXISTS idx_messages_department ON messages(department);
	CREATE INDEX IF NOT EXISTS idx_messages_sender ON messages(sender);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create messages table: %w", err)
	}

	return nil
}

func createRedirectsTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS redirects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sender TEXT NOT NULL,
		department TEXT NOT NULL,
		link TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		clicked INTEGER NOT NULL DEFAULT 0,
		clicked_at INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_redirects_department ON redirects(department);
	CREATE INDEX IF NOT EXISTS idx_redirects_created_at ON redirects(created_at);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create redirects table: %w", err)
	}

	return nil
}
