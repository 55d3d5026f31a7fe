package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS snapshots (
			key        TEXT PRIMARY KEY,
			data       TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_snapshots_updated ON snapshots(updated_at);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating snapshots table: %w", err)
	}

	return nil
}
