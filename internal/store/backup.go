package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Backup writes a consistent copy of the workspace db to dest. dest must not exist.
func (s Store) Backup(ctx context.Context, dest string) error {
	dest = filepath.Clean(dest)
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("backup destination exists: %s", dest)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	// VACUUM INTO produces a compacted snapshot without blocking other readers.
	if _, err := db.ExecContext(ctx, `VACUUM INTO ?`, dest); err != nil {
		return fmt.Errorf("backup: %w", err)
	}
	return nil
}
