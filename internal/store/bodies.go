package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// SceneBody returns the text stored under ref, or "" when nothing has been written yet.
func (s Store) SceneBody(ctx context.Context, ref string) (string, error) {
	if ref == "" {
		return "", nil
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return "", err
	}
	defer db.Close()

	var text string
	err = db.QueryRowContext(ctx, `SELECT text FROM bodies WHERE ref = ?`, ref).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return text, err
}

func (s Store) SetSceneBody(ctx context.Context, ref, text string) error {
	if ref == "" {
		return errors.New("empty content ref")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `INSERT OR REPLACE INTO bodies(ref, text, updated_at_unixms) VALUES(?, ?, ?)`,
		ref, text, time.Now().UTC().UnixMilli())
	return err
}
