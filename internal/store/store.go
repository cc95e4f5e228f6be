package store

import (
	"context"
	"os"
	"path/filepath"

	"quire-cli/internal/model"
)

const (
	dirName    = ".quire"
	dbFileName = "quire.sqlite"
)

// Snapshot is the persisted outline, one slice per collection.
type Snapshot struct {
	WorkspaceID string          `json:"workspaceId"`
	Projects    []model.Project `json:"projects"`
	Chapters    []model.Chapter `json:"chapters"`
	Scenes      []model.Scene   `json:"scenes"`
}

// Store is a workspace directory holding the sqlite db.
type Store struct {
	Dir string
}

// EventLog is the append-only mutation log.
type EventLog interface {
	AppendEvent(ctx context.Context, typ, entityID string, payload any) error
	ReadEvents(ctx context.Context, limit int) ([]model.Event, error)
}

// Backuper writes a consistent copy of the workspace.
type Backuper interface {
	Backup(ctx context.Context, dest string) error
}

var (
	_ EventLog = Store{}
	_ Backuper = Store{}
)

// DiscoverDir walks up from start looking for a .quire directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, dirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir is the nearest .quire above the working directory, or ./.quire when none exists.
func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, dirName), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

// DBPath is the sqlite file; the feed watcher keys off it.
func (s Store) DBPath() string {
	return filepath.Join(s.Dir, dbFileName)
}

// Exists reports whether the workspace has been initialised.
func (s Store) Exists() bool {
	_, err := os.Stat(s.DBPath())
	return err == nil
}

func (s Store) Load(ctx context.Context) (*Snapshot, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return loadSnapshot(ctx, db)
}
