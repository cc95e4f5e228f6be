package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"quire-cli/internal/model"
	"quire-cli/internal/status"

	_ "modernc.org/sqlite"
)

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.DBPath())
	if err != nil {
		return nil, err
	}
	// WAL: the TUI reads while CLI processes write.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			rank TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS chapters (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL,
			rank TEXT NOT NULL,
			status TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_chapters_project ON chapters(project_id);`,
		`CREATE TABLE IF NOT EXISTS scenes (
			id TEXT PRIMARY KEY,
			chapter_id TEXT NOT NULL,
			rank TEXT NOT NULL,
			status TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_scenes_chapter ON scenes(chapter_id);`,
		`CREATE TABLE IF NOT EXISTS bodies (
			ref TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			payload_json TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_entity ON events(entity_id, created_at_unixms);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	_, err := ensureWorkspaceID(ctx, db)
	return err
}

func ensureWorkspaceID(ctx context.Context, db *sql.DB) (string, error) {
	var v string
	err := db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = 'workspace_id'`).Scan(&v)
	if err == nil && strings.TrimSpace(v) != "" {
		return v, nil
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	v = uuid.NewString()
	if _, err := db.ExecContext(ctx, `INSERT OR REPLACE INTO meta(k, v) VALUES('workspace_id', ?)`, v); err != nil {
		return "", err
	}
	return v, nil
}

// SaveProjects replaces the whole projects table in one transaction.
func (s Store) SaveProjects(ctx context.Context, xs []model.Project) error {
	return s.replaceAll(ctx, "projects", len(xs), func(tx *sql.Tx, i int, nowMs int64) error {
		p := xs[i]
		raw, err := json.Marshal(p)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO projects(id, rank, json, updated_at_unixms) VALUES(?, ?, ?, ?)`,
			p.ID, strings.TrimSpace(p.Rank), string(raw), nowMs)
		return err
	})
}

func (s Store) SaveChapters(ctx context.Context, xs []model.Chapter) error {
	return s.replaceAll(ctx, "chapters", len(xs), func(tx *sql.Tx, i int, nowMs int64) error {
		ch := xs[i]
		raw, err := json.Marshal(ch)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO chapters(id, project_id, rank, status, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`,
			ch.ID, ch.ProjectID, strings.TrimSpace(ch.Rank), ch.Status.String(), string(raw), nowMs)
		return err
	})
}

func (s Store) SaveScenes(ctx context.Context, xs []model.Scene) error {
	return s.replaceAll(ctx, "scenes", len(xs), func(tx *sql.Tx, i int, nowMs int64) error {
		sc := xs[i]
		raw, err := json.Marshal(sc)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO scenes(id, chapter_id, rank, status, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`,
			sc.ID, sc.ChapterID, strings.TrimSpace(sc.Rank), sc.Status.String(), string(raw), nowMs)
		return err
	})
}

// replaceAll mirrors the in-memory contract: a collection is only ever written whole.
func (s Store) replaceAll(ctx context.Context, table string, n int, insert func(tx *sql.Tx, i int, nowMs int64) error) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
		return err
	}
	nowMs := time.Now().UTC().UnixMilli()
	for i := 0; i < n; i++ {
		if err := insert(tx, i, nowMs); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func loadSnapshot(ctx context.Context, db *sql.DB) (*Snapshot, error) {
	out := &Snapshot{}

	wsID, err := ensureWorkspaceID(ctx, db)
	if err != nil {
		return nil, err
	}
	out.WorkspaceID = wsID

	if out.Projects, err = readJSONRows[model.Project](ctx, db, `SELECT json FROM projects`); err != nil {
		return nil, err
	}
	chapterRows, err := readJSONRows[storedChapter](ctx, db, `SELECT json FROM chapters`)
	if err != nil {
		return nil, err
	}
	for _, r := range chapterRows {
		ch := r.Chapter
		ch.Status = status.ParseLenient(r.Status)
		out.Chapters = append(out.Chapters, ch)
	}
	sceneRows, err := readJSONRows[storedScene](ctx, db, `SELECT json FROM scenes`)
	if err != nil {
		return nil, err
	}
	for _, r := range sceneRows {
		sc := r.Scene
		sc.Status = status.ParseLenient(r.Status)
		out.Scenes = append(out.Scenes, sc)
	}

	// Stable callers: empty, not nil.
	if out.Projects == nil {
		out.Projects = []model.Project{}
	}
	if out.Chapters == nil {
		out.Chapters = []model.Chapter{}
	}
	if out.Scenes == nil {
		out.Scenes = []model.Scene{}
	}
	return out, nil
}

// storedChapter and storedScene read the status as a plain string (the outer field shadows the
// embedded one), so one bad row is reported by Validate instead of failing the whole load.
type storedChapter struct {
	model.Chapter
	Status string `json:"status"`
}

type storedScene struct {
	model.Scene
	Status string `json:"status"`
}

func readJSONRows[T any](ctx context.Context, db *sql.DB, query string) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(js), &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
