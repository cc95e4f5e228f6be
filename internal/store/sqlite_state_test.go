package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"quire-cli/internal/model"
	"quire-cli/internal/status"
)

func TestSQLiteState_SaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	now := time.Now().UTC().Truncate(time.Millisecond)
	projects := []model.Project{{ID: "prj-a", Title: "Novel", Rank: "h", CreatedAt: now, UpdatedAt: now}}
	chapters := []model.Chapter{{ID: "chp-a", ProjectID: "prj-a", Title: "One", Rank: "h", Status: status.Review, CreatedAt: now, UpdatedAt: now}}
	scenes := []model.Scene{{ID: "scn-a", ChapterID: "chp-a", Title: "Opening", Rank: "h", Status: status.Done, ContentRef: "body-a", CreatedAt: now, UpdatedAt: now}}

	if err := s.SaveProjects(ctx, projects); err != nil {
		t.Fatalf("save projects: %v", err)
	}
	if err := s.SaveChapters(ctx, chapters); err != nil {
		t.Fatalf("save chapters: %v", err)
	}
	if err := s.SaveScenes(ctx, scenes); err != nil {
		t.Fatalf("save scenes: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.WorkspaceID == "" {
		t.Fatalf("expected a workspace id")
	}
	if diff := cmp.Diff(projects, got.Projects); diff != "" {
		t.Fatalf("projects mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(chapters, got.Chapters); diff != "" {
		t.Fatalf("chapters mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(scenes, got.Scenes); diff != "" {
		t.Fatalf("scenes mismatch (-want +got):\n%s", diff)
	}

	again, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.WorkspaceID != got.WorkspaceID {
		t.Fatalf("workspace id changed between loads: %q vs %q", got.WorkspaceID, again.WorkspaceID)
	}
}

func TestSQLiteState_SaveReplacesOnlyNamedCollection(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	if err := s.SaveChapters(ctx, []model.Chapter{{ID: "chp-1", ProjectID: "prj-1"}, {ID: "chp-2", ProjectID: "prj-1"}}); err != nil {
		t.Fatalf("save chapters: %v", err)
	}
	if err := s.SaveProjects(ctx, []model.Project{{ID: "prj-9"}}); err != nil {
		t.Fatalf("save projects: %v", err)
	}
	if err := s.SaveChapters(ctx, []model.Chapter{{ID: "chp-3", ProjectID: "prj-9"}}); err != nil {
		t.Fatalf("save chapters: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Projects) != 1 || got.Projects[0].ID != "prj-9" {
		t.Fatalf("unexpected projects: %+v", got.Projects)
	}
	if len(got.Chapters) != 1 || got.Chapters[0].ID != "chp-3" {
		t.Fatalf("expected chapters to be replaced wholesale, got %+v", got.Chapters)
	}
	if got.Scenes == nil || len(got.Scenes) != 0 {
		t.Fatalf("expected empty non-nil scenes, got %#v", got.Scenes)
	}
}

func TestSceneBody_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	if got, err := s.SceneBody(ctx, "body-x"); err != nil || got != "" {
		t.Fatalf("expected empty body, got %q, %v", got, err)
	}
	if err := s.SetSceneBody(ctx, "body-x", "It was a dark night."); err != nil {
		t.Fatalf("set body: %v", err)
	}
	if got, _ := s.SceneBody(ctx, "body-x"); got != "It was a dark night." {
		t.Fatalf("unexpected body %q", got)
	}
	if err := s.SetSceneBody(ctx, "", "x"); err == nil {
		t.Fatalf("expected error for empty ref")
	}
}

func TestEvents_AppendAndRead(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	for _, typ := range []string{"project.create", "chapter.create", "chapter.set_status"} {
		if err := s.AppendEvent(ctx, typ, "x", map[string]any{"t": typ}); err != nil {
			t.Fatalf("append %s: %v", typ, err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	all, err := s.ReadEvents(ctx, 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(all) != 3 || all[0].Type != "project.create" || all[2].Type != "chapter.set_status" {
		t.Fatalf("unexpected events: %+v", all)
	}

	last, err := s.ReadEvents(ctx, 1)
	if err != nil {
		t.Fatalf("read last: %v", err)
	}
	if len(last) != 1 || last[0].Type != "chapter.set_status" {
		t.Fatalf("unexpected last event: %+v", last)
	}
}

func TestBackup_WritesCopy(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}
	if err := s.SaveProjects(ctx, []model.Project{{ID: "prj-a", Title: "Kept"}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	dest := filepath.Join(t.TempDir(), "backups", "quire.sqlite")
	if err := s.Backup(ctx, dest); err != nil {
		t.Fatalf("backup: %v", err)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("expected backup file: %v", err)
	}
	if err := s.Backup(ctx, dest); err == nil {
		t.Fatalf("expected error when destination exists")
	}

	// The copy is a full workspace db.
	restored := Store{Dir: filepath.Dir(dest)}
	got, err := restored.Load(ctx)
	if err != nil {
		t.Fatalf("load backup: %v", err)
	}
	if len(got.Projects) != 1 || got.Projects[0].Title != "Kept" {
		t.Fatalf("unexpected restored projects: %+v", got.Projects)
	}
}

func TestDiscoverDir(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".quire"), 0o755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	got, ok := DiscoverDir(nested)
	if !ok || got != filepath.Join(root, ".quire") {
		t.Fatalf("DiscoverDir = %q, %v", got, ok)
	}
}

func TestLoad_UnknownStatusRowDoesNotFailLoad(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}
	if err := s.SaveChapters(ctx, []model.Chapter{
		{ID: "chp-ok", ProjectID: "prj-a", Rank: "h", Status: status.Review},
		{ID: "chp-bad", ProjectID: "prj-a", Rank: "q"},
	}); err != nil {
		t.Fatalf("save chapters: %v", err)
	}
	if err := s.SaveScenes(ctx, []model.Scene{{ID: "scn-bad", ChapterID: "chp-ok", Rank: "h"}}); err != nil {
		t.Fatalf("save scenes: %v", err)
	}

	db, err := s.openSQLite(ctx)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for _, q := range []string{
		`UPDATE chapters SET json = json_set(json, '$.status', 'archived') WHERE id = 'chp-bad'`,
		`UPDATE scenes SET json = json_set(json, '$.status', 'shelved') WHERE id = 'scn-bad'`,
	} {
		if _, err := db.ExecContext(ctx, q); err != nil {
			t.Fatalf("corrupt row: %v", err)
		}
	}
	_ = db.Close()

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	byID := map[string]status.Status{}
	for _, ch := range got.Chapters {
		byID[ch.ID] = ch.Status
	}
	if byID["chp-ok"] != status.Review || byID["chp-bad"] != status.Unknown {
		t.Fatalf("unexpected chapter statuses: %v", byID)
	}
	if len(got.Scenes) != 1 || got.Scenes[0].Status != status.Unknown {
		t.Fatalf("unexpected scenes: %+v", got.Scenes)
	}
}
