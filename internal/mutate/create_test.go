package mutate

import (
	"errors"
	"testing"
	"time"

	"quire-cli/internal/outline"
	"quire-cli/internal/status"
	"quire-cli/internal/store"
)

func TestCreate_BuildsOrderedOutline(t *testing.T) {
	now := time.Now().UTC()
	snap := &store.Snapshot{}

	p, err := CreateProject(snap, "  The Novel ", now)
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if p.Title != "The Novel" || p.Rank == "" {
		t.Fatalf("unexpected project: %+v", p)
	}

	c1, err := CreateChapter(snap, p.ID, "One", status.Draft, now)
	if err != nil {
		t.Fatalf("CreateChapter: %v", err)
	}
	c2, err := CreateChapter(snap, p.ID, "Two", status.Draft, now)
	if err != nil {
		t.Fatalf("CreateChapter: %v", err)
	}
	s1, err := CreateScene(snap, c1.ID, "Opening", "A storm.", status.InProgress, now)
	if err != nil {
		t.Fatalf("CreateScene: %v", err)
	}
	if s1.ContentRef == "" || s1.Synopsis != "A storm." {
		t.Fatalf("unexpected scene: %+v", s1)
	}

	tree := outline.BuildTree(snap.Projects, snap.Chapters, snap.Scenes)
	chs := tree[0].Chapters
	if chs[0].Chapter.ID != c1.ID || chs[1].Chapter.ID != c2.ID {
		t.Fatalf("expected creation order to be display order")
	}
	if len(chs[0].Scenes) != 1 || chs[0].Scenes[0].ID != s1.ID || len(chs[1].Scenes) != 0 {
		t.Fatalf("unexpected scenes placement: %+v", chs)
	}
}

func TestCreate_Errors(t *testing.T) {
	snap := &store.Snapshot{}
	now := time.Now()

	if _, err := CreateProject(snap, "  ", now); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	var nf NotFoundError
	if _, err := CreateChapter(snap, "prj-x", "One", status.Draft, now); !errors.As(err, &nf) || nf.Kind != "project" {
		t.Fatalf("expected project NotFoundError, got %v", err)
	}
	if _, err := CreateScene(snap, "chp-x", "One", "", status.Draft, now); !errors.As(err, &nf) || nf.Kind != "chapter" {
		t.Fatalf("expected chapter NotFoundError, got %v", err)
	}
}
