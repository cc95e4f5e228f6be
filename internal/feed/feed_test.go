package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"quire-cli/internal/model"
	"quire-cli/internal/outline"
	"quire-cli/internal/store"
)

type stubSource struct {
	snap *store.Snapshot
	err  error
}

func (s stubSource) Load(context.Context) (*store.Snapshot, error) { return s.snap, s.err }

func TestRefresh_FeedsAllCollectionsParentsFirst(t *testing.T) {
	mirror := outline.NewStore()
	var order []outline.Collection
	mirror.Subscribe(func(c outline.Collection) { order = append(order, c) })

	src := stubSource{snap: &store.Snapshot{
		Projects: []model.Project{{ID: "P1"}},
		Chapters: []model.Chapter{{ID: "C1", ProjectID: "P1"}},
		Scenes:   []model.Scene{{ID: "S1", ChapterID: "C1"}},
	}}
	f := New(src, mirror)
	if err := f.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(mirror.Projects()) != 1 || len(mirror.Chapters()) != 1 || len(mirror.Scenes()) != 1 {
		t.Fatalf("mirror not fed")
	}
	want := []outline.Collection{outline.CollectionProjects, outline.CollectionChapters, outline.CollectionScenes}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("unexpected feed order: %v", order)
		}
	}
}

func TestRefresh_ErrorKeepsPreviousSnapshot(t *testing.T) {
	mirror := outline.NewStore()
	mirror.SetProjects([]model.Project{{ID: "kept"}})

	boom := errors.New("db locked")
	f := New(stubSource{err: boom}, mirror)
	if err := f.Refresh(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected error, got %v", err)
	}
	if !errors.Is(f.LastError(), boom) {
		t.Fatalf("expected LastError to be recorded")
	}
	if got := mirror.Projects(); len(got) != 1 || got[0].ID != "kept" {
		t.Fatalf("expected previous snapshot to survive, got %+v", got)
	}
}

func TestWatch_RefreshesOnDBWrite(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := store.Store{Dir: t.TempDir()}
	if err := s.SaveProjects(ctx, nil); err != nil {
		t.Fatalf("init db: %v", err)
	}

	mirror := outline.NewStore()
	changed := make(chan struct{}, 16)
	mirror.Subscribe(func(c outline.Collection) {
		if c == outline.CollectionProjects {
			select {
			case changed <- struct{}{}:
			default:
			}
		}
	})

	f := New(s, mirror)
	if err := f.Watch(ctx, s.DBPath(), 20*time.Millisecond); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if err := s.SaveProjects(ctx, []model.Project{{ID: "prj-new", Title: "New"}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case <-changed:
			if ps := mirror.Projects(); len(ps) == 1 && ps[0].ID == "prj-new" {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for watcher refresh; projects=%+v err=%v", mirror.Projects(), f.LastError())
		}
	}
}

func TestRefresh_FailureReachesOnError(t *testing.T) {
	mirror := outline.NewStore()
	notified := 0
	mirror.Subscribe(func(outline.Collection) { notified++ })

	boom := errors.New("db locked")
	f := New(stubSource{err: boom}, mirror)
	var got []error
	f.OnError(func(err error) { got = append(got, err) })

	_ = f.Refresh(context.Background())
	if len(got) != 1 || !errors.Is(got[0], boom) {
		t.Fatalf("expected one OnError call with %v, got %v", boom, got)
	}
	if notified != 0 {
		t.Fatalf("a failed refresh must not replace collections, got %d notifications", notified)
	}

	f.src = stubSource{snap: &store.Snapshot{}}
	if err := f.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(got) != 1 || f.LastError() != nil {
		t.Fatalf("successful refresh must not call OnError and must clear LastError")
	}
}
