// Package feed keeps an outline mirror in step with the persisted workspace.
package feed

import (
	"context"
	"sync"

	"quire-cli/internal/model"
	"quire-cli/internal/store"
)

// Source supplies self-consistent snapshots.
type Source interface {
	Load(ctx context.Context) (*store.Snapshot, error)
}

// Sink accepts whole-collection replacements. *outline.Store is a Sink.
type Sink interface {
	SetProjects([]model.Project)
	SetChapters([]model.Chapter)
	SetScenes([]model.Scene)
}

type Feeder struct {
	src  Source
	sink Sink

	mu      sync.Mutex
	lastErr error
	onError func(error)
}

func New(src Source, sink Sink) *Feeder {
	return &Feeder{src: src, sink: sink}
}

// Refresh loads one snapshot and replaces all three collections, parents first so readers see
// dangling children for as short a window as possible.
func (f *Feeder) Refresh(ctx context.Context) error {
	snap, err := f.src.Load(ctx)
	f.mu.Lock()
	f.lastErr = err
	onError := f.onError
	f.mu.Unlock()
	if err != nil {
		if onError != nil {
			onError(err)
		}
		return err
	}
	f.sink.SetProjects(snap.Projects)
	f.sink.SetChapters(snap.Chapters)
	f.sink.SetScenes(snap.Scenes)
	return nil
}

// OnError registers fn to be called with every failed refresh, including the ones the watcher
// runs in the background. fn runs on the refreshing goroutine.
func (f *Feeder) OnError(fn func(error)) {
	f.mu.Lock()
	f.onError = fn
	f.mu.Unlock()
}

// LastError is the error from the most recent refresh (nil on success).
func (f *Feeder) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}
