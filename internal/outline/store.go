package outline

import (
	"slices"
	"sync"
	"sync/atomic"

	"quire-cli/internal/model"
)

// Collection names one of the three mirrored collections.
type Collection int

const (
	CollectionProjects Collection = iota
	CollectionChapters
	CollectionScenes
)

func (c Collection) String() string {
	switch c {
	case CollectionProjects:
		return "projects"
	case CollectionChapters:
		return "chapters"
	case CollectionScenes:
		return "scenes"
	default:
		return "unknown"
	}
}

// Store mirrors the latest known outline snapshot.
//
// Each collection is swapped as a whole, so a reader always sees one complete list. The three
// collections are independent: a reader may see projects and chapters from different moments.
// The store never validates what it is given; see Validate for the integrity check.
type Store struct {
	projects atomic.Pointer[[]model.Project]
	chapters atomic.Pointer[[]model.Chapter]
	scenes   atomic.Pointer[[]model.Scene]

	mu     sync.Mutex
	nextID int
	subs   map[int]func(Collection)
}

func NewStore() *Store {
	return &Store{subs: map[int]func(Collection){}}
}

func (s *Store) SetProjects(list []model.Project) {
	cp := slices.Clone(list)
	s.projects.Store(&cp)
	s.notify(CollectionProjects)
}

func (s *Store) SetChapters(list []model.Chapter) {
	cp := slices.Clone(list)
	s.chapters.Store(&cp)
	s.notify(CollectionChapters)
}

func (s *Store) SetScenes(list []model.Scene) {
	cp := slices.Clone(list)
	s.scenes.Store(&cp)
	s.notify(CollectionScenes)
}

// Projects returns a copy of the current projects, in the order they were set.
func (s *Store) Projects() []model.Project { return loadCopy(&s.projects) }

func (s *Store) Chapters() []model.Chapter { return loadCopy(&s.chapters) }

func (s *Store) Scenes() []model.Scene { return loadCopy(&s.scenes) }

func loadCopy[T any](p *atomic.Pointer[[]T]) []T {
	cur := p.Load()
	if cur == nil {
		return []T{}
	}
	out := make([]T, len(*cur))
	copy(out, *cur)
	return out
}

// Subscribe registers fn to be called after every replacement. The returned func removes it.
// fn runs on the goroutine that performed the replacement.
func (s *Store) Subscribe(fn func(Collection)) (unsubscribe func()) {
	s.mu.Lock()
	if s.subs == nil {
		s.subs = map[int]func(Collection){}
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify(c Collection) {
	s.mu.Lock()
	fns := make([]func(Collection), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
}
