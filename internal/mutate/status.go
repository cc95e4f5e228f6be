package mutate

import (
	"time"

	"quire-cli/internal/status"
	"quire-cli/internal/store"
)

type SetStatusResult struct {
	EntityID     string
	Changed      bool
	EventPayload map[string]any
}

// SetChapterStatus updates a chapter's workflow state.
// Callers save snap.Chapters and append the chapter.set_status event when Changed.
func SetChapterStatus(snap *store.Snapshot, chapterID string, to status.Status, now time.Time) (SetStatusResult, error) {
	i := findChapter(snap, chapterID)
	if i < 0 {
		return SetStatusResult{}, NotFoundError{Kind: "chapter", ID: chapterID}
	}
	if _, err := status.Describe(to); err != nil {
		return SetStatusResult{}, err
	}
	ch := &snap.Chapters[i]
	return applyStatus(chapterID, &ch.Status, &ch.UpdatedAt, to, now), nil
}

func SetSceneStatus(snap *store.Snapshot, sceneID string, to status.Status, now time.Time) (SetStatusResult, error) {
	i := findScene(snap, sceneID)
	if i < 0 {
		return SetStatusResult{}, NotFoundError{Kind: "scene", ID: sceneID}
	}
	if _, err := status.Describe(to); err != nil {
		return SetStatusResult{}, err
	}
	sc := &snap.Scenes[i]
	return applyStatus(sceneID, &sc.Status, &sc.UpdatedAt, to, now), nil
}

func applyStatus(id string, cur *status.Status, updatedAt *time.Time, to status.Status, now time.Time) SetStatusResult {
	prev := *cur
	if prev == to {
		return SetStatusResult{EntityID: id}
	}
	*cur = to
	*updatedAt = now
	return SetStatusResult{
		EntityID: id,
		Changed:  true,
		EventPayload: map[string]any{
			"from": prev.String(),
			"to":   to.String(),
		},
	}
}
