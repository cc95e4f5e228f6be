package mutate

import (
	"errors"
	"slices"
	"strings"
	"time"

	"quire-cli/internal/outline"
	"quire-cli/internal/store"
)

// MoveChapter re-ranks a chapter directly before or after a sibling chapter.
// Exactly one of before/after must be set. When the neighbours share a rank or leave no room,
// the whole sibling group is re-ranked; the returned rank is the moved chapter's.
func MoveChapter(snap *store.Snapshot, chapterID, before, after string, now time.Time) (string, error) {
	i := findChapter(snap, chapterID)
	if i < 0 {
		return "", NotFoundError{Kind: "chapter", ID: chapterID}
	}
	projectID := snap.Chapters[i].ProjectID

	var sibs []sibling
	for _, ch := range snap.Chapters {
		if ch.ProjectID == projectID && ch.ID != chapterID {
			sibs = append(sibs, sibling{id: ch.ID, rank: ch.Rank})
		}
	}
	ranks, err := rankForMove(sibs, chapterID, before, after)
	if err != nil {
		return "", err
	}
	for j := range snap.Chapters {
		if r, ok := ranks[snap.Chapters[j].ID]; ok {
			snap.Chapters[j].Rank = r
			snap.Chapters[j].UpdatedAt = now
		}
	}
	return ranks[chapterID], nil
}

// MoveScene re-ranks a scene within its chapter, with the same rules as MoveChapter.
func MoveScene(snap *store.Snapshot, sceneID, before, after string, now time.Time) (string, error) {
	i := findScene(snap, sceneID)
	if i < 0 {
		return "", NotFoundError{Kind: "scene", ID: sceneID}
	}
	chapterID := snap.Scenes[i].ChapterID

	var sibs []sibling
	for _, sc := range snap.Scenes {
		if sc.ChapterID == chapterID && sc.ID != sceneID {
			sibs = append(sibs, sibling{id: sc.ID, rank: sc.Rank})
		}
	}
	ranks, err := rankForMove(sibs, sceneID, before, after)
	if err != nil {
		return "", err
	}
	for j := range snap.Scenes {
		if r, ok := ranks[snap.Scenes[j].ID]; ok {
			snap.Scenes[j].Rank = r
			snap.Scenes[j].UpdatedAt = now
		}
	}
	return ranks[sceneID], nil
}

type sibling struct {
	id   string
	rank string
}

// rankForMove returns the new rank of every entity that has to change: just selfID when a rank
// fits between the target and its neighbour, otherwise every sibling in the group.
func rankForMove(sibs []sibling, selfID, before, after string) (map[string]string, error) {
	before = strings.TrimSpace(before)
	after = strings.TrimSpace(after)
	if (before == "") == (after == "") {
		return nil, ErrMoveTarget
	}
	target := before + after
	if target == selfID {
		return nil, ErrMoveSelf
	}

	slices.SortFunc(sibs, func(a, b sibling) int {
		return outline.CompareKeys(a.rank, a.id, b.rank, b.id)
	})
	idx := slices.IndexFunc(sibs, func(s sibling) bool { return s.id == target })
	if idx < 0 {
		return nil, ErrMoveNotSibling
	}

	existing := map[string]bool{}
	for _, s := range sibs {
		existing[strings.ToLower(strings.TrimSpace(s.rank))] = true
	}

	// at is where selfID lands in the sorted sibling list.
	at := idx + 1
	if before != "" {
		at = idx
	}
	lo, hi := "", ""
	if at > 0 {
		lo = sibs[at-1].rank
	}
	if at < len(sibs) {
		hi = sibs[at].rank
	}
	if r, err := store.RankBetweenUnique(existing, lo, hi); err == nil {
		return map[string]string{selfID: r}, nil
	} else if !errors.Is(err, store.ErrRankOrder) && !errors.Is(err, store.ErrNoRankSpace) {
		return nil, err
	}

	ids := make([]string, 0, len(sibs)+1)
	for _, s := range sibs[:at] {
		ids = append(ids, s.id)
	}
	ids = append(ids, selfID)
	for _, s := range sibs[at:] {
		ids = append(ids, s.id)
	}
	spread := store.RankSpread(len(ids))
	out := make(map[string]string, len(ids))
	for k, id := range ids {
		out[id] = spread[k]
	}
	return out, nil
}
