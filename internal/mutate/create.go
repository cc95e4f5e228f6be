package mutate

import (
	"strings"
	"time"

	"quire-cli/internal/model"
	"quire-cli/internal/status"
	"quire-cli/internal/store"
)

// CreateProject appends a new project after the existing ones.
// Callers save snap.Projects and append the project.create event.
func CreateProject(snap *store.Snapshot, title string, now time.Time) (model.Project, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Project{}, ErrEmptyTitle
	}
	ranks := make([]string, 0, len(snap.Projects))
	for _, p := range snap.Projects {
		ranks = append(ranks, p.Rank)
	}
	rank, err := store.RankAppend(ranks)
	if err != nil {
		return model.Project{}, err
	}
	id, err := store.NewID("prj")
	if err != nil {
		return model.Project{}, err
	}
	p := model.Project{ID: id, Title: title, Rank: rank, CreatedAt: now, UpdatedAt: now}
	snap.Projects = append(snap.Projects, p)
	return p, nil
}

// CreateChapter appends a chapter at the end of its project.
func CreateChapter(snap *store.Snapshot, projectID, title string, st status.Status, now time.Time) (model.Chapter, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Chapter{}, ErrEmptyTitle
	}
	if !hasProject(snap, projectID) {
		return model.Chapter{}, NotFoundError{Kind: "project", ID: projectID}
	}
	var ranks []string
	for _, ch := range snap.Chapters {
		if ch.ProjectID == projectID {
			ranks = append(ranks, ch.Rank)
		}
	}
	rank, err := store.RankAppend(ranks)
	if err != nil {
		return model.Chapter{}, err
	}
	id, err := store.NewID("chp")
	if err != nil {
		return model.Chapter{}, err
	}
	ch := model.Chapter{ID: id, ProjectID: projectID, Title: title, Rank: rank, Status: st, CreatedAt: now, UpdatedAt: now}
	snap.Chapters = append(snap.Chapters, ch)
	return ch, nil
}

// CreateScene appends a scene at the end of its chapter and assigns its content ref.
func CreateScene(snap *store.Snapshot, chapterID, title, synopsis string, st status.Status, now time.Time) (model.Scene, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Scene{}, ErrEmptyTitle
	}
	if findChapter(snap, chapterID) < 0 {
		return model.Scene{}, NotFoundError{Kind: "chapter", ID: chapterID}
	}
	var ranks []string
	for _, sc := range snap.Scenes {
		if sc.ChapterID == chapterID {
			ranks = append(ranks, sc.Rank)
		}
	}
	rank, err := store.RankAppend(ranks)
	if err != nil {
		return model.Scene{}, err
	}
	id, err := store.NewID("scn")
	if err != nil {
		return model.Scene{}, err
	}
	sc := model.Scene{
		ID:         id,
		ChapterID:  chapterID,
		Title:      title,
		Rank:       rank,
		Status:     st,
		ContentRef: store.ContentRef(id),
		Synopsis:   strings.TrimSpace(synopsis),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	snap.Scenes = append(snap.Scenes, sc)
	return sc, nil
}

func hasProject(snap *store.Snapshot, id string) bool {
	for _, p := range snap.Projects {
		if p.ID == id {
			return true
		}
	}
	return false
}

func findChapter(snap *store.Snapshot, id string) int {
	for i := range snap.Chapters {
		if snap.Chapters[i].ID == id {
			return i
		}
	}
	return -1
}

func findScene(snap *store.Snapshot, id string) int {
	for i := range snap.Scenes {
		if snap.Scenes[i].ID == id {
			return i
		}
	}
	return -1
}
