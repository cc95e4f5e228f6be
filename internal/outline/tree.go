package outline

import (
	"slices"
	"strings"

	"quire-cli/internal/model"
)

type ProjectNode struct {
	Project  model.Project `json:"project"`
	Chapters []ChapterNode `json:"chapters"`
}

type ChapterNode struct {
	Chapter model.Chapter `json:"chapter"`
	Scenes  []model.Scene `json:"scenes"`
}

// CompareKeys orders siblings by rank, then by id so equal ranks still sort the same way on
// every read.
func CompareKeys(rankA, idA, rankB, idB string) int {
	ra := strings.TrimSpace(rankA)
	rb := strings.TrimSpace(rankB)
	if c := strings.Compare(ra, rb); c != 0 {
		return c
	}
	return strings.Compare(idA, idB)
}

func CompareProjects(a, b model.Project) int { return CompareKeys(a.Rank, a.ID, b.Rank, b.ID) }
func CompareChapters(a, b model.Chapter) int { return CompareKeys(a.Rank, a.ID, b.Rank, b.ID) }
func CompareScenes(a, b model.Scene) int     { return CompareKeys(a.Rank, a.ID, b.Rank, b.ID) }

// Tree builds the navigation tree from the current snapshot. Chapters and scenes whose parent is
// not in the snapshot are left out.
func (s *Store) Tree() []ProjectNode {
	return BuildTree(s.Projects(), s.Chapters(), s.Scenes())
}

func BuildTree(projects []model.Project, chapters []model.Chapter, scenes []model.Scene) []ProjectNode {
	projects = slices.Clone(projects)
	slices.SortFunc(projects, CompareProjects)

	scenesByChapter := map[string][]model.Scene{}
	for _, sc := range scenes {
		scenesByChapter[sc.ChapterID] = append(scenesByChapter[sc.ChapterID], sc)
	}
	chaptersByProject := map[string][]model.Chapter{}
	for _, ch := range chapters {
		chaptersByProject[ch.ProjectID] = append(chaptersByProject[ch.ProjectID], ch)
	}

	out := make([]ProjectNode, 0, len(projects))
	for _, p := range projects {
		chs := chaptersByProject[p.ID]
		slices.SortFunc(chs, CompareChapters)
		pn := ProjectNode{Project: p, Chapters: make([]ChapterNode, 0, len(chs))}
		for _, ch := range chs {
			scs := scenesByChapter[ch.ID]
			slices.SortFunc(scs, CompareScenes)
			if scs == nil {
				scs = []model.Scene{}
			}
			pn.Chapters = append(pn.Chapters, ChapterNode{Chapter: ch, Scenes: scs})
		}
		out = append(out, pn)
	}
	return out
}

// ChapterScenes returns the scenes of a chapter in display order.
func (s *Store) ChapterScenes(chapterID string) []model.Scene {
	var out []model.Scene
	for _, sc := range s.Scenes() {
		if sc.ChapterID == chapterID {
			out = append(out, sc)
		}
	}
	slices.SortFunc(out, CompareScenes)
	return out
}

// ProjectChapters returns the chapters of a project in display order.
func (s *Store) ProjectChapters(projectID string) []model.Chapter {
	var out []model.Chapter
	for _, ch := range s.Chapters() {
		if ch.ProjectID == projectID {
			out = append(out, ch)
		}
	}
	slices.SortFunc(out, CompareChapters)
	return out
}

func (s *Store) FindProject(id string) (model.Project, bool) {
	for _, p := range s.Projects() {
		if p.ID == id {
			return p, true
		}
	}
	return model.Project{}, false
}

func (s *Store) FindChapter(id string) (model.Chapter, bool) {
	for _, ch := range s.Chapters() {
		if ch.ID == id {
			return ch, true
		}
	}
	return model.Chapter{}, false
}

func (s *Store) FindScene(id string) (model.Scene, bool) {
	for _, sc := range s.Scenes() {
		if sc.ID == id {
			return sc, true
		}
	}
	return model.Scene{}, false
}
