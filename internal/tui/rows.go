package tui

import (
	"quire-cli/internal/model"
	"quire-cli/internal/outline"
)

type rowKind int

const (
	rowProject rowKind = iota
	rowChapter
	rowScene
)

// row is one line of the outline pane.
type row struct {
	kind  rowKind
	depth int

	project model.Project
	chapter model.Chapter
	scene   model.Scene
}

func (r row) id() string {
	switch r.kind {
	case rowChapter:
		return r.chapter.ID
	case rowScene:
		return r.scene.ID
	default:
		return r.project.ID
	}
}

func (r row) title() string {
	switch r.kind {
	case rowChapter:
		return r.chapter.Title
	case rowScene:
		return r.scene.Title
	default:
		return r.project.Title
	}
}

// flattenTree lays the outline out depth-first in display order.
func flattenTree(tree []outline.ProjectNode) []row {
	var out []row
	for _, p := range tree {
		out = append(out, row{kind: rowProject, project: p.Project})
		for _, ch := range p.Chapters {
			out = append(out, row{kind: rowChapter, depth: 1, project: p.Project, chapter: ch.Chapter})
			for _, sc := range ch.Scenes {
				out = append(out, row{kind: rowScene, depth: 2, project: p.Project, chapter: ch.Chapter, scene: sc})
			}
		}
	}
	return out
}

func indexOfRow(rows []row, id string) int {
	if id == "" {
		return -1
	}
	for i, r := range rows {
		if r.id() == id {
			return i
		}
	}
	return -1
}
