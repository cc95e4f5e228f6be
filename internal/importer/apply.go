package importer

import (
	"fmt"
	"strings"
	"time"

	"quire-cli/internal/mutate"
	"quire-cli/internal/status"
	"quire-cli/internal/store"
)

// Result lists the ids created by Apply, in document order.
type Result struct {
	Projects []string `json:"projects"`
	Chapters []string `json:"chapters"`
	Scenes   []string `json:"scenes"`
}

// Apply creates every entity in doc inside snap. Entities are appended after any existing
// siblings. snap is left partially modified on error; callers only save on success.
func Apply(snap *store.Snapshot, doc *Document, now time.Time) (Result, error) {
	res := Result{Projects: []string{}, Chapters: []string{}, Scenes: []string{}}
	if doc == nil {
		return res, nil
	}
	for _, dp := range doc.Projects {
		p, err := mutate.CreateProject(snap, dp.Title, now)
		if err != nil {
			return res, fmt.Errorf("%s: project: %w", dp.Pos, err)
		}
		res.Projects = append(res.Projects, p.ID)

		for _, dc := range dp.Chapters {
			st, err := parseStatus(dc.Status)
			if err != nil {
				return res, fmt.Errorf("%s: chapter %q: %w", dc.Pos, dc.Title, err)
			}
			ch, err := mutate.CreateChapter(snap, p.ID, dc.Title, st, now)
			if err != nil {
				return res, fmt.Errorf("%s: chapter: %w", dc.Pos, err)
			}
			res.Chapters = append(res.Chapters, ch.ID)

			for _, ds := range dc.Scenes {
				st, err := parseStatus(ds.Status)
				if err != nil {
					return res, fmt.Errorf("%s: scene %q: %w", ds.Pos, ds.Title, err)
				}
				sc, err := mutate.CreateScene(snap, ch.ID, ds.Title, ds.Synopsis, st, now)
				if err != nil {
					return res, fmt.Errorf("%s: scene: %w", ds.Pos, err)
				}
				res.Scenes = append(res.Scenes, sc.ID)
			}
		}
	}
	return res, nil
}

func parseStatus(v string) (status.Status, error) {
	if strings.TrimSpace(v) == "" {
		return status.Draft, nil
	}
	return status.Parse(v)
}
