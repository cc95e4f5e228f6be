package outline

import (
	"fmt"

	"quire-cli/internal/model"
)

// Violation is one integrity problem in a snapshot.
type Violation struct {
	Kind     string `json:"kind"`
	EntityID string `json:"entityId"`
	Detail   string `json:"detail"`
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s %s: %s", v.Kind, v.EntityID, v.Detail)
}

const (
	ViolationDuplicateID   = "duplicate-id"
	ViolationMissingParent = "missing-parent"
	ViolationBadStatus     = "bad-status"
)

// Validate checks a snapshot against the outline invariants. The store itself never calls
// this; it is for the data source and for diagnostics.
func Validate(projects []model.Project, chapters []model.Chapter, scenes []model.Scene) []Violation {
	var out []Violation

	projectIDs := map[string]bool{}
	for _, p := range projects {
		if projectIDs[p.ID] {
			out = append(out, Violation{Kind: ViolationDuplicateID, EntityID: p.ID, Detail: "project id used more than once"})
		}
		projectIDs[p.ID] = true
	}

	chapterIDs := map[string]bool{}
	for _, ch := range chapters {
		if chapterIDs[ch.ID] {
			out = append(out, Violation{Kind: ViolationDuplicateID, EntityID: ch.ID, Detail: "chapter id used more than once"})
		}
		chapterIDs[ch.ID] = true
		if !projectIDs[ch.ProjectID] {
			out = append(out, Violation{Kind: ViolationMissingParent, EntityID: ch.ID, Detail: "project not found: " + ch.ProjectID})
		}
		if !ch.Status.Valid() {
			out = append(out, Violation{Kind: ViolationBadStatus, EntityID: ch.ID, Detail: ch.Status.String()})
		}
	}

	sceneIDs := map[string]bool{}
	for _, sc := range scenes {
		if sceneIDs[sc.ID] {
			out = append(out, Violation{Kind: ViolationDuplicateID, EntityID: sc.ID, Detail: "scene id used more than once"})
		}
		sceneIDs[sc.ID] = true
		if !chapterIDs[sc.ChapterID] {
			out = append(out, Violation{Kind: ViolationMissingParent, EntityID: sc.ID, Detail: "chapter not found: " + sc.ChapterID})
		}
		if !sc.Status.Valid() {
			out = append(out, Violation{Kind: ViolationBadStatus, EntityID: sc.ID, Detail: sc.Status.String()})
		}
	}
	return out
}

// Validate checks the store's current snapshot.
func (s *Store) Validate() []Violation {
	return Validate(s.Projects(), s.Chapters(), s.Scenes())
}
