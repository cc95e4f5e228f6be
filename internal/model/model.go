package model

import (
	"time"

	"quire-cli/internal/status"
)

type Project struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Rank      string    `json:"rank"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Chapter belongs to exactly one project; ProjectID is a back-reference only.
type Chapter struct {
	ID        string        `json:"id"`
	ProjectID string        `json:"projectId"`
	Title     string        `json:"title"`
	Rank      string        `json:"rank"`
	Status    status.Status `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Scene belongs to exactly one chapter.
type Scene struct {
	ID        string        `json:"id"`
	ChapterID string        `json:"chapterId"`
	Title     string        `json:"title"`
	Rank      string        `json:"rank"`
	Status    status.Status `json:"status"`

	// ContentRef points at the scene body. The body itself is owned by the editor.
	ContentRef string `json:"contentRef,omitempty"`
	Synopsis   string `json:"synopsis,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Event struct {
	ID       string    `json:"id"`
	TS       time.Time `json:"ts"`
	Type     string    `json:"type"`
	EntityID string    `json:"entityId"`
	Payload  any       `json:"payload"`
}

// Event types appended by mutating commands.
const (
	EventProjectCreate    = "project.create"
	EventChapterCreate    = "chapter.create"
	EventSceneCreate      = "scene.create"
	EventChapterSetStatus = "chapter.set_status"
	EventSceneSetStatus   = "scene.set_status"
	EventChapterMove      = "chapter.move"
	EventSceneMove        = "scene.move"
	EventSceneWriteBody   = "scene.write_body"
	EventOutlineImport    = "outline.import"
)
