package importer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"quire-cli/internal/model"
	"quire-cli/internal/mutate"
	"quire-cli/internal/outline"
	"quire-cli/internal/status"
	"quire-cli/internal/store"
)

const sample = `# draft outline
project "The Long Night" {
  chapter "Arrival" [review] {
    scene "Dock" [in-progress] "Mara steps off the ferry."
    scene "Inn"
  }
  chapter "Storm"
}
`

func TestParse_Structure(t *testing.T) {
	doc, err := ParseString("sample.quire", sample)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if len(doc.Projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(doc.Projects))
	}
	p := doc.Projects[0]
	if p.Title != "The Long Night" || len(p.Chapters) != 2 {
		t.Fatalf("unexpected project: %+v", p)
	}
	arrival := p.Chapters[0]
	if arrival.Status != "review" || len(arrival.Scenes) != 2 {
		t.Fatalf("unexpected chapter: %+v", arrival)
	}
	dock := arrival.Scenes[0]
	if dock.Status != "in-progress" || dock.Synopsis != "Mara steps off the ferry." {
		t.Fatalf("unexpected scene: %+v", dock)
	}
	if dock.Pos.Line != 4 {
		t.Fatalf("expected scene position on line 4, got %v", dock.Pos)
	}
	if len(p.Chapters[1].Scenes) != 0 {
		t.Fatalf("expected bodiless chapter to have no scenes")
	}
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := ParseString("bad.quire", `project "x" { chapter }`)
	if err == nil {
		t.Fatalf("expected syntax error")
	}
	if !strings.Contains(err.Error(), "bad.quire") {
		t.Fatalf("expected filename in error, got %v", err)
	}
}

func TestApply_CreatesOrderedTree(t *testing.T) {
	doc, err := ParseString("sample.quire", sample)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	snap := &store.Snapshot{}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	res, err := Apply(snap, doc, now)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Projects) != 1 || len(res.Chapters) != 2 || len(res.Scenes) != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}

	tree := outline.BuildTree(snap.Projects, snap.Chapters, snap.Scenes)
	if len(tree) != 1 || len(tree[0].Chapters) != 2 {
		t.Fatalf("unexpected tree: %+v", tree)
	}
	if got := tree[0].Chapters[0].Chapter; got.Title != "Arrival" || got.Status != status.Review {
		t.Fatalf("unexpected first chapter: %+v", got)
	}
	scenes := tree[0].Chapters[0].Scenes
	if scenes[0].Title != "Dock" || scenes[0].Status != status.InProgress || scenes[1].Status != status.Draft {
		t.Fatalf("unexpected scenes: %+v", scenes)
	}
	if scenes[0].ContentRef == "" {
		t.Fatalf("expected content ref on imported scene")
	}
	if v := outline.Validate(snap.Projects, snap.Chapters, snap.Scenes); len(v) != 0 {
		t.Fatalf("imported outline has violations: %v", v)
	}
}

func TestApply_AppendsAfterExisting(t *testing.T) {
	snap := &store.Snapshot{}
	if _, err := mutate.CreateProject(snap, "Existing", time.Now()); err != nil {
		t.Fatal(err)
	}
	doc, err := ParseString("one.quire", `project "Second" {}`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if _, err := Apply(snap, doc, time.Now()); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	tree := outline.BuildTree(snap.Projects, snap.Chapters, snap.Scenes)
	if len(tree) != 2 || tree[1].Project.Title != "Second" {
		t.Fatalf("expected import after existing project, got %+v", titles(snap.Projects))
	}
}

func TestApply_UnknownStatus(t *testing.T) {
	doc, err := ParseString("s.quire", `project "P" { chapter "C" [archived] }`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	_, err = Apply(&store.Snapshot{}, doc, time.Now())
	var ie *status.IntegrityError
	if !errors.As(err, &ie) {
		t.Fatalf("expected IntegrityError, got %v", err)
	}
}

func TestApply_EmptyTitle(t *testing.T) {
	doc, err := ParseString("s.quire", `project "" {}`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if _, err := Apply(&store.Snapshot{}, doc, time.Now()); !errors.Is(err, mutate.ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
}

func titles(ps []model.Project) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Title)
	}
	return out
}
