package cli

import (
	"encoding/json"
	"strconv"

	"quire-cli/internal/model"
	"quire-cli/internal/outline"
	"quire-cli/internal/status"
)

// table is a list result that marshals as a plain JSON array and renders as rows with
// --format table.
type table[T any] struct {
	items  []T
	header []string
	row    func(T) []string
}

func newTable[T any](items []T, header []string, row func(T) []string) table[T] {
	if items == nil {
		items = []T{}
	}
	return table[T]{items: items, header: header, row: row}
}

func (t table[T]) MarshalJSON() ([]byte, error) { return json.Marshal(t.items) }
func (t table[T]) TableHeader() []string       { return t.header }

func (t table[T]) TableRows() [][]string {
	out := make([][]string, 0, len(t.items))
	for _, it := range t.items {
		out = append(out, t.row(it))
	}
	return out
}

func badgeText(statuses *status.Table, s status.Status) string {
	d, err := statuses.Describe(s)
	if err != nil {
		return "! " + err.Error()
	}
	return d.Icon + " " + d.Label
}

func projectsTable(ps []model.Project) table[model.Project] {
	return newTable(ps, []string{"ID", "TITLE", "RANK"}, func(p model.Project) []string {
		return []string{p.ID, p.Title, p.Rank}
	})
}

func chaptersTable(chs []model.Chapter, statuses *status.Table) table[model.Chapter] {
	return newTable(chs, []string{"ID", "STATUS", "TITLE", "PROJECT"}, func(c model.Chapter) []string {
		return []string{c.ID, badgeText(statuses, c.Status), c.Title, c.ProjectID}
	})
}

func scenesTable(scs []model.Scene, statuses *status.Table) table[model.Scene] {
	return newTable(scs, []string{"ID", "STATUS", "TITLE", "CHAPTER"}, func(s model.Scene) []string {
		return []string{s.ID, badgeText(statuses, s.Status), s.Title, s.ChapterID}
	})
}

func statusesTable(es []status.Entry) table[status.Entry] {
	return newTable(es, []string{"ID", "ICON", "LABEL", "STYLE", "END"}, func(e status.Entry) []string {
		return []string{e.ID, e.Icon, e.Label, e.StyleClass, strconv.FormatBool(e.EndState)}
	})
}

func eventsTable(evs []model.Event) table[model.Event] {
	return newTable(evs, []string{"TS", "TYPE", "ENTITY"}, func(e model.Event) []string {
		return []string{e.TS.Format("2006-01-02 15:04:05"), e.Type, e.EntityID}
	})
}

func violationsTable(vs []outline.Violation) table[outline.Violation] {
	return newTable(vs, []string{"KIND", "ENTITY", "DETAIL"}, func(v outline.Violation) []string {
		return []string{v.Kind, v.EntityID, v.Detail}
	})
}
