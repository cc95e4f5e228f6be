package tui

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"quire-cli/internal/caret"
	"quire-cli/internal/feed"
	"quire-cli/internal/model"
	"quire-cli/internal/mutate"
	"quire-cli/internal/outline"
	"quire-cli/internal/status"
	"quire-cli/internal/store"
)

// outlineChangedMsg is sent whenever the mirror replaces a collection.
type outlineChangedMsg struct{}

type savedMsg struct {
	note string
	err  error
}

// refreshFailedMsg carries a failed reload, including the watcher's background ones.
type refreshFailedMsg struct{ err error }

// textHost is the text pane as a hit-testing host. It answers against the grid of the most
// recent layout, so one resolver serves the whole session.
type textHost struct {
	grid *caret.Grid
}

func (h *textHost) RangeFromPoint(x, y int) (caret.Range, bool) {
	return caret.RangeGrid{Grid: h.grid}.RangeFromPoint(x, y)
}

type appModel struct {
	st       store.Store
	mirror   *outline.Store
	feeder   *feed.Feeder
	statuses *status.Table

	keys keyMap
	help help.Model

	host     *textHost
	resolver caret.Resolver

	width  int
	height int

	rows       []row
	cursor     int
	listOffset int

	// Body of the selected scene, loaded on selection.
	bodyID     string
	body       string
	bodyScroll int

	caret    caret.Position
	hasCaret bool

	flash    string
	flashErr bool
}

func newAppModel(st store.Store, mirror *outline.Store, feeder *feed.Feeder, statuses *status.Table) appModel {
	if statuses == nil {
		statuses = status.DefaultTable()
	}
	host := &textHost{}
	m := appModel{
		st:       st,
		mirror:   mirror,
		feeder:   feeder,
		statuses: statuses,
		keys:     defaultKeyMap(),
		help:     help.New(),
		host:     host,
		resolver: caret.New(host),
	}
	m.rebuildRows()
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ensureCursorVisible()
		return m, nil

	case outlineChangedMsg:
		m.rebuildRows()
		m.loadBody(true)
		if m.flashErr && m.feeder.LastError() == nil {
			// Recovered from an earlier failed reload.
			m.setFlash("", false)
		}
		return m, nil

	case refreshFailedMsg:
		m.setFlash("reload failed: "+msg.err.Error(), true)
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.setFlash(msg.err.Error(), true)
		} else {
			m.setFlash(msg.note, false)
		}
		// The mirror was refreshed by the save command itself.
		m.rebuildRows()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.NextStatus):
		return m, m.cycleStatus(true)
	case key.Matches(msg, m.keys.PrevStatus):
		return m, m.cycleStatus(false)
	case key.Matches(msg, m.keys.CaretLeft):
		m.nudgeCaret(-1)
	case key.Matches(msg, m.keys.CaretRight):
		m.nudgeCaret(1)
	case key.Matches(msg, m.keys.ScrollUp):
		m.scrollBody(-m.pageSize())
	case key.Matches(msg, m.keys.ScrollDown):
		m.scrollBody(m.pageSize())
	case key.Matches(msg, m.keys.Reload):
		feeder := m.feeder
		return m, func() tea.Msg {
			if err := feeder.Refresh(context.Background()); err != nil {
				return savedMsg{err: err}
			}
			return savedMsg{note: "reloaded"}
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m appModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	lay := m.layout()
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBody(-3)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.scrollBody(3)
		return m, nil
	case tea.MouseButtonLeft:
	default:
		return m, nil
	}
	drag := msg.Action == tea.MouseActionMotion
	if msg.Action != tea.MouseActionPress && !drag {
		return m, nil
	}

	if msg.X < lay.leftW {
		if drag {
			return m, nil
		}
		if i := msg.Y - lay.mainTop; i >= 0 && i < lay.mainH {
			if idx := m.listOffset + i; idx < len(m.rows) {
				m.selectRow(idx)
			}
		}
		return m, nil
	}

	// The text pane answers range queries like an editor view. A click outside the text
	// (header, rule, empty rows) resolves to nothing and leaves the caret alone.
	m.host.grid = lay.grid
	pos, ok := m.resolver.Resolve(msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	m.caret = pos
	m.hasCaret = true
	return m, nil
}

// rebuildRows re-reads the mirror and keeps the selection on the same entity when it survives.
func (m *appModel) rebuildRows() {
	selected := ""
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		selected = m.rows[m.cursor].id()
	}
	m.rows = flattenTree(m.mirror.Tree())
	if i := indexOfRow(m.rows, selected); i >= 0 {
		m.cursor = i
	} else if m.cursor >= len(m.rows) {
		m.cursor = max(0, len(m.rows)-1)
	}
	m.ensureCursorVisible()
	m.loadBody(false)
}

func (m *appModel) moveCursor(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.selectRow(min(max(m.cursor+delta, 0), len(m.rows)-1))
}

func (m *appModel) selectRow(i int) {
	m.cursor = i
	m.ensureCursorVisible()
	m.loadBody(false)
}

func (m *appModel) selected() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

// loadBody fetches the selected scene's text. It is a no-op when the scene is already loaded
// unless force is set.
func (m *appModel) loadBody(force bool) {
	r, ok := m.selected()
	if !ok || r.kind != rowScene {
		m.bodyID, m.body, m.bodyScroll = "", "", 0
		m.hasCaret = false
		return
	}
	same := r.scene.ID == m.bodyID
	if same && !force {
		return
	}
	text, err := m.st.SceneBody(context.Background(), r.scene.ContentRef)
	if err != nil {
		m.setFlash(err.Error(), true)
	}
	m.body = text
	if same {
		// Reloaded under the caret: keep it, clamped to the new text.
		m.caret.Offset = min(m.caret.Offset, utf8.RuneCountInString(text))
		return
	}
	m.bodyID, m.bodyScroll = r.scene.ID, 0
	m.hasCaret = false
}

func (m *appModel) nudgeCaret(delta int) {
	if !m.hasCaret {
		return
	}
	m.caret.Offset = min(max(m.caret.Offset+delta, 0), utf8.RuneCountInString(m.body))
}

func (m *appModel) scrollBody(delta int) {
	if m.bodyID == "" {
		return
	}
	m.bodyScroll = max(m.bodyScroll+delta, 0)
}

func (m appModel) pageSize() int {
	return max(m.layout().bodyH-1, 1)
}

func (m *appModel) ensureCursorVisible() {
	h := m.mainHeight()
	if h <= 0 {
		return
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+h {
		m.listOffset = m.cursor - h + 1
	}
}

func (m *appModel) setFlash(s string, isErr bool) {
	m.flash = s
	m.flashErr = isErr
}

// cycleStatus moves the selected chapter or scene one step along the workflow, persists it and
// refreshes the mirror.
func (m appModel) cycleStatus(forward bool) tea.Cmd {
	r, ok := m.selected()
	if !ok || r.kind == rowProject {
		return func() tea.Msg { return savedMsg{note: "select a chapter or scene to change its status"} }
	}
	st, feeder, statuses := m.st, m.feeder, m.statuses
	return func() tea.Msg {
		ctx := context.Background()
		note, err := persistStatusStep(ctx, st, statuses, r, forward, time.Now().UTC())
		// Refresh even after a failed event append: the status itself may have been saved.
		if rerr := feeder.Refresh(ctx); err == nil {
			err = rerr
		}
		if err != nil {
			return savedMsg{err: err}
		}
		return savedMsg{note: note}
	}
}

func persistStatusStep(ctx context.Context, st store.Store, statuses *status.Table, r row, forward bool, now time.Time) (string, error) {
	snap, err := st.Load(ctx)
	if err != nil {
		return "", err
	}
	step := func(s status.Status) status.Status {
		if forward {
			return s.Next()
		}
		return s.Prev()
	}

	var (
		res   mutate.SetStatusResult
		to    status.Status
		typ   string
		title string
	)
	switch r.kind {
	case rowChapter:
		ch, ok := findByID(snap.Chapters, r.chapter.ID, func(c model.Chapter) string { return c.ID })
		if !ok {
			return "", mutate.NotFoundError{Kind: "chapter", ID: r.chapter.ID}
		}
		to, typ, title = step(ch.Status), model.EventChapterSetStatus, ch.Title
		if res, err = mutate.SetChapterStatus(snap, ch.ID, to, now); err != nil {
			return "", err
		}
		if res.Changed {
			err = st.SaveChapters(ctx, snap.Chapters)
		}
	case rowScene:
		sc, ok := findByID(snap.Scenes, r.scene.ID, func(s model.Scene) string { return s.ID })
		if !ok {
			return "", mutate.NotFoundError{Kind: "scene", ID: r.scene.ID}
		}
		to, typ, title = step(sc.Status), model.EventSceneSetStatus, sc.Title
		if res, err = mutate.SetSceneStatus(snap, sc.ID, to, now); err != nil {
			return "", err
		}
		if res.Changed {
			err = st.SaveScenes(ctx, snap.Scenes)
		}
	}
	if err != nil {
		return "", err
	}

	d, err := statuses.Describe(to)
	if err != nil {
		return "", err
	}
	if !res.Changed {
		return fmt.Sprintf("%s is already %s", title, d.Label), nil
	}
	if err := st.AppendEvent(ctx, typ, res.EntityID, res.EventPayload); err != nil {
		return "", fmt.Errorf("record %s: %w", typ, err)
	}
	return fmt.Sprintf("%s %s %s", title, glyphArrowRight(), d.Label), nil
}

func findByID[T any](xs []T, id string, idOf func(T) string) (T, bool) {
	for _, x := range xs {
		if idOf(x) == id {
			return x, true
		}
	}
	var zero T
	return zero, false
}
