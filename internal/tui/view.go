package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"quire-cli/internal/caret"
	"quire-cli/internal/model"
	"quire-cli/internal/status"
)

const maxSynopsisLines = 4

// layout is the screen geometry shared by View and mouse handling.
//
//	row 0             title bar
//	rows mainTop..    outline pane | text pane (header, rule, body grid)
//	last row(s)       help (when expanded) and the status bar
type layout struct {
	leftW   int
	rightX  int
	rightW  int
	mainTop int
	mainH   int

	header []string
	bodyH  int
	grid   *caret.Grid
}

func (m appModel) mainHeight() int {
	h := m.height - 2
	if m.help.ShowAll {
		h -= lipgloss.Height(m.help.View(m.keys))
	}
	return max(h, 0)
}

func (m appModel) layout() layout {
	lay := layout{mainTop: 1, mainH: m.mainHeight()}
	if m.width <= 0 || lay.mainH <= 0 {
		return lay
	}

	lay.leftW = min(max(m.width/3, 20), 40)
	if m.width < 48 {
		lay.leftW = m.width / 2
	}
	// Outline pane, one rule column, one padding column.
	lay.rightX = lay.leftW + 2
	lay.rightW = max(m.width-lay.rightX, 0)

	lay.header = m.paneHeader(lay.rightW)
	lay.bodyH = max(lay.mainH-len(lay.header)-1, 0)

	if m.bodyID == "" || lay.rightW == 0 || lay.bodyH == 0 {
		return lay
	}
	all := caret.Layout(caret.TextBlock{ID: m.bodyID, Body: m.body}, lay.rightW)
	scroll := min(m.bodyScroll, max(len(all)-1, 0))
	end := min(scroll+lay.bodyH, len(all))
	lay.grid = &caret.Grid{
		X:     lay.rightX,
		Y:     lay.mainTop + len(lay.header) + 1,
		Width: lay.rightW,
		Lines: all[scroll:end],
	}
	return lay
}

// paneHeader is the text pane's title and, for scenes, the rendered synopsis.
func (m appModel) paneHeader(width int) []string {
	r, ok := m.selected()
	if !ok {
		return []string{styleMuted().Render("No projects yet. Run `quire import` or `quire projects create`.")}
	}
	title := lipgloss.NewStyle().Bold(true).Render(r.title())
	switch r.kind {
	case rowChapter:
		out := []string{title + glyphSep() + m.badge(r.chapter.Status, true)}
		for _, sc := range m.mirror.ChapterScenes(r.chapter.ID) {
			out = append(out, glyphBullet()+" "+m.badge(sc.Status, false)+" "+sc.Title)
		}
		return out
	case rowScene:
		out := []string{title + glyphSep() + m.badge(r.scene.Status, true)}
		if syn := RenderMarkdown(r.scene.Synopsis, width); syn != "" {
			lines := strings.Split(syn, "\n")
			if len(lines) > maxSynopsisLines {
				lines = append(lines[:maxSynopsisLines-1], styleMuted().Render("…"))
			}
			out = append(out, lines...)
		}
		return out
	default:
		return []string{title}
	}
}

// badge renders a status icon (and label when withLabel). Values outside the enumeration show
// as an error marker rather than crashing the view.
func (m appModel) badge(s status.Status, withLabel bool) string {
	d, err := m.statuses.Describe(s)
	if err != nil {
		return lipgloss.NewStyle().Foreground(colorError).Render("!")
	}
	if glyphs() == glyphSetASCII {
		d, _ = m.statuses.ASCII().Describe(s)
	}
	text := d.Icon
	if withLabel {
		text += " " + d.Label
	}
	return styleStatusBadge(d.StyleClass).Render(text)
}

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	lay := m.layout()

	var b strings.Builder
	titleBar := lipgloss.NewStyle().Foreground(colorChromeFg).Render(fit(" quire"+glyphSep()+m.st.Dir, m.width))
	b.WriteString(titleBar)

	rule := styleMuted().Render(glyphVRule())
	for i := 0; i < lay.mainH; i++ {
		b.WriteString("\n")
		b.WriteString(m.outlineLine(m.listOffset+i, lay.leftW))
		b.WriteString(rule)
		b.WriteString(" ")
		b.WriteString(fit(m.textPaneLine(lay, i), lay.rightW))
	}

	if m.help.ShowAll {
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
	}
	b.WriteString("\n")
	b.WriteString(m.statusBar())
	return b.String()
}

func (m appModel) outlineLine(idx, width int) string {
	if idx < 0 || idx >= len(m.rows) {
		return strings.Repeat(" ", width)
	}
	r := m.rows[idx]
	indent := strings.Repeat("  ", r.depth)
	var lead string
	switch r.kind {
	case rowProject:
		lead = glyphTwistyExpanded()
	case rowChapter:
		lead = m.badge(r.chapter.Status, false)
	case rowScene:
		lead = m.badge(r.scene.Status, false)
	}
	line := fit(indent+lead+" "+r.title(), width)
	if idx == m.cursor {
		return lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg).Render(xansi.Strip(line))
	}
	return line
}

func (m appModel) textPaneLine(lay layout, i int) string {
	if i < len(lay.header) {
		return lay.header[i]
	}
	if i == len(lay.header) {
		return styleMuted().Render(strings.Repeat(glyphHRule(), lay.rightW))
	}
	if lay.grid == nil {
		return ""
	}
	li := i - len(lay.header) - 1
	if li >= len(lay.grid.Lines) {
		return ""
	}
	return m.renderBodyLine(lay.grid.Lines, li)
}

// renderBodyLine draws one grid line with the caret (reverse video) when it falls on it. An
// offset at a wrap point belongs to the start of the next row.
func (m appModel) renderBodyLine(lines []caret.Line, i int) string {
	ln := lines[i]
	if !m.hasCaret || m.caret.Container == nil || m.caret.Container.ContainerID() != m.bodyID {
		return ln.Text
	}
	runes := []rune(ln.Text)
	at := m.caret.Offset - ln.Start
	cursor := lipgloss.NewStyle().Reverse(true)
	switch {
	case at >= 0 && at < len(runes):
		return string(runes[:at]) + cursor.Render(string(runes[at])) + string(runes[at+1:])
	case at == len(runes) && (i+1 >= len(lines) || lines[i+1].Start != m.caret.Offset):
		return ln.Text + cursor.Render(" ")
	default:
		return ln.Text
	}
}

func (m appModel) statusBar() string {
	if m.flash != "" {
		st := styleMuted()
		if m.flashErr {
			st = lipgloss.NewStyle().Foreground(colorError)
		}
		return fit(st.Render(m.flash), m.width)
	}
	var info string
	r, ok := m.selected()
	switch {
	case !ok:
	case m.hasCaret:
		info = fmt.Sprintf("%s%scaret %d", m.caretLocation(), glyphSep(), m.caret.Offset)
	case r.kind == rowScene:
		info = r.id() + glyphSep() + "click in the text to place the caret"
	default:
		info = r.id()
	}
	left := styleMuted().Render(info)
	right := m.help.ShortHelpView(m.keys.ShortHelp())
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return fit(left, m.width)
	}
	return left + strings.Repeat(" ", gap) + right
}

// caretLocation names the scene under the caret with its place in the outline, e.g.
// "Novel → One → Dock 2/5".
func (m appModel) caretLocation() string {
	id := m.caret.Container.ContainerID()
	sc, ok := m.mirror.FindScene(id)
	if !ok {
		return id
	}
	ch, _ := m.mirror.FindChapter(sc.ChapterID)
	p, _ := m.mirror.FindProject(ch.ProjectID)
	sibs := m.mirror.ChapterScenes(sc.ChapterID)
	n := slices.IndexFunc(sibs, func(x model.Scene) bool { return x.ID == sc.ID }) + 1
	sep := " " + glyphArrowRight() + " "
	return fmt.Sprintf("%s%s%s%s%s %d/%d", p.Title, sep, ch.Title, sep, sc.Title, n, len(sibs))
}

// fit truncates or pads s to exactly w cells.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if xansi.StringWidth(s) > w {
		s = xansi.Truncate(s, w, "…")
	}
	return s + strings.Repeat(" ", max(w-xansi.StringWidth(s), 0))
}
