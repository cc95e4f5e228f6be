package caret

import (
	"strings"
	"unicode"

	xansi "github.com/charmbracelet/x/ansi"
)

// Line is one rendered terminal row of a container's text.
//
// Text may carry ANSI styling, but its visible runes must be exactly the container runes
// starting at Start.
type Line struct {
	Container Container
	Start     int
	Text      string
	Indent    int
}

// Grid is a block of rendered lines whose top-left cell is at (X, Y). Lines[i] is drawn on row
// Y+i. A nil Container marks a chrome row that holds no text.
//
// Grid implements PositionHitTester. A point right of a line's last cell clamps to the end of
// that line; a point outside the block's rows, left of a line, or at/after Width (when set) is
// unresolved.
type Grid struct {
	X, Y  int
	Width int
	Lines []Line
}

func (g *Grid) PositionFromPoint(x, y int) (Position, bool) {
	if g == nil {
		return Position{}, false
	}
	row := y - g.Y
	if row < 0 || row >= len(g.Lines) {
		return Position{}, false
	}
	if g.Width > 0 && x-g.X >= g.Width {
		return Position{}, false
	}
	ln := g.Lines[row]
	if ln.Container == nil {
		return Position{}, false
	}
	col := x - g.X - ln.Indent
	if col < 0 {
		return Position{}, false
	}

	cells := 0
	n := 0
	for _, r := range xansi.Strip(ln.Text) {
		w := runeCells(r)
		if col < cells+w {
			// Left half of a glyph is the boundary before it, right half the one after.
			if col-cells < (w+1)/2 {
				return Position{Container: ln.Container, Offset: ln.Start + n}, true
			}
			return Position{Container: ln.Container, Offset: ln.Start + n + 1}, true
		}
		cells += w
		n++
	}
	return Position{Container: ln.Container, Offset: ln.Start + n}, true
}

// RangeGrid exposes a Grid through range hit-testing (collapsed ranges).
type RangeGrid struct {
	Grid *Grid
}

func (rg RangeGrid) RangeFromPoint(x, y int) (Range, bool) {
	pos, ok := rg.Grid.PositionFromPoint(x, y)
	if !ok {
		return Range{}, false
	}
	return Range{Start: pos, End: pos}, true
}

// Layout wraps c's text to width cells and returns one Line per row. Paragraphs ("\n") always
// start a new row; long paragraphs break after the last space that fits, or mid-word when a
// word is wider than the row. width <= 0 disables wrapping.
func Layout(c Container, width int) []Line {
	var out []Line
	offset := 0
	for _, para := range strings.Split(c.Text(), "\n") {
		runes := []rune(para)
		if len(runes) == 0 {
			out = append(out, Line{Container: c, Start: offset})
		}
		for start := 0; start < len(runes); {
			end := wrapEnd(runes, start, width)
			out = append(out, Line{Container: c, Start: offset + start, Text: string(runes[start:end])})
			start = end
		}
		offset += len(runes) + 1
	}
	return out
}

func wrapEnd(runes []rune, start, width int) int {
	if width <= 0 {
		return len(runes)
	}
	cells := 0
	lastBreak := -1
	for i := start; i < len(runes); i++ {
		w := runeCells(runes[i])
		if cells+w > width {
			if lastBreak > start {
				return lastBreak
			}
			if i == start {
				return i + 1
			}
			return i
		}
		cells += w
		if unicode.IsSpace(runes[i]) {
			lastBreak = i + 1
		}
	}
	return len(runes)
}

func runeCells(r rune) int {
	return xansi.StringWidth(string(r))
}
