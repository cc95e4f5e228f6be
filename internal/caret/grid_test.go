package caret

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLayout_WrapsAtSpacesAndTracksOffsets(t *testing.T) {
	c := TextBlock{ID: "s", Body: "The quick brown fox\n\njumps"}
	lines := Layout(c, 10)

	type row struct {
		Start int
		Text  string
	}
	var got []row
	for _, ln := range lines {
		got = append(got, row{Start: ln.Start, Text: ln.Text})
	}
	want := []row{
		{Start: 0, Text: "The quick "},
		{Start: 10, Text: "brown fox"},
		{Start: 20, Text: ""},
		{Start: 21, Text: "jumps"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("layout mismatch (-want +got):\n%s", diff)
	}
}

func TestLayout_BreaksLongWords(t *testing.T) {
	lines := Layout(TextBlock{ID: "s", Body: "abcdefgh"}, 3)
	if len(lines) != 3 || lines[0].Text != "abc" || lines[2].Text != "gh" || lines[2].Start != 6 {
		t.Fatalf("unexpected lines: %+v", lines)
	}
}

func TestGrid_PositionFromPoint(t *testing.T) {
	c := TextBlock{ID: "s", Body: "The quick brown fox\n\njumps"}
	g := &Grid{X: 4, Y: 2, Lines: Layout(c, 10)}

	cases := []struct {
		name   string
		x, y   int
		want   int
		wantOK bool
	}{
		{"first cell", 4, 2, 0, true},
		{"inside first row", 8, 2, 4, true},
		{"second row", 4 + 6, 3, 16, true},
		{"right of row clamps to row end", 40, 3, 19, true},
		{"empty paragraph row", 4, 4, 20, true},
		{"last row end", 9, 5, 26, true},
		{"above block", 4, 1, 0, false},
		{"below block", 4, 6, 0, false},
		{"left of block", 3, 2, 0, false},
	}
	for _, tc := range cases {
		pos, ok := g.PositionFromPoint(tc.x, tc.y)
		if ok != tc.wantOK {
			t.Fatalf("%s: ok=%v want %v (pos %+v)", tc.name, ok, tc.wantOK, pos)
		}
		if !ok {
			continue
		}
		if pos.Offset != tc.want || pos.Container.ContainerID() != "s" {
			t.Fatalf("%s: expected offset %d, got %+v", tc.name, tc.want, pos)
		}
	}
}

func TestGrid_WideRunesSplitAtHalfCell(t *testing.T) {
	c := TextBlock{ID: "s", Body: "日本語"}
	g := &Grid{Lines: Layout(c, 0)}

	cases := []struct{ x, want int }{
		{0, 0}, // left half of 日
		{1, 1}, // right half of 日
		{2, 1},
		{3, 2},
		{5, 3},
		{9, 3},
	}
	for _, tc := range cases {
		pos, ok := g.PositionFromPoint(tc.x, 0)
		if !ok || pos.Offset != tc.want {
			t.Fatalf("x=%d: expected %d, got %+v ok=%v", tc.x, tc.want, pos, ok)
		}
	}
}

func TestGrid_IgnoresANSIAndChromeRows(t *testing.T) {
	c := TextBlock{ID: "s", Body: "hello"}
	g := &Grid{Width: 20, Lines: []Line{
		{Text: "── header ──"},
		{Container: c, Start: 0, Text: "\x1b[1mhel\x1b[0mlo", Indent: 2},
	}}

	if _, ok := g.PositionFromPoint(3, 0); ok {
		t.Fatalf("expected chrome row to be unresolved")
	}
	if _, ok := g.PositionFromPoint(1, 1); ok {
		t.Fatalf("expected indent cells to be unresolved")
	}
	pos, ok := g.PositionFromPoint(2+4, 1)
	if !ok || pos.Offset != 4 {
		t.Fatalf("expected offset 4, got %+v ok=%v", pos, ok)
	}
	if _, ok := g.PositionFromPoint(25, 1); ok {
		t.Fatalf("expected point past grid width to be unresolved")
	}
}

func TestRangeGrid_ResolvesThroughRangeCapability(t *testing.T) {
	c := TextBlock{ID: "s", Body: "abc"}
	r := New(RangeGrid{Grid: &Grid{Lines: Layout(c, 0)}})
	if r.Capability() != CapabilityRange {
		t.Fatalf("expected range capability, got %s", r.Capability())
	}
	pos, ok := r.Resolve(2, 0)
	if !ok || pos.Offset != 2 {
		t.Fatalf("expected offset 2, got %+v ok=%v", pos, ok)
	}
	if _, ok := r.Resolve(0, 3); ok {
		t.Fatalf("expected unresolved below text")
	}
}

func TestGrid_NilIsUnresolved(t *testing.T) {
	var g *Grid
	r := New(g)
	if r.Capability() != CapabilityPosition {
		t.Fatalf("expected position capability for typed nil grid")
	}
	if _, ok := r.Resolve(0, 0); ok {
		t.Fatalf("expected unresolved from nil grid")
	}
}
