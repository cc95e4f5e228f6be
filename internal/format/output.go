package format

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"
)

// Tabular is implemented by command results that have a row/column rendering.
type Tabular interface {
	TableHeader() []string
	TableRows() [][]string
}

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - table: uses the Tabular rendering of the envelope's "data" when it has one, JSON otherwise
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "table":
		if t, ok := tabularOf(v); ok {
			return WriteTable(w, t)
		}
		return WriteJSON(w, v, true)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteTable renders an aligned table with a bold header row.
// The header is plain unless w is a terminal and color is globally enabled.
func WriteTable(w io.Writer, t Tabular) error {
	bold := color.New(color.Bold)
	if !isTerminal(w) {
		bold.DisableColor()
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true

	header := t.TableHeader()
	cells := make([]any, len(header))
	for i, h := range header {
		cells[i] = bold.Sprint(h)
	}
	tbl.AddRow(cells...)
	for _, row := range t.TableRows() {
		cells := make([]any, len(row))
		for i, c := range row {
			cells[i] = c
		}
		tbl.AddRow(cells...)
	}

	_, err := fmt.Fprintln(w, tbl)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func tabularOf(v any) (Tabular, bool) {
	if t, ok := v.(Tabular); ok {
		return t, true
	}
	if env, ok := v.(map[string]any); ok {
		t, ok := env["data"].(Tabular)
		return t, ok
	}
	return nil, false
}
