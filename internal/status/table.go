package status

import "strings"

// Override replaces the label and/or icon of a status. Empty fields keep the default.
type Override struct {
	Label string `mapstructure:"label" json:"label,omitempty"`
	Icon  string `mapstructure:"icon" json:"icon,omitempty"`
}

// Table is the descriptor mapping with user overrides applied. Style classes are fixed.
type Table struct {
	descs [statusCount]Descriptor
}

// NewTable builds a Table from overrides keyed by status id. Unknown keys are returned as an
// error so a typo in the config file does not silently do nothing.
func NewTable(overrides map[string]Override) (*Table, error) {
	t := &Table{}
	copy(t.descs[:], defaults[:])
	for k, ov := range overrides {
		s, err := Parse(k)
		if err != nil {
			return nil, err
		}
		if v := strings.TrimSpace(ov.Label); v != "" {
			t.descs[s].Label = v
		}
		if v := strings.TrimSpace(ov.Icon); v != "" {
			t.descs[s].Icon = v
		}
	}
	return t, nil
}

// DefaultTable has no overrides.
func DefaultTable() *Table {
	t, _ := NewTable(nil)
	return t
}

func (t *Table) Describe(s Status) (Descriptor, error) {
	if t == nil {
		return Describe(s)
	}
	if !s.Valid() {
		return Descriptor{}, &IntegrityError{Value: s.String()}
	}
	return t.descs[s], nil
}

// Entry is one row of the descriptor table, used by listings.
type Entry struct {
	ID         string `json:"id"`
	EndState   bool   `json:"endState"`
	Descriptor `json:"descriptor"`
}

func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, statusCount)
	for _, s := range All() {
		d, _ := t.Describe(s)
		out = append(out, Entry{ID: s.String(), EndState: s.IsEndState(), Descriptor: d})
	}
	return out
}

// asciiIcons stand in for the default icons on terminals without the geometric glyphs.
var asciiIcons = [...]string{"[ ]", "[~]", "[?]", "[x]"}

var (
	_ [len(asciiIcons) - int(statusCount)]struct{}
	_ [int(statusCount) - len(asciiIcons)]struct{}
)

// ASCII returns a copy of t whose default icons are replaced with ASCII ones.
// Icons set through an override are kept.
func (t *Table) ASCII() *Table {
	if t == nil {
		t = DefaultTable()
	}
	out := &Table{descs: t.descs}
	for i := range out.descs {
		if out.descs[i].Icon == defaults[i].Icon {
			out.descs[i].Icon = asciiIcons[i]
		}
	}
	return out
}
