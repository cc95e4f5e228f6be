package status

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDescribe_TotalOverEnumeration(t *testing.T) {
	for _, s := range All() {
		d, err := Describe(s)
		if err != nil {
			t.Fatalf("Describe(%s): unexpected error: %v", s, err)
		}
		if d.Icon == "" || d.Label == "" || d.StyleClass == "" {
			t.Fatalf("Describe(%s): expected non-empty descriptor, got %+v", s, d)
		}
	}
	if got := len(All()); got != 4 {
		t.Fatalf("expected 4 statuses, got %d", got)
	}
}

func TestDescribe_OutOfEnumerationIsRejected(t *testing.T) {
	_, err := Describe(Status(42))
	var ie *IntegrityError
	if !errors.As(err, &ie) {
		t.Fatalf("expected IntegrityError, got %v", err)
	}
	if _, err := DefaultTable().Describe(statusCount); !errors.As(err, &ie) {
		t.Fatalf("expected IntegrityError from Table.Describe, got %v", err)
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"draft", Draft, false},
		{"DRAFT", Draft, false},
		{"in-progress", InProgress, false},
		{"in_progress", InProgress, false},
		{" In Progress ", InProgress, false},
		{"review", Review, false},
		{"done", Done, false},
		{"", 0, true},
		{"todo", 0, true},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("Parse(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q): expected %s, got %s", tc.in, tc.want, got)
		}
	}
}

func TestWorkflow_NextPrev(t *testing.T) {
	if Draft.Next() != InProgress || InProgress.Next() != Review || Review.Next() != Done {
		t.Fatalf("unexpected forward workflow")
	}
	if Done.Next() != Done {
		t.Fatalf("expected done to stay done")
	}
	if Draft.Prev() != Draft || Done.Prev() != Review {
		t.Fatalf("unexpected backward workflow")
	}
	if !Done.IsEndState() || Review.IsEndState() {
		t.Fatalf("expected only done to be an end state")
	}
}

func TestStatus_JSONUsesCanonicalID(t *testing.T) {
	type doc struct {
		Status Status `json:"status"`
	}
	b, err := json.Marshal(doc{Status: InProgress})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"status":"in-progress"}` {
		t.Fatalf("unexpected json: %s", b)
	}

	var got doc
	if err := json.Unmarshal([]byte(`{"status":"review"}`), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Status != Review {
		t.Fatalf("expected review, got %s", got.Status)
	}
	if err := json.Unmarshal([]byte(`{"status":"archived"}`), &got); err == nil {
		t.Fatalf("expected unknown status to be rejected")
	}
	if _, err := json.Marshal(doc{Status: Status(9)}); err == nil {
		t.Fatalf("expected marshal of invalid status to fail")
	}
}

func TestTable_Overrides(t *testing.T) {
	tbl, err := NewTable(map[string]Override{
		"review": {Label: "Edit pass"},
		"done":   {Icon: "✓"},
	})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	d, _ := tbl.Describe(Review)
	if d.Label != "Edit pass" || d.Icon != "◑" || d.StyleClass != "status-review" {
		t.Fatalf("unexpected review descriptor: %+v", d)
	}
	d, _ = tbl.Describe(Done)
	if d.Icon != "✓" || d.Label != "Done" {
		t.Fatalf("unexpected done descriptor: %+v", d)
	}
	if _, err := tbl.Describe(Status(7)); err == nil {
		t.Fatalf("expected error for invalid status")
	}

	if _, err := NewTable(map[string]Override{"revew": {Label: "x"}}); err == nil {
		t.Fatalf("expected unknown override key to fail")
	}
}

func TestTable_ASCIIKeepsOverriddenIcons(t *testing.T) {
	tbl, err := NewTable(map[string]Override{"done": {Icon: "v"}})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	ascii := tbl.ASCII()
	for _, s := range All() {
		d, err := ascii.Describe(s)
		if err != nil {
			t.Fatalf("Describe(%v): %v", s, err)
		}
		if s == Done {
			if d.Icon != "v" {
				t.Fatalf("override icon lost: %+v", d)
			}
			continue
		}
		for _, r := range d.Icon {
			if r > 127 {
				t.Fatalf("expected ascii icon for %v, got %q", s, d.Icon)
			}
		}
	}
	// The source table is untouched.
	if d, _ := tbl.Describe(Draft); d.Icon != "○" {
		t.Fatalf("ASCII mutated the receiver: %+v", d)
	}
}

func TestParseLenient_UnknownIsNotValid(t *testing.T) {
	if got := ParseLenient("Review"); got != Review {
		t.Fatalf("ParseLenient(Review) = %s", got)
	}
	got := ParseLenient("archived")
	if got != Unknown || got.Valid() {
		t.Fatalf("expected Unknown, got %s (valid=%v)", got, got.Valid())
	}
	var ie *IntegrityError
	if _, err := Describe(got); !errors.As(err, &ie) {
		t.Fatalf("expected IntegrityError from Describe, got %v", err)
	}
	if got.Next() != Unknown || got.Prev() != Unknown {
		t.Fatalf("expected workflow steps to leave Unknown alone")
	}
}
