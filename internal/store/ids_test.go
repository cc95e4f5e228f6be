package store

import (
	"strings"
	"testing"
)

func TestNewID_PrefixAndLength(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id, err := NewID("scn")
		if err != nil {
			t.Fatalf("NewID: %v", err)
		}
		if !strings.HasPrefix(id, "scn-") || len(id) != len("scn-")+8 {
			t.Fatalf("unexpected id %q", id)
		}
		if id != strings.ToLower(id) {
			t.Fatalf("expected lowercase id, got %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestContentRef(t *testing.T) {
	if got := ContentRef("scn-abcd1234"); got != "body-abcd1234" {
		t.Fatalf("ContentRef = %q", got)
	}
}
