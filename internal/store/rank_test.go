package store

import (
	"errors"
	"testing"
)

func TestRankBetween(t *testing.T) {
	cases := []struct {
		lo, hi string
	}{
		{"", ""},
		{"h", ""},
		{"", "h"},
		{"a", "b"},
		{"a5", "b"},
		{"h", "h1"},
		{"0", "1"},
	}
	for _, tc := range cases {
		r, err := RankBetween(tc.lo, tc.hi)
		if err != nil {
			t.Fatalf("RankBetween(%q, %q): unexpected error: %v", tc.lo, tc.hi, err)
		}
		if tc.lo != "" && !(tc.lo < r) {
			t.Fatalf("RankBetween(%q, %q) = %q: not after lower bound", tc.lo, tc.hi, r)
		}
		if tc.hi != "" && !(r < tc.hi) {
			t.Fatalf("RankBetween(%q, %q) = %q: not before upper bound", tc.lo, tc.hi, r)
		}
	}
}

func TestRankBetween_Errors(t *testing.T) {
	if _, err := RankBetween("y", "y0"); !errors.Is(err, ErrNoRankSpace) {
		t.Fatalf("expected ErrNoRankSpace for prefix-adjacent bounds, got %v", err)
	}
	if _, err := RankBetween("b", "a"); !errors.Is(err, ErrRankOrder) {
		t.Fatalf("expected ErrRankOrder, got %v", err)
	}
	if _, err := RankBetween("a!", ""); !errors.Is(err, ErrRankBadDigit) {
		t.Fatalf("expected ErrRankBadDigit, got %v", err)
	}
}

func TestRankInitialAndAppend(t *testing.T) {
	r, err := RankInitial()
	if err != nil || r != "h" {
		t.Fatalf("RankInitial = %q, %v", r, err)
	}

	ranks := []string{}
	for i := 0; i < 40; i++ {
		next, err := RankAppend(ranks)
		if err != nil {
			t.Fatalf("RankAppend #%d: %v", i, err)
		}
		if len(ranks) > 0 && !(ranks[len(ranks)-1] < next) {
			t.Fatalf("RankAppend #%d: %q does not sort after %q", i, next, ranks[len(ranks)-1])
		}
		ranks = append(ranks, next)
	}
}

func TestRankBetweenUnique_SkipsExisting(t *testing.T) {
	first, _ := RankBetween("a", "c")
	got, err := RankBetweenUnique(map[string]bool{first: true}, "a", "c")
	if err != nil {
		t.Fatalf("RankBetweenUnique: %v", err)
	}
	if got == first {
		t.Fatalf("expected a rank other than %q", first)
	}
	if !("a" < got && got < "c") {
		t.Fatalf("rank %q out of bounds", got)
	}
}

func TestRankBetween_RepeatedInsertAfterSameRankKeepsRoom(t *testing.T) {
	lo, hi := "a", "b"
	for i := 0; i < 60; i++ {
		r, err := RankBetween(lo, hi)
		if err != nil {
			t.Fatalf("insert #%d between %q and %q: %v", i, lo, hi, err)
		}
		if !(lo < r && r < hi) {
			t.Fatalf("insert #%d: %q not between %q and %q", i, r, lo, hi)
		}
		hi = r
	}
}

func TestRankBetween_AdjacentDigitsExtendLowerBound(t *testing.T) {
	cases := []struct{ lo, hi, want string }{
		{"h", "i", "hh"},
		{"", "1", "0h"},
		{"h", "h1", "h0h"},
		{"hz", "i", "hzh"},
	}
	for _, tc := range cases {
		got, err := RankBetween(tc.lo, tc.hi)
		if err != nil || got != tc.want {
			t.Fatalf("RankBetween(%q, %q) = %q, %v; want %q", tc.lo, tc.hi, got, err, tc.want)
		}
	}
}

func TestRankSpread(t *testing.T) {
	for _, n := range []int{1, 3, 8, 40, 500} {
		ranks := RankSpread(n)
		if len(ranks) != n {
			t.Fatalf("RankSpread(%d): got %d ranks", n, len(ranks))
		}
		for i := 1; i < n; i++ {
			if !(ranks[i-1] < ranks[i]) {
				t.Fatalf("RankSpread(%d): %q does not sort before %q", n, ranks[i-1], ranks[i])
			}
			if _, err := RankBetween(ranks[i-1], ranks[i]); err != nil {
				t.Fatalf("RankSpread(%d): no room between %q and %q: %v", n, ranks[i-1], ranks[i], err)
			}
		}
	}
	if RankSpread(0) != nil {
		t.Fatalf("expected nil for n=0")
	}
}
