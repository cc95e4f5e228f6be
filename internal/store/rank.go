package store

import (
	"errors"
	"strings"
)

// Ranks are lowercase base36 strings compared lexicographically. New ranks are computed as a
// midpoint between neighbours (fractional indexing), so reordering touches one entity.

const rankAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

var (
	ErrNoRankSpace  = errors.New("no space between ranks")
	ErrRankOrder    = errors.New("rank lower bound must sort before upper bound")
	ErrRankBadDigit = errors.New("invalid rank character")
)

func rankDigit(c byte) (int, bool) {
	i := strings.IndexByte(rankAlphabet, c)
	return i, i >= 0
}

func normRank(r string) string { return strings.ToLower(strings.TrimSpace(r)) }

// RankBetween returns a rank strictly between lo and hi. Either bound may be empty (open).
func RankBetween(lo, hi string) (string, error) {
	lo, hi = normRank(lo), normRank(hi)
	if lo != "" && hi != "" && lo >= hi {
		return "", ErrRankOrder
	}

	for _, r := range []string{lo, hi} {
		for i := 0; i < len(r); i++ {
			if _, ok := rankDigit(r[i]); !ok {
				return "", ErrRankBadDigit
			}
		}
	}

	inside := func(r string) bool {
		return r != "" && (lo == "" || lo < r) && (hi == "" || r < hi)
	}

	prefix := make([]byte, 0, 8)
	for i := 0; i < 256; i++ {
		dlo, dhi := 0, len(rankAlphabet)-1
		if i < len(lo) {
			dlo, _ = rankDigit(lo[i])
		}
		if i < len(hi) {
			dhi, _ = rankDigit(hi[i])
		}

		switch {
		case dlo == dhi:
			prefix = append(prefix, rankAlphabet[dlo])
		case dhi-dlo > 1:
			r := string(append(prefix, rankAlphabet[dlo+(dhi-dlo)/2]))
			if !inside(r) {
				// e.g. "y" and "y0": nothing sorts strictly between them.
				return "", ErrNoRankSpace
			}
			return r, nil
		default:
			// Adjacent digits: keep lo's digit and place the rest midway after lo's tail, so
			// the new rank leaves room on both sides.
			rest := ""
			if i+1 < len(lo) {
				rest = lo[i+1:]
			}
			tail, err := RankBetween(rest, "")
			if err != nil {
				return "", err
			}
			r := string(append(prefix, rankAlphabet[dlo])) + tail
			if !inside(r) {
				return "", ErrNoRankSpace
			}
			return r, nil
		}
	}
	return "", ErrNoRankSpace
}

func RankAfter(lo string) (string, error)  { return RankBetween(lo, "") }
func RankBefore(hi string) (string, error) { return RankBetween("", hi) }
func RankInitial() (string, error)         { return RankBetween("", "") }

// RankBetweenUnique is RankBetween that also avoids ranks already used by siblings, so equal
// ranks are never introduced by new writes.
func RankBetweenUnique(existing map[string]bool, lo, hi string) (string, error) {
	cur := normRank(lo)
	hi = normRank(hi)
	for i := 0; i < 256; i++ {
		r, err := RankBetween(cur, hi)
		if err != nil {
			return "", err
		}
		if !existing[r] {
			return r, nil
		}
		cur = r
	}
	return "", errors.New("unable to find unique rank")
}

// RankAppend returns a rank after every rank in siblings.
func RankAppend(siblings []string) (string, error) {
	existing := map[string]bool{}
	maxRank := ""
	for _, r := range siblings {
		r = normRank(r)
		existing[r] = true
		if r > maxRank {
			maxRank = r
		}
	}
	return RankBetweenUnique(existing, maxRank, "")
}

// RankSpread returns n evenly spaced, strictly increasing ranks of equal length. It is used to
// re-rank a sibling group when ties or crowding leave no room for an insert.
func RankSpread(n int) []string {
	if n <= 0 {
		return nil
	}
	width, space := 1, len(rankAlphabet)
	for space < 4*(n+1) {
		width++
		space *= len(rankAlphabet)
	}
	step := space / (n + 1)
	out := make([]string, n)
	for i := range out {
		v := (i + 1) * step
		b := make([]byte, width)
		for j := width - 1; j >= 0; j-- {
			b[j] = rankAlphabet[v%len(rankAlphabet)]
			v /= len(rankAlphabet)
		}
		out[i] = string(b)
	}
	return out
}
