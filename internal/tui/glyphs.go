package tui

import (
	"strings"
	"sync"
)

// Terminal apps can't change the user's font, so UI affordances (twisties, separators,
// status icons) come in a Unicode and an ASCII set.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func parseGlyphSet(v string) glyphSet {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "ascii":
		return glyphSetASCII
	default:
		return glyphSetUnicode
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphTwistyExpanded() string {
	if glyphs() == glyphSetASCII {
		return "v"
	}
	return "▾"
}

func glyphBullet() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "•"
}

func glyphVRule() string {
	if glyphs() == glyphSetASCII {
		return "|"
	}
	return "│"
}

func glyphHRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}

func glyphSep() string {
	if glyphs() == glyphSetASCII {
		return " - "
	}
	return " · "
}

func glyphArrowRight() string {
	if glyphs() == glyphSetASCII {
		return "->"
	}
	return "→"
}
