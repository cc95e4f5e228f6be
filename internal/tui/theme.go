package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// The TUI must stay readable on light and dark terminals, so colors are adaptive and "faint"
// is only applied on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      = ac("240", "243")
	colorChromeFg   = ac("240", "245")
	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorSelectedFg = ac("235", "255")
	colorSurfaceFg  = ac("235", "252")
	colorControlBg  = ac("252", "235")
	colorAccent     = ac("27", "62")
	colorError      = ac("160", "203")
)

// statusColors is keyed by Descriptor.StyleClass. Unknown classes fall back to muted.
var statusColors = map[string]lipgloss.AdaptiveColor{
	"status-draft":       ac("244", "245"),
	"status-in-progress": ac("#b58900", "#e5c07b"),
	"status-review":      ac("#6c71c4", "#c678dd"),
	"status-done":        ac("#2e7d32", "#98c379"),
}

func statusColor(class string) lipgloss.AdaptiveColor {
	if c, ok := statusColors[class]; ok {
		return c
	}
	return colorMuted
}

// StatusHex returns the foreground for a status style class on the given background,
// for callers that render outside Lip Gloss.
func StatusHex(class string, dark bool) string {
	c := statusColor(class)
	if dark {
		return c.Dark
	}
	return c.Light
}

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleStatusBadge(class string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(statusColor(class))
}

// applyColorProfilePreference honors NO_COLOR and otherwise trusts TERM/COLORTERM over
// termenv's detector, which under-reports on some terminals.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && profile > termenv.ANSI256 {
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection.
//
// Priority:
// 1) QUIRE_TUI_THEME=light|dark|auto
// 2) COLORFGBG heuristic ("fg;bg")
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("QUIRE_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			// xterm palette: 0-6 are dark colors.
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
