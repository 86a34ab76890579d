package tui

import (
	"os"
	"strings"
	"sync"

	"dashboard-cli/internal/store"
)

// Terminal apps can't change the user's actual font. Instead, we can choose
// between Unicode and ASCII glyph sets for UI affordances (checkboxes, widget
// icons, arrows). This helps on terminals/fonts that don't render some glyphs cleanly.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference reads DASHBOARD_TUI_GLYPHS, falling back to tui.glyphs in the config.
func applyGlyphPreference(cfg *store.GlobalConfig) {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("DASHBOARD_TUI_GLYPHS")))
	if v == "" && cfg != nil && cfg.TUI != nil {
		v = strings.ToLower(strings.TrimSpace(cfg.TUI.Glyphs))
	}
	switch v {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
		// Unknown value: ignore.
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

func glyphCheckbox(checked bool) string {
	if glyphs() == glyphSetASCII {
		if checked {
			return "[x]"
		}
		return "[ ]"
	}
	if checked {
		return "☑"
	}
	return "☐"
}

// glyphGrab marks the widget being carried in move mode.
func glyphGrab() string {
	if glyphs() == glyphSetASCII {
		return "="
	}
	return "≡"
}

func glyphHRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}

var unicodeWidgetIcons = map[string]string{
	"users":     "👥",
	"contact":   "📇",
	"handshake": "🤝",
	"checklist": "✅",
	"chart":     "📈",
	"bolt":      "⚡",
	"pie":       "◔",
	"calendar":  "📅",
	"activity":  "↯",
	"bell":      "🔔",
}

var asciiWidgetIcons = map[string]string{
	"users":     "U",
	"contact":   "C",
	"handshake": "D",
	"checklist": "A",
	"chart":     "P",
	"bolt":      "Q",
	"pie":       "S",
	"calendar":  "M",
	"activity":  "R",
	"bell":      "T",
}

// glyphWidgetIcon maps a registry icon name to a glyph; unknown names render as a bullet.
func glyphWidgetIcon(icon string) string {
	icons := unicodeWidgetIcons
	fallback := "•"
	if glyphs() == glyphSetASCII {
		icons = asciiWidgetIcons
		fallback = "*"
	}
	if g, ok := icons[icon]; ok {
		return g
	}
	return fallback
}
