package tui

import (
	"os"
	"strconv"
	"strings"

	"dashboard-cli/internal/store"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted          = ac("240", "243")
	colorChromeMutedFg  = ac("240", "245")
	colorSelectedBg     = ac("#e9e9e9", "#262626")
	colorSelectedFg     = ac("235", "255")
	colorSelectedBorder = ac("232", "255")
	colorCardBorder     = ac("250", "243")

	colorSurfaceBg = ac("255", "235")
	colorSurfaceFg = ac("235", "252")
	colorControlBg = ac("252", "235")

	colorAccent   = ac("27", "62")
	colorAccentFg = ac("255", "235")
	colorHiddenFg = ac("246", "240")

	colorFlashErrorBg = ac("196", "160")
	colorFlashErrorFg = ac("255", "255")
)

// styleMuted is only faint on dark backgrounds; faint grey on white is unreadable.
func styleMuted() lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(colorMuted)
	if lipgloss.HasDarkBackground() {
		st = st.Faint(true)
	}
	return st
}

func styleFlashError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorFlashErrorFg).Background(colorFlashErrorBg).Padding(0, 1)
}

// applyColorProfilePreference picks the color profile for the TUI. Only NO_COLOR turns
// colors off; CLICOLOR is for piped CLI output and is ignored here.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()
	colorterm := strings.ToLower(os.Getenv("COLORTERM"))
	switch {
	case profile == termenv.Ascii:
	case strings.Contains(colorterm, "truecolor"), strings.Contains(colorterm, "24bit"):
		profile = termenv.TrueColor
	case profile == termenv.ANSI && strings.Contains(strings.ToLower(os.Getenv("TERM")), "256color"):
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
}

// themeSetting returns "light" or "dark" from DASHBOARD_TUI_THEME, else tui.theme in the
// config. "" means auto.
func themeSetting(cfg *store.GlobalConfig) string {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("DASHBOARD_TUI_THEME")))
	if v == "" && cfg != nil && cfg.TUI != nil {
		v = strings.ToLower(strings.TrimSpace(cfg.TUI.Theme))
	}
	if v == "light" || v == "dark" {
		return v
	}
	return ""
}

// darkBackgroundHint answers the light/dark question from settings alone: the theme
// setting, then DASHBOARD_TUI_DARKBG, then the COLORFGBG background index. ok is false when
// nothing is set and the terminal has to be asked.
func darkBackgroundHint(cfg *store.GlobalConfig) (dark, ok bool) {
	if th := themeSetting(cfg); th != "" {
		return th == "dark", true
	}
	if b, err := strconv.ParseBool(strings.TrimSpace(os.Getenv("DASHBOARD_TUI_DARKBG"))); err == nil {
		return b, true
	}
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil && bg >= 0 {
			return bg < 7, true
		}
	}
	return false, false
}

// applyThemePreference overrides lipgloss background detection when a hint is set, so
// AdaptiveColor picks the right variant on terminals that don't answer the query.
func applyThemePreference(cfg *store.GlobalConfig) {
	if dark, ok := darkBackgroundHint(cfg); ok {
		lipgloss.SetHasDarkBackground(dark)
	}
}
