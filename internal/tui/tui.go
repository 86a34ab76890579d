package tui

import (
	"os"
	"strings"

	"dashboard-cli/internal/store"
	"dashboard-cli/internal/widgets"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive dashboard against s. It blocks until the user quits.
func Run(s store.Store, reg widgets.Registry) error {
	cfg, err := store.LoadConfig()
	if err != nil {
		cfg = nil
	}
	applyColorProfilePreference()
	applyThemePreference(cfg)
	applyGlyphPreference(cfg)

	m := newAppModel(s, reg)
	if p := strings.TrimSpace(os.Getenv("DASHBOARD_TUI_DEBUG_LOG")); p != "" {
		f, err := tea.LogToFile(p, "dashboard")
		if err != nil {
			return err
		}
		defer f.Close()
		m.debugEnabled = true
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
