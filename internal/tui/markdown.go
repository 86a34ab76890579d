package tui

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

var (
	mdRendererMu sync.Mutex
	// keyed by style and wrap width
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// renderMarkdown renders md for a pane of the given width. On any renderer error the raw
// markdown is returned.
func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	width = max(width, 10)
	style := markdownStyle()
	key := style + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	defer mdRendererMu.Unlock()
	r := mdRenderers[key]
	if r == nil {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStyles(markdownStyleConfig(style)),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRenderers[key] = r
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// markdownStyleConfig starts from glamour's stock style and recolors body text and inline
// code to match the modal surface.
func markdownStyleConfig(style string) ansi.StyleConfig {
	cfg := styles.DarkStyleConfig
	if style == "light" {
		cfg = styles.LightStyleConfig
	}
	pick := func(c lipgloss.AdaptiveColor) *string {
		v := c.Dark
		if style == "light" {
			v = c.Light
		}
		return &v
	}
	cfg.Text.Color = pick(colorSurfaceFg)
	cfg.Code.Color = pick(colorAccent)
	return cfg
}

// markdownStyle is DASHBOARD_TUI_MD_STYLE when set, else whatever the TUI theme resolves to.
func markdownStyle() string {
	switch v := strings.ToLower(strings.TrimSpace(os.Getenv("DASHBOARD_TUI_MD_STYLE"))); v {
	case "light", "dark":
		return v
	}
	dark, ok := darkBackgroundHint(nil)
	if !ok {
		dark = lipgloss.HasDarkBackground()
	}
	if dark {
		return "dark"
	}
	return "light"
}
