package tui

import (
	"strings"
	"testing"
)

func TestMarkdownStyle_RespectsTUITheme(t *testing.T) {
	t.Setenv("DASHBOARD_TUI_MD_STYLE", "")
	t.Setenv("COLORFGBG", "")
	t.Setenv("DASHBOARD_TUI_DARKBG", "")

	t.Setenv("DASHBOARD_TUI_THEME", "light")
	if got := markdownStyle(); got != "light" {
		t.Fatalf("expected light; got %q", got)
	}

	t.Setenv("DASHBOARD_TUI_THEME", "dark")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}
}

func TestMarkdownStyle_MDStyleOverridesTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("DASHBOARD_TUI_DARKBG", "")
	t.Setenv("DASHBOARD_TUI_THEME", "light")

	t.Setenv("DASHBOARD_TUI_MD_STYLE", "dark")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}
}

func TestMarkdownStyle_COLORFGBG(t *testing.T) {
	t.Setenv("DASHBOARD_TUI_MD_STYLE", "")
	t.Setenv("DASHBOARD_TUI_THEME", "")
	t.Setenv("DASHBOARD_TUI_DARKBG", "")

	t.Setenv("COLORFGBG", "0;15")
	if got := markdownStyle(); got != "light" {
		t.Fatalf("expected light for bg=15; got %q", got)
	}
	t.Setenv("COLORFGBG", "15;0")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark for bg=0; got %q", got)
	}
}

func TestRenderMarkdown_RendersTableText(t *testing.T) {
	t.Setenv("DASHBOARD_TUI_MD_STYLE", "dark")

	out := renderMarkdown("# Keys\n\n| Key | Action |\n| --- | --- |\n| `c` | Customize |\n", 60)
	if !strings.Contains(out, "Customize") {
		t.Fatalf("expected rendered table content, got:\n%s", out)
	}
	if strings.Contains(out, "| ---") {
		t.Fatalf("expected markdown table syntax to be rendered, got:\n%s", out)
	}
	if renderMarkdown("   ", 60) != "" {
		t.Fatalf("expected empty output for blank input")
	}
}
