package tui

import (
	"context"
	"slices"
	"strings"

	"dashboard-cli/internal/model"
	"dashboard-cli/internal/store"
	"dashboard-cli/internal/widgets"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// openCustomize starts a fresh session from the saved layout. Edits from an earlier,
// cancelled session never carry over.
func (m *appModel) openCustomize() {
	if err := m.reloadFromDisk(); err != nil {
		m.debugLogf("open customize: reload: %v", err)
	}
	m.session.Open(m.saved)
	m.sessionSeq++
	m.modal = modalCustomize
	m.moving = false
	m.custCursor = 0

	// Start on the focused dashboard card, else where the cursor was last time.
	list := m.session.List()
	if vis := m.visibleDescriptors(); m.cursor >= 0 && m.cursor < len(vis) {
		m.custCursor = list.Index(vis[m.cursor].Key)
	} else if st, err := m.store.LoadTUIState(); err == nil && st.CursorKey != "" {
		m.custCursor = list.Index(st.CursorKey)
	}
	m.clampCustomizeCursor()
}

func (m *appModel) closeCustomize() {
	m.captureTUIState(m.customizeCursorKey())
	m.session.Cancel()
	m.modal = modalNone
	m.moving = false
}

func (m appModel) customizeCursorKey() model.WidgetKey {
	list := m.session.List()
	if m.custCursor >= 0 && m.custCursor < len(list) {
		return list[m.custCursor].Key
	}
	return ""
}

func (m *appModel) clampCustomizeCursor() {
	n := len(m.session.List())
	if m.custCursor >= n {
		m.custCursor = n - 1
	}
	if m.custCursor < 0 {
		m.custCursor = 0
	}
}

func (m appModel) updateCustomize(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.moving {
		return m.updateCustomizeMoving(msg)
	}

	k := m.customizeKeys
	n := len(m.session.List())
	switch {
	case key.Matches(msg, k.Up):
		if m.custCursor > 0 {
			m.custCursor--
		}
	case key.Matches(msg, k.Down):
		if m.custCursor < n-1 {
			m.custCursor++
		}
	case key.Matches(msg, k.Toggle):
		m.session.Toggle(m.customizeCursorKey())
	case key.Matches(msg, k.Pick):
		if n > 0 {
			m.moving = true
			m.moveFrom = m.custCursor
		}
	case key.Matches(msg, k.MoveUp):
		if m.session.Move(m.custCursor, m.custCursor-1) {
			m.custCursor--
		}
	case key.Matches(msg, k.MoveDown):
		if m.session.Move(m.custCursor, m.custCursor+1) {
			m.custCursor++
		}
	case key.Matches(msg, k.Reset):
		cur := m.customizeCursorKey()
		m.session.Reset()
		m.custCursor = m.session.List().Index(cur)
		m.clampCustomizeCursor()
	case key.Matches(msg, k.Save):
		return m.saveCustomize()
	case key.Matches(msg, k.Cancel):
		m.closeCustomize()
	}
	return m, nil
}

// updateCustomizeMoving handles keys while a widget is picked up. The cursor is the drop
// target; the list itself is not touched until the drop.
func (m appModel) updateCustomizeMoving(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.customizeKeys
	n := len(m.session.List())
	switch {
	case key.Matches(msg, k.Up):
		if m.custCursor > 0 {
			m.custCursor--
		}
	case key.Matches(msg, k.Down):
		if m.custCursor < n-1 {
			m.custCursor++
		}
	case key.Matches(msg, k.Drop):
		m.session.Drop(widgets.DropResult{Source: m.moveFrom, Destination: m.custCursor, HasDestination: true})
		m.moving = false
	case key.Matches(msg, k.Cancel):
		// Dropped outside any target.
		m.session.Drop(widgets.DropResult{Source: m.moveFrom})
		m.custCursor = m.moveFrom
		m.moving = false
	}
	return m, nil
}

func (m appModel) saveCustomize() (tea.Model, tea.Cmd) {
	layout, ok := m.session.Save(m.saving)
	if !ok {
		return m, nil
	}
	m.saving = true
	return m, tea.Batch(saveLayoutCmd(m.store, m.sessionSeq, layout), m.spinner.Tick)
}

func saveLayoutCmd(s store.Store, seq int, layout model.Layout) tea.Cmd {
	return func() tea.Msg {
		rev, err := s.SaveLayout(context.Background(), layout, model.RevisionSourceTUI)
		return layoutSavedMsg{seq: seq, rev: rev, err: err}
	}
}

func (m appModel) handleLayoutSaved(msg layoutSavedMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	if msg.err != nil {
		m.debugLogf("save layout: %v", msg.err)
		return m, m.showFlash("Save failed: "+msg.err.Error(), true)
	}
	m.saved = msg.rev.Layout
	m.lastModTime = m.store.LayoutModTime()
	m.clampDashboardCursor()

	// Only the session that sent the save may be closed by it, and only if nothing was
	// edited while the save was in flight.
	if m.modal != modalCustomize || msg.seq != m.sessionSeq {
		return m, m.showFlash("Layout saved", false)
	}
	if !sameLayout(m.session.List().Project(), msg.rev.Layout) {
		return m, m.showFlash("Layout saved; newer edits are not saved yet", false)
	}
	m.closeCustomize()
	return m, m.showFlash("Layout saved", false)
}

func sameLayout(a, b model.Layout) bool {
	return slices.Equal(a.Order, b.Order) && slices.Equal(a.Visible, b.Visible)
}

// customizeRows returns the list as it should be drawn. In move mode the carried widget is
// previewed at the drop target.
func (m appModel) customizeRows() widgets.WorkingList {
	list := m.session.List()
	if m.moving {
		list.Move(m.moveFrom, m.custCursor)
	}
	return list
}

func (m appModel) viewCustomize() string {
	bodyW := modalBodyWidth(m.width)

	rowBase := lipgloss.NewStyle().Width(bodyW - 2)
	rowSelected := rowBase.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	rowHidden := rowBase.Foreground(colorHiddenFg)

	lines := []string{styleMuted().Render("Choose which widgets appear on the dashboard, and their order.")}
	lines = append(lines, "")
	for i, d := range m.customizeRows() {
		marker := "  "
		if m.moving && i == m.custCursor {
			marker = glyphGrab() + " "
		}
		label := marker + glyphCheckbox(d.Visible) + " " + glyphWidgetIcon(d.Icon) + " " + d.Label
		label = truncateText(label, bodyW-2)
		switch {
		case i == m.custCursor:
			lines = append(lines, rowSelected.Render(label))
		case !d.Visible:
			lines = append(lines, rowHidden.Render(label))
		default:
			lines = append(lines, rowBase.Render(label))
		}
	}
	lines = append(lines, "", m.viewCustomizeControls())

	if m.minibuffer != "" && m.flashIsError {
		lines = append(lines, "", styleFlashError().Render(truncateText(m.minibuffer, bodyW-4)))
	}

	h := m.help
	h.Width = bodyW - 2
	if m.moving {
		lines = append(lines, "", styleMuted().Render("↑/↓: choose position   enter: drop   esc: cancel move"))
	} else {
		lines = append(lines, "", h.View(m.customizeKeys))
	}
	return renderModalBox(m.width, "Customize dashboard", strings.Join(lines, "\n"))
}

func (m appModel) viewCustomizeControls() string {
	btn := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	primary := btn.
		Foreground(colorAccentFg).
		Background(colorAccent).
		Bold(true)

	save := primary.Render("Save")
	if m.saving {
		save = btn.Render(m.spinner.View() + " Saving…")
	}
	sep := lipgloss.NewStyle().Render(" ")
	return lipgloss.JoinHorizontal(lipgloss.Top,
		btn.Render("Reset to default"), sep,
		btn.Render("Cancel"), sep,
		save,
	)
}
