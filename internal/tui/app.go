package tui

import (
	"context"
	"log"
	"time"

	"dashboard-cli/internal/model"
	"dashboard-cli/internal/store"
	"dashboard-cli/internal/widgets"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type reloadTickMsg struct{}

type flashDoneMsg struct{ seq int }

// layoutSavedMsg reports completion of the asynchronous save started from the customize modal.
// seq is the session the save was sent from.
type layoutSavedMsg struct {
	seq int
	rev model.Revision
	err error
}

const (
	reloadInterval = 750 * time.Millisecond
	flashDuration  = 3 * time.Second
)

type appModel struct {
	store store.Store
	reg   widgets.Registry

	// saved is the last persisted layout (or the registry defaults before the first save).
	saved         model.Layout
	lastModTime   time.Time
	dashboardKeys dashboardKeyMap
	customizeKeys customizeKeyMap
	help          help.Model

	width  int
	height int

	// Dashboard screen.
	cursor int

	modal modalKind

	// Customize modal.
	session *widgets.Session
	// sessionSeq increments on every open so late save completions can find their session.
	sessionSeq int
	custCursor int
	moving     bool
	moveFrom   int
	saving     bool
	spinner    spinner.Model

	minibuffer   string
	flashIsError bool
	flashSeq     int

	debugEnabled bool
}

func newAppModel(s store.Store, reg widgets.Registry) appModel {
	m := appModel{
		store:         s,
		reg:           reg,
		session:       widgets.NewSession(reg),
		dashboardKeys: newDashboardKeyMap(),
		customizeKeys: newCustomizeKeyMap(),
		help:          help.New(),
		spinner:       spinner.New(spinner.WithSpinner(spinner.MiniDot)),
	}
	m.saved = reg.DefaultLayout()
	if err := m.reloadFromDisk(); err != nil {
		m.minibuffer = "Load failed: " + err.Error()
		m.flashIsError = true
	}
	if st, err := s.LoadTUIState(); err == nil {
		m.applySavedTUIState(st)
	}
	return m
}

func (m appModel) Init() tea.Cmd { return tickReload() }

func tickReload() tea.Cmd {
	return tea.Tick(reloadInterval, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case reloadTickMsg:
		if m.storeChanged() && !m.saving {
			if err := m.reloadFromDisk(); err != nil {
				m.debugLogf("reload: %v", err)
			} else if m.session.IsOpen() {
				m.session.Sync(m.saved)
				m.clampCustomizeCursor()
			}
		}
		return m, tickReload()

	case layoutSavedMsg:
		return m.handleLayoutSaved(msg)

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.minibuffer = ""
			m.flashIsError = false
		}
		return m, nil

	case spinner.TickMsg:
		if !m.saving {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		m.debugLogf("key %q modal=%d moving=%v saving=%v", msg.String(), m.modal, m.moving, m.saving)
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		switch m.modal {
		case modalCustomize:
			return m.updateCustomize(msg)
		case modalHelp:
			m.modal = modalNone
			return m, nil
		}
		return m.updateDashboard(msg)
	}
	return m, nil
}

// quit works from every screen; an open customize session is discarded.
func (m appModel) quit() (tea.Model, tea.Cmd) {
	if m.modal == modalCustomize {
		m.closeCustomize()
	} else {
		m.captureTUIState("")
	}
	return m, tea.Quit
}

// storeChanged reports whether the layout database was written since the last load.
func (m appModel) storeChanged() bool {
	return m.store.LayoutModTime().After(m.lastModTime)
}

func (m *appModel) reloadFromDisk() error {
	saved, ok, err := m.store.LoadLayout(context.Background())
	// Stat after the read: opening the database may itself touch the files.
	m.lastModTime = m.store.LayoutModTime()
	if err != nil {
		return err
	}
	if ok {
		m.saved = saved
	}
	m.clampDashboardCursor()
	return nil
}

// showFlash sets the minibuffer line and schedules it to clear.
func (m *appModel) showFlash(text string, isError bool) tea.Cmd {
	m.flashSeq++
	seq := m.flashSeq
	m.minibuffer = text
	m.flashIsError = isError
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}

func (m appModel) visibleDescriptors() []model.Descriptor {
	return widgets.ReconcileLayout(m.reg, m.saved).VisibleDescriptors()
}

func (m *appModel) clampDashboardCursor() {
	n := len(m.visibleDescriptors())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *appModel) applySavedTUIState(st *store.TUIState) {
	if st == nil {
		return
	}
	if st.DashboardCursorKey != "" {
		for i, d := range m.visibleDescriptors() {
			if d.Key == st.DashboardCursorKey {
				m.cursor = i
				break
			}
		}
	}
}

// captureTUIState persists cursor positions. Best effort.
func (m appModel) captureTUIState(customizeKey model.WidgetKey) {
	st, err := m.store.LoadTUIState()
	if err != nil || st == nil {
		st = &store.TUIState{Version: 1}
	}
	if vis := m.visibleDescriptors(); m.cursor >= 0 && m.cursor < len(vis) {
		st.DashboardCursorKey = vis[m.cursor].Key
	}
	if customizeKey != "" {
		st.CursorKey = customizeKey
	}
	if err := m.store.SaveTUIState(st); err != nil {
		m.debugLogf("save tui state: %v", err)
	}
}

func (m appModel) debugLogf(format string, args ...any) {
	if !m.debugEnabled {
		return
	}
	log.Printf(format, args...)
}
