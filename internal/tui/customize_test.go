package tui

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"dashboard-cli/internal/model"
	"dashboard-cli/internal/store"
	"dashboard-cli/internal/widgets"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestApp(t *testing.T) (appModel, store.Store) {
	t.Helper()
	s := store.Store{Dir: t.TempDir()}
	m := newAppModel(s, widgets.Default())
	mAny, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return mAny.(appModel), s
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m appModel, keys ...string) (appModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var mAny tea.Model
		mAny, cmd = m.Update(keyMsg(k))
		m = mAny.(appModel)
	}
	return m, cmd
}

// runUntilSaved executes cmd (and any batched commands) and returns the save completion.
func runUntilSaved(t *testing.T, cmd tea.Cmd) layoutSavedMsg {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	switch msg := cmd().(type) {
	case layoutSavedMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if saved, ok := c().(layoutSavedMsg); ok {
				return saved
			}
		}
	}
	t.Fatalf("command did not produce layoutSavedMsg")
	return layoutSavedMsg{}
}

func listKeys(l widgets.WorkingList) []model.WidgetKey {
	out := make([]model.WidgetKey, 0, len(l))
	for _, d := range l {
		out = append(out, d.Key)
	}
	return out
}

func TestCustomize_ToggleSave_DisabledWhileSaving(t *testing.T) {
	t.Parallel()

	m, s := newTestApp(t)
	m, _ = press(t, m, "c")
	if m.modal != modalCustomize || !m.session.IsOpen() {
		t.Fatalf("expected customize modal to open")
	}

	m, _ = press(t, m, "space")
	if m.session.List()[0].Visible {
		t.Fatalf("expected leads hidden after space")
	}

	m, cmd := press(t, m, "ctrl+s")
	if !m.saving {
		t.Fatalf("expected saving to be asserted")
	}
	if m.modal != modalCustomize {
		t.Fatalf("expected modal to stay open until the save completes")
	}
	if !strings.Contains(m.View(), "Saving…") {
		t.Fatalf("expected busy label while saving")
	}

	// A second save while one is in flight is ignored.
	m2, cmd2 := press(t, m, "ctrl+s")
	if cmd2 != nil {
		t.Fatalf("expected no command while saving")
	}
	m = m2

	saved := runUntilSaved(t, cmd)
	if saved.err != nil {
		t.Fatalf("save: %v", saved.err)
	}
	mAny, _ := m.Update(saved)
	m = mAny.(appModel)
	if m.saving || m.modal != modalNone || m.session.IsOpen() {
		t.Fatalf("expected modal closed after successful save (saving=%v modal=%v)", m.saving, m.modal)
	}

	got, ok, err := s.LoadLayout(context.Background())
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	for _, k := range got.Visible {
		if k == model.WidgetLeads {
			t.Fatalf("expected leads hidden in saved layout, got %v", got.Visible)
		}
	}
	if len(got.Order) != 10 || got.Order[0] != model.WidgetLeads {
		t.Fatalf("expected full order with leads first, got %v", got.Order)
	}

	revs, err := s.ListRevisions(context.Background(), 0)
	if err != nil {
		t.Fatalf("list revisions: %v", err)
	}
	if len(revs) != 1 || revs[0].Source != model.RevisionSourceTUI {
		t.Fatalf("expected one tui revision, got %#v", revs)
	}
}

func TestCustomize_CancelDiscardsEdits(t *testing.T) {
	t.Parallel()

	m, s := newTestApp(t)
	m, _ = press(t, m, "c", "space", "J", "esc")
	if m.modal != modalNone || m.session.IsOpen() {
		t.Fatalf("expected modal closed after esc")
	}
	if _, ok, _ := s.LoadLayout(context.Background()); ok {
		t.Fatalf("expected nothing saved after cancel")
	}

	// Reopening rebuilds from the saved (default) layout.
	m, _ = press(t, m, "c")
	want := widgets.ResetList(widgets.Default())
	if got := m.session.List(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected defaults after reopen:\n got %v\nwant %v", listKeys(got), listKeys(want))
	}
}

func TestCustomize_PickUpAndDrop(t *testing.T) {
	t.Parallel()

	m, _ := newTestApp(t)
	m, _ = press(t, m, "c", "m")
	if !m.moving || m.moveFrom != 0 {
		t.Fatalf("expected move mode from 0, got moving=%v from=%d", m.moving, m.moveFrom)
	}

	m, _ = press(t, m, "down", "down")
	// The list is untouched until the drop; only the preview moves.
	if got := m.session.List()[0].Key; got != model.WidgetLeads {
		t.Fatalf("expected list unchanged before drop, first=%s", got)
	}
	if got := m.customizeRows()[2].Key; got != model.WidgetLeads {
		t.Fatalf("expected preview to show leads at 2, got %s", got)
	}

	m, _ = press(t, m, "enter")
	if m.moving {
		t.Fatalf("expected move mode to end on drop")
	}
	want := []model.WidgetKey{model.WidgetContacts, model.WidgetDeals, model.WidgetLeads}
	if got := listKeys(m.session.List())[:3]; !reflect.DeepEqual(got, want) {
		t.Fatalf("after drop: got %v want %v", got, want)
	}
	if m.modal != modalCustomize {
		t.Fatalf("expected drop not to save or close")
	}
}

func TestCustomize_PickUpThenEscIsNoop(t *testing.T) {
	t.Parallel()

	m, _ := newTestApp(t)
	m, _ = press(t, m, "c", "j")
	before := m.session.List()

	m, _ = press(t, m, "m", "down", "down", "down", "esc")
	if m.moving {
		t.Fatalf("expected move mode to end on esc")
	}
	if m.modal != modalCustomize {
		t.Fatalf("expected esc in move mode to keep the modal open")
	}
	if m.custCursor != 1 {
		t.Fatalf("expected cursor back on the picked widget, got %d", m.custCursor)
	}
	if got := m.session.List(); !reflect.DeepEqual(got, before) {
		t.Fatalf("expected unchanged list:\n got %v\nwant %v", listKeys(got), listKeys(before))
	}
}

func TestCustomize_ShiftMoveAndReset(t *testing.T) {
	t.Parallel()

	m, _ := newTestApp(t)
	m, _ = press(t, m, "c", "J", "J")
	if m.custCursor != 2 {
		t.Fatalf("expected cursor to follow the widget, got %d", m.custCursor)
	}
	if got := m.session.List()[2].Key; got != model.WidgetLeads {
		t.Fatalf("expected leads at 2, got %s", got)
	}

	// Moving past the top is a no-op.
	m, _ = press(t, m, "K", "K", "K")
	if m.custCursor != 0 || m.session.List()[0].Key != model.WidgetLeads {
		t.Fatalf("expected leads back at 0, cursor=%d", m.custCursor)
	}

	m, _ = press(t, m, "J", "space", "r")
	want := widgets.ResetList(widgets.Default())
	if got := m.session.List(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected reset list:\n got %v\nwant %v", listKeys(got), listKeys(want))
	}
	if m.custCursor != 0 {
		t.Fatalf("expected cursor to stay on leads after reset, got %d", m.custCursor)
	}
}

func TestCustomize_SaveErrorKeepsModalOpen(t *testing.T) {
	t.Parallel()

	m, _ := newTestApp(t)
	m, _ = press(t, m, "c", "space", "ctrl+s")
	if !m.saving {
		t.Fatalf("expected saving")
	}

	mAny, _ := m.Update(layoutSavedMsg{err: errors.New("disk full")})
	m = mAny.(appModel)
	if m.saving {
		t.Fatalf("expected saving cleared after failure")
	}
	if m.modal != modalCustomize || !m.session.IsOpen() {
		t.Fatalf("expected modal to stay open after a failed save")
	}
	if m.session.List()[0].Visible {
		t.Fatalf("expected edits kept after a failed save")
	}
	if !strings.Contains(m.minibuffer, "disk full") || !m.flashIsError {
		t.Fatalf("expected error flash, got %q", m.minibuffer)
	}

	// Save is enabled again.
	if _, cmd := press(t, m, "ctrl+s"); cmd == nil {
		t.Fatalf("expected save to be re-enabled")
	}
}

func TestCustomize_LateSaveDoesNotCloseReopenedSession(t *testing.T) {
	t.Parallel()

	m, s := newTestApp(t)
	m, cmd := press(t, m, "c", "space", "enter")
	if !m.saving {
		t.Fatalf("expected saving")
	}

	// Cancel while the save runs, then start a new session and edit it.
	m, _ = press(t, m, "esc", "c", "down", "space")
	if m.modal != modalCustomize || m.session.List()[1].Visible {
		t.Fatalf("expected reopened session with contacts hidden")
	}

	mAny, _ := m.Update(runUntilSaved(t, cmd))
	m = mAny.(appModel)
	if m.saving {
		t.Fatalf("expected saving cleared")
	}
	if m.modal != modalCustomize || !m.session.IsOpen() {
		t.Fatalf("expected the reopened session to survive an earlier save")
	}
	if m.session.List()[1].Visible {
		t.Fatalf("expected the reopened session to keep its edits")
	}

	got, _, err := s.LoadLayout(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Visible) != 9 {
		t.Fatalf("expected the first save only (9 visible), got %v", got.Visible)
	}
}

func TestCustomize_EditWhileSavingKeepsModalOpen(t *testing.T) {
	t.Parallel()

	m, _ := newTestApp(t)
	m, cmd := press(t, m, "c", "space", "ctrl+s")
	m, _ = press(t, m, "down", "space")

	mAny, _ := m.Update(runUntilSaved(t, cmd))
	m = mAny.(appModel)
	if m.modal != modalCustomize || !m.session.IsOpen() {
		t.Fatalf("expected modal to stay open when edits arrived during the save")
	}
	if m.session.List()[1].Visible {
		t.Fatalf("expected the in-flight edit to be kept")
	}
	if m.flashIsError || !strings.Contains(m.minibuffer, "not saved yet") {
		t.Fatalf("expected a notice about unsaved edits, got %q", m.minibuffer)
	}

	// Saving again persists the rest and closes.
	m, cmd = press(t, m, "ctrl+s")
	mAny, _ = m.Update(runUntilSaved(t, cmd))
	m = mAny.(appModel)
	if m.modal != modalNone {
		t.Fatalf("expected modal closed after the second save")
	}
	if len(m.saved.Visible) != 8 {
		t.Fatalf("expected both edits saved, got %v", m.saved.Visible)
	}
}

func TestCustomize_CtrlCQuits(t *testing.T) {
	t.Parallel()

	for _, keys := range [][]string{
		{"c"},
		{"c", "m"},
		{"?"},
	} {
		m, _ := newTestApp(t)
		m, _ = press(t, m, keys...)
		m, cmd := press(t, m, "ctrl+c")
		if cmd == nil {
			t.Fatalf("%v: expected quit command", keys)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%v: expected tea.QuitMsg", keys)
		}
		if m.session.IsOpen() {
			t.Fatalf("%v: expected the customize session discarded on quit", keys)
		}
	}
}

func TestCustomize_SyncsWhenStoreChanges(t *testing.T) {
	t.Parallel()

	m, s := newTestApp(t)
	m, _ = press(t, m, "c")

	external := model.Layout{
		Order:   []model.WidgetKey{model.WidgetTaskReminders, model.WidgetLeads},
		Visible: []model.WidgetKey{model.WidgetTaskReminders},
	}
	if _, err := s.SaveLayout(context.Background(), external, model.RevisionSourceCLI); err != nil {
		t.Fatalf("external save: %v", err)
	}
	// Force the poller to see a change regardless of mtime granularity.
	m.lastModTime = time.Time{}

	mAny, _ := m.Update(reloadTickMsg{})
	m = mAny.(appModel)

	list := m.session.List()
	if list[0].Key != model.WidgetTaskReminders || !list[0].Visible {
		t.Fatalf("expected synced list to start with visible taskReminders, got %#v", list[0])
	}
	if list[1].Key != model.WidgetLeads || list[1].Visible {
		t.Fatalf("expected hidden leads second, got %#v", list[1])
	}
	if len(list) != 10 {
		t.Fatalf("expected all registry widgets, got %d", len(list))
	}
}

func TestDashboard_RendersVisibleWidgetsInOrder(t *testing.T) {
	t.Parallel()

	s := store.Store{Dir: t.TempDir()}
	layout := model.Layout{
		Order:   []model.WidgetKey{model.WidgetDeals, model.WidgetLeads},
		Visible: []model.WidgetKey{model.WidgetLeads, model.WidgetDeals},
	}
	if _, err := s.SaveLayout(context.Background(), layout, model.RevisionSourceCLI); err != nil {
		t.Fatalf("seed: %v", err)
	}

	m := newAppModel(s, widgets.Default())
	mAny, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	out := mAny.(appModel).View()

	deals := strings.Index(out, "Deals")
	leads := strings.Index(out, "Leads")
	if deals < 0 || leads < 0 || deals > leads {
		t.Fatalf("expected Deals before Leads in:\n%s", out)
	}
	if strings.Contains(out, "Contacts") {
		t.Fatalf("expected hidden widgets not to render:\n%s", out)
	}
}

func TestDashboard_EmptyLayoutHint(t *testing.T) {
	t.Parallel()

	s := store.Store{Dir: t.TempDir()}
	if _, err := s.SaveLayout(context.Background(), model.Layout{}, model.RevisionSourceCLI); err != nil {
		t.Fatalf("seed: %v", err)
	}
	m := newAppModel(s, widgets.Default())
	if out := m.View(); !strings.Contains(out, "No widgets visible") {
		t.Fatalf("expected empty hint:\n%s", out)
	}
}

func TestDashboard_HelpOverlayAndQuit(t *testing.T) {
	t.Parallel()

	m, _ := newTestApp(t)
	m, _ = press(t, m, "?")
	if m.modal != modalHelp {
		t.Fatalf("expected help overlay")
	}
	m, _ = press(t, m, "x")
	if m.modal != modalNone {
		t.Fatalf("expected any key to close help")
	}

	_, cmd := press(t, m, "q")
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}
