package widgets

import "dashboard-cli/internal/model"

// Session owns the working list for one open/close cycle of the customize modal.
//
// The list is rebuilt from the saved layout on every Open, discarded on Cancel and
// only leaves the session through Save as a projected Layout. All methods are
// no-ops while the session is closed.
type Session struct {
	reg  Registry
	open bool
	list WorkingList
}

func NewSession(reg Registry) *Session {
	return &Session{reg: reg}
}

func (s *Session) IsOpen() bool { return s.open }

func (s *Session) Registry() Registry { return s.reg }

// List returns a snapshot of the working list.
func (s *Session) List() WorkingList { return s.list.Clone() }

// Open reconciles the saved layout and opens the session, dropping any earlier edits.
func (s *Session) Open(saved model.Layout) {
	s.list = ReconcileLayout(s.reg, saved)
	s.open = true
}

// Sync re-reconciles while open because the saved inputs changed underneath the session.
func (s *Session) Sync(saved model.Layout) {
	if !s.open {
		return
	}
	s.list = ReconcileLayout(s.reg, saved)
}

func (s *Session) Toggle(key model.WidgetKey) {
	if !s.open {
		return
	}
	s.list.Toggle(key)
}

func (s *Session) Move(from, to int) bool {
	if !s.open {
		return false
	}
	return s.list.Move(from, to)
}

func (s *Session) Drop(d DropResult) bool {
	if !s.open {
		return false
	}
	return s.list.Drop(d)
}

func (s *Session) Reset() {
	if !s.open {
		return
	}
	s.list = ResetList(s.reg)
}

// Save projects the working list for the persistence collaborator.
// It returns false while saving is asserted (a submission is already in flight).
// The session stays open; the caller closes it once persistence succeeds.
func (s *Session) Save(saving bool) (model.Layout, bool) {
	if !s.open || saving {
		return model.Layout{}, false
	}
	return s.list.Project(), true
}

// Cancel discards the working list without projecting it.
func (s *Session) Cancel() {
	s.open = false
	s.list = nil
}

// Close ends the session after a successful save.
func (s *Session) Close() { s.Cancel() }
