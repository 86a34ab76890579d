package widgets

import "dashboard-cli/internal/model"

// WorkingList is the editable, ordered list of descriptors shown by the customize modal.
//
// Invariant (after Reconcile or Reset): exactly one descriptor per registry key.
// Edit operations mutate the list in place and never add or drop descriptors.
type WorkingList []model.Descriptor

// DropResult is what a drag gesture reports when it ends.
// HasDestination is false when the gesture was cancelled (dropped outside a target).
type DropResult struct {
	Source         int
	Destination    int
	HasDestination bool
}

// Reconcile merges a saved (order, visible) pair against the registry.
//
// Keys in savedOrder are placed first, in that order; unknown and repeated keys are dropped.
// Registry keys missing from savedOrder follow in registry order. Every descriptor's
// visibility is membership in savedVisible.
func Reconcile(reg Registry, savedOrder []model.WidgetKey, savedVisible []model.WidgetKey) WorkingList {
	visible := make(map[model.WidgetKey]bool, len(savedVisible))
	for _, k := range savedVisible {
		visible[k] = true
	}

	out := make(WorkingList, 0, reg.Len())
	placed := make(map[model.WidgetKey]bool, reg.Len())
	for _, k := range savedOrder {
		e, ok := reg.Lookup(k)
		if !ok || placed[k] {
			continue
		}
		placed[k] = true
		out = append(out, e.descriptor(visible[k]))
	}
	for _, e := range reg.entries {
		if placed[e.Key] {
			continue
		}
		placed[e.Key] = true
		out = append(out, e.descriptor(visible[e.Key]))
	}
	return out
}

// ReconcileLayout is Reconcile for a persisted Layout.
func ReconcileLayout(reg Registry, saved model.Layout) WorkingList {
	return Reconcile(reg, saved.Order, saved.Visible)
}

// ResetList returns the registry order with every descriptor visible.
func ResetList(reg Registry) WorkingList {
	out := make(WorkingList, 0, reg.Len())
	for _, e := range reg.entries {
		out = append(out, e.descriptor(true))
	}
	return out
}

// Index returns the position of key, or -1.
func (l WorkingList) Index(key model.WidgetKey) int {
	for i := range l {
		if l[i].Key == key {
			return i
		}
	}
	return -1
}

// Toggle flips the visibility of key. Unknown keys are ignored.
func (l WorkingList) Toggle(key model.WidgetKey) {
	if i := l.Index(key); i >= 0 {
		l[i].Visible = !l[i].Visible
	}
}

// Move removes the descriptor at from and re-inserts it at to (indices into the
// list after removal). Out-of-range indices and from == to are no-ops.
// It reports whether the list changed.
func (l WorkingList) Move(from, to int) bool {
	n := len(l)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return false
	}
	moved := l[from]
	if from < to {
		copy(l[from:to], l[from+1:to+1])
	} else {
		copy(l[to+1:from+1], l[to:from])
	}
	l[to] = moved
	return true
}

// Drop applies a finished drag gesture. A gesture without a destination is a no-op.
func (l WorkingList) Drop(d DropResult) bool {
	if !d.HasDestination {
		return false
	}
	return l.Move(d.Source, d.Destination)
}

// Project derives the persistence pair: every key in list order, and the
// order-preserving subsequence of visible keys.
func (l WorkingList) Project() model.Layout {
	out := model.Layout{
		Visible: make([]model.WidgetKey, 0, len(l)),
		Order:   make([]model.WidgetKey, 0, len(l)),
	}
	for _, d := range l {
		out.Order = append(out.Order, d.Key)
		if d.Visible {
			out.Visible = append(out.Visible, d.Key)
		}
	}
	return out
}

// VisibleDescriptors returns the visible descriptors in list order.
func (l WorkingList) VisibleDescriptors() []model.Descriptor {
	out := make([]model.Descriptor, 0, len(l))
	for _, d := range l {
		if d.Visible {
			out = append(out, d)
		}
	}
	return out
}

func (l WorkingList) Clone() WorkingList {
	if l == nil {
		return nil
	}
	return append(WorkingList(nil), l...)
}
