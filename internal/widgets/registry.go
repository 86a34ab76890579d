package widgets

import (
	"fmt"
	"strings"

	"dashboard-cli/internal/model"
)

// Entry is a registry row: the immutable parts of a descriptor plus its default visibility.
type Entry struct {
	Key            model.WidgetKey `json:"key"`
	Label          string          `json:"label"`
	Icon           string          `json:"icon"`
	DefaultVisible bool            `json:"defaultVisible"`
}

// Registry is the canonical, ordered set of known widgets.
// The zero value is an empty registry.
type Registry struct {
	entries []Entry
	index   map[model.WidgetKey]int
}

var defaultEntries = [...]Entry{
	{Key: model.WidgetLeads, Label: "Leads", Icon: "users", DefaultVisible: true},
	{Key: model.WidgetContacts, Label: "Contacts", Icon: "contact", DefaultVisible: true},
	{Key: model.WidgetDeals, Label: "Deals", Icon: "handshake", DefaultVisible: true},
	{Key: model.WidgetActionItems, Label: "Action Items", Icon: "checklist", DefaultVisible: true},
	{Key: model.WidgetPerformance, Label: "Performance", Icon: "chart", DefaultVisible: true},
	{Key: model.WidgetQuickActions, Label: "Quick Actions", Icon: "bolt", DefaultVisible: true},
	{Key: model.WidgetLeadStatus, Label: "Lead Status", Icon: "pie", DefaultVisible: true},
	{Key: model.WidgetUpcomingMeetings, Label: "Upcoming Meetings", Icon: "calendar", DefaultVisible: true},
	{Key: model.WidgetRecentActivities, Label: "Recent Activities", Icon: "activity", DefaultVisible: true},
	{Key: model.WidgetTaskReminders, Label: "Task Reminders", Icon: "bell", DefaultVisible: true},
}

// Default returns the built-in dashboard registry.
func Default() Registry {
	r, err := NewRegistry(defaultEntries[:]...)
	if err != nil {
		// The table above is static; a duplicate is a programming error.
		panic(err)
	}
	return r
}

// NewRegistry builds a registry in the given order. Keys must be non-empty and unique.
func NewRegistry(entries ...Entry) (Registry, error) {
	r := Registry{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[model.WidgetKey]int, len(entries)),
	}
	for _, e := range entries {
		if strings.TrimSpace(string(e.Key)) == "" {
			return Registry{}, fmt.Errorf("registry: empty widget key (label %q)", e.Label)
		}
		if _, dup := r.index[e.Key]; dup {
			return Registry{}, fmt.Errorf("registry: duplicate widget key %q", e.Key)
		}
		r.index[e.Key] = len(r.entries)
		r.entries = append(r.entries, e)
	}
	return r, nil
}

func (r Registry) Len() int { return len(r.entries) }

func (r Registry) Has(key model.WidgetKey) bool {
	_, ok := r.index[key]
	return ok
}

func (r Registry) Lookup(key model.WidgetKey) (Entry, bool) {
	i, ok := r.index[key]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Entries returns a copy of the registry rows in default order.
func (r Registry) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Keys returns all keys in default order.
func (r Registry) Keys() []model.WidgetKey {
	out := make([]model.WidgetKey, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Key)
	}
	return out
}

// DefaultLayout is what a fresh install persists: registry order, default visibility.
func (r Registry) DefaultLayout() model.Layout {
	out := model.Layout{
		Visible: make([]model.WidgetKey, 0, len(r.entries)),
		Order:   r.Keys(),
	}
	for _, e := range r.entries {
		if e.DefaultVisible {
			out.Visible = append(out.Visible, e.Key)
		}
	}
	return out
}

func (e Entry) descriptor(visible bool) model.Descriptor {
	return model.Descriptor{Key: e.Key, Label: e.Label, Icon: e.Icon, Visible: visible}
}
