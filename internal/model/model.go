package model

import "time"

// WidgetKey identifies one dashboard widget. The set of keys is closed and
// owned by the widget registry.
type WidgetKey string

const (
	WidgetLeads            WidgetKey = "leads"
	WidgetContacts         WidgetKey = "contacts"
	WidgetDeals            WidgetKey = "deals"
	WidgetActionItems      WidgetKey = "actionItems"
	WidgetPerformance      WidgetKey = "performance"
	WidgetQuickActions     WidgetKey = "quickActions"
	WidgetLeadStatus       WidgetKey = "leadStatus"
	WidgetUpcomingMeetings WidgetKey = "upcomingMeetings"
	WidgetRecentActivities WidgetKey = "recentActivities"
	WidgetTaskReminders    WidgetKey = "taskReminders"
)

func (k WidgetKey) String() string { return string(k) }

// Descriptor is one row of a working list. Key, Label and Icon come from the
// registry; only Visible (and the descriptor's position) change while editing.
type Descriptor struct {
	Key     WidgetKey `json:"key"`
	Label   string    `json:"label"`
	Icon    string    `json:"icon"`
	Visible bool      `json:"visible"`
}

// Layout is the persisted (visible, order) pair.
//
// Order should be a permutation of all registry keys but may be partial or stale
// (e.g. written by an older release). Readers reconcile it against the registry.
type Layout struct {
	Visible []WidgetKey `json:"visibleWidgets"`
	Order   []WidgetKey `json:"widgetOrder"`
}

type RevisionSource string

const (
	RevisionSourceTUI RevisionSource = "tui"
	RevisionSourceCLI RevisionSource = "cli"
)

// Revision is one saved layout in the store's history.
type Revision struct {
	ID      string         `json:"id"`
	SavedAt time.Time      `json:"savedAt"`
	Source  RevisionSource `json:"source"`
	Layout  Layout         `json:"layout"`
}
