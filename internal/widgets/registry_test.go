package widgets

import (
	"reflect"
	"strings"
	"testing"

	"dashboard-cli/internal/model"
)

func TestDefault_TenWidgetsInOrder(t *testing.T) {
	t.Parallel()

	reg := Default()
	want := []model.WidgetKey{
		model.WidgetLeads,
		model.WidgetContacts,
		model.WidgetDeals,
		model.WidgetActionItems,
		model.WidgetPerformance,
		model.WidgetQuickActions,
		model.WidgetLeadStatus,
		model.WidgetUpcomingMeetings,
		model.WidgetRecentActivities,
		model.WidgetTaskReminders,
	}
	if got := reg.Keys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Keys:\n got: %v\nwant: %v", got, want)
	}
	for _, e := range reg.Entries() {
		if strings.TrimSpace(e.Label) == "" || strings.TrimSpace(e.Icon) == "" {
			t.Fatalf("expected label and icon for %q, got %#v", e.Key, e)
		}
	}
}

func TestNewRegistry_RejectsDuplicateAndEmptyKeys(t *testing.T) {
	t.Parallel()

	if _, err := NewRegistry(Entry{Key: keyA}, Entry{Key: keyA}); err == nil {
		t.Fatalf("expected duplicate key error")
	}
	if _, err := NewRegistry(Entry{Key: " "}); err == nil {
		t.Fatalf("expected empty key error")
	}
}

func TestRegistry_EntriesIsACopy(t *testing.T) {
	t.Parallel()

	reg := Default()
	es := reg.Entries()
	es[0].Label = "mutated"
	if e, _ := reg.Lookup(model.WidgetLeads); e.Label != "Leads" {
		t.Fatalf("registry mutated through Entries(): %#v", e)
	}
}

func TestRegistry_DefaultLayout(t *testing.T) {
	t.Parallel()

	reg, err := NewRegistry(
		Entry{Key: keyA, DefaultVisible: true},
		Entry{Key: keyB},
		Entry{Key: keyC, DefaultVisible: true},
	)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	got := reg.DefaultLayout()
	want := model.Layout{
		Visible: []model.WidgetKey{keyA, keyC},
		Order:   []model.WidgetKey{keyA, keyB, keyC},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DefaultLayout:\n got: %#v\nwant: %#v", got, want)
	}
}
