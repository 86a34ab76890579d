package widgets

import (
	"testing"

	"dashboard-cli/internal/model"
)

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	reg := Default()
	tests := []struct {
		in   string
		want model.WidgetKey
		ok   bool
	}{
		{in: "deals", want: model.WidgetDeals, ok: true},
		{in: " actionitems ", want: model.WidgetActionItems, ok: true},
		{in: "Upcoming Meetings", want: model.WidgetUpcomingMeetings, ok: true},
		{in: "TASKREMINDERS", want: model.WidgetTaskReminders, ok: true},
		{in: "dealz", ok: false},
		{in: "", ok: false},
	}
	for _, tt := range tests {
		got, ok := reg.Resolve(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("Resolve(%q) = %q,%v; want %q,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRegistry_Suggest(t *testing.T) {
	t.Parallel()

	reg := Default()
	if got, ok := reg.Suggest("meetings"); !ok || got != model.WidgetUpcomingMeetings {
		t.Fatalf("Suggest(meetings) = %q,%v", got, ok)
	}
	if got, ok := reg.Suggest("remind"); !ok || got != model.WidgetTaskReminders {
		t.Fatalf("Suggest(remind) = %q,%v", got, ok)
	}
	if _, ok := reg.Suggest("zzzz"); ok {
		t.Fatalf("expected no suggestion for zzzz")
	}
}
