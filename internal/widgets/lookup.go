package widgets

import (
	"strings"

	"dashboard-cli/internal/model"

	"github.com/sahilm/fuzzy"
)

// Resolve maps user input to a registry key. It accepts the key itself or the label,
// case-insensitively ("actionitems", "Action Items").
func (r Registry) Resolve(s string) (model.WidgetKey, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if r.Has(model.WidgetKey(s)) {
		return model.WidgetKey(s), true
	}
	for _, e := range r.entries {
		if strings.EqualFold(string(e.Key), s) || strings.EqualFold(e.Label, s) {
			return e.Key, true
		}
	}
	return "", false
}

// Suggest returns the closest registry key for a misspelled input, if any key matches
// it as a fuzzy subsequence (e.g. "meet" => upcomingMeetings).
func (r Registry) Suggest(s string) (model.WidgetKey, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || len(r.entries) == 0 {
		return "", false
	}
	candidates := make([]string, 0, len(r.entries)*2)
	owners := make([]model.WidgetKey, 0, len(r.entries)*2)
	for _, e := range r.entries {
		candidates = append(candidates, strings.ToLower(string(e.Key)), strings.ToLower(e.Label))
		owners = append(owners, e.Key, e.Key)
	}
	matches := fuzzy.Find(s, candidates)
	if len(matches) == 0 {
		return "", false
	}
	return owners[matches[0].Index], true
}
