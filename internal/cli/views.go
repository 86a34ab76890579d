package cli

import (
	"strconv"
	"time"

	"dashboard-cli/internal/model"
	"dashboard-cli/internal/widgets"

	"github.com/dustin/go-humanize"
)

type widgetRow struct {
	Position int             `json:"position"`
	Key      model.WidgetKey `json:"key"`
	Label    string          `json:"label"`
	Icon     string          `json:"icon"`
	Visible  bool            `json:"visible"`
}

// layoutView is the payload of every `layout` command: the reconciled working list plus
// its projection, so scripts can read either shape.
type layoutView struct {
	Widgets        []widgetRow       `json:"widgets"`
	VisibleWidgets []model.WidgetKey `json:"visibleWidgets"`
	WidgetOrder    []model.WidgetKey `json:"widgetOrder"`
	Saved          bool              `json:"saved"`
	RevisionID     string            `json:"revisionId,omitempty"`
	SavedAt        *time.Time        `json:"savedAt,omitempty"`
	SavedAgo       string            `json:"savedAgo,omitempty"`
}

func newLayoutView(list widgets.WorkingList, rev *model.Revision) layoutView {
	p := list.Project()
	v := layoutView{
		Widgets:        make([]widgetRow, 0, len(list)),
		VisibleWidgets: p.Visible,
		WidgetOrder:    p.Order,
	}
	for i, d := range list {
		v.Widgets = append(v.Widgets, widgetRow{Position: i, Key: d.Key, Label: d.Label, Icon: d.Icon, Visible: d.Visible})
	}
	if rev != nil {
		at := rev.SavedAt
		v.Saved = true
		v.RevisionID = rev.ID
		v.SavedAt = &at
		v.SavedAgo = humanize.Time(at)
	}
	return v
}

func (v layoutView) Header() []string { return []string{"#", "key", "label", "visible"} }

func (v layoutView) Rows() [][]string {
	rows := make([][]string, 0, len(v.Widgets))
	for _, w := range v.Widgets {
		rows = append(rows, []string{strconv.Itoa(w.Position), string(w.Key), w.Label, yesNo(w.Visible)})
	}
	return rows
}

type revisionRow struct {
	ID             string               `json:"id"`
	SavedAt        time.Time            `json:"savedAt"`
	SavedAgo       string               `json:"savedAgo"`
	Source         model.RevisionSource `json:"source"`
	VisibleWidgets []model.WidgetKey    `json:"visibleWidgets"`
	WidgetOrder    []model.WidgetKey    `json:"widgetOrder"`
}

type historyView []revisionRow

func newHistoryView(revs []model.Revision) historyView {
	out := make(historyView, 0, len(revs))
	for _, r := range revs {
		out = append(out, revisionRow{
			ID:             r.ID,
			SavedAt:        r.SavedAt,
			SavedAgo:       humanize.Time(r.SavedAt),
			Source:         r.Source,
			VisibleWidgets: r.Layout.Visible,
			WidgetOrder:    r.Layout.Order,
		})
	}
	return out
}

func (h historyView) Header() []string { return []string{"revision", "saved", "source", "visible"} }

func (h historyView) Rows() [][]string {
	rows := make([][]string, 0, len(h))
	for _, r := range h {
		rows = append(rows, []string{r.ID, r.SavedAgo, string(r.Source), strconv.Itoa(len(r.VisibleWidgets)) + "/" + strconv.Itoa(len(r.WidgetOrder))})
	}
	return rows
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
