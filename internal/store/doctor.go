package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"dashboard-cli/internal/model"
)

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

var ErrDoctorIssuesFound = errors.New("doctor found errors")

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level"`
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Path    string           `json:"path,omitempty"`

	WidgetKey  model.WidgetKey `json:"widgetKey,omitempty"`
	RevisionID string          `json:"revisionId,omitempty"`
}

type DoctorReport struct {
	Issues []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

// DoctorLayout checks a store directory without modifying it. known lists the widget keys
// the running binary understands; saved keys outside it are reported because reconciliation
// will drop them.
func DoctorLayout(ctx context.Context, dir string, known []model.WidgetKey) DoctorReport {
	st := Store{Dir: dir}
	var issues []DoctorIssue

	if _, err := LoadConfig(); err != nil {
		path, _ := ConfigPath()
		issues = append(issues, DoctorIssue{
			Level:   DoctorIssueLevelError,
			Code:    "config_invalid",
			Message: err.Error(),
			Path:    path,
		})
	}

	if b, err := os.ReadFile(st.tuiStatePath()); err == nil {
		var ts TUIState
		if err := json.Unmarshal(b, &ts); err != nil {
			issues = append(issues, DoctorIssue{
				Level:   DoctorIssueLevelWarn,
				Code:    "tui_state_invalid",
				Message: "tui state is not valid JSON (it will be reset on next launch)",
				Path:    st.tuiStatePath(),
			})
		}
	}

	// Never create the database just to inspect it.
	if _, err := os.Stat(st.sqlitePath()); err != nil {
		return DoctorReport{Issues: issuesOrEmpty(issues)}
	}
	issues = append(issues, doctorSQLite(ctx, st, known)...)
	return DoctorReport{Issues: issuesOrEmpty(issues)}
}

func doctorSQLite(ctx context.Context, st Store, known []model.WidgetKey) []DoctorIssue {
	path := st.sqlitePath()
	db, err := st.openSQLiteReadOnly(ctx)
	if err != nil {
		return []DoctorIssue{{Level: DoctorIssueLevelError, Code: "sqlite_open", Message: err.Error(), Path: path}}
	}
	defer db.Close()

	var issues []DoctorIssue
	var integrity string
	if err := db.QueryRowContext(ctx, `PRAGMA integrity_check`).Scan(&integrity); err != nil {
		return append(issues, DoctorIssue{Level: DoctorIssueLevelError, Code: "sqlite_integrity", Message: err.Error(), Path: path})
	}
	if integrity != "ok" {
		issues = append(issues, DoctorIssue{Level: DoctorIssueLevelError, Code: "sqlite_integrity", Message: integrity, Path: path})
	}

	var tables int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('layout_meta', 'layout_widgets', 'layout_revisions')`).Scan(&tables); err != nil {
		return append(issues, DoctorIssue{Level: DoctorIssueLevelError, Code: "sqlite_query", Message: err.Error(), Path: path})
	}
	if tables < 3 {
		return append(issues, DoctorIssue{
			Level:   DoctorIssueLevelWarn,
			Code:    "schema_missing",
			Message: "layout tables are missing (they will be created on the next save)",
			Path:    path,
		})
	}

	var revID string
	switch err := db.QueryRowContext(ctx, `SELECT v FROM layout_meta WHERE k = 'revision_id'`).Scan(&revID); {
	case err == nil:
		var n int
		if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM layout_revisions WHERE id = ?`, revID).Scan(&n); err != nil {
			issues = append(issues, DoctorIssue{Level: DoctorIssueLevelError, Code: "sqlite_query", Message: err.Error(), Path: path})
		} else if n == 0 {
			issues = append(issues, DoctorIssue{
				Level:      DoctorIssueLevelError,
				Code:       "revision_missing",
				Message:    fmt.Sprintf("current layout points at revision %s, which is not in the history", revID),
				Path:       path,
				RevisionID: revID,
			})
		}
	case errors.Is(err, sql.ErrNoRows):
		// Never saved.
		return issues
	default:
		return append(issues, DoctorIssue{Level: DoctorIssueLevelError, Code: "sqlite_query", Message: err.Error(), Path: path})
	}

	layout, ok, err := loadLayoutFrom(ctx, db)
	if err != nil {
		return append(issues, DoctorIssue{Level: DoctorIssueLevelError, Code: "layout_load", Message: err.Error(), Path: path})
	}
	if !ok {
		return issues
	}

	knownSet := map[model.WidgetKey]bool{}
	for _, k := range known {
		knownSet[k] = true
	}
	seen := map[model.WidgetKey]bool{}
	for _, k := range append(append([]model.WidgetKey{}, layout.Order...), layout.Visible...) {
		if seen[k] {
			continue
		}
		seen[k] = true
		if !knownSet[k] {
			issues = append(issues, DoctorIssue{
				Level:     DoctorIssueLevelWarn,
				Code:      "unknown_widget",
				Message:   fmt.Sprintf("saved layout mentions unknown widget %q (it will be ignored)", k),
				Path:      path,
				WidgetKey: k,
			})
		}
	}
	inOrder := map[model.WidgetKey]bool{}
	for _, k := range layout.Order {
		inOrder[k] = true
	}
	for _, k := range known {
		if !inOrder[k] {
			issues = append(issues, DoctorIssue{
				Level:     DoctorIssueLevelWarn,
				Code:      "widget_not_ordered",
				Message:   fmt.Sprintf("widget %q is missing from the saved order (it will be appended)", k),
				Path:      path,
				WidgetKey: k,
			})
		}
	}
	return issues
}

func issuesOrEmpty(xs []DoctorIssue) []DoctorIssue {
	if xs == nil {
		return []DoctorIssue{}
	}
	return xs
}
