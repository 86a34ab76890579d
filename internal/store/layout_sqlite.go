package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"dashboard-cli/internal/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL allows the CLI to write while the TUI polls; busy_timeout avoids "database is locked".
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateLayoutSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// openSQLiteReadOnly opens an existing database for inspection. It neither creates the
// file nor changes its journal mode or schema.
func (s Store) openSQLiteReadOnly(ctx context.Context) (*sql.DB, error) {
	dsn := (&url.URL{Scheme: "file", Path: s.sqlitePath(), RawQuery: "mode=ro"}).String()
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000;"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (s Store) sqliteExists() bool {
	_, err := os.Stat(s.sqlitePath())
	return err == nil
}

func migrateLayoutSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS layout_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS layout_widgets (
			position INTEGER PRIMARY KEY,
			widget_key TEXT NOT NULL UNIQUE,
			visible INTEGER NOT NULL,
			in_order INTEGER NOT NULL DEFAULT 1
		);`,
		`CREATE TABLE IF NOT EXISTS layout_revisions (
			id TEXT PRIMARY KEY,
			saved_at_unixms INTEGER NOT NULL,
			source TEXT NOT NULL,
			order_json TEXT NOT NULL,
			visible_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_layout_revisions_saved_at ON layout_revisions(saved_at_unixms);`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrate layout schema: %w", err)
		}
	}
	return nil
}

// LoadLayout returns the persisted layout. ok is false when nothing was ever saved.
//
// The layout is returned as stored; reconciling it against the widget registry is the
// reader's job.
//
// A store that was never written to is left untouched: no directory or database is created.
func (s Store) LoadLayout(ctx context.Context) (layout model.Layout, ok bool, err error) {
	if !s.sqliteExists() {
		return model.Layout{}, false, nil
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Layout{}, false, err
	}
	defer db.Close()
	return loadLayoutFrom(ctx, db)
}

func loadLayoutFrom(ctx context.Context, db *sql.DB) (layout model.Layout, ok bool, err error) {
	var saved string
	err = db.QueryRowContext(ctx, `SELECT v FROM layout_meta WHERE k = 'saved_at_unixms'`).Scan(&saved)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Layout{}, false, nil
	}
	if err != nil {
		return model.Layout{}, false, err
	}

	rows, err := db.QueryContext(ctx, `SELECT widget_key, visible, in_order FROM layout_widgets ORDER BY position`)
	if err != nil {
		return model.Layout{}, false, err
	}
	defer rows.Close()

	layout = model.Layout{Order: []model.WidgetKey{}, Visible: []model.WidgetKey{}}
	for rows.Next() {
		var key string
		var visible, inOrder int
		if err := rows.Scan(&key, &visible, &inOrder); err != nil {
			return model.Layout{}, false, err
		}
		if inOrder != 0 {
			layout.Order = append(layout.Order, model.WidgetKey(key))
		}
		if visible != 0 {
			layout.Visible = append(layout.Visible, model.WidgetKey(key))
		}
	}
	if err := rows.Err(); err != nil {
		return model.Layout{}, false, err
	}
	return layout, true, nil
}

// SaveLayout replaces the persisted layout and appends a revision, in one transaction.
//
// The pair is stored as given (it may be partial or stale). Visible keys missing from Order
// are kept as rows flagged in_order=0 so the pair survives a round trip unchanged.
func (s Store) SaveLayout(ctx context.Context, layout model.Layout, source model.RevisionSource) (model.Revision, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Revision{}, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return model.Revision{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM layout_widgets`); err != nil {
		return model.Revision{}, err
	}

	visible := map[model.WidgetKey]bool{}
	for _, k := range layout.Visible {
		visible[k] = true
	}
	placed := map[model.WidgetKey]bool{}
	pos := 0
	insert := func(k model.WidgetKey, ordered bool) error {
		if strings.TrimSpace(string(k)) == "" || placed[k] {
			return nil
		}
		placed[k] = true
		_, err := tx.ExecContext(ctx, `INSERT INTO layout_widgets(position, widget_key, visible, in_order) VALUES(?, ?, ?, ?)`,
			pos, string(k), boolToInt(visible[k]), boolToInt(ordered))
		pos++
		return err
	}
	for _, k := range layout.Order {
		if err := insert(k, true); err != nil {
			return model.Revision{}, err
		}
	}
	for _, k := range layout.Visible {
		if err := insert(k, false); err != nil {
			return model.Revision{}, err
		}
	}

	rev := model.Revision{
		ID:      uuid.NewString(),
		SavedAt: time.Now().UTC().Truncate(time.Millisecond),
		Source:  source,
		Layout:  cloneLayout(layout),
	}
	orderJSON, err := json.Marshal(keysOrEmpty(rev.Layout.Order))
	if err != nil {
		return model.Revision{}, err
	}
	visibleJSON, err := json.Marshal(keysOrEmpty(rev.Layout.Visible))
	if err != nil {
		return model.Revision{}, err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO layout_revisions(id, saved_at_unixms, source, order_json, visible_json) VALUES(?, ?, ?, ?, ?)`,
		rev.ID, rev.SavedAt.UnixMilli(), string(rev.Source), string(orderJSON), string(visibleJSON)); err != nil {
		return model.Revision{}, err
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO layout_meta(k, v) VALUES('saved_at_unixms', ?)`,
		fmt.Sprintf("%d", rev.SavedAt.UnixMilli())); err != nil {
		return model.Revision{}, err
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO layout_meta(k, v) VALUES('revision_id', ?)`, rev.ID); err != nil {
		return model.Revision{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Revision{}, err
	}
	return rev, nil
}

// ListRevisions returns saved revisions, newest first. limit <= 0 means no limit.
func (s Store) ListRevisions(ctx context.Context, limit int) ([]model.Revision, error) {
	if !s.sqliteExists() {
		return []model.Revision{}, nil
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT id, saved_at_unixms, source, order_json, visible_json FROM layout_revisions ORDER BY saved_at_unixms DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Revision{}
	for rows.Next() {
		var (
			rev         model.Revision
			savedMs     int64
			source      string
			orderJSON   string
			visibleJSON string
		)
		if err := rows.Scan(&rev.ID, &savedMs, &source, &orderJSON, &visibleJSON); err != nil {
			return nil, err
		}
		rev.SavedAt = time.UnixMilli(savedMs).UTC()
		rev.Source = model.RevisionSource(source)
		if err := json.Unmarshal([]byte(orderJSON), &rev.Layout.Order); err != nil {
			return nil, fmt.Errorf("revision %s: decode order: %w", rev.ID, err)
		}
		if err := json.Unmarshal([]byte(visibleJSON), &rev.Layout.Visible); err != nil {
			return nil, fmt.Errorf("revision %s: decode visible: %w", rev.ID, err)
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

// LastSaved returns the most recent revision, if any.
func (s Store) LastSaved(ctx context.Context) (model.Revision, bool, error) {
	revs, err := s.ListRevisions(ctx, 1)
	if err != nil || len(revs) == 0 {
		return model.Revision{}, false, err
	}
	return revs[0], true, nil
}

// LayoutModTime is a cheap change detector for pollers: the newest mtime of the
// SQLite file and its WAL. Zero when nothing exists yet.
func (s Store) LayoutModTime() time.Time {
	var newest time.Time
	for _, p := range []string{s.sqlitePath(), s.sqlitePath() + "-wal"} {
		if fi, err := os.Stat(p); err == nil && fi.ModTime().After(newest) {
			newest = fi.ModTime()
		}
	}
	return newest
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func keysOrEmpty(ks []model.WidgetKey) []model.WidgetKey {
	if ks == nil {
		return []model.WidgetKey{}
	}
	return ks
}

func cloneLayout(l model.Layout) model.Layout {
	return model.Layout{
		Visible: append([]model.WidgetKey{}, l.Visible...),
		Order:   append([]model.WidgetKey{}, l.Order...),
	}
}
