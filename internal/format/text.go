package format

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Tabular lets a payload pick its own columns for the text format.
type Tabular interface {
	Header() []string
	Rows() [][]string
}

// WriteText renders a payload for humans.
//
// A {"data": ...} envelope is unwrapped. Tabular payloads render as-is; a list of
// objects becomes one row per object; an object becomes a key/value table.
func WriteText(w io.Writer, v any) error {
	if t, ok := v.(Tabular); ok {
		_, err := fmt.Fprintln(w, renderTable(t.Header(), t.Rows()))
		return err
	}
	if env, ok := v.(map[string]any); ok {
		if inner, ok := env["data"]; ok && len(env) == 1 {
			if t, ok := inner.(Tabular); ok {
				return WriteText(w, t)
			}
		}
	}

	x, err := normalize(v)
	if err != nil {
		return err
	}
	if env, ok := x.(map[string]any); ok && len(env) == 1 {
		if inner, ok := env["data"]; ok {
			x = inner
		}
	}

	switch t := x.(type) {
	case []any:
		header, rows := objectRows(t)
		if header == nil {
			for _, it := range t {
				if _, err := fmt.Fprintln(w, cell(it)); err != nil {
					return err
				}
			}
			return nil
		}
		_, err = fmt.Fprintln(w, renderTable(header, rows))
	case map[string]any:
		keys := sortedKeys(t)
		rows := make([][]string, 0, len(keys))
		for _, k := range keys {
			rows = append(rows, []string{k, cell(t[k])})
		}
		_, err = fmt.Fprintln(w, renderTable([]string{"field", "value"}, rows))
	default:
		_, err = fmt.Fprintln(w, cell(t))
	}
	return err
}

func renderTable(header []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(header...).
		Rows(rows...)
	return t.String()
}

// objectRows returns nil header when xs is not a list of objects.
func objectRows(xs []any) ([]string, [][]string) {
	if len(xs) == 0 {
		return nil, nil
	}
	seen := map[string]bool{}
	header := []string{}
	for _, it := range xs {
		m, ok := it.(map[string]any)
		if !ok {
			return nil, nil
		}
		for _, k := range sortedKeys(m) {
			if !seen[k] {
				seen[k] = true
				header = append(header, k)
			}
		}
	}
	rows := make([][]string, 0, len(xs))
	for _, it := range xs {
		m := it.(map[string]any)
		row := make([]string, len(header))
		for i, k := range header {
			if v, ok := m[k]; ok {
				row[i] = cell(v)
			}
		}
		rows = append(rows, row)
	}
	return header, rows
}

func cell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, it := range t {
			parts = append(parts, cell(it))
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprint(t)
	default:
		return fmt.Sprint(t)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
