package cli

import (
	"fmt"

	"dashboard-cli/internal/model"
	"dashboard-cli/internal/widgets"
)

type unknownWidgetError struct {
	input      string
	suggestion model.WidgetKey
}

func (e unknownWidgetError) Error() string {
	if e.suggestion != "" {
		return fmt.Sprintf("unknown widget: %q (did you mean %q? run `dashboard widgets list`)", e.input, e.suggestion)
	}
	return fmt.Sprintf("unknown widget: %q (run `dashboard widgets list`)", e.input)
}

type indexRangeError struct {
	flag  string
	index int
	n     int
}

func (e indexRangeError) Error() string {
	return fmt.Sprintf("--%s %d out of range (want 0..%d)", e.flag, e.index, e.n-1)
}

// resolveWidget turns a CLI argument into a registry key. The core tolerates unknown keys;
// the CLI reports them so typos don't silently do nothing.
func resolveWidget(reg widgets.Registry, s string) (model.WidgetKey, error) {
	if k, ok := reg.Resolve(s); ok {
		return k, nil
	}
	sug, _ := reg.Suggest(s)
	return "", unknownWidgetError{input: s, suggestion: sug}
}

func resolveWidgets(reg widgets.Registry, in []string) ([]model.WidgetKey, error) {
	out := make([]model.WidgetKey, 0, len(in))
	for _, s := range in {
		k, err := resolveWidget(reg, s)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}
