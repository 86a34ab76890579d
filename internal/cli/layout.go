package cli

import (
	"errors"

	"dashboard-cli/internal/model"
	"dashboard-cli/internal/store"
	"dashboard-cli/internal/widgets"

	"github.com/spf13/cobra"
)

func newLayoutCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show and edit the dashboard widget layout",
	}
	cmd.AddCommand(newLayoutShowCmd(app))
	cmd.AddCommand(newLayoutToggleCmd(app))
	cmd.AddCommand(newLayoutMoveCmd(app))
	cmd.AddCommand(newLayoutResetCmd(app))
	cmd.AddCommand(newLayoutSetCmd(app))
	cmd.AddCommand(newLayoutHistoryCmd(app))
	return cmd
}

// loadWorkingList reads the persisted layout and reconciles it against the registry.
// A store that was never saved starts from the registry defaults.
func loadWorkingList(cmd *cobra.Command, app *App) (store.Store, widgets.WorkingList, *model.Revision, error) {
	s, err := openStore(app)
	if err != nil {
		return store.Store{}, nil, nil, err
	}
	saved, ok, err := s.LoadLayout(cmd.Context())
	if err != nil {
		return store.Store{}, nil, nil, err
	}
	if !ok {
		return s, widgets.ReconcileLayout(app.registry, app.registry.DefaultLayout()), nil, nil
	}
	var rev *model.Revision
	if last, found, err := s.LastSaved(cmd.Context()); err != nil {
		return store.Store{}, nil, nil, err
	} else if found {
		rev = &last
	}
	return s, widgets.ReconcileLayout(app.registry, saved), rev, nil
}

// editLayout runs one edit operation against the reconciled list and saves the projection.
func editLayout(cmd *cobra.Command, app *App, edit func(widgets.WorkingList) (widgets.WorkingList, error)) error {
	s, list, _, err := loadWorkingList(cmd, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	list, err = edit(list)
	if err != nil {
		return writeErr(cmd, err)
	}
	rev, err := s.SaveLayout(cmd.Context(), list.Project(), model.RevisionSourceCLI)
	if err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, map[string]any{"data": newLayoutView(list, &rev)})
}

func newLayoutShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current layout (reconciled against the widget registry)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, list, rev, err := loadWorkingList(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": newLayoutView(list, rev)})
		},
	}
}

func newLayoutToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <widget>...",
		Short: "Show or hide widgets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := resolveWidgets(app.registry, args)
			if err != nil {
				return writeErr(cmd, err)
			}
			return editLayout(cmd, app, func(l widgets.WorkingList) (widgets.WorkingList, error) {
				for _, k := range keys {
					l.Toggle(k)
				}
				return l, nil
			})
		},
	}
}

func newLayoutMoveCmd(app *App) *cobra.Command {
	var from, to int

	cmd := &cobra.Command{
		Use:   "move [widget] --to <index>",
		Short: "Move a widget to a new position (0-based)",
		Example: `  dashboard layout move deals --to 0
  dashboard layout move --from 3 --to 1`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("to") {
				return writeErr(cmd, errors.New("missing --to"))
			}
			hasFrom := cmd.Flags().Changed("from")
			if hasFrom == (len(args) == 1) {
				return writeErr(cmd, errors.New("pass either a widget or --from"))
			}
			var key model.WidgetKey
			if len(args) == 1 {
				k, err := resolveWidget(app.registry, args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				key = k
			}
			return editLayout(cmd, app, func(l widgets.WorkingList) (widgets.WorkingList, error) {
				src := from
				if !hasFrom {
					src = l.Index(key)
				}
				if src < 0 || src >= len(l) {
					return nil, indexRangeError{flag: "from", index: src, n: len(l)}
				}
				if to < 0 || to >= len(l) {
					return nil, indexRangeError{flag: "to", index: to, n: len(l)}
				}
				l.Drop(widgets.DropResult{Source: src, Destination: to, HasDestination: true})
				return l, nil
			})
		},
	}

	cmd.Flags().IntVar(&from, "from", 0, "Source position (instead of a widget name)")
	cmd.Flags().IntVar(&to, "to", 0, "Destination position")
	return cmd
}

func newLayoutResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset to the default order with every widget visible",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editLayout(cmd, app, func(widgets.WorkingList) (widgets.WorkingList, error) {
				return widgets.ResetList(app.registry), nil
			})
		},
	}
}

func newLayoutSetCmd(app *App) *cobra.Command {
	var order, visible []string

	cmd := &cobra.Command{
		Use:   "set --order k1,k2,... --visible k1,...",
		Short: "Replace the saved order and/or visible set",
		Long: `Replace the saved order and/or visible set.

Omitted widgets in --order keep their relative order after the listed ones.
A flag that is not passed keeps its current value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			setOrder := cmd.Flags().Changed("order")
			setVisible := cmd.Flags().Changed("visible")
			if !setOrder && !setVisible {
				return writeErr(cmd, errors.New("nothing to set: pass --order and/or --visible"))
			}
			orderKeys, err := resolveWidgets(app.registry, order)
			if err != nil {
				return writeErr(cmd, err)
			}
			visibleKeys, err := resolveWidgets(app.registry, visible)
			if err != nil {
				return writeErr(cmd, err)
			}
			return editLayout(cmd, app, func(l widgets.WorkingList) (widgets.WorkingList, error) {
				cur := l.Project()
				if setOrder {
					cur.Order = append(orderKeys, cur.Order...)
				}
				if setVisible {
					cur.Visible = visibleKeys
				}
				return widgets.ReconcileLayout(app.registry, cur), nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&order, "order", nil, "Widget order (comma-separated)")
	cmd.Flags().StringSliceVar(&visible, "visible", nil, "Visible widgets (comma-separated; empty hides all)")
	return cmd
}

func newLayoutHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved layout revisions (newest first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			revs, err := s.ListRevisions(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": newHistoryView(revs)})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Max revisions (0 = all)")
	return cmd
}
