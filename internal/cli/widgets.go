package cli

import (
	"dashboard-cli/internal/widgets"

	"github.com/spf13/cobra"
)

func newWidgetsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "widgets",
		Short: "Inspect the widget registry",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all known widgets in default order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, map[string]any{"data": app.registry.Entries()})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <widget>",
		Short: "Show one widget and where it sits in the current layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := resolveWidget(app.registry, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			entry, _ := app.registry.Lookup(key)
			_, list, _, err := loadWorkingList(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			pos := list.Index(key)
			return writeOut(cmd, app, map[string]any{"data": widgetDetail{
				Entry:    entry,
				Position: pos,
				Visible:  pos >= 0 && list[pos].Visible,
			}})
		},
	})
	return cmd
}

type widgetDetail struct {
	widgets.Entry
	Position int  `json:"position"`
	Visible  bool `json:"visible"`
}
