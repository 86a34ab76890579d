package cli

import (
	"fmt"
	"os"
	"strings"

	"dashboard-cli/internal/format"
	"dashboard-cli/internal/store"
	"dashboard-cli/internal/tui"
	"dashboard-cli/internal/widgets"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Profile    string
	PrettyJSON bool
	Format     string

	registry widgets.Registry
}

func NewRootCmd() *cobra.Command {
	app := &App{registry: widgets.Default()}

	cmd := &cobra.Command{
		Use:          "dashboard",
		Short:        "Dashboard widget layout (local-first) CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive dashboard (press c to customize widgets)
  dashboard

  # Scriptable commands
  dashboard layout show
  dashboard layout toggle deals quickActions
  dashboard layout move deals --to 0

  # Direct widget lookup (shortcut for: dashboard widgets show <widget-key>)
  dashboard leads
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("DASHBOARD_DIR", ""), "Path to a store dir (overrides profile resolution; mainly for fixtures/tests)")
	cmd.PersistentFlags().StringVar(&app.Profile, "profile", envOr("DASHBOARD_PROFILE", ""), "Profile name (default: currentProfile from config, else 'default')")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("DASHBOARD_FORMAT", format.FormatJSON), "Output format (json|edn|text)")

	cmd.AddCommand(newWidgetsCmd(app))
	cmd.AddCommand(newLayoutCmd(app))
	cmd.AddCommand(newProfilesCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newDoctorCmd(app))

	return cmd
}

func runTUI(app *App) error {
	s, err := openStore(app)
	if err != nil {
		return err
	}
	return tui.Run(s, app.registry)
}

// openStore resolves --dir/--profile into a store. Resolution never creates directories;
// the store does that on first write.
func openStore(app *App) (store.Store, error) {
	dir, profile, err := store.Resolve(app.Dir, app.Profile)
	if err != nil {
		return store.Store{}, err
	}
	app.Dir = dir
	if profile != "" {
		app.Profile = profile
	}
	return store.Store{Dir: dir}, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
