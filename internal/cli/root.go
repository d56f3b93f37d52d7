package cli

import (
	"log/slog"
	"os"

	"dayplan/internal/mutate"
	"dayplan/internal/store"
	"dayplan/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string
	Verbose    bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "dayplan",
		Short:        "dayplan (local-first personal planner) CLI + TUI",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		lvl := slog.LevelWarn
		if app.Verbose {
			lvl = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("DAYPLAN_DIR", ""), "Path to store dir (default: discovered .dayplan)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("DAYPLAN_FORMAT", "json"), "Output format (json|csv|text)")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Verbose logging")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newListsCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newSubtasksCmd(app))
	cmd.AddCommand(newActivitiesCmd(app))
	cmd.AddCommand(newTodayCmd(app))
	cmd.AddCommand(newPlanCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newAttachCmd(app))

	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func storeDir(app *App) (string, error) {
	if app.Dir != "" {
		return app.Dir, nil
	}
	d, err := store.DefaultDir()
	if err != nil {
		return "", err
	}
	app.Dir = d
	return d, nil
}

func loadDB(app *App) (*store.DB, store.Store, error) {
	dir, err := storeDir(app)
	if err != nil {
		return nil, store.Store{}, err
	}
	s := store.Store{Dir: dir}
	db, err := s.Load()
	if err != nil {
		return nil, store.Store{}, err
	}
	return db, s, nil
}

func newEngine() *mutate.Engine {
	return mutate.NewEngine()
}

func runTUI(app *App) error {
	db, s, err := loadDB(app)
	if err != nil {
		return err
	}
	return tui.Run(s, db)
}
