package cli

import (
	"fmt"

	"dayplan/internal/aiplan"

	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	var (
		userContext string
		dryRun      bool
	)
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Ask the AI scheduler for start/end suggestions and apply them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return err
			}
			items := aiplan.BuildRequest(db)
			if len(items) == 0 {
				return fmt.Errorf("nothing to schedule")
			}

			planner, err := aiplan.NewOpenAIPlanner()
			if err != nil {
				return err
			}
			suggestions, err := planner.SuggestSchedule(cmd.Context(), items, userContext)
			if err != nil {
				return err
			}
			if dryRun {
				return printJSON(app, cmd, suggestions)
			}

			if err := aiplan.Apply(db, newEngine(), suggestions); err != nil {
				return err
			}
			if err := s.Save(db); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d schedule suggestions\n", len(suggestions))
			return nil
		},
	}
	cmd.Flags().StringVar(&userContext, "context", "", "Free-text context for the scheduler")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print suggestions without applying")
	return cmd
}
