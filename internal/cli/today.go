package cli

import (
	"time"

	"dayplan/internal/agenda"

	"github.com/spf13/cobra"
)

func newTodayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show the items needing attention today, most urgent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return err
			}
			return printJSON(app, cmd, agenda.TodayItems(db, time.Now()))
		},
	}
}
