package cli

import (
	"fmt"

	"dayplan/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create an empty planner store in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := storeDir(app)
			if err != nil {
				return err
			}
			s := store.Store{Dir: dir}
			db, err := s.Load()
			if err != nil {
				return err
			}
			if err := s.Save(db); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "initialized planner store at %s\n", dir)
			return nil
		},
	}
}
