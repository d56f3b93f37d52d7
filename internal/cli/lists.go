package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Manage task lists",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Create a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return err
			}
			l, err := newEngine().AddList(db, args[0])
			if err != nil {
				return err
			}
			if err := s.Save(db); err != nil {
				return err
			}
			return printJSON(app, cmd, l)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show all lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return err
			}
			type row struct {
				ID    string `json:"id"`
				Name  string `json:"name"`
				Tasks int    `json:"tasks"`
			}
			rows := make([]row, 0, len(db.Lists))
			for _, l := range db.Lists {
				rows = append(rows, row{ID: l.ID, Name: l.Name, Tasks: len(l.Tasks)})
			}
			return printJSON(app, cmd, rows)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <list-id>",
		Short: "Delete a list and everything under it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return err
			}
			if !newEngine().DeleteList(db, args[0]) {
				return fmt.Errorf("list not found: %s", args[0])
			}
			return s.Save(db)
		},
	})

	return cmd
}
