package cli

import (
	"fmt"

	"dayplan/internal/model"
	"dayplan/internal/mutate"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage tasks",
	}

	var addPriority string
	add := &cobra.Command{
		Use:   "add <list-id> <name>",
		Short: "Add a task to a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return err
			}
			t, err := newEngine().AddTask(db, args[0], args[1], model.Priority(addPriority))
			if err != nil {
				return err
			}
			if err := s.Save(db); err != nil {
				return err
			}
			return printJSON(app, cmd, t)
		},
	}
	add.Flags().StringVar(&addPriority, "priority", "", "high|medium|low (default medium)")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task with its subtasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return err
			}
			loc, ok := db.FindItem(args[0])
			if !ok || loc.Kind != model.KindTask {
				return mutate.NotFoundError{Kind: "task", ID: args[0]}
			}
			return printJSON(app, cmd, loc.Task)
		},
	})

	var (
		upName     string
		upDesc     string
		upStatus   string
		upPriority string
		upCreated  string
		upDue      string
		upSerial   bool
		upLock     bool
		upEstimate float64
	)
	update := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update task fields (only provided flags are applied)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return err
			}
			u := mutate.TaskUpdate{
				SerialCompletionMandatory: flagBool(cmd, "serial", upSerial),
				SequenceMandatory:         flagBool(cmd, "lock-sequence", upLock),
			}
			u.Name = flagStr(cmd, "name", upName)
			u.Description = flagStr(cmd, "description", upDesc)
			u.EstimatedHours = flagFloat(cmd, "estimate", upEstimate)
			if u.Status, err = flagStatus(cmd, "status", upStatus); err != nil {
				return err
			}
			if u.Priority, err = flagPriority(cmd, "priority", upPriority); err != nil {
				return err
			}
			if u.CreationDate, err = flagWhen(cmd, "created", upCreated); err != nil {
				return err
			}
			if u.ExpectedCompletionDate, err = flagWhen(cmd, "due", upDue); err != nil {
				return err
			}

			res, err := newEngine().UpdateTask(db, args[0], u)
			if err != nil {
				return err
			}
			if res.Clamped {
				fmt.Fprintln(cmd.ErrOrStderr(), "note: dates were clamped to stay within valid bounds")
			}
			if !res.Changed {
				fmt.Fprintln(cmd.ErrOrStderr(), "nothing to change")
				return nil
			}
			return s.Save(db)
		},
	}
	update.Flags().StringVar(&upName, "name", "", "New name")
	update.Flags().StringVar(&upDesc, "description", "", "New description (empty clears)")
	update.Flags().StringVar(&upStatus, "status", "", "todo|started|inprogress|done")
	update.Flags().StringVar(&upPriority, "priority", "", "high|medium|low")
	update.Flags().StringVar(&upCreated, "created", "", "Creation date")
	update.Flags().StringVar(&upDue, "due", "", "Expected completion date")
	update.Flags().BoolVar(&upSerial, "serial", false, "Require subtasks to complete in order")
	update.Flags().BoolVar(&upLock, "lock-sequence", false, "Freeze manual reordering of subtasks")
	update.Flags().Float64Var(&upEstimate, "estimate", 0, "Estimated hours")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a task done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return err
			}
			done := model.StatusDone
			if _, err := newEngine().UpdateTask(db, args[0], mutate.TaskUpdate{ItemUpdate: mutate.ItemUpdate{Status: &done}}); err != nil {
				return err
			}
			return s.Save(db)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task (siblings are renumbered)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return err
			}
			if !newEngine().DeleteTask(db, args[0]) {
				return mutate.NotFoundError{Kind: "task", ID: args[0]}
			}
			return s.Save(db)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reorder <list-id> <task-id>...",
		Short: "Reorder a list's tasks (pass the complete new order)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return err
			}
			if err := newEngine().ReorderTasks(db, args[0], args[1:]); err != nil {
				return err
			}
			return s.Save(db)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "can-start <item-id>",
		Short: "Check the serial-completion gate for any item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return err
			}
			ok, err := newEngine().CanStartItem(db, args[0])
			if err != nil {
				return err
			}
			return printJSON(app, cmd, map[string]bool{"canStart": ok})
		},
	})

	return cmd
}
