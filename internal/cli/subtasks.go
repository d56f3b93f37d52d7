package cli

import (
	"fmt"

	"dayplan/internal/model"
	"dayplan/internal/mutate"

	"github.com/spf13/cobra"
)

func newSubtasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtasks",
		Short: "Manage subtasks",
	}

	var addPriority string
	add := &cobra.Command{
		Use:   "add <task-id> <name>",
		Short: "Add a subtask (inherits the task's date window)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return err
			}
			st, err := newEngine().AddSubtask(db, args[0], args[1], model.Priority(addPriority))
			if err != nil {
				return err
			}
			if err := s.Save(db); err != nil {
				return err
			}
			return printJSON(app, cmd, st)
		},
	}
	add.Flags().StringVar(&addPriority, "priority", "", "high|medium|low (default medium)")
	cmd.AddCommand(add)

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
		Use:   "update <subtask-id>",
		Short: "Update subtask fields (only provided flags are applied)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return err
			}
			u := mutate.SubtaskUpdate{
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

			res, err := newEngine().UpdateSubtask(db, args[0], u)
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
	update.Flags().BoolVar(&upSerial, "serial", false, "Require activities to complete in order")
	update.Flags().BoolVar(&upLock, "lock-sequence", false, "Freeze manual reordering of activities")
	update.Flags().Float64Var(&upEstimate, "estimate", 0, "Estimated hours")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <subtask-id>",
		Short: "Delete a subtask (siblings are renumbered)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return err
			}
			if !newEngine().DeleteSubtask(db, args[0]) {
				return mutate.NotFoundError{Kind: "subtask", ID: args[0]}
			}
			return s.Save(db)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reorder <task-id> <subtask-id>...",
		Short: "Reorder a task's subtasks (pass the complete new order)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return err
			}
			if err := newEngine().ReorderSubtasks(db, args[0], args[1:]); err != nil {
				return err
			}
			return s.Save(db)
		},
	})

	return cmd
}
