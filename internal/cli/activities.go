package cli

import (
	"fmt"

	"dayplan/internal/model"
	"dayplan/internal/mutate"

	"github.com/spf13/cobra"
)

func newActivitiesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activities",
		Short: "Manage activities (leaf items)",
	}

	var addPriority string
	add := &cobra.Command{
		Use:   "add <subtask-id> <name>",
		Short: "Add an activity (inherits the subtask's date window)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return err
			}
			a, err := newEngine().AddActivity(db, args[0], args[1], model.Priority(addPriority))
			if err != nil {
				return err
			}
			if err := s.Save(db); err != nil {
				return err
			}
			return printJSON(app, cmd, a)
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
		upNotes    string
		upValue    float64
		upSkipped  bool
		upDueFlag  bool
	)
	update := &cobra.Command{
		Use:   "update <activity-id>",
		Short: "Update activity fields (only provided flags are applied)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return err
			}
			u := mutate.ActivityUpdate{
				Notes:        flagStr(cmd, "notes", upNotes),
				NumericValue: flagFloat(cmd, "value", upValue),
				IsSkipped:    flagBool(cmd, "skipped", upSkipped),
				IsDue:        flagBool(cmd, "is-due", upDueFlag),
			}
			u.Name = flagStr(cmd, "name", upName)
			u.Description = flagStr(cmd, "description", upDesc)
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

			res, err := newEngine().UpdateActivity(db, args[0], u)
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
	update.Flags().StringVar(&upNotes, "notes", "", "Free-form notes")
	update.Flags().Float64Var(&upValue, "value", 0, "Numeric value (reps, pages, ...)")
	update.Flags().BoolVar(&upSkipped, "skipped", false, "Mark skipped")
	update.Flags().BoolVar(&upDueFlag, "is-due", false, "Mark due (increments the due count)")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <activity-id>",
		Short: "Delete an activity (siblings are renumbered)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return err
			}
			if !newEngine().DeleteActivity(db, args[0]) {
				return mutate.NotFoundError{Kind: "activity", ID: args[0]}
			}
			return s.Save(db)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reorder <subtask-id> <activity-id>...",
		Short: "Reorder a subtask's activities (pass the complete new order)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return err
			}
			if err := newEngine().ReorderActivities(db, args[0], args[1:]); err != nil {
				return err
			}
			return s.Save(db)
		},
	})

	return cmd
}
