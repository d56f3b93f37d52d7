package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newAttachCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attach",
		Short: "Manage attachments on any task, subtask or activity",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "link <item-id> <name> <url>",
		Short: "Attach a link",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return err
			}
			att, err := newEngine().AddLinkAttachment(db, args[0], args[1], args[2])
			if err != nil {
				return err
			}
			if err := s.Save(db); err != nil {
				return err
			}
			return printJSON(app, cmd, att)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "file <item-id> <path>",
		Short: "Attach a file (payload is embedded in the store)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			att, err := newEngine().AddFileAttachment(db, args[0], filepath.Base(args[1]), data)
			if err != nil {
				return err
			}
			if err := s.Save(db); err != nil {
				return err
			}
			return printJSON(app, cmd, att)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <item-id> <attachment-id>",
		Short: "Remove an attachment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return err
			}
			removed, err := newEngine().RemoveAttachment(db, args[0], args[1])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("attachment not found: %s", args[1])
			}
			return s.Save(db)
		},
	})

	return cmd
}
