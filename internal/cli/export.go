package cli

import (
	"os"

	"dayplan/internal/format"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full tree (json|csv|text via --format)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return err
			}
			// Exporters get a snapshot, never the live tree.
			snap, err := db.Clone()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return format.Write(w, snap, app.Format, app.PrettyJSON)
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to file instead of stdout")
	return cmd
}
