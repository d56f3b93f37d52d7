package cli

import (
	"fmt"
	"time"

	"dayplan/internal/format"
	"dayplan/internal/model"

	"github.com/spf13/cobra"
)

// parseWhen accepts a bare date or a full timestamp.
func parseWhen(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q (expected YYYY-MM-DD or RFC 3339)", s)
	}
	return t, nil
}

// flagStr returns a pointer only when the flag was set on the command
// line, so unset flags stay out of partial updates.
func flagStr(cmd *cobra.Command, name, val string) *string {
	if cmd.Flags().Changed(name) {
		return &val
	}
	return nil
}

func flagBool(cmd *cobra.Command, name string, val bool) *bool {
	if cmd.Flags().Changed(name) {
		return &val
	}
	return nil
}

func flagFloat(cmd *cobra.Command, name string, val float64) *float64 {
	if cmd.Flags().Changed(name) {
		return &val
	}
	return nil
}

func flagWhen(cmd *cobra.Command, name, val string) (*time.Time, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	t, err := parseWhen(val)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func flagStatus(cmd *cobra.Command, name, val string) (*model.Status, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	s := model.Status(val)
	if !model.ValidStatus(s) {
		return nil, fmt.Errorf("invalid status %q (todo|started|inprogress|done)", val)
	}
	return &s, nil
}

func flagPriority(cmd *cobra.Command, name, val string) (*model.Priority, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	p := model.Priority(val)
	if !model.ValidPriority(p) {
		return nil, fmt.Errorf("invalid priority %q (high|medium|low)", val)
	}
	return &p, nil
}

func printJSON(app *App, cmd *cobra.Command, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}
