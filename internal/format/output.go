// Package format renders a read-only planner snapshot for export. The
// snapshot is plain data; nothing here reaches back into the store.
package format

import (
	"encoding/json"
	"fmt"
	"io"

	"dayplan/internal/store"
)

// Write writes the snapshot in the requested format.
//
// Supported formats:
// - json (default)
// - csv
// - text
func Write(w io.Writer, db *store.DB, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, db, pretty)
	case "csv":
		return WriteCSV(w, db)
	case "text":
		return WriteText(w, db)
	default:
		return fmt.Errorf("unknown format: %q (expected json|csv|text)", format)
	}
}

func WriteJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
