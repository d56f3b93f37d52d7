package format

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"dayplan/internal/model"
	"dayplan/internal/store"
)

var csvHeader = []string{
	"kind", "id", "list", "task", "subtask", "name",
	"status", "priority", "order",
	"creationDate", "expectedCompletionDate", "actualCompletionDate",
}

// WriteCSV writes one row per task, subtask and activity, pre-order.
func WriteCSV(w io.Writer, db *store.DB) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, loc := range db.Flatten() {
		b := loc.Base()
		var taskName, subtaskName string
		switch loc.Kind {
		case model.KindSubtask:
			taskName = loc.Task.Name
		case model.KindActivity:
			taskName = loc.Task.Name
			subtaskName = loc.Subtask.Name
		}
		row := []string{
			string(loc.Kind),
			b.ID,
			loc.List.Name,
			taskName,
			subtaskName,
			b.Name,
			string(b.Status),
			string(b.Priority),
			strconv.Itoa(b.Order),
			b.CreationDate.Format(time.RFC3339),
			b.ExpectedCompletionDate.Format(time.RFC3339),
			formatOptTime(b.ActualCompletionDate),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatOptTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
