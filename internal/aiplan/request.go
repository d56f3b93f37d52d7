// Package aiplan integrates the AI scheduling collaborator: it flattens
// the task tree into a scheduling request, asks a Planner for start/end
// suggestions and applies validated suggestions through the ordinary
// mutation path.
package aiplan

import (
	"time"

	"dayplan/internal/model"
	"dayplan/internal/store"
)

// PlanItem is one schedulable unit presented to the planner: a task or
// subtask with its constraints.
type PlanItem struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Priority       model.Priority `json:"priority"`
	Deadline       string         `json:"deadline,omitempty"` // ISO-8601, = expectedCompletionDate
	Dependencies   []string       `json:"dependencies,omitempty"`
	EstimatedHours float64        `json:"estimatedHours,omitempty"`
	Description    string         `json:"description,omitempty"`
}

// BuildRequest flattens every task and its subtasks (activities are too
// fine-grained to schedule) in pre-order.
func BuildRequest(db *store.DB) []PlanItem {
	var out []PlanItem
	for _, loc := range db.Flatten() {
		if loc.Kind != model.KindTask && loc.Kind != model.KindSubtask {
			continue
		}
		b := loc.Base()
		it := PlanItem{
			ID:           b.ID,
			Name:         b.Name,
			Priority:     b.Priority,
			Deadline:     b.ExpectedCompletionDate.Format(time.RFC3339),
			Dependencies: append([]string(nil), b.DependencyIDs...),
			Description:  b.Description,
		}
		if b.EstimatedHours != nil {
			it.EstimatedHours = *b.EstimatedHours
		}
		out = append(out, it)
	}
	return out
}
