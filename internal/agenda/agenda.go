// Package agenda derives the "today" dashboard view: a flat, urgency-
// ranked selection of items needing attention. It is a read-only pass
// over the tree and never mutates store state.
package agenda

import (
	"math"
	"sort"
	"time"

	"dayplan/internal/model"
	"dayplan/internal/store"
)

// Item is a derived, non-persisted view-model entry.
type Item struct {
	ID   string         `json:"id"`
	Kind model.ItemKind `json:"kind"`
	Name string         `json:"name"`

	// Breadcrumbs: the owning list is always set; task/subtask names
	// depend on depth.
	ListName    string `json:"listName"`
	TaskName    string `json:"taskName,omitempty"`
	SubtaskName string `json:"subtaskName,omitempty"`

	Priority model.Priority `json:"priority"`
	Status   model.Status   `json:"status"`

	ExpectedCompletionDate time.Time `json:"expectedCompletionDate"`
	IsOverdue              bool      `json:"isOverdue"`
	DaysUntilDue           int       `json:"daysUntilDue"`
	UrgencyScore           int       `json:"urgencyScore"`
}

// horizonDays is the look-ahead window: items due further out are not
// surfaced even when high priority.
const horizonDays = 7

// TodayItems selects and ranks the items for the dashboard.
//
// Done items are excluded, as are low-priority items regardless of how
// overdue they are (a deliberate choice: low priority means "never on
// the today list").
func TodayItems(db *store.DB, now time.Time) []Item {
	var out []Item
	for _, loc := range db.Flatten() {
		b := loc.Base()
		if b.Status == model.StatusDone {
			continue
		}
		if b.Priority != model.PriorityHigh && b.Priority != model.PriorityMedium {
			continue
		}

		isOverdue := now.After(b.ExpectedCompletionDate)
		daysUntilDue := int(math.Floor(b.ExpectedCompletionDate.Sub(now).Hours() / 24))
		if !isOverdue && daysUntilDue > horizonDays {
			continue
		}

		it := Item{
			ID:                     b.ID,
			Kind:                   loc.Kind,
			Name:                   b.Name,
			ListName:               loc.List.Name,
			Priority:               b.Priority,
			Status:                 b.Status,
			ExpectedCompletionDate: b.ExpectedCompletionDate,
			IsOverdue:              isOverdue,
			DaysUntilDue:           daysUntilDue,
			UrgencyScore:           urgencyScore(b.Priority, b.Status, daysUntilDue, isOverdue),
		}
		switch loc.Kind {
		case model.KindSubtask:
			it.TaskName = loc.Task.Name
		case model.KindActivity:
			it.TaskName = loc.Task.Name
			it.SubtaskName = loc.Subtask.Name
		}
		out = append(out, it)
	}

	// Ties keep scan order (stable sort over the pre-order flatten).
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UrgencyScore > out[j].UrgencyScore
	})
	return out
}

func urgencyScore(p model.Priority, s model.Status, daysUntilDue int, overdue bool) int {
	score := priorityWeight(p)*10 + statusWeight(s)*5 - daysUntilDue
	if overdue {
		score += 10
	}
	return score
}

func priorityWeight(p model.Priority) int {
	switch p {
	case model.PriorityHigh:
		return 3
	case model.PriorityMedium:
		return 2
	case model.PriorityLow:
		return 1
	}
	return 0
}

func statusWeight(s model.Status) int {
	switch s {
	case model.StatusInProgress:
		return 4
	case model.StatusStarted:
		return 3
	case model.StatusTodo:
		return 2
	case model.StatusDone:
		return 0
	}
	return 0
}
