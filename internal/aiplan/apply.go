package aiplan

import (
	"fmt"
	"time"

	"dayplan/internal/model"
	"dayplan/internal/mutate"
	"dayplan/internal/store"
)

// validated is a suggestion with parsed dates and a resolved kind.
type validated struct {
	id       string
	kind     model.ItemKind
	creation time.Time
	expected time.Time
}

// Apply validates all suggestions and, only if every one is sound,
// applies them through the normal update path (which clamps as usual).
// A structurally invalid batch mutates nothing.
func Apply(db *store.DB, eng *mutate.Engine, suggestions []Suggestion) error {
	if len(suggestions) == 0 {
		return fmt.Errorf("no suggestions to apply")
	}

	vs := make([]validated, 0, len(suggestions))
	for i, s := range suggestions {
		loc, ok := db.FindItem(s.ItemID)
		if !ok {
			return fmt.Errorf("suggestion %d: unknown item %q", i, s.ItemID)
		}
		if loc.Kind != model.KindTask && loc.Kind != model.KindSubtask {
			return fmt.Errorf("suggestion %d: %q is not schedulable", i, s.ItemID)
		}
		creation, err := time.Parse(time.RFC3339, s.CreationDate)
		if err != nil {
			return fmt.Errorf("suggestion %d: bad creationDate: %w", i, err)
		}
		expected, err := time.Parse(time.RFC3339, s.ExpectedCompletionDate)
		if err != nil {
			return fmt.Errorf("suggestion %d: bad expectedCompletionDate: %w", i, err)
		}
		if expected.Before(creation) {
			// The update path clamps this too; normalize up front so the
			// applied window is already coherent.
			expected = creation
		}
		vs = append(vs, validated{id: s.ItemID, kind: loc.Kind, creation: creation, expected: expected})
	}

	for _, v := range vs {
		u := mutate.ItemUpdate{
			CreationDate:           &v.creation,
			ExpectedCompletionDate: &v.expected,
		}
		var err error
		switch v.kind {
		case model.KindTask:
			_, err = eng.UpdateTask(db, v.id, mutate.TaskUpdate{ItemUpdate: u})
		case model.KindSubtask:
			_, err = eng.UpdateSubtask(db, v.id, mutate.SubtaskUpdate{ItemUpdate: u})
		}
		if err != nil {
			return fmt.Errorf("apply suggestion for %s: %w", v.id, err)
		}
	}
	return nil
}
