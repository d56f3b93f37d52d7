package mutate

import (
	"time"

	"dayplan/internal/model"
)

// clampOwnDates enforces expectedCompletionDate >= creationDate by
// pulling expected up to creation. Reports whether anything moved.
func clampOwnDates(b *model.ItemBase) bool {
	if b.ExpectedCompletionDate.Before(b.CreationDate) {
		b.ExpectedCompletionDate = b.CreationDate
		return true
	}
	return false
}

// clampIntoParent bounds an item's dates by its parent's: creation never
// earlier than the parent's creation, expected never later than the
// parent's expected. The own-order rule is re-applied afterwards.
func clampIntoParent(b *model.ItemBase, parentCreation, parentExpected time.Time) bool {
	clamped := false
	if b.CreationDate.Before(parentCreation) {
		b.CreationDate = parentCreation
		clamped = true
	}
	if b.ExpectedCompletionDate.After(parentExpected) {
		b.ExpectedCompletionDate = parentExpected
		clamped = true
	}
	if clampOwnDates(b) {
		clamped = true
	}
	return clamped
}

// cascadeTaskDates re-clamps every subtask into the task's bounds, then
// every activity into its (possibly just-clamped) subtask's bounds.
// One top-down pass; the hierarchy is fixed-depth so no recursion.
func (e *Engine) cascadeTaskDates(t *model.Task) bool {
	clamped := false
	for i := range t.Subtasks {
		st := &t.Subtasks[i]
		if clampIntoParent(&st.ItemBase, t.CreationDate, t.ExpectedCompletionDate) {
			clamped = true
			e.log().Warn("clamped subtask dates to task bounds", "subtask", st.ID, "task", t.ID)
		}
		if e.cascadeSubtaskDates(st) {
			clamped = true
		}
	}
	return clamped
}

func (e *Engine) cascadeSubtaskDates(st *model.Subtask) bool {
	clamped := false
	for i := range st.Activities {
		a := &st.Activities[i]
		if clampIntoParent(&a.ItemBase, st.CreationDate, st.ExpectedCompletionDate) {
			clamped = true
			e.log().Warn("clamped activity dates to subtask bounds", "activity", a.ID, "subtask", st.ID)
		}
	}
	return clamped
}

// inheritDates seeds a new child's dates from its parent, keeping
// expected >= creation.
func inheritDates(b *model.ItemBase, parentCreation, parentExpected time.Time) {
	b.CreationDate = parentCreation
	b.ExpectedCompletionDate = parentExpected
	clampOwnDates(b)
}
