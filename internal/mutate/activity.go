package mutate

import (
	"fmt"

	"dayplan/internal/model"
	"dayplan/internal/store"
)

// AddActivity appends an activity to a subtask, inheriting the
// subtask's date window.
func (e *Engine) AddActivity(db *store.DB, subtaskID, name string, priority model.Priority) (*model.Activity, error) {
	loc, ok := db.FindItem(subtaskID)
	if !ok || loc.Kind != model.KindSubtask {
		return nil, NotFoundError{Kind: "subtask", ID: subtaskID}
	}
	st := loc.Subtask
	id, err := db.NewID(model.KindActivity)
	if err != nil {
		return nil, err
	}
	now := e.now()
	if priority == "" {
		priority = model.PriorityMedium
	}
	a := model.Activity{
		ItemBase: model.ItemBase{
			ID:             id,
			ParentID:       st.ID,
			Name:           name,
			LastEditedDate: now,
			Status:         model.StatusTodo,
			Priority:       priority,
			Order:          len(st.Activities),
		},
	}
	inheritDates(&a.ItemBase, st.CreationDate, st.ExpectedCompletionDate)
	st.Activities = append(st.Activities, a)
	return &st.Activities[len(st.Activities)-1], nil
}

func (e *Engine) UpdateActivity(db *store.DB, id string, u ActivityUpdate) (UpdateResult, error) {
	loc, ok := db.FindItem(id)
	if !ok || loc.Kind != model.KindActivity {
		return UpdateResult{}, NotFoundError{Kind: "activity", ID: id}
	}
	a := loc.Activity
	st := loc.Subtask
	t := loc.Task
	now := e.now()
	prevStatus := a.Status

	changed, datesChanged, err := e.applyBase(loc, u.ItemUpdate, now)
	if err != nil {
		return UpdateResult{Changed: changed}, err
	}

	if u.Notes != nil && *u.Notes != a.Notes {
		a.Notes = *u.Notes
		changed = true
	}
	if u.NumericValue != nil && *u.NumericValue != a.NumericValue {
		a.NumericValue = *u.NumericValue
		changed = true
	}
	if u.LastInstanceDate != nil && (a.LastInstanceDate == nil || !u.LastInstanceDate.Equal(*a.LastInstanceDate)) {
		d := *u.LastInstanceDate
		a.LastInstanceDate = &d
		changed = true
	}
	if u.IsSkipped != nil && *u.IsSkipped != a.IsSkipped {
		a.IsSkipped = *u.IsSkipped
		if a.IsSkipped {
			appendHistory(&a.ItemBase, now, "[SKIP]")
		}
		changed = true
	}
	if u.IsDue != nil && *u.IsDue != a.IsDue {
		a.IsDue = *u.IsDue
		if a.IsDue {
			a.DueCount++
			appendHistory(&a.ItemBase, now, fmt.Sprintf("[DUE] (Count: %d)", a.DueCount))
		}
		changed = true
	}

	res := UpdateResult{Changed: changed}
	if datesChanged {
		if clampIntoParent(&a.ItemBase, st.CreationDate, st.ExpectedCompletionDate) {
			res.Clamped = true
			e.log().Warn("clamped activity dates to subtask bounds", "activity", a.ID, "subtask", st.ID)
		}
	}
	if changed {
		a.LastEditedDate = now
		st.LastEditedDate = now
		t.LastEditedDate = now
	}
	if a.Status != prevStatus {
		e.policy().PropagateStatusUpwards(db, loc)
	}
	return res, nil
}

// DeleteActivity removes the activity, renumbers the survivors and
// refreshes the ancestor edit timestamps.
func (e *Engine) DeleteActivity(db *store.DB, id string) bool {
	loc, ok := db.FindItem(id)
	if !ok || loc.Kind != model.KindActivity {
		return false
	}
	st := loc.Subtask
	for ai := range st.Activities {
		if st.Activities[ai].ID == id {
			st.Activities = append(st.Activities[:ai], st.Activities[ai+1:]...)
			for i := range st.Activities {
				st.Activities[i].Order = i
			}
			now := e.now()
			st.LastEditedDate = now
			loc.Task.LastEditedDate = now
			return true
		}
	}
	return false
}

// ReorderActivities applies a full permutation of a subtask's activity
// ids. Refused without any state change when the subtask's sequence is
// locked.
func (e *Engine) ReorderActivities(db *store.DB, subtaskID string, orderedIDs []string) error {
	loc, ok := db.FindItem(subtaskID)
	if !ok || loc.Kind != model.KindSubtask {
		return NotFoundError{Kind: "subtask", ID: subtaskID}
	}
	st := loc.Subtask
	if st.SequenceMandatory {
		e.log().Warn("reorder rejected: sequence is locked", "subtask", st.ID)
		return BlockedError{ID: st.ID, Reason: "sequence is locked"}
	}
	ids := make([]string, len(st.Activities))
	for i := range st.Activities {
		ids[i] = st.Activities[i].ID
	}
	pos, err := permutationIndex(st.ID, ids, orderedIDs)
	if err != nil {
		return err
	}
	for i := range st.Activities {
		st.Activities[i].Order = pos[st.Activities[i].ID]
	}
	sortActivitiesByOrder(st.Activities)
	now := e.now()
	st.LastEditedDate = now
	loc.Task.LastEditedDate = now
	return nil
}
