package mutate

import (
	"dayplan/internal/model"
	"dayplan/internal/store"
)

// AddSubtask appends a subtask to a task, inheriting the task's date window.
func (e *Engine) AddSubtask(db *store.DB, taskID, name string, priority model.Priority) (*model.Subtask, error) {
	loc, ok := db.FindItem(taskID)
	if !ok || loc.Kind != model.KindTask {
		return nil, NotFoundError{Kind: "task", ID: taskID}
	}
	t := loc.Task
	id, err := db.NewID(model.KindSubtask)
	if err != nil {
		return nil, err
	}
	now := e.now()
	if priority == "" {
		priority = model.PriorityMedium
	}
	st := model.Subtask{
		ItemBase: model.ItemBase{
			ID:             id,
			ParentID:       t.ID,
			Name:           name,
			LastEditedDate: now,
			Status:         model.StatusTodo,
			Priority:       priority,
			Order:          len(t.Subtasks),
		},
		Activities: []model.Activity{},
	}
	inheritDates(&st.ItemBase, t.CreationDate, t.ExpectedCompletionDate)
	t.Subtasks = append(t.Subtasks, st)
	return &t.Subtasks[len(t.Subtasks)-1], nil
}

func (e *Engine) UpdateSubtask(db *store.DB, id string, u SubtaskUpdate) (UpdateResult, error) {
	loc, ok := db.FindItem(id)
	if !ok || loc.Kind != model.KindSubtask {
		return UpdateResult{}, NotFoundError{Kind: "subtask", ID: id}
	}
	st := loc.Subtask
	t := loc.Task
	now := e.now()
	prevStatus := st.Status

	changed, datesChanged, err := e.applyBase(loc, u.ItemUpdate, now)
	if err != nil {
		return UpdateResult{Changed: changed}, err
	}
	if u.SerialCompletionMandatory != nil && *u.SerialCompletionMandatory != st.SerialCompletionMandatory {
		st.SerialCompletionMandatory = *u.SerialCompletionMandatory
		changed = true
	}
	if u.SequenceMandatory != nil && *u.SequenceMandatory != st.SequenceMandatory {
		st.SequenceMandatory = *u.SequenceMandatory
		changed = true
	}

	res := UpdateResult{Changed: changed}
	if datesChanged {
		if clampIntoParent(&st.ItemBase, t.CreationDate, t.ExpectedCompletionDate) {
			res.Clamped = true
			e.log().Warn("clamped subtask dates to task bounds", "subtask", st.ID, "task", t.ID)
		}
		if e.cascadeSubtaskDates(st) {
			res.Clamped = true
		}
	}
	if changed {
		st.LastEditedDate = now
		t.LastEditedDate = now
	}
	if st.Status != prevStatus {
		e.policy().PropagateStatusUpwards(db, loc)
	}
	return res, nil
}

// DeleteSubtask removes the subtask, renumbers the survivors and
// refreshes the owning task's edit timestamp.
func (e *Engine) DeleteSubtask(db *store.DB, id string) bool {
	loc, ok := db.FindItem(id)
	if !ok || loc.Kind != model.KindSubtask {
		return false
	}
	t := loc.Task
	for si := range t.Subtasks {
		if t.Subtasks[si].ID == id {
			t.Subtasks = append(t.Subtasks[:si], t.Subtasks[si+1:]...)
			for i := range t.Subtasks {
				t.Subtasks[i].Order = i
			}
			t.LastEditedDate = e.now()
			return true
		}
	}
	return false
}

// ReorderSubtasks applies a full permutation of a task's subtask ids.
// Refused without any state change when the task's sequence is locked.
func (e *Engine) ReorderSubtasks(db *store.DB, taskID string, orderedIDs []string) error {
	loc, ok := db.FindItem(taskID)
	if !ok || loc.Kind != model.KindTask {
		return NotFoundError{Kind: "task", ID: taskID}
	}
	t := loc.Task
	if t.SequenceMandatory {
		e.log().Warn("reorder rejected: sequence is locked", "task", t.ID)
		return BlockedError{ID: t.ID, Reason: "sequence is locked"}
	}
	ids := make([]string, len(t.Subtasks))
	for i := range t.Subtasks {
		ids[i] = t.Subtasks[i].ID
	}
	pos, err := permutationIndex(t.ID, ids, orderedIDs)
	if err != nil {
		return err
	}
	for i := range t.Subtasks {
		t.Subtasks[i].Order = pos[t.Subtasks[i].ID]
	}
	sortSubtasksByOrder(t.Subtasks)
	t.LastEditedDate = e.now()
	return nil
}
