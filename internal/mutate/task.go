package mutate

import (
	"dayplan/internal/model"
	"dayplan/internal/store"
)

// AddList creates a new empty list.
func (e *Engine) AddList(db *store.DB, name string) (*model.TaskList, error) {
	id, err := db.NewID(model.KindList)
	if err != nil {
		return nil, err
	}
	db.Lists = append(db.Lists, model.TaskList{ID: id, Name: name, Tasks: []model.Task{}})
	return &db.Lists[len(db.Lists)-1], nil
}

// DeleteList removes a list and everything under it.
func (e *Engine) DeleteList(db *store.DB, id string) bool {
	for i := range db.Lists {
		if db.Lists[i].ID == id {
			db.Lists = append(db.Lists[:i], db.Lists[i+1:]...)
			return true
		}
	}
	return false
}

// AddTask appends a task to a list. Lists carry no dates, so the task
// starts with creation = expected = now; the caller adjusts afterwards.
func (e *Engine) AddTask(db *store.DB, listID, name string, priority model.Priority) (*model.Task, error) {
	l, ok := db.FindList(listID)
	if !ok {
		return nil, NotFoundError{Kind: "list", ID: listID}
	}
	id, err := db.NewID(model.KindTask)
	if err != nil {
		return nil, err
	}
	now := e.now()
	if priority == "" {
		priority = model.PriorityMedium
	}
	t := model.Task{
		ItemBase: model.ItemBase{
			ID:                     id,
			ParentID:               l.ID,
			Name:                   name,
			CreationDate:           now,
			ExpectedCompletionDate: now,
			LastEditedDate:         now,
			Status:                 model.StatusTodo,
			Priority:               priority,
			Order:                  len(l.Tasks),
		},
		Subtasks: []model.Subtask{},
	}
	l.Tasks = append(l.Tasks, t)
	return &l.Tasks[len(l.Tasks)-1], nil
}

func (e *Engine) UpdateTask(db *store.DB, id string, u TaskUpdate) (UpdateResult, error) {
	loc, ok := db.FindItem(id)
	if !ok || loc.Kind != model.KindTask {
		return UpdateResult{}, NotFoundError{Kind: "task", ID: id}
	}
	t := loc.Task
	now := e.now()
	prevStatus := t.Status

	changed, datesChanged, err := e.applyBase(loc, u.ItemUpdate, now)
	if err != nil {
		return UpdateResult{Changed: changed}, err
	}
	if u.SerialCompletionMandatory != nil && *u.SerialCompletionMandatory != t.SerialCompletionMandatory {
		t.SerialCompletionMandatory = *u.SerialCompletionMandatory
		changed = true
	}
	if u.SequenceMandatory != nil && *u.SequenceMandatory != t.SequenceMandatory {
		t.SequenceMandatory = *u.SequenceMandatory
		changed = true
	}

	res := UpdateResult{Changed: changed}
	if datesChanged {
		if clampOwnDates(&t.ItemBase) {
			res.Clamped = true
			e.log().Warn("clamped expected completion to creation date", "task", t.ID)
		}
		if e.cascadeTaskDates(t) {
			res.Clamped = true
		}
	}
	if changed {
		t.LastEditedDate = now
	}
	if t.Status != prevStatus {
		e.policy().PropagateStatusUpwards(db, loc)
	}
	return res, nil
}

// DeleteTask removes the task and renumbers the surviving siblings.
// Reports whether anything was removed.
func (e *Engine) DeleteTask(db *store.DB, id string) bool {
	for li := range db.Lists {
		l := &db.Lists[li]
		for ti := range l.Tasks {
			if l.Tasks[ti].ID == id {
				l.Tasks = append(l.Tasks[:ti], l.Tasks[ti+1:]...)
				for i := range l.Tasks {
					l.Tasks[i].Order = i
				}
				return true
			}
		}
	}
	return false
}

// ReorderTasks applies a full permutation of a list's task ids. Lists
// have no sequence lock, so task reorders are never refused for that
// reason.
func (e *Engine) ReorderTasks(db *store.DB, listID string, orderedIDs []string) error {
	l, ok := db.FindList(listID)
	if !ok {
		return NotFoundError{Kind: "list", ID: listID}
	}
	ids := make([]string, len(l.Tasks))
	for i := range l.Tasks {
		ids[i] = l.Tasks[i].ID
	}
	pos, err := permutationIndex(l.ID, ids, orderedIDs)
	if err != nil {
		return err
	}
	for i := range l.Tasks {
		l.Tasks[i].Order = pos[l.Tasks[i].ID]
	}
	sortTasksByOrder(l.Tasks)
	return nil
}
