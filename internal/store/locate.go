package store

import (
	"strings"

	"dayplan/internal/model"
)

// Located is the result of resolving an id anywhere in the
// List -> Task -> Subtask -> Activity tree. The pointers reference the
// live tree; they stay valid until the next structural mutation
// (add/delete/reorder) on the same sibling set.
//
// For a task, Task is set. For a subtask, Task is its parent and Subtask
// is the item. For an activity, Task and Subtask are the ancestors and
// Activity is the item. List is always the owning list.
type Located struct {
	Kind model.ItemKind

	List     *model.TaskList
	Task     *model.Task
	Subtask  *model.Subtask
	Activity *model.Activity
}

// Base returns the item's shared fields.
func (l Located) Base() *model.ItemBase {
	switch l.Kind {
	case model.KindTask:
		return &l.Task.ItemBase
	case model.KindSubtask:
		return &l.Subtask.ItemBase
	case model.KindActivity:
		return &l.Activity.ItemBase
	}
	return nil
}

// ParentKind names the level immediately above the located item.
func (l Located) ParentKind() model.ItemKind {
	switch l.Kind {
	case model.KindTask:
		return model.KindList
	case model.KindSubtask:
		return model.KindTask
	case model.KindActivity:
		return model.KindSubtask
	}
	return ""
}

// ParentBase returns the shared fields of the immediate parent, or nil
// when the parent is the list (lists carry no item fields).
func (l Located) ParentBase() *model.ItemBase {
	switch l.Kind {
	case model.KindSubtask:
		return &l.Task.ItemBase
	case model.KindActivity:
		return &l.Subtask.ItemBase
	}
	return nil
}

// FindItem resolves id depth-first across all lists.
func (db *DB) FindItem(id string) (Located, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Located{}, false
	}
	for li := range db.Lists {
		l := &db.Lists[li]
		for ti := range l.Tasks {
			t := &l.Tasks[ti]
			if t.ID == id {
				return Located{Kind: model.KindTask, List: l, Task: t}, true
			}
			for si := range t.Subtasks {
				st := &t.Subtasks[si]
				if st.ID == id {
					return Located{Kind: model.KindSubtask, List: l, Task: t, Subtask: st}, true
				}
				for ai := range st.Activities {
					a := &st.Activities[ai]
					if a.ID == id {
						return Located{Kind: model.KindActivity, List: l, Task: t, Subtask: st, Activity: a}, true
					}
				}
			}
		}
	}
	return Located{}, false
}

func (db *DB) FindList(id string) (*model.TaskList, bool) {
	id = strings.TrimSpace(id)
	for li := range db.Lists {
		if db.Lists[li].ID == id {
			return &db.Lists[li], true
		}
	}
	return nil, false
}

// OwningList walks up from any id (list, task, subtask or activity) to
// the list that ultimately contains it.
func (db *DB) OwningList(id string) (*model.TaskList, bool) {
	if l, ok := db.FindList(id); ok {
		return l, true
	}
	if loc, ok := db.FindItem(id); ok {
		return loc.List, true
	}
	return nil, false
}

// Flatten returns every task, subtask and activity in pre-order: lists
// in array order, then each task followed by its subtasks, each subtask
// followed by its activities. History views, the agenda selector and
// the AI request builder all walk this sequence.
func (db *DB) Flatten() []Located {
	var out []Located
	for li := range db.Lists {
		l := &db.Lists[li]
		for ti := range l.Tasks {
			t := &l.Tasks[ti]
			out = append(out, Located{Kind: model.KindTask, List: l, Task: t})
			for si := range t.Subtasks {
				st := &t.Subtasks[si]
				out = append(out, Located{Kind: model.KindSubtask, List: l, Task: t, Subtask: st})
				for ai := range st.Activities {
					a := &st.Activities[ai]
					out = append(out, Located{Kind: model.KindActivity, List: l, Task: t, Subtask: st, Activity: a})
				}
			}
		}
	}
	return out
}
