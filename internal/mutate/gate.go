package mutate

import (
	"dayplan/internal/model"
	"dayplan/internal/store"
)

// CanStartItem answers "may this item be worked on right now?". The
// gate applies only at the task->subtask and subtask->activity
// relationships: when the parent's serialCompletionMandatory flag is
// set, an item may start only once every sibling with a strictly lower
// order is done. Tasks (and lists) are never gated.
//
// The answer is advisory and computed fresh on every call; callers must
// re-check before allowing an action.
func (e *Engine) CanStartItem(db *store.DB, id string) (bool, error) {
	if _, ok := db.FindList(id); ok {
		return true, nil
	}
	loc, ok := db.FindItem(id)
	if !ok {
		return false, NotFoundError{Kind: "item", ID: id}
	}
	switch loc.Kind {
	case model.KindTask:
		return true, nil
	case model.KindSubtask:
		if !loc.Task.SerialCompletionMandatory {
			return true, nil
		}
		return priorSiblingsDone(subtaskBases(loc.Task.Subtasks), loc.Subtask.Order), nil
	case model.KindActivity:
		if !loc.Subtask.SerialCompletionMandatory {
			return true, nil
		}
		return priorSiblingsDone(activityBases(loc.Subtask.Activities), loc.Activity.Order), nil
	}
	return true, nil
}

// CanChangeStatus defers to the engine's status policy (permissive by default).
func (e *Engine) CanChangeStatus(db *store.DB, id string, to model.Status) (bool, error) {
	loc, ok := db.FindItem(id)
	if !ok {
		return false, NotFoundError{Kind: "item", ID: id}
	}
	return e.policy().CanChangeStatus(loc, loc.Base().Status, to), nil
}

func priorSiblingsDone(sibs []*model.ItemBase, order int) bool {
	for _, s := range sibs {
		if s.Order < order && s.Status != model.StatusDone {
			return false
		}
	}
	return true
}

func subtaskBases(xs []model.Subtask) []*model.ItemBase {
	out := make([]*model.ItemBase, len(xs))
	for i := range xs {
		out[i] = &xs[i].ItemBase
	}
	return out
}

func activityBases(xs []model.Activity) []*model.ItemBase {
	out := make([]*model.ItemBase, len(xs))
	for i := range xs {
		out[i] = &xs[i].ItemBase
	}
	return out
}
