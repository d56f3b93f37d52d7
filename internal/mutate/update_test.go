package mutate

import (
	"errors"
	"testing"
	"time"

	"dayplan/internal/model"
	"dayplan/internal/store"
)

func TestDescriptionEditRecordsOldText(t *testing.T) {
	e := testEngine(day(0))
	db, taskID := seedTask(t, e)

	if _, err := e.UpdateTask(db, taskID, TaskUpdate{ItemUpdate: ItemUpdate{
		Description: strPtr("draft"),
	}}); err != nil {
		t.Fatalf("UpdateTask error: %v", err)
	}
	if _, err := e.UpdateTask(db, taskID, TaskUpdate{ItemUpdate: ItemUpdate{
		Description: strPtr("final"),
	}}); err != nil {
		t.Fatalf("UpdateTask error: %v", err)
	}

	b := mustFind(t, db, taskID).Base()
	if b.Description != "final" {
		t.Fatalf("description = %q, want final", b.Description)
	}
	if len(b.History) != 2 {
		t.Fatalf("history entries = %d, want 2", len(b.History))
	}
	if b.History[0].Content != "[EDIT] (empty)" {
		t.Fatalf("first entry = %q, want [EDIT] (empty)", b.History[0].Content)
	}
	if b.History[1].Content != "[EDIT] draft" {
		t.Fatalf("second entry = %q, want [EDIT] draft", b.History[1].Content)
	}
}

func TestUnchangedDescriptionLeavesHistoryAlone(t *testing.T) {
	e := testEngine(day(0))
	db, taskID := seedTask(t, e)

	res, err := e.UpdateTask(db, taskID, TaskUpdate{ItemUpdate: ItemUpdate{
		Description: strPtr(""),
	}})
	if err != nil {
		t.Fatalf("UpdateTask error: %v", err)
	}
	if res.Changed {
		t.Fatalf("setting an empty description on an empty item is not a change")
	}
	if n := len(mustFind(t, db, taskID).Base().History); n != 0 {
		t.Fatalf("history entries = %d, want 0", n)
	}
}

func TestStatusHistoryOffByDefault(t *testing.T) {
	e := testEngine(day(0))
	db, taskID := seedTask(t, e)

	if _, err := e.UpdateTask(db, taskID, TaskUpdate{ItemUpdate: ItemUpdate{
		Status: statusPtr(model.StatusDone),
	}}); err != nil {
		t.Fatalf("UpdateTask error: %v", err)
	}
	if n := len(mustFind(t, db, taskID).Base().History); n != 0 {
		t.Fatalf("status change wrote history without the toggle: %d entries", n)
	}
}

func TestStatusHistoryToggle(t *testing.T) {
	e := testEngine(day(0))
	e.RecordStatusHistory = true
	db, taskID := seedTask(t, e)

	if _, err := e.UpdateTask(db, taskID, TaskUpdate{ItemUpdate: ItemUpdate{
		Status: statusPtr(model.StatusInProgress),
	}}); err != nil {
		t.Fatalf("UpdateTask error: %v", err)
	}
	h := mustFind(t, db, taskID).Base().History
	if len(h) != 1 || h[0].Content != "[STATUS] todo -> inprogress" {
		t.Fatalf("history = %+v, want one [STATUS] entry", h)
	}
}

func TestInvalidStatusRejected(t *testing.T) {
	e := testEngine(day(0))
	db, taskID := seedTask(t, e)

	bogus := model.Status("finished")
	if _, err := e.UpdateTask(db, taskID, TaskUpdate{ItemUpdate: ItemUpdate{
		Status: &bogus,
	}}); err == nil {
		t.Fatalf("expected error for invalid status")
	}
	if got := mustFind(t, db, taskID).Base().Status; got != model.StatusTodo {
		t.Fatalf("status = %q after rejected update, want todo", got)
	}
}

// A rejected update must apply none of its fields: valid fields bundled
// with an invalid status stay untouched and no history is written.
func TestRejectedUpdateLeavesItemUntouched(t *testing.T) {
	e := testEngine(day(0))
	db, taskID := seedTask(t, e)
	before := *mustFind(t, db, taskID).Base()

	bogus := model.Status("finished")
	res, err := e.UpdateTask(db, taskID, TaskUpdate{ItemUpdate: ItemUpdate{
		Name:        strPtr("renamed"),
		Description: strPtr("new text"),
		Status:      &bogus,
	}})
	if err == nil {
		t.Fatalf("expected error for invalid status")
	}
	if res.Changed {
		t.Fatalf("rejected update reported a change")
	}

	b := mustFind(t, db, taskID).Base()
	if b.Name != before.Name {
		t.Fatalf("name = %q after rejected update, want %q", b.Name, before.Name)
	}
	if b.Description != before.Description {
		t.Fatalf("description = %q after rejected update, want %q", b.Description, before.Description)
	}
	if len(b.History) != 0 {
		t.Fatalf("history entries = %d after rejected update, want 0", len(b.History))
	}
	if !b.LastEditedDate.Equal(before.LastEditedDate) {
		t.Fatalf("rejected update touched lastEdited")
	}
}

// denyAllPolicy refuses every status transition.
type denyAllPolicy struct{}

func (denyAllPolicy) CanChangeStatus(store.Located, model.Status, model.Status) bool { return false }
func (denyAllPolicy) PropagateStatusUpwards(*store.DB, store.Located)                {}

func TestPolicyBlockedUpdateLeavesItemUntouched(t *testing.T) {
	e := testEngine(day(0))
	e.Policy = denyAllPolicy{}
	db, taskID := seedTask(t, e)

	res, err := e.UpdateTask(db, taskID, TaskUpdate{ItemUpdate: ItemUpdate{
		Name:   strPtr("renamed"),
		Status: statusPtr(model.StatusDone),
	}})
	var blocked BlockedError
	if !errors.As(err, &blocked) {
		t.Fatalf("err = %v, want BlockedError", err)
	}
	if res.Changed {
		t.Fatalf("blocked update reported a change")
	}

	b := mustFind(t, db, taskID).Base()
	if b.Name != "T" || b.Status != model.StatusTodo {
		t.Fatalf("blocked update mutated state: name=%q status=%q", b.Name, b.Status)
	}
}

func TestScheduleAndReminderHistory(t *testing.T) {
	e := testEngine(day(0))
	db, taskID := seedTask(t, e)

	if _, err := e.UpdateTask(db, taskID, TaskUpdate{ItemUpdate: ItemUpdate{
		Schedule: &model.Schedule{Rule: "daily", TimeSlots: []string{"08:00"}},
	}}); err != nil {
		t.Fatalf("UpdateTask error: %v", err)
	}
	at := "09:30"
	if _, err := e.UpdateTask(db, taskID, TaskUpdate{ItemUpdate: ItemUpdate{
		Reminder: &model.DateTime{Date: "2026-03-05", Time: &at},
	}}); err != nil {
		t.Fatalf("UpdateTask error: %v", err)
	}
	if _, err := e.UpdateTask(db, taskID, TaskUpdate{ItemUpdate: ItemUpdate{
		ClearReminder: true,
	}}); err != nil {
		t.Fatalf("UpdateTask error: %v", err)
	}

	h := mustFind(t, db, taskID).Base().History
	want := []string{
		"[SCHEDULE] daily",
		"[REMINDER] 2026-03-05 09:30",
		"[REMINDER] (cleared)",
	}
	if len(h) != len(want) {
		t.Fatalf("history entries = %d, want %d", len(h), len(want))
	}
	for i := range want {
		if h[i].Content != want[i] {
			t.Fatalf("entry %d = %q, want %q", i, h[i].Content, want[i])
		}
	}
}

func TestActivityDueAndSkipHistory(t *testing.T) {
	e := testEngine(day(0))
	db, taskID := seedTask(t, e)
	st, err := e.AddSubtask(db, taskID, "S", model.PriorityMedium)
	if err != nil {
		t.Fatalf("AddSubtask error: %v", err)
	}
	a, err := e.AddActivity(db, st.ID, "A", model.PriorityMedium)
	if err != nil {
		t.Fatalf("AddActivity error: %v", err)
	}
	aID := a.ID

	// Mark due twice with a reset in between; the counter is cumulative.
	for _, due := range []bool{true, false, true} {
		if _, err := e.UpdateActivity(db, aID, ActivityUpdate{IsDue: boolPtr(due)}); err != nil {
			t.Fatalf("UpdateActivity error: %v", err)
		}
	}
	if _, err := e.UpdateActivity(db, aID, ActivityUpdate{IsSkipped: boolPtr(true)}); err != nil {
		t.Fatalf("UpdateActivity error: %v", err)
	}

	loc := mustFind(t, db, aID)
	if loc.Activity.DueCount != 2 {
		t.Fatalf("DueCount = %d, want 2", loc.Activity.DueCount)
	}
	h := loc.Base().History
	want := []string{"[DUE] (Count: 1)", "[DUE] (Count: 2)", "[SKIP]"}
	if len(h) != len(want) {
		t.Fatalf("history entries = %d, want %d", len(h), len(want))
	}
	for i := range want {
		if h[i].Content != want[i] {
			t.Fatalf("entry %d = %q, want %q", i, h[i].Content, want[i])
		}
	}
}

func TestEditBubblesLastEdited(t *testing.T) {
	e := testEngine(day(0))
	db, taskID := seedTask(t, e)
	st, err := e.AddSubtask(db, taskID, "S", model.PriorityMedium)
	if err != nil {
		t.Fatalf("AddSubtask error: %v", err)
	}
	stID := st.ID
	a, err := e.AddActivity(db, stID, "A", model.PriorityMedium)
	if err != nil {
		t.Fatalf("AddActivity error: %v", err)
	}
	aID := a.ID

	later := day(5).Add(3 * time.Hour)
	e.Now = func() time.Time { return later }
	if _, err := e.UpdateActivity(db, aID, ActivityUpdate{Notes: strPtr("ran 5k")}); err != nil {
		t.Fatalf("UpdateActivity error: %v", err)
	}

	for _, id := range []string{aID, stID, taskID} {
		if got := mustFind(t, db, id).Base().LastEditedDate; !got.Equal(later) {
			t.Fatalf("%s lastEdited = %v, want %v", id, got, later)
		}
	}
}

func TestNoopUpdateReportsUnchanged(t *testing.T) {
	e := testEngine(day(0))
	db, taskID := seedTask(t, e)
	before := mustFind(t, db, taskID).Base().LastEditedDate

	e.Now = func() time.Time { return day(9) }
	res, err := e.UpdateTask(db, taskID, TaskUpdate{})
	if err != nil {
		t.Fatalf("UpdateTask error: %v", err)
	}
	if res.Changed {
		t.Fatalf("empty update reported a change")
	}
	if got := mustFind(t, db, taskID).Base().LastEditedDate; !got.Equal(before) {
		t.Fatalf("noop update touched lastEdited: %v", got)
	}
}
