package mutate

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"dayplan/internal/model"
	"dayplan/internal/store"
)

var base = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// day returns base plus n days.
func day(n int) time.Time { return base.AddDate(0, 0, n) }

func testEngine(now time.Time) *Engine {
	e := NewEngine()
	e.Now = func() time.Time { return now }
	e.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	return e
}

func strPtr(s string) *string                  { return &s }
func boolPtr(b bool) *bool                     { return &b }
func timePtr(t time.Time) *time.Time           { return &t }
func statusPtr(s model.Status) *model.Status   { return &s }
func prioPtr(p model.Priority) *model.Priority { return &p }

// newTestDB builds a db with a single empty list.
func newTestDB(t *testing.T, e *Engine) *store.DB {
	t.Helper()
	db := &store.DB{Version: 1}
	if _, err := e.AddList(db, "Inbox"); err != nil {
		t.Fatalf("AddList error: %v", err)
	}
	return db
}

// seedTask builds a db with one list and one task spanning day 0..7.
func seedTask(t *testing.T, e *Engine) (*store.DB, string) {
	t.Helper()
	db := &store.DB{Version: 1}
	l, err := e.AddList(db, "Inbox")
	if err != nil {
		t.Fatalf("AddList error: %v", err)
	}
	tk, err := e.AddTask(db, l.ID, "T", model.PriorityHigh)
	if err != nil {
		t.Fatalf("AddTask error: %v", err)
	}
	if _, err := e.UpdateTask(db, tk.ID, TaskUpdate{ItemUpdate: ItemUpdate{
		CreationDate:           timePtr(day(0)),
		ExpectedCompletionDate: timePtr(day(7)),
	}}); err != nil {
		t.Fatalf("UpdateTask error: %v", err)
	}
	return db, tk.ID
}

func mustFind(t *testing.T, db *store.DB, id string) store.Located {
	t.Helper()
	loc, ok := db.FindItem(id)
	if !ok {
		t.Fatalf("item not found: %s", id)
	}
	return loc
}
