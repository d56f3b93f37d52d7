package aiplan

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"dayplan/internal/model"
	"dayplan/internal/mutate"
	"dayplan/internal/store"
)

var day0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func day(n int) time.Time { return day0.AddDate(0, 0, n) }

func testEngine() *mutate.Engine {
	e := mutate.NewEngine()
	e.Now = func() time.Time { return day0 }
	e.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	return e
}

// seed builds one list with a task (day 0..7) and one subtask under it.
func seed(t *testing.T, e *mutate.Engine) (*store.DB, string, string) {
	t.Helper()
	db := &store.DB{Version: 1}
	l, err := e.AddList(db, "Work")
	if err != nil {
		t.Fatalf("AddList error: %v", err)
	}
	tk, err := e.AddTask(db, l.ID, "Ship", model.PriorityHigh)
	if err != nil {
		t.Fatalf("AddTask error: %v", err)
	}
	taskID := tk.ID
	if _, err := e.UpdateTask(db, taskID, mutate.TaskUpdate{ItemUpdate: mutate.ItemUpdate{
		CreationDate:           &day0,
		ExpectedCompletionDate: timePtr(day(7)),
	}}); err != nil {
		t.Fatalf("UpdateTask error: %v", err)
	}
	st, err := e.AddSubtask(db, taskID, "Docs", model.PriorityMedium)
	if err != nil {
		t.Fatalf("AddSubtask error: %v", err)
	}
	return db, taskID, st.ID
}

func timePtr(t time.Time) *time.Time { return &t }

func TestBuildRequestFlattensTasksAndSubtasks(t *testing.T) {
	e := testEngine()
	db, taskID, subID := seed(t, e)

	hours := 4.5
	if _, err := e.UpdateTask(db, taskID, mutate.TaskUpdate{ItemUpdate: mutate.ItemUpdate{
		EstimatedHours: &hours,
		DependencyIDs:  &[]string{subID},
	}}); err != nil {
		t.Fatalf("UpdateTask error: %v", err)
	}
	st, err := e.AddSubtask(db, taskID, "Review", model.PriorityMedium)
	if err != nil {
		t.Fatalf("AddSubtask error: %v", err)
	}
	if _, err := e.AddActivity(db, st.ID, "leaf", model.PriorityLow); err != nil {
		t.Fatalf("AddActivity error: %v", err)
	}

	items := BuildRequest(db)
	if len(items) != 3 {
		t.Fatalf("plan items = %d, want 3 (activities excluded)", len(items))
	}
	if items[0].ID != taskID {
		t.Fatalf("first item = %s, want the task", items[0].ID)
	}
	if items[0].EstimatedHours != hours {
		t.Fatalf("estimatedHours = %v, want %v", items[0].EstimatedHours, hours)
	}
	if len(items[0].Dependencies) != 1 || items[0].Dependencies[0] != subID {
		t.Fatalf("dependencies = %v", items[0].Dependencies)
	}
	if items[0].Deadline != day(7).Format(time.RFC3339) {
		t.Fatalf("deadline = %q", items[0].Deadline)
	}
}

func TestParseSuggestions(t *testing.T) {
	raw := `[{"itemId":"task-aaaaaaaa","creationDate":"2026-03-01T09:00:00Z","expectedCompletionDate":"2026-03-03T09:00:00Z"}]`

	for name, content := range map[string]string{
		"bare":          raw,
		"fenced":        "```json\n" + raw + "\n```",
		"fenced untyped": "```\n" + raw + "\n```",
		"padded":        "\n  " + raw + "  \n",
	} {
		out, err := parseSuggestions(content)
		if err != nil {
			t.Fatalf("%s: parseSuggestions error: %v", name, err)
		}
		if len(out) != 1 || out[0].ItemID != "task-aaaaaaaa" {
			t.Fatalf("%s: parsed %+v", name, out)
		}
	}
}

func TestParseSuggestionsRejectsGarbage(t *testing.T) {
	if _, err := parseSuggestions("I suggest starting early."); err == nil {
		t.Fatalf("prose should not parse")
	}
	if _, err := parseSuggestions("[]"); err == nil {
		t.Fatalf("empty array should be rejected")
	}
}

func TestApplySetsWindows(t *testing.T) {
	e := testEngine()
	db, taskID, subID := seed(t, e)

	err := Apply(db, e, []Suggestion{
		{ItemID: taskID, CreationDate: day(1).Format(time.RFC3339), ExpectedCompletionDate: day(5).Format(time.RFC3339)},
		{ItemID: subID, CreationDate: day(2).Format(time.RFC3339), ExpectedCompletionDate: day(4).Format(time.RFC3339)},
	})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}

	loc, _ := db.FindItem(taskID)
	if !loc.Base().CreationDate.Equal(day(1)) || !loc.Base().ExpectedCompletionDate.Equal(day(5)) {
		t.Fatalf("task window = %v..%v", loc.Base().CreationDate, loc.Base().ExpectedCompletionDate)
	}
	loc, _ = db.FindItem(subID)
	if !loc.Base().CreationDate.Equal(day(2)) || !loc.Base().ExpectedCompletionDate.Equal(day(4)) {
		t.Fatalf("subtask window = %v..%v", loc.Base().CreationDate, loc.Base().ExpectedCompletionDate)
	}
}

func TestApplyInvalidBatchMutatesNothing(t *testing.T) {
	e := testEngine()
	db, taskID, _ := seed(t, e)
	before := mustWindow(t, db, taskID)

	err := Apply(db, e, []Suggestion{
		{ItemID: taskID, CreationDate: day(1).Format(time.RFC3339), ExpectedCompletionDate: day(5).Format(time.RFC3339)},
		{ItemID: "task-unknown0", CreationDate: day(1).Format(time.RFC3339), ExpectedCompletionDate: day(2).Format(time.RFC3339)},
	})
	if err == nil || !strings.Contains(err.Error(), "unknown item") {
		t.Fatalf("err = %v, want unknown item", err)
	}
	if got := mustWindow(t, db, taskID); got != before {
		t.Fatalf("invalid batch mutated the valid entry")
	}

	err = Apply(db, e, []Suggestion{
		{ItemID: taskID, CreationDate: "tomorrow", ExpectedCompletionDate: day(5).Format(time.RFC3339)},
	})
	if err == nil {
		t.Fatalf("bad date should fail validation")
	}
	if got := mustWindow(t, db, taskID); got != before {
		t.Fatalf("bad date batch mutated state")
	}
}

func TestApplyNormalizesInvertedWindow(t *testing.T) {
	e := testEngine()
	db, taskID, _ := seed(t, e)

	err := Apply(db, e, []Suggestion{
		{ItemID: taskID, CreationDate: day(5).Format(time.RFC3339), ExpectedCompletionDate: day(3).Format(time.RFC3339)},
	})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	loc, _ := db.FindItem(taskID)
	if !loc.Base().ExpectedCompletionDate.Equal(day(5)) {
		t.Fatalf("inverted window not normalized: expected = %v", loc.Base().ExpectedCompletionDate)
	}
}

func TestApplyRejectsActivities(t *testing.T) {
	e := testEngine()
	db, _, subID := seed(t, e)
	a, err := e.AddActivity(db, subID, "leaf", model.PriorityLow)
	if err != nil {
		t.Fatalf("AddActivity error: %v", err)
	}

	err = Apply(db, e, []Suggestion{
		{ItemID: a.ID, CreationDate: day(1).Format(time.RFC3339), ExpectedCompletionDate: day(2).Format(time.RFC3339)},
	})
	if err == nil || !strings.Contains(err.Error(), "not schedulable") {
		t.Fatalf("err = %v, want not schedulable", err)
	}
}

func TestApplyEmptyBatch(t *testing.T) {
	e := testEngine()
	db, _, _ := seed(t, e)
	if err := Apply(db, e, nil); err == nil {
		t.Fatalf("empty batch should error")
	}
}

type window struct{ c, x time.Time }

func mustWindow(t *testing.T, db *store.DB, id string) window {
	t.Helper()
	loc, ok := db.FindItem(id)
	if !ok {
		t.Fatalf("item not found: %s", id)
	}
	return window{loc.Base().CreationDate, loc.Base().ExpectedCompletionDate}
}
