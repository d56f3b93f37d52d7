package mutate

import (
	"errors"
	"strings"
	"testing"
	"time"

	"dayplan/internal/model"
)

func TestAddLinkAttachment(t *testing.T) {
	e := testEngine(day(2))
	db, taskID := seedTask(t, e)

	att, err := e.AddLinkAttachment(db, taskID, "design doc", "https://example.com/doc")
	if err != nil {
		t.Fatalf("AddLinkAttachment error: %v", err)
	}
	if att.Type != model.AttachmentLink {
		t.Fatalf("type = %q, want link", att.Type)
	}
	if !strings.HasPrefix(att.ID, "att-") {
		t.Fatalf("attachment id = %q, want att- prefix", att.ID)
	}
	if !att.CreatedAt.Equal(day(2)) {
		t.Fatalf("createdAt = %v, want day2", att.CreatedAt)
	}

	if _, err := e.AddLinkAttachment(db, taskID, "x", "  "); err == nil {
		t.Fatalf("expected error for blank url")
	}
}

func TestAddFileAttachmentGuessesMime(t *testing.T) {
	e := testEngine(day(0))
	db, taskID := seedTask(t, e)

	att, err := e.AddFileAttachment(db, taskID, "notes.json", []byte(`{}`))
	if err != nil {
		t.Fatalf("AddFileAttachment error: %v", err)
	}
	if att.MimeType != "application/json" {
		t.Fatalf("mime = %q, want application/json", att.MimeType)
	}

	if _, err := e.AddFileAttachment(db, taskID, "empty.bin", nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}

func TestAttachmentNameDefaultsToID(t *testing.T) {
	e := testEngine(day(0))
	db, taskID := seedTask(t, e)

	att, err := e.AddLinkAttachment(db, taskID, "  ", "https://example.com")
	if err != nil {
		t.Fatalf("AddLinkAttachment error: %v", err)
	}
	if att.Name != att.ID {
		t.Fatalf("name = %q, want the attachment id", att.Name)
	}
}

func TestRemoveAttachment(t *testing.T) {
	e := testEngine(day(0))
	db, taskID := seedTask(t, e)
	att, err := e.AddLinkAttachment(db, taskID, "doc", "https://example.com")
	if err != nil {
		t.Fatalf("AddLinkAttachment error: %v", err)
	}
	attID := att.ID

	removed, err := e.RemoveAttachment(db, taskID, attID)
	if err != nil || !removed {
		t.Fatalf("RemoveAttachment = %v, %v; want true, nil", removed, err)
	}
	removed, err = e.RemoveAttachment(db, taskID, attID)
	if err != nil || removed {
		t.Fatalf("second remove = %v, %v; want false, nil", removed, err)
	}

	_, err = e.RemoveAttachment(db, "task-missing1", attID)
	var nf NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestAttachmentTouchesAncestors(t *testing.T) {
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

	e.Now = func() time.Time { return day(4) }
	if _, err := e.AddLinkAttachment(db, aID, "trace", "https://example.com/run"); err != nil {
		t.Fatalf("AddLinkAttachment error: %v", err)
	}
	for _, id := range []string{aID, stID, taskID} {
		if got := mustFind(t, db, id).Base().LastEditedDate; !got.Equal(day(4)) {
			t.Fatalf("%s lastEdited = %v, want day4", id, got)
		}
	}
}
