package store

import (
	"crypto/rand"
	"encoding/base32"
	"strings"

	"dayplan/internal/model"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32 (lowercase, no padding).
// 8 chars base32 ~= 40 bits (~1 trillion) of space.
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

// IDPrefix maps an entity kind to its id prefix (list-xxx, task-xxx, ...).
func IDPrefix(kind model.ItemKind) string {
	switch kind {
	case model.KindList:
		return "list"
	case model.KindTask:
		return "task"
	case model.KindSubtask:
		return "sub"
	case model.KindActivity:
		return "act"
	}
	return "id"
}

// NewID generates a fresh id for kind, retrying on the (unlikely) collision.
func (db *DB) NewID(kind model.ItemKind) (string, error) {
	prefix := IDPrefix(kind)
	for i := 0; i < 10; i++ {
		id, err := newRandomID(prefix)
		if err != nil {
			return "", err
		}
		if !db.IDExists(id) {
			return id, nil
		}
	}
	// Practically unreachable; surface the last attempt anyway.
	return newRandomID(prefix)
}

func (db *DB) NewAttachmentID() (string, error) {
	for i := 0; i < 10; i++ {
		id, err := newRandomID("att")
		if err != nil {
			return "", err
		}
		if !db.IDExists(id) {
			return id, nil
		}
	}
	return newRandomID("att")
}

// IDExists reports whether id is used by any entity of any kind.
// IDs are globally unique across lists, tasks, subtasks, activities and attachments.
func (db *DB) IDExists(id string) bool {
	for li := range db.Lists {
		l := &db.Lists[li]
		if l.ID == id {
			return true
		}
		for ti := range l.Tasks {
			t := &l.Tasks[ti]
			if t.ID == id || attachmentIDExists(t.Attachments, id) {
				return true
			}
			for si := range t.Subtasks {
				st := &t.Subtasks[si]
				if st.ID == id || attachmentIDExists(st.Attachments, id) {
					return true
				}
				for ai := range st.Activities {
					a := &st.Activities[ai]
					if a.ID == id || attachmentIDExists(a.Attachments, id) {
						return true
					}
				}
			}
		}
	}
	return false
}

func attachmentIDExists(atts []model.Attachment, id string) bool {
	for _, a := range atts {
		if a.ID == id {
			return true
		}
	}
	return false
}
