package mutate

import (
	"errors"
	"mime"
	"path/filepath"
	"strings"

	"dayplan/internal/model"
	"dayplan/internal/store"
)

const DefaultAttachmentMaxBytes = 50 * 1024 * 1024 // 50MB

func guessMimeType(filename string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	if ext == "" {
		return ""
	}
	return mime.TypeByExtension(ext)
}

// AddLinkAttachment attaches a URL to any task, subtask or activity.
func (e *Engine) AddLinkAttachment(db *store.DB, itemID, name, url string) (*model.Attachment, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("missing url")
	}
	return e.addAttachment(db, itemID, model.Attachment{
		Type: model.AttachmentLink,
		Name: name,
		URL:  url,
	})
}

// AddFileAttachment embeds a file payload in the item. The payload is
// stored inline; size is capped so the snapshot stays loadable.
func (e *Engine) AddFileAttachment(db *store.DB, itemID, name string, data []byte) (*model.Attachment, error) {
	if len(data) == 0 {
		return nil, errors.New("empty file payload")
	}
	if len(data) > DefaultAttachmentMaxBytes {
		return nil, errors.New("file too large")
	}
	return e.addAttachment(db, itemID, model.Attachment{
		Type:     model.AttachmentFile,
		Name:     name,
		Data:     data,
		MimeType: guessMimeType(name),
	})
}

func (e *Engine) addAttachment(db *store.DB, itemID string, att model.Attachment) (*model.Attachment, error) {
	loc, ok := db.FindItem(itemID)
	if !ok {
		return nil, NotFoundError{Kind: "item", ID: itemID}
	}
	id, err := db.NewAttachmentID()
	if err != nil {
		return nil, err
	}
	att.ID = id
	att.CreatedAt = e.now()
	if strings.TrimSpace(att.Name) == "" {
		att.Name = att.ID
	}

	b := loc.Base()
	b.Attachments = append(b.Attachments, att)
	e.touch(loc)
	return &b.Attachments[len(b.Attachments)-1], nil
}

// RemoveAttachment detaches by attachment id. Reports whether anything
// was removed.
func (e *Engine) RemoveAttachment(db *store.DB, itemID, attachmentID string) (bool, error) {
	loc, ok := db.FindItem(itemID)
	if !ok {
		return false, NotFoundError{Kind: "item", ID: itemID}
	}
	b := loc.Base()
	for i := range b.Attachments {
		if b.Attachments[i].ID == attachmentID {
			b.Attachments = append(b.Attachments[:i], b.Attachments[i+1:]...)
			e.touch(loc)
			return true, nil
		}
	}
	return false, nil
}

// touch refreshes the edit timestamps of the item and its ancestors.
func (e *Engine) touch(loc store.Located) {
	now := e.now()
	loc.Base().LastEditedDate = now
	switch loc.Kind {
	case model.KindSubtask:
		loc.Task.LastEditedDate = now
	case model.KindActivity:
		loc.Subtask.LastEditedDate = now
		loc.Task.LastEditedDate = now
	}
}
