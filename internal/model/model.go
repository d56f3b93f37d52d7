package model

import "time"

type Status string

const (
	StatusTodo       Status = "todo"
	StatusStarted    Status = "started"
	StatusInProgress Status = "inprogress"
	StatusDone       Status = "done"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusTodo, StatusStarted, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func ValidPriority(p Priority) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ItemKind discriminates the three hierarchy levels plus the list root.
type ItemKind string

const (
	KindList     ItemKind = "list"
	KindTask     ItemKind = "task"
	KindSubtask  ItemKind = "subtask"
	KindActivity ItemKind = "activity"
)

type AttachmentType string

const (
	AttachmentLink AttachmentType = "link"
	AttachmentFile AttachmentType = "file"
)

type Attachment struct {
	ID        string         `json:"id"`
	Type      AttachmentType `json:"type"`
	Name      string         `json:"name"`
	URL       string         `json:"url,omitempty"`
	Data      []byte         `json:"data,omitempty"` // embedded file payload
	MimeType  string         `json:"mimeType,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// HistoryEntry is one line of an item's append-only change log.
// Content carries a bracketed tag prefix ([EDIT], [SCHEDULE], ...).
type HistoryEntry struct {
	TS      time.Time `json:"ts"`
	Content string    `json:"content"`
}

// DateTime represents an optional time attached to a date.
// If Time is nil, the value is date-only (no time semantics).
type DateTime struct {
	Date string  `json:"date"`           // YYYY-MM-DD
	Time *string `json:"time,omitempty"` // HH:MM
}

// Schedule is the auto-repeat rule attached to an item. Rule is a plain
// keyword ("daily" is the only one the activeness check understands);
// TimeSlots are HH:MM strings for within-day occurrences.
type Schedule struct {
	Rule      string   `json:"rule,omitempty"`
	TimeSlots []string `json:"timeSlots,omitempty"`
}

func (s Schedule) IsZero() bool {
	return s.Rule == "" && len(s.TimeSlots) == 0
}

// ItemBase holds the fields shared by Task, Subtask and Activity.
type ItemBase struct {
	ID          string `json:"id"`
	ParentID    string `json:"parentId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	CreationDate           time.Time  `json:"creationDate"`
	ExpectedCompletionDate time.Time  `json:"expectedCompletionDate"`
	ActualCompletionDate   *time.Time `json:"actualCompletionDate,omitempty"`
	LastEditedDate         time.Time  `json:"lastEditedDate"`

	Status   Status   `json:"status"`
	Priority Priority `json:"priority"`
	Order    int      `json:"order"`

	DependencyIDs  []string       `json:"dependencyIds,omitempty"`
	EstimatedHours *float64       `json:"estimatedHours,omitempty"`
	History        []HistoryEntry `json:"history,omitempty"`
	Attachments    []Attachment   `json:"attachments,omitempty"`

	AutoRepeat bool      `json:"autoRepeat"`
	Schedule   Schedule  `json:"schedule"`
	Reminder   *DateTime `json:"reminder,omitempty"`
}

type Task struct {
	ItemBase

	SerialCompletionMandatory bool `json:"serialCompletionMandatory"`
	SequenceMandatory         bool `json:"sequenceMandatory"`

	Subtasks []Subtask `json:"subtasks"`
}

type Subtask struct {
	ItemBase

	SerialCompletionMandatory bool `json:"serialCompletionMandatory"`
	SequenceMandatory         bool `json:"sequenceMandatory"`

	Activities []Activity `json:"activities"`
}

// Activity is the leaf level. No children and no ordering locks; instead
// it carries the per-instance tracking fields of a repeating action.
type Activity struct {
	ItemBase

	Notes            string     `json:"notes,omitempty"`
	NumericValue     float64    `json:"numericValue,omitempty"`
	IsSkipped        bool       `json:"isSkipped"`
	IsDue            bool       `json:"isDue"`
	DueCount         int        `json:"dueCount"`
	LastInstanceDate *time.Time `json:"lastInstanceDate,omitempty"`
}

type TaskList struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Tasks []Task `json:"tasks"`
}
