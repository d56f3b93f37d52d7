package mutate

import (
	"fmt"
	"time"

	"dayplan/internal/model"
	"dayplan/internal/store"
)

// ItemUpdate is a partial update of the fields shared by all three
// levels. Only non-nil fields are considered; a field counts as changed
// when its normalized value differs from the current one (descriptions:
// empty string and absence are equivalent; dates: compared by instant).
type ItemUpdate struct {
	Name        *string
	Description *string

	CreationDate           *time.Time
	ExpectedCompletionDate *time.Time
	ActualCompletionDate   *time.Time
	ClearActualCompletion  bool

	Status   *model.Status
	Priority *model.Priority

	DependencyIDs  *[]string
	EstimatedHours *float64

	AutoRepeat    *bool
	Schedule      *model.Schedule
	Reminder      *model.DateTime
	ClearReminder bool
}

// TaskUpdate adds the container-level flags to ItemUpdate. Subtasks use
// the same shape.
type TaskUpdate struct {
	ItemUpdate

	SerialCompletionMandatory *bool
	SequenceMandatory         *bool
}

type SubtaskUpdate = TaskUpdate

// ActivityUpdate adds the leaf-only fields.
type ActivityUpdate struct {
	ItemUpdate

	Notes            *string
	NumericValue     *float64
	IsSkipped        *bool
	IsDue            *bool
	LastInstanceDate *time.Time
}

// applyBase applies the shared fields of u to the located item's base.
// It reports whether anything changed and whether creation/expected
// moved (the caller then re-validates bounds and cascades).
func (e *Engine) applyBase(loc store.Located, u ItemUpdate, now time.Time) (changed, datesChanged bool, err error) {
	b := loc.Base()

	// Validate up front: a rejected update must leave the item untouched.
	if u.Status != nil && *u.Status != b.Status {
		if !model.ValidStatus(*u.Status) {
			return false, false, fmt.Errorf("invalid status %q", *u.Status)
		}
		if !e.policy().CanChangeStatus(loc, b.Status, *u.Status) {
			return false, false, BlockedError{ID: b.ID, Reason: "status change not allowed"}
		}
	}
	if u.Priority != nil && *u.Priority != b.Priority && !model.ValidPriority(*u.Priority) {
		return false, false, fmt.Errorf("invalid priority %q", *u.Priority)
	}

	if u.Name != nil && *u.Name != b.Name {
		b.Name = *u.Name
		changed = true
	}

	if u.Description != nil && *u.Description != b.Description {
		// Record the previous text before overwriting it.
		appendHistory(b, now, "[EDIT] "+describeOld(b.Description))
		b.Description = *u.Description
		changed = true
	}

	if u.CreationDate != nil && !u.CreationDate.Equal(b.CreationDate) {
		b.CreationDate = *u.CreationDate
		changed = true
		datesChanged = true
	}
	if u.ExpectedCompletionDate != nil && !u.ExpectedCompletionDate.Equal(b.ExpectedCompletionDate) {
		b.ExpectedCompletionDate = *u.ExpectedCompletionDate
		changed = true
		datesChanged = true
	}
	if u.ClearActualCompletion {
		if b.ActualCompletionDate != nil {
			b.ActualCompletionDate = nil
			changed = true
		}
	} else if u.ActualCompletionDate != nil {
		if b.ActualCompletionDate == nil || !u.ActualCompletionDate.Equal(*b.ActualCompletionDate) {
			t := *u.ActualCompletionDate
			b.ActualCompletionDate = &t
			changed = true
		}
	}

	if u.Status != nil && *u.Status != b.Status {
		if e.RecordStatusHistory {
			appendHistory(b, now, fmt.Sprintf("[STATUS] %s -> %s", b.Status, *u.Status))
		}
		b.Status = *u.Status
		changed = true
	}

	if u.Priority != nil && *u.Priority != b.Priority {
		b.Priority = *u.Priority
		changed = true
	}

	if u.DependencyIDs != nil && !equalStrings(*u.DependencyIDs, b.DependencyIDs) {
		b.DependencyIDs = append([]string(nil), *u.DependencyIDs...)
		changed = true
	}
	if u.EstimatedHours != nil && (b.EstimatedHours == nil || *u.EstimatedHours != *b.EstimatedHours) {
		h := *u.EstimatedHours
		b.EstimatedHours = &h
		changed = true
	}

	if u.AutoRepeat != nil && *u.AutoRepeat != b.AutoRepeat {
		b.AutoRepeat = *u.AutoRepeat
		changed = true
	}
	if u.Schedule != nil && !equalSchedules(*u.Schedule, b.Schedule) {
		// Replacement is verbatim, no merge.
		b.Schedule = model.Schedule{
			Rule:      u.Schedule.Rule,
			TimeSlots: append([]string(nil), u.Schedule.TimeSlots...),
		}
		appendHistory(b, now, "[SCHEDULE] "+describeRule(b.Schedule.Rule))
		changed = true
	}
	if u.ClearReminder {
		if b.Reminder != nil {
			b.Reminder = nil
			appendHistory(b, now, "[REMINDER] (cleared)")
			changed = true
		}
	} else if u.Reminder != nil && !equalDateTime(u.Reminder, b.Reminder) {
		r := *u.Reminder
		b.Reminder = &r
		appendHistory(b, now, "[REMINDER] "+describeReminder(r))
		changed = true
	}

	return changed, datesChanged, nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalSchedules(a, b model.Schedule) bool {
	return a.Rule == b.Rule && equalStrings(a.TimeSlots, b.TimeSlots)
}

func equalDateTime(a, b *model.DateTime) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Date != b.Date {
		return false
	}
	if (a.Time == nil) != (b.Time == nil) {
		return false
	}
	return a.Time == nil || *a.Time == *b.Time
}

func describeRule(rule string) string {
	if rule == "" {
		return "(cleared)"
	}
	return rule
}

func describeReminder(r model.DateTime) string {
	if r.Time != nil {
		return r.Date + " " + *r.Time
	}
	return r.Date
}
