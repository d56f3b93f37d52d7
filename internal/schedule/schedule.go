// Package schedule holds the auto-repeat activeness check. This is a
// deliberate placeholder, not a recurrence engine: only the "daily"
// rule is understood, optionally narrowed to HH:MM time slots.
package schedule

import (
	"strings"
	"time"

	"dayplan/internal/model"
)

// slotWindow is how long after a time slot the slot still counts as active.
const slotWindow = time.Hour

// ActiveNow reports whether an auto-repeat schedule is currently live.
// With no time slots, a daily rule is active all day.
func ActiveNow(s model.Schedule, now time.Time) bool {
	if !strings.EqualFold(strings.TrimSpace(s.Rule), "daily") {
		return false
	}
	if len(s.TimeSlots) == 0 {
		return true
	}
	for _, slot := range s.TimeSlots {
		t, err := time.Parse("15:04", strings.TrimSpace(slot))
		if err != nil {
			continue
		}
		slotAt := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
		if !now.Before(slotAt) && now.Sub(slotAt) < slotWindow {
			return true
		}
	}
	return false
}
