// Package mutate implements the planner's mutation operations: add,
// update, delete and reorder per hierarchy level, plus the
// serial-completion gate. All functions operate on a *store.DB that the
// caller owns (typically inside store.Shared.Update).
package mutate

import (
	"log/slog"
	"time"

	"dayplan/internal/model"
	"dayplan/internal/store"
)

// StatusPolicy decides whether a status transition is allowed and what
// (if anything) a completed child propagates to its ancestors. The
// default is deliberately permissive and inert; both hooks exist so a
// stricter policy can be plugged in without touching the engine.
type StatusPolicy interface {
	CanChangeStatus(loc store.Located, from, to model.Status) bool
	PropagateStatusUpwards(db *store.DB, loc store.Located)
}

type permissivePolicy struct{}

func (permissivePolicy) CanChangeStatus(store.Located, model.Status, model.Status) bool { return true }
func (permissivePolicy) PropagateStatusUpwards(*store.DB, store.Located)               {}

// PermissivePolicy is the default StatusPolicy: every transition is
// allowed and completion does not cascade.
var PermissivePolicy StatusPolicy = permissivePolicy{}

// Engine carries the mutation-time collaborators: the status policy,
// the logger for non-fatal warnings (date clamps, rejected reorders)
// and the clock.
type Engine struct {
	Policy StatusPolicy
	Log    *slog.Logger
	Now    func() time.Time

	// RecordStatusHistory enables [STATUS] history entries on status
	// changes. Off by default; the toggle is kept so the behavior can
	// be re-enabled without reintroducing it silently.
	RecordStatusHistory bool
}

func NewEngine() *Engine {
	return &Engine{
		Policy: PermissivePolicy,
		Log:    slog.Default(),
		Now:    time.Now,
	}
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Engine) log() *slog.Logger {
	if e.Log != nil {
		return e.Log
	}
	return slog.Default()
}

func (e *Engine) policy() StatusPolicy {
	if e.Policy != nil {
		return e.Policy
	}
	return PermissivePolicy
}

// UpdateResult reports what an update did. Clamped is a non-fatal side
// effect: a date was auto-adjusted to keep the item inside its valid bounds.
type UpdateResult struct {
	Changed bool
	Clamped bool
}
