package mutate

import "fmt"

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// BlockedError is returned when an operation is refused by a container
// flag: a reorder against a sequence-locked container, or a start/status
// action against a serial-completion-gated item.
type BlockedError struct {
	ID     string
	Reason string
}

func (e BlockedError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("operation blocked: %s", e.ID)
	}
	return fmt.Sprintf("operation blocked: %s: %s", e.ID, e.Reason)
}

// BadReorderError is returned when a reorder id list is not a complete
// permutation of the container's current children.
type BadReorderError struct {
	ContainerID string
	Reason      string
}

func (e BadReorderError) Error() string {
	return fmt.Sprintf("invalid reorder for %s: %s", e.ContainerID, e.Reason)
}
