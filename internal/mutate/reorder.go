package mutate

import (
	"fmt"
	"sort"

	"dayplan/internal/model"
)

// permutationIndex validates that orderedIDs is a complete permutation
// of current and returns the target position of each id. A partial or
// padded list is refused outright rather than leaving stale orders
// behind.
func permutationIndex(containerID string, current, orderedIDs []string) (map[string]int, error) {
	if len(orderedIDs) != len(current) {
		return nil, BadReorderError{
			ContainerID: containerID,
			Reason:      fmt.Sprintf("expected %d ids, got %d", len(current), len(orderedIDs)),
		}
	}
	have := make(map[string]bool, len(current))
	for _, id := range current {
		have[id] = true
	}
	pos := make(map[string]int, len(orderedIDs))
	for i, id := range orderedIDs {
		if !have[id] {
			return nil, BadReorderError{ContainerID: containerID, Reason: "unknown id " + id}
		}
		if _, dup := pos[id]; dup {
			return nil, BadReorderError{ContainerID: containerID, Reason: "duplicate id " + id}
		}
		pos[id] = i
	}
	return pos, nil
}

func sortTasksByOrder(xs []model.Task) {
	sort.SliceStable(xs, func(i, j int) bool { return xs[i].Order < xs[j].Order })
}

func sortSubtasksByOrder(xs []model.Subtask) {
	sort.SliceStable(xs, func(i, j int) bool { return xs[i].Order < xs[j].Order })
}

func sortActivitiesByOrder(xs []model.Activity) {
	sort.SliceStable(xs, func(i, j int) bool { return xs[i].Order < xs[j].Order })
}
