package aiplan

import "context"

// Suggestion is one scheduling proposal returned by a planner.
// Dates are ISO-8601 strings until validated.
type Suggestion struct {
	ItemID                 string `json:"itemId"`
	CreationDate           string `json:"creationDate"`
	ExpectedCompletionDate string `json:"expectedCompletionDate"`
}

// Planner produces scheduling suggestions for a flattened item list.
// userContext is free text ("I have mornings free this week").
type Planner interface {
	SuggestSchedule(ctx context.Context, items []PlanItem, userContext string) ([]Suggestion, error)
}
