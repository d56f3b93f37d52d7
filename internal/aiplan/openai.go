package aiplan

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const defaultModel = "gpt-4o-mini"

const systemPrompt = `You are a scheduling assistant for a personal task planner.
Given a JSON list of tasks with priorities, deadlines, dependencies and
estimated hours, propose a realistic schedule. Respond with ONLY a JSON
array, no prose, of objects with fields: itemId, creationDate,
expectedCompletionDate. Dates must be ISO-8601 (RFC 3339) timestamps.
Respect dependencies (an item starts after the items it depends on end)
and never schedule past a deadline when it can be avoided.`

// OpenAIPlanner implements Planner against the OpenAI chat-completions API.
type OpenAIPlanner struct {
	client *openai.Client
	model  string
}

// NewOpenAIPlanner reads OPENAI_API_KEY and DAYPLAN_MODEL from the
// environment.
func NewOpenAIPlanner() (*OpenAIPlanner, error) {
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	model := strings.TrimSpace(os.Getenv("DAYPLAN_MODEL"))
	if model == "" {
		model = defaultModel
		slog.Warn("DAYPLAN_MODEL not set, defaulting", "model", model)
	}
	return &OpenAIPlanner{client: openai.NewClient(apiKey), model: model}, nil
}

func (p *OpenAIPlanner) SuggestSchedule(ctx context.Context, items []PlanItem, userContext string) ([]Suggestion, error) {
	payload, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	user := "Tasks:\n" + string(payload)
	if strings.TrimSpace(userContext) != "" {
		user += "\n\nContext: " + userContext
	}

	slog.Debug("requesting schedule suggestions", "model", p.model, "items", len(items))
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		slog.Error("schedule suggestion call failed", "error", err)
		return nil, fmt.Errorf("openai call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	return parseSuggestions(resp.Choices[0].Message.Content)
}

// parseSuggestions decodes the model output, tolerating a fenced code block.
func parseSuggestions(content string) ([]Suggestion, error) {
	s := strings.TrimSpace(content)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	var out []Suggestion
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("unparsable schedule output: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty schedule output")
	}
	return out, nil
}
