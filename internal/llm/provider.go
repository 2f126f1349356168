package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider is the abstraction over hosted LLM APIs. Callers send a Request
// and receive structured JSON back.
type Provider interface {
	// Generate sends a prompt to the LLM. When the request carries a
	// Schema, the provider uses its native structured output mechanism and
	// Response.Content is JSON validated against that schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name returns the provider name ("anthropic", "openai", ...).
	Name() string

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation. Plan generation is single-turn, so
	// this is usually one user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to. When nil,
	// Response.Content is the raw text.
	Schema *Schema

	// MaxTokens is the output budget. Zero means DefaultMaxTokens; values
	// above the model's output limit are clamped to it.
	MaxTokens int

	// Temperature controls randomness, 0.0 - 1.0. Zero leaves the
	// provider default in place.
	Temperature float64

	// Subject is what the request is about, e.g. the learning goal. It is
	// never sent to a hosted model; the offline demo provider builds its
	// plan from it.
	Subject string
}

// DefaultMaxTokens is the output budget for requests that set none. Eight
// modules with topics, resources and project ideas stay well under it.
const DefaultMaxTokens = 8192

// outputLimits caps the output tokens a model accepts. Unknown models
// (custom OpenRouter or compatible endpoints) are not capped.
var outputLimits = map[string]int{
	"claude-sonnet-4-20250514":  64000,
	"claude-haiku-4-5-20251001": 64000,
	"claude-opus-4-1-20250805":  32000,
	"gpt-4o":                    16384,
	"gpt-4o-mini":               16384,
	"gemini-2.5-flash":          65536,
	"gemini-2.5-pro":            65536,
}

// outputBudget resolves the MaxTokens to send to model.
func outputBudget(model string, requested int) int {
	if requested <= 0 {
		requested = DefaultMaxTokens
	}
	if limit, ok := outputLimits[model]; ok && requested > limit {
		return limit
	}
	return requested
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (tool/schema name on the wire and the
	// compiled-schema cache key). Kebab-case, e.g. "learning-plan".
	Name string

	// Description guides generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// finish runs the checks every provider applies to raw model output:
// truncation first, since a cut-off plan is never valid JSON, then schema
// validation. Models without native structured output often wrap JSON in
// a Markdown fence; that is removed before validating.
func finish(req Request, text, stopReason string) (json.RawMessage, error) {
	if req.Schema != nil {
		text = stripCodeFence(text)
	}
	content := json.RawMessage(text)
	if err := checkTruncated(stopReason, req, content); err != nil {
		return nil, err
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return content, nil
}

func stripCodeFence(text string) string {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") || !strings.HasSuffix(t, "```") || len(t) < 6 {
		return text
	}
	t = strings.TrimSuffix(t[3:], "```")
	// Drop the info string, e.g. "json".
	if i := strings.IndexByte(t, '\n'); i >= 0 {
		t = t[i+1:]
	} else {
		return text
	}
	return strings.TrimSpace(t)
}
