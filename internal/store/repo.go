package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries. Results are newest first.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
// Prompt and response bodies are deliberately absent: the response is a
// generated plan and plans are never persisted.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int64
	Timestamp time.Time
	LLMRequestEventData
}

// ForgeEventData records one plan submission.
type ForgeEventData struct {
	RequestID    string
	Goal         string
	Source       string
	Success      bool
	ModuleCount  int
	LatencyMs    int64
	ErrorMessage string
}

// ForgeEvent is a stored submission.
type ForgeEvent struct {
	ID        int64
	Timestamp time.Time
	ForgeEventData
}

// PurposeUsage aggregates LLM usage per purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM usage per model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to recorded events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendForgeEvent records a plan submission and its outcome.
	AppendForgeEvent(ctx context.Context, data ForgeEventData) error

	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)
	QueryForgeEvents(ctx context.Context, opts QueryOpts) ([]ForgeEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
