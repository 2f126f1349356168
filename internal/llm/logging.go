package llm

import (
	"context"
	"time"

	"github.com/abhisek/skillforge/internal/logging"
	"github.com/abhisek/skillforge/internal/store"
)

type contextKey string

const purposeKey contextKey = "llm_purpose"

// WithPurpose labels the LLM calls made with ctx, e.g. "plan". The label
// is recorded with each event and groups usage in `skillforge llm stats`.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

// LoggingProvider is a decorator that records every LLM request as an
// event. Only metadata is recorded: prompts carry the user's goal and
// responses carry whole plans, neither of which is persisted.
type LoggingProvider struct {
	inner     Provider
	eventRepo store.EventRepo
	logger    *logging.Logger
}

// WithLogging wraps a Provider with event logging. With neither a repo
// nor a logger the provider is returned unwrapped.
func WithLogging(p Provider, repo store.EventRepo, logger *logging.Logger) Provider {
	if repo == nil && logger == nil {
		return p
	}
	return &LoggingProvider{inner: p, eventRepo: repo, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  l.inner.Name(),
		Model:     l.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		l.logger.Printf("llm %s/%s %s failed after %dms: %v", data.Provider, data.Model, purpose, data.LatencyMs, err)
	}

	// A failed write never fails the request.
	if l.eventRepo != nil {
		if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
			l.logger.Printf("warning: failed to record LLM request event: %v", logErr)
		}
	}

	return resp, err
}

func (l *LoggingProvider) Name() string {
	return l.inner.Name()
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
