package forge

import (
	"context"
	"time"

	"github.com/abhisek/skillforge/internal/logging"
	"github.com/abhisek/skillforge/internal/plan"
	"github.com/abhisek/skillforge/internal/store"
)

// HistoryForger records every attempt in the event store and logs the
// real cause of failures.
type HistoryForger struct {
	inner  Forger
	repo   store.EventRepo
	logger *logging.Logger
	source string
}

// WithHistory wraps f. repo and logger may be nil.
func WithHistory(f Forger, repo store.EventRepo, logger *logging.Logger, source string) *HistoryForger {
	return &HistoryForger{inner: f, repo: repo, logger: logger, source: source}
}

func (h *HistoryForger) Forge(ctx context.Context, goal string) (*plan.LearningPlan, error) {
	start := time.Now()
	p, err := h.inner.Forge(ctx, goal)

	data := store.ForgeEventData{
		RequestID: RequestIDFrom(ctx),
		Goal:      goal,
		Source:    h.source,
		Success:   err == nil && p != nil,
		LatencyMs: time.Since(start).Milliseconds(),
	}
	if p != nil {
		data.ModuleCount = len(p.Modules)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		h.logger.Printf("forge %q via %s failed after %dms: %v", goal, h.source, data.LatencyMs, err)
	} else {
		h.logger.Printf("forge %q via %s: %d modules in %dms", goal, h.source, data.ModuleCount, data.LatencyMs)
	}

	if h.repo != nil {
		// Recorded even when ctx was cancelled.
		if rerr := h.repo.AppendForgeEvent(context.WithoutCancel(ctx), data); rerr != nil {
			h.logger.Printf("warning: failed to record forge event: %v", rerr)
		}
	}
	return p, err
}

type requestIDKey struct{}

// WithRequestID tags ctx with the submission's request ID so decorators
// can correlate what they record.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the request ID set by WithRequestID, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
