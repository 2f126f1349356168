// Package forge owns the submission and response cycle of a single plan
// request: what is loading, which request is current, and what the user
// sees when it finishes.
package forge

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/skillforge/internal/plan"
)

// ErrorMessage is the only failure text the user ever sees. The real cause
// goes to the log file.
const ErrorMessage = "Something went wrong. Please check the backend connection."

// Forger turns a goal into a learning plan.
type Forger interface {
	Forge(ctx context.Context, goal string) (*plan.LearningPlan, error)
}

// ForgerFunc adapts a function to the Forger interface.
type ForgerFunc func(ctx context.Context, goal string) (*plan.LearningPlan, error)

func (f ForgerFunc) Forge(ctx context.Context, goal string) (*plan.LearningPlan, error) {
	return f(ctx, goal)
}

// Request is one accepted submission.
type Request struct {
	ID   string
	Goal string
}

// Result is the outcome of running a Request.
type Result struct {
	ID      string
	Plan    *plan.LearningPlan
	Err     error
	Elapsed time.Duration
}

// Cycle is the client-side state of the form: the loading flag, the
// displayed error, and the last plan received.
type Cycle struct {
	Loading bool
	Err     string
	Plan    *plan.LearningPlan

	pending string
	newID   func() string
}

// NewCycle returns an idle cycle.
func NewCycle() *Cycle {
	return &Cycle{newID: uuid.NewString}
}

// Begin accepts goal for submission. It returns false and leaves the state
// untouched when the goal is blank or a request is already in flight.
func (c *Cycle) Begin(goal string) (Request, bool) {
	goal = strings.TrimSpace(goal)
	if goal == "" || c.Loading {
		return Request{}, false
	}

	id := c.nextID()
	c.Loading = true
	c.Err = ""
	c.Plan = nil
	c.pending = id
	return Request{ID: id, Goal: goal}, true
}

// Resolve applies a finished request. Results for anything but the
// pending request are ignored and Resolve reports false.
func (c *Cycle) Resolve(r Result) bool {
	if r.ID == "" || r.ID != c.pending {
		return false
	}
	c.pending = ""
	c.Loading = false

	if r.Err != nil || r.Plan == nil {
		c.Err = ErrorMessage
		c.Plan = nil
		return true
	}
	c.Err = ""
	c.Plan = r.Plan
	return true
}

// Pending returns the ID of the in-flight request, if any.
func (c *Cycle) Pending() string {
	return c.pending
}

func (c *Cycle) nextID() string {
	if c.newID == nil {
		return uuid.NewString()
	}
	return c.newID()
}

// Run performs the single call for req. It never retries.
func Run(ctx context.Context, f Forger, req Request) Result {
	start := time.Now()
	p, err := f.Forge(WithRequestID(ctx, req.ID), req.Goal)
	return Result{ID: req.ID, Plan: p, Err: err, Elapsed: time.Since(start)}
}

type timeoutForger struct {
	inner Forger
	d     time.Duration
}

// WithTimeout bounds every call to f by d. A non-positive d returns f.
func WithTimeout(f Forger, d time.Duration) Forger {
	if d <= 0 {
		return f
	}
	return timeoutForger{inner: f, d: d}
}

func (t timeoutForger) Forge(ctx context.Context, goal string) (*plan.LearningPlan, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.inner.Forge(ctx, goal)
}
