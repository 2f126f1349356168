package forge

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/skillforge/internal/plan"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("req-%d", n)
	}
}

func newTestCycle() *Cycle {
	c := NewCycle()
	c.newID = seqIDs()
	return c
}

func samplePlan() *plan.LearningPlan {
	return &plan.LearningPlan{
		Goal:            "Learn Rust",
		DifficultyLevel: "Intermediate",
		Modules:         []plan.Module{{Title: "Ownership", EstimatedHours: 8}},
	}
}

func TestCycle_BlankGoalIsBlocked(t *testing.T) {
	for _, goal := range []string{"", "   ", "\t\n"} {
		c := newTestCycle()
		c.Err = ErrorMessage

		_, ok := c.Begin(goal)
		assert.False(t, ok, "goal %q", goal)
		assert.False(t, c.Loading)
		assert.Equal(t, ErrorMessage, c.Err, "state must be unchanged")
		assert.Empty(t, c.Pending())
	}
}

func TestCycle_BeginResetsState(t *testing.T) {
	c := newTestCycle()
	c.Err = ErrorMessage
	c.Plan = samplePlan()

	req, ok := c.Begin("  Learn Rust ")
	require.True(t, ok)
	assert.Equal(t, Request{ID: "req-1", Goal: "Learn Rust"}, req)
	assert.True(t, c.Loading)
	assert.Empty(t, c.Err)
	assert.Nil(t, c.Plan)
	assert.Equal(t, "req-1", c.Pending())
}

func TestCycle_NoSecondRequestWhileLoading(t *testing.T) {
	c := newTestCycle()
	_, ok := c.Begin("Go")
	require.True(t, ok)

	_, ok = c.Begin("Rust")
	assert.False(t, ok)
	assert.Equal(t, "req-1", c.Pending())
}

func TestCycle_ResolveSuccess(t *testing.T) {
	c := newTestCycle()
	req, _ := c.Begin("Learn Rust")
	p := samplePlan()

	require.True(t, c.Resolve(Result{ID: req.ID, Plan: p}))
	assert.False(t, c.Loading)
	assert.Empty(t, c.Err)
	assert.Same(t, p, c.Plan, "plan is stored verbatim")
	assert.Empty(t, c.Pending())
}

func TestCycle_ResolveFailure(t *testing.T) {
	tests := []struct {
		name string
		res  Result
	}{
		{"transport error", Result{Err: errors.New("connection refused")}},
		{"error with partial plan", Result{Err: errors.New("decode"), Plan: samplePlan()}},
		{"nil plan without error", Result{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCycle()
			req, _ := c.Begin("Learn Rust")
			tt.res.ID = req.ID

			require.True(t, c.Resolve(tt.res))
			assert.False(t, c.Loading)
			assert.Equal(t, ErrorMessage, c.Err)
			assert.Nil(t, c.Plan)
		})
	}
}

func TestCycle_StaleResultIgnored(t *testing.T) {
	c := newTestCycle()
	first, _ := c.Begin("Go")
	require.True(t, c.Resolve(Result{ID: first.ID, Err: errors.New("boom")}))

	second, _ := c.Begin("Rust")
	assert.False(t, c.Resolve(Result{ID: first.ID, Plan: samplePlan()}))
	assert.True(t, c.Loading)
	assert.Nil(t, c.Plan)

	assert.True(t, c.Resolve(Result{ID: second.ID, Plan: samplePlan()}))
	assert.False(t, c.Loading)
}

func TestCycle_ResolveWithoutPending(t *testing.T) {
	c := newTestCycle()
	assert.False(t, c.Resolve(Result{ID: "", Plan: samplePlan()}))
	assert.Nil(t, c.Plan)
}

func TestCycle_SecondSubmissionReplacesPlan(t *testing.T) {
	c := newTestCycle()
	req, _ := c.Begin("Go")
	c.Resolve(Result{ID: req.ID, Plan: samplePlan()})

	req, _ = c.Begin("Rust")
	assert.Nil(t, c.Plan, "plan cleared when a new request starts")

	next := &plan.LearningPlan{Goal: "Rust"}
	c.Resolve(Result{ID: req.ID, Plan: next})
	assert.Same(t, next, c.Plan)
}

func TestRun(t *testing.T) {
	var gotGoal, gotID string
	f := ForgerFunc(func(ctx context.Context, goal string) (*plan.LearningPlan, error) {
		gotGoal = goal
		gotID = RequestIDFrom(ctx)
		return samplePlan(), nil
	})

	res := Run(context.Background(), f, Request{ID: "req-9", Goal: "Learn Rust"})
	require.NoError(t, res.Err)
	assert.Equal(t, "req-9", res.ID)
	assert.Equal(t, "Learn Rust", gotGoal)
	assert.Equal(t, "req-9", gotID)
	assert.NotNil(t, res.Plan)
}

func TestNewCycle_UsesUUIDs(t *testing.T) {
	c := NewCycle()
	a, _ := c.Begin("Go")
	c.Resolve(Result{ID: a.ID, Err: errors.New("x")})
	b, _ := c.Begin("Go")
	assert.Len(t, a.ID, 36)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestWithTimeout(t *testing.T) {
	var hadDeadline bool
	f := ForgerFunc(func(ctx context.Context, _ string) (*plan.LearningPlan, error) {
		_, hadDeadline = ctx.Deadline()
		return nil, ctx.Err()
	})

	_, err := WithTimeout(f, time.Minute).Forge(context.Background(), "Go")
	require.NoError(t, err)
	assert.True(t, hadDeadline)

	_, _ = WithTimeout(f, 0).Forge(context.Background(), "Go")
	assert.False(t, hadDeadline)
}
