package forge

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/skillforge/internal/logging"
	"github.com/abhisek/skillforge/internal/plan"
	"github.com/abhisek/skillforge/internal/store"
)

type memRepo struct {
	store.EventRepo
	forges []store.ForgeEventData
	err    error
}

func (m *memRepo) AppendForgeEvent(_ context.Context, data store.ForgeEventData) error {
	m.forges = append(m.forges, data)
	return m.err
}

type bufCloser struct{ bytes.Buffer }

func (*bufCloser) Close() error { return nil }

func TestWithHistory_RecordsSuccess(t *testing.T) {
	repo := &memRepo{}
	f := WithHistory(ForgerFunc(func(context.Context, string) (*plan.LearningPlan, error) {
		return samplePlan(), nil
	}), repo, nil, "backend")

	ctx := WithRequestID(context.Background(), "req-1")
	p, err := f.Forge(ctx, "Learn Rust")
	require.NoError(t, err)
	require.NotNil(t, p)

	require.Len(t, repo.forges, 1)
	ev := repo.forges[0]
	assert.Equal(t, "req-1", ev.RequestID)
	assert.Equal(t, "Learn Rust", ev.Goal)
	assert.Equal(t, "backend", ev.Source)
	assert.True(t, ev.Success)
	assert.Equal(t, 1, ev.ModuleCount)
	assert.Empty(t, ev.ErrorMessage)
}

func TestWithHistory_LogsRealCause(t *testing.T) {
	repo := &memRepo{}
	buf := &bufCloser{}
	cause := errors.New("dial tcp 127.0.0.1:8000: connect: connection refused")

	f := WithHistory(ForgerFunc(func(context.Context, string) (*plan.LearningPlan, error) {
		return nil, cause
	}), repo, logging.NewWriter(buf), "backend")

	_, err := f.Forge(context.Background(), "Learn Rust")
	assert.ErrorIs(t, err, cause)

	require.Len(t, repo.forges, 1)
	assert.False(t, repo.forges[0].Success)
	assert.Contains(t, repo.forges[0].ErrorMessage, "connection refused")
	assert.True(t, strings.Contains(buf.String(), "connection refused"))
}

func TestWithHistory_StoreFailureDoesNotFailForge(t *testing.T) {
	repo := &memRepo{err: errors.New("database is locked")}
	buf := &bufCloser{}
	f := WithHistory(ForgerFunc(func(context.Context, string) (*plan.LearningPlan, error) {
		return samplePlan(), nil
	}), repo, logging.NewWriter(buf), "llm")

	p, err := f.Forge(context.Background(), "Learn Rust")
	require.NoError(t, err)
	assert.NotNil(t, p)
	assert.Contains(t, buf.String(), "database is locked")
}

func TestWithHistory_NilRepoAndLogger(t *testing.T) {
	f := WithHistory(ForgerFunc(func(context.Context, string) (*plan.LearningPlan, error) {
		return nil, errors.New("boom")
	}), nil, nil, "backend")

	_, err := f.Forge(context.Background(), "Go")
	assert.EqualError(t, err, "boom")
}
