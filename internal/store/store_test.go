package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		if err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	s2.Close()
}

func TestForgeEvents_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []ForgeEventData{
		{RequestID: "r1", Goal: "Learn Rust", Source: "backend", Success: true, ModuleCount: 4, LatencyMs: 1200},
		{RequestID: "r2", Goal: "Learn Go", Source: "llm", Success: false, ErrorMessage: "boom"},
	}
	for _, e := range events {
		if err := repo.AppendForgeEvent(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryForgeEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	// Newest first.
	if got[0].Goal != "Learn Go" || got[0].Success || got[0].ErrorMessage != "boom" {
		t.Errorf("unexpected newest event: %+v", got[0])
	}
	if got[1].Goal != "Learn Rust" || !got[1].Success || got[1].ModuleCount != 4 {
		t.Errorf("unexpected oldest event: %+v", got[1])
	}
	if got[0].Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	limited, err := repo.QueryForgeEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 || limited[0].RequestID != "r2" {
		t.Errorf("limit not applied: %+v", limited)
	}
}

func TestForgeEvents_TimeFilter(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	repo := &eventRepo{db: s.DB(), now: func() time.Time { return clock }}
	ctx := context.Background()

	for i, goal := range []string{"a", "b", "c"} {
		clock = base.Add(time.Duration(i) * time.Hour)
		if err := repo.AppendForgeEvent(ctx, ForgeEventData{Goal: goal, Source: "backend"}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryForgeEvents(ctx, QueryOpts{From: base.Add(30 * time.Minute)})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events after From, got %d", len(got))
	}

	got, err = repo.QueryForgeEvents(ctx, QueryOpts{To: base})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 || got[0].Goal != "a" {
		t.Errorf("unexpected To filter result: %+v", got)
	}
}

func TestLLMEvents_Usage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	data := []LLMRequestEventData{
		{Provider: "gpt-4o-mini", Model: "gpt-4o-mini", Purpose: "plan", InputTokens: 100, OutputTokens: 400, LatencyMs: 1000, Success: true},
		{Provider: "gpt-4o-mini", Model: "gpt-4o-mini", Purpose: "plan", InputTokens: 50, OutputTokens: 200, LatencyMs: 3000, Success: true},
		{Provider: "mock", Model: "mock", Purpose: "unknown", Success: false, ErrorMessage: "unavailable"},
	}
	for _, d := range data {
		if err := repo.AppendLLMRequest(ctx, d); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 10})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Success || events[0].ErrorMessage != "unavailable" {
		t.Errorf("unexpected newest event: %+v", events[0])
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(byPurpose))
	}
	plan := byPurpose[0]
	if plan.Purpose != "plan" || plan.Calls != 2 || plan.InputTokens != 150 || plan.OutputTokens != 600 || plan.AvgLatencyMs != 2000 {
		t.Errorf("unexpected plan usage: %+v", plan)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "gpt-4o-mini" || byModel[0].Calls != 2 {
		t.Errorf("unexpected model usage: %+v", byModel)
	}
}

func TestDefaultDBPath_EnvOverride(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sub", "custom.db")
	t.Setenv("SKILLFORGE_DB", p)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != p {
		t.Errorf("got %q, want %q", got, p)
	}
}

func TestDefaultDBPath_XDGData(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SKILLFORGE_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	want := filepath.Join(dir, "skillforge", "skillforge.db")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
