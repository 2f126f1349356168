package architect

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/skillforge/internal/llm"
	"github.com/abhisek/skillforge/internal/plan"
)

// Purpose labels architect calls in the LLM event log.
const Purpose = "plan"

// Service generates learning plans in-process with an LLM provider, as an
// alternative to the remote backend.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a plan generation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Forge generates a plan for goal. The goal is echoed back verbatim
// rather than trusting the model to repeat it.
func (s *Service) Forge(ctx context.Context, goal string) (*plan.LearningPlan, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return nil, fmt.Errorf("architect: goal is required")
	}

	ctx = llm.WithPurpose(ctx, Purpose)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(goal, s.cfg)},
		},
		Schema:      PlanSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
		Subject:     goal,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("plan generation: %w", err)
	}

	var out plan.LearningPlan
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse plan response: %w", err)
	}
	out.Goal = goal

	if cerr := Check(&out, s.cfg); cerr != nil {
		return nil, cerr
	}
	return &out, nil
}
