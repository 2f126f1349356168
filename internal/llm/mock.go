package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/abhisek/skillforge/internal/plan"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic Provider. Canned responses are served
// in FIFO order; once they run out, Fallback answers if set, otherwise
// the call fails with ErrProviderUnavailable. All requests are recorded.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request

	// Fallback builds content for requests the queue cannot serve. Its
	// output is checked against the request schema like a hosted model's.
	Fallback func(Request) (json.RawMessage, error)

	model string
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses, model: "mock"}
}

// NewDemoProvider returns the provider behind `provider = "mock"`: it
// never touches the network and answers every plan request with a
// template plan for the request's Subject.
func NewDemoProvider() *MockProvider {
	return &MockProvider{model: "demo", Fallback: DemoPlan}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return m.fallback(req)
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      m.model,
		StopReason: "end",
	}, nil
}

func (m *MockProvider) fallback(req Request) (*Response, error) {
	if m.Fallback == nil {
		return nil, &ErrProviderUnavailable{Err: nil}
	}
	content, err := m.Fallback(req)
	if err != nil {
		return nil, err
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}

	in := len(req.System)
	for _, msg := range req.Messages {
		in += len(msg.Content)
	}
	// Roughly four bytes per token, so `llm stats` shows something sane.
	usage := Usage{InputTokens: in / 4, OutputTokens: len(content) / 4}
	usage.TotalTokens = usage.InputTokens + usage.OutputTokens

	return &Response{
		Content:    content,
		Usage:      usage,
		Model:      m.model,
		StopReason: "end",
	}, nil
}

// Name returns "mock".
func (m *MockProvider) Name() string {
	return "mock"
}

// ModelID returns "mock", or "demo" for NewDemoProvider.
func (m *MockProvider) ModelID() string {
	return m.model
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

type demoStage struct {
	title   string
	summary string
	hours   float64
	topics  []string
	project string
	search  string
	kind    string
}

var demoStages = []demoStage{
	{
		title:   "Foundations of %s",
		summary: "Core vocabulary, tooling and the mental model behind %s.",
		hours:   6,
		topics:  []string{"terminology", "setup and tooling", "first exercises"},
		project: "Write a one-page cheat sheet for %s and test yourself on it",
		search:  "%s getting started guide",
		kind:    "Documentation",
	},
	{
		title:   "Core %s Practice",
		summary: "Deliberate practice on the techniques used day to day in %s.",
		hours:   10,
		topics:  []string{"common patterns", "worked examples", "typical mistakes"},
		project: "Solve ten small %s exercises and keep notes on each",
		search:  "%s tutorial for beginners",
		kind:    "Video",
	},
	{
		title:   "Building with %s",
		summary: "Apply %s end to end on something you care about.",
		hours:   14,
		topics:  []string{"project planning", "integration", "feedback loops"},
		project: "Build and share a small real project using %s",
		search:  "%s project ideas",
		kind:    "Article",
	},
	{
		title:   "Advanced %s",
		summary: "Depth, trade-offs and the habits of experienced %s practitioners.",
		hours:   12,
		topics:  []string{"edge cases", "performance and quality", "community resources"},
		project: "Review an expert's %s work and write up what you would change",
		search:  "advanced %s best practices",
		kind:    "Article",
	},
}

// DemoPlan renders the template plan for req.Subject as JSON. It
// satisfies the plan schema so every downstream check runs as usual.
func DemoPlan(req Request) (json.RawMessage, error) {
	goal := strings.TrimSpace(req.Subject)
	if goal == "" {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("demo plan needs a subject")}
	}
	topic := goal
	if strings.HasPrefix(strings.ToLower(topic), "learn ") {
		topic = strings.TrimSpace(topic[len("learn "):])
	}

	p := plan.LearningPlan{
		Goal:              goal,
		DifficultyLevel:   "Beginner",
		SummaryMotivation: fmt.Sprintf("This is an offline demo plan for %s. Configure a real provider for a tailored path.", topic),
		Prerequisites:     []string{"A few focused hours each week"},
		Modules:           make([]plan.Module, len(demoStages)),
	}
	for i, st := range demoStages {
		p.Modules[i] = plan.Module{
			Title:          fmt.Sprintf(st.title, topic),
			Description:    fmt.Sprintf(st.summary, topic),
			EstimatedHours: st.hours,
			KeyTopics:      st.topics,
			ProjectIdea:    fmt.Sprintf(st.project, topic),
			Resources: []plan.Resource{
				{Title: fmt.Sprintf(st.search, topic), URL: fmt.Sprintf(st.search, topic), Type: st.kind},
			},
		}
	}
	// Six hours a week, rounded up.
	weeks := int(p.TotalHours()+5) / 6
	p.TotalEstimatedWeeks = float64(weeks)

	out, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal demo plan: %w", err)
	}
	return out, nil
}
