package llm

import "strings"

// ModelCost holds pricing in USD per one million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost calculates the total USD cost for the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the pricing for a model ID, or nil if unknown.
// Providers often report a dated or suffixed ID ("gemini-2.5-flash-001",
// "openai/gpt-4o-mini"), so the longest known prefix after any vendor
// segment wins.
func LookupCost(modelID string) *ModelCost {
	id := modelID
	if i := strings.LastIndex(id, "/"); i >= 0 {
		id = id[i+1:]
	}
	if c, ok := modelCosts[id]; ok {
		return &c
	}

	best := ""
	for known := range modelCosts {
		if strings.HasPrefix(id, known) && len(known) > len(best) {
			best = known
		}
	}
	if best == "" {
		return nil
	}
	c := modelCosts[best]
	return &c
}

// modelCosts covers the models the factory resolves by default plus their
// common siblings. Last updated: 2026-10-01.
var modelCosts = map[string]ModelCost{
	"claude-haiku-4-5":       {1, 5},
	"claude-sonnet-4":        {3, 15},
	"claude-sonnet-4-5":      {3, 15},
	"claude-opus-4-1":        {15, 75},
	"claude-3-5-haiku":       {0.8, 4},
	"gpt-4o":                 {2.5, 10},
	"gpt-4o-mini":            {0.15, 0.6},
	"gpt-4.1":                {2, 8},
	"gpt-4.1-mini":           {0.4, 1.6},
	"gpt-5":                  {1.25, 10},
	"gpt-5-mini":             {0.25, 2},
	"o4-mini":                {1.1, 4.4},
	"gemini-2.0-flash":       {0.1, 0.4},
	"gemini-2.5-flash":       {0.3, 2.5},
	"gemini-2.5-flash-lite":  {0.1, 0.4},
	"gemini-2.5-pro":         {1.25, 10},
	"gemini-2.0-flash-exp":   {0, 0},
	"llama-3.3-70b-instruct": {0.13, 0.4},
}
