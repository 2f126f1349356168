package architect

import "github.com/abhisek/skillforge/internal/llm"

var stringList = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

var resourceDef = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title": map[string]any{"type": "string"},
		"url": map[string]any{
			"type":        "string",
			"description": "A full https:// URL, or a search query when no reliable link is known",
		},
		"type": map[string]any{
			"type":        "string",
			"description": "Video, Article, or Documentation",
		},
	},
	"required":             []any{"title", "url", "type"},
	"additionalProperties": false,
}

var moduleDef = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":       map[string]any{"type": "string"},
		"description": map[string]any{"type": "string"},
		"estimated_hours": map[string]any{
			"type":    "number",
			"minimum": 0,
		},
		"key_topics": stringList,
		"project_idea": map[string]any{
			"type":        "string",
			"description": "A practical project that applies the module's topics",
		},
		"resources": map[string]any{
			"type":     "array",
			"items":    resourceDef,
			"minItems": 1,
		},
	},
	"required":             []any{"title", "description", "estimated_hours", "key_topics", "project_idea", "resources"},
	"additionalProperties": false,
}

// PlanSchema is the structured output schema for a LearningPlan. Every
// field is required here even though the plan type treats some as
// optional: strict structured output modes reject optional properties,
// and the generator is expected to fill them all.
var PlanSchema = &llm.Schema{
	Name:        "learning-plan",
	Description: "A structured learning path with ordered modules, resources, and time estimates",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"goal": map[string]any{"type": "string"},
			"difficulty_level": map[string]any{
				"type":        "string",
				"description": "Beginner, Intermediate, or Advanced",
			},
			"total_estimated_weeks": map[string]any{
				"type":    "number",
				"minimum": 0,
			},
			"summary_motivation": map[string]any{
				"type":        "string",
				"description": "Two or three encouraging sentences about why the path is worth it",
			},
			"prerequisites": stringList,
			"modules": map[string]any{
				"type":     "array",
				"items":    moduleDef,
				"minItems": 1,
			},
		},
		"required":             []any{"goal", "difficulty_level", "total_estimated_weeks", "summary_motivation", "prerequisites", "modules"},
		"additionalProperties": false,
	},
}
