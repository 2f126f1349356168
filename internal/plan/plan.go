package plan

import (
	"net/url"
	"strings"
)

// LearningPlan is the structured curriculum returned for a single goal.
// It is treated as an immutable value: a new submission replaces it
// wholesale and nothing in the client edits a received plan.
//
// Prerequisites keeps null and [] distinct in JSON so exported plans
// decode back to an equal value.
type LearningPlan struct {
	Goal                string   `json:"goal" yaml:"goal"`
	DifficultyLevel     string   `json:"difficulty_level" yaml:"difficulty_level"`
	TotalEstimatedWeeks float64  `json:"total_estimated_weeks,omitempty" yaml:"total_estimated_weeks,omitempty"`
	SummaryMotivation   string   `json:"summary_motivation" yaml:"summary_motivation"`
	Prerequisites       []string `json:"prerequisites" yaml:"prerequisites,omitempty"`
	Modules             []Module `json:"modules" yaml:"modules"`
}

// Module is one unit of the curriculum.
type Module struct {
	Title          string     `json:"title" yaml:"title"`
	Description    string     `json:"description" yaml:"description"`
	EstimatedHours float64    `json:"estimated_hours" yaml:"estimated_hours"`
	KeyTopics      []string   `json:"key_topics" yaml:"key_topics"`
	ProjectIdea    string     `json:"project_idea,omitempty" yaml:"project_idea,omitempty"`
	Resources      []Resource `json:"resources" yaml:"resources"`
}

// Resource is a named external reference. URL may be a real link or a
// bare search phrase; see ResourceLink.
type Resource struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
	Type  string `json:"type" yaml:"type"`
}

// SearchURL is the prefix used for resources that carry a search phrase
// instead of a link.
const SearchURL = "https://www.google.com/search?q="

var linkSchemes = []string{"http://", "https://"}

// ResourceLink returns the URL to open for a resource. Values with a
// recognizable scheme are returned unchanged; anything else becomes a web
// search whose q parameter decodes back to raw.
func ResourceLink(raw string) string {
	lower := strings.ToLower(raw)
	for _, scheme := range linkSchemes {
		if strings.HasPrefix(lower, scheme) {
			return raw
		}
	}
	return SearchURL + url.QueryEscape(raw)
}

// TotalHours sums the estimated hours of every module.
func (p *LearningPlan) TotalHours() float64 {
	if p == nil {
		return 0
	}
	var total float64
	for _, m := range p.Modules {
		total += m.EstimatedHours
	}
	return total
}

// Clone returns a deep copy of the plan.
func (p *LearningPlan) Clone() *LearningPlan {
	if p == nil {
		return nil
	}
	out := *p
	out.Prerequisites = cloneStrings(p.Prerequisites)
	if p.Modules != nil {
		out.Modules = make([]Module, len(p.Modules))
		for i, m := range p.Modules {
			m.KeyTopics = cloneStrings(m.KeyTopics)
			if m.Resources != nil {
				m.Resources = append([]Resource(nil), m.Resources...)
			}
			out.Modules[i] = m
		}
	}
	return &out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
