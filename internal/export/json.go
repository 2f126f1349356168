package export

import (
	"encoding/json"

	"github.com/abhisek/skillforge/internal/plan"
)

// JSONExporter writes the plan as indented JSON using the same field
// names the backend sends, so the output parses back to an equal plan.
type JSONExporter struct{}

func (JSONExporter) Export(p *plan.LearningPlan) ([]byte, error) {
	if p == nil {
		return nil, ErrNilPlan
	}
	return json.MarshalIndent(p, "", "  ")
}

func (JSONExporter) FileExtension() string { return ".json" }
func (JSONExporter) MimeType() string      { return "application/json" }

// JSON returns the clipboard text for p.
func JSON(p *plan.LearningPlan) (string, error) {
	b, err := JSONExporter{}.Export(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
