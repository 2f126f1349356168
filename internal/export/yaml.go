package export

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/skillforge/internal/plan"
)

// YAMLExporter writes the plan as YAML.
type YAMLExporter struct{}

func (YAMLExporter) Export(p *plan.LearningPlan) ([]byte, error) {
	if p == nil {
		return nil, ErrNilPlan
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (YAMLExporter) FileExtension() string { return ".yaml" }
func (YAMLExporter) MimeType() string      { return "application/yaml" }
