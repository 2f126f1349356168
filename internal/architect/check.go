package architect

import (
	"fmt"
	"strings"

	"github.com/abhisek/skillforge/internal/plan"
)

// CheckError describes why a generated plan was rejected after it passed
// schema validation.
type CheckError struct {
	Field   string
	Message string
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("plan check %s: %s", e.Field, e.Message)
}

// Check applies the structural rules the JSON schema cannot express.
func Check(p *plan.LearningPlan, cfg Config) *CheckError {
	if strings.TrimSpace(p.Goal) == "" {
		return &CheckError{Field: "goal", Message: "is empty"}
	}
	if n := len(p.Modules); n == 0 || (cfg.MaxModules > 0 && n > cfg.MaxModules) {
		return &CheckError{Field: "modules", Message: fmt.Sprintf("has %d entries, want 1-%d", n, cfg.MaxModules)}
	}
	for i, m := range p.Modules {
		field := fmt.Sprintf("modules[%d]", i)
		if strings.TrimSpace(m.Title) == "" {
			return &CheckError{Field: field + ".title", Message: "is empty"}
		}
		if len(m.Resources) == 0 {
			return &CheckError{Field: field + ".resources", Message: "is empty"}
		}
		for j, r := range m.Resources {
			if strings.TrimSpace(r.URL) == "" {
				return &CheckError{Field: fmt.Sprintf("%s.resources[%d].url", field, j), Message: "is empty"}
			}
		}
	}
	return nil
}
