package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/skillforge/internal/plan"
)

// MarkdownExporter writes the plan as a Markdown curriculum document.
type MarkdownExporter struct{}

func (MarkdownExporter) Export(p *plan.LearningPlan) ([]byte, error) {
	if p == nil {
		return nil, ErrNilPlan
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", escapeMarkdown(p.Goal))

	meta := []string{}
	if p.DifficultyLevel != "" {
		meta = append(meta, "**Level:** "+escapeMarkdown(p.DifficultyLevel))
	}
	if p.TotalEstimatedWeeks > 0 {
		meta = append(meta, "**Duration:** "+num(p.TotalEstimatedWeeks)+" weeks")
	}
	if total := p.TotalHours(); total > 0 {
		meta = append(meta, "**Effort:** "+num(total)+" hours")
	}
	if len(meta) > 0 {
		sb.WriteString(strings.Join(meta, " · "))
		sb.WriteString("\n\n")
	}

	if p.SummaryMotivation != "" {
		fmt.Fprintf(&sb, "> %s\n\n", strings.ReplaceAll(p.SummaryMotivation, "\n", "\n> "))
	}

	if len(p.Prerequisites) > 0 {
		sb.WriteString("## Prerequisites\n\n")
		for _, pre := range p.Prerequisites {
			fmt.Fprintf(&sb, "- %s\n", escapeMarkdown(pre))
		}
		sb.WriteString("\n")
	}

	for i, m := range p.Modules {
		fmt.Fprintf(&sb, "## %02d. %s\n\n", i+1, escapeMarkdown(m.Title))
		fmt.Fprintf(&sb, "*%s hours*\n\n", num(m.EstimatedHours))
		if m.Description != "" {
			sb.WriteString(m.Description)
			sb.WriteString("\n\n")
		}

		if len(m.KeyTopics) > 0 {
			sb.WriteString("### Key Topics\n\n")
			for _, topic := range m.KeyTopics {
				fmt.Fprintf(&sb, "- [ ] %s\n", escapeMarkdown(topic))
			}
			sb.WriteString("\n")
		}

		if len(m.Resources) > 0 {
			sb.WriteString("### Resources\n\n")
			for _, r := range m.Resources {
				fmt.Fprintf(&sb, "- [%s](%s)", escapeLinkText(r.Title), plan.ResourceLink(r.URL))
				if r.Type != "" {
					fmt.Fprintf(&sb, " (%s)", r.Type)
				}
				sb.WriteString("\n")
			}
			sb.WriteString("\n")
		}

		if m.ProjectIdea != "" {
			fmt.Fprintf(&sb, "### Project\n\n%s\n\n", m.ProjectIdea)
		}
	}

	return []byte(strings.TrimRight(sb.String(), "\n") + "\n"), nil
}

func (MarkdownExporter) FileExtension() string { return ".md" }
func (MarkdownExporter) MimeType() string      { return "text/markdown" }

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"#", `\#`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

var linkTextEscaper = strings.NewReplacer("[", `\[`, "]", `\]`)

func escapeLinkText(s string) string {
	return linkTextEscaper.Replace(escapeMarkdown(s))
}
