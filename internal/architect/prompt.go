package architect

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert curriculum developer named Skill Forge AI. Your mission is to architect comprehensive, professional learning paths.

For each module you MUST provide a practical project_idea that helps the learner apply what they just studied. Identify the prerequisites the learner needs before starting. Give every module at least one high-quality external resource, preferring official documentation and well-known articles.`

func buildUserMessage(goal string, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a learning path for: %s\n", goal)
	b.WriteString(`
Instructions:
`)
	fmt.Fprintf(&b, "1. Break the path into %d to %d modules, ordered from fundamentals to advanced work.\n", cfg.MinModules, cfg.MaxModules)
	b.WriteString(`2. Estimate hours per module realistically, and total weeks for someone studying part time.
3. List 3-6 key topics per module as short phrases.
4. For resources, use a full https:// URL only when you are confident it exists. Otherwise put a search query in the url field.
5. Resource type is one of Video, Article, or Documentation.
6. Keep the summary_motivation to two or three sentences.`)

	return b.String()
}
