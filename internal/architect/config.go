package architect

import "github.com/abhisek/skillforge/internal/llm"

// Config holds plan generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// MinModules and MaxModules bound the number of modules asked for in
	// the prompt and accepted by Check.
	MinModules int
	MaxModules int
}

// DefaultConfig returns sensible defaults for plan generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   llm.DefaultMaxTokens,
		Temperature: 0.7,
		MinModules:  3,
		MaxModules:  8,
	}
}
