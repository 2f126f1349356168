// Package config loads Skill Forge settings. Values are layered:
// defaults, then the TOML file, then SKILLFORGE_* environment variables.
// Command-line flags are applied on top by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/abhisek/skillforge/internal/backend"
	"github.com/abhisek/skillforge/internal/llm"
)

// Plan sources.
const (
	SourceBackend = "backend"
	SourceLLM     = "llm"
)

// Config is the full application configuration.
type Config struct {
	// Source selects who generates plans: the remote backend or an LLM
	// called in-process.
	Source string `toml:"source"`

	Backend BackendConfig `toml:"backend"`
	LLM     LLMConfig     `toml:"llm"`
	Store   StoreConfig   `toml:"store"`
	Log     LogConfig     `toml:"log"`

	// File is the path Load read from, or would have read from.
	File string `toml:"-"`
	// Loaded reports whether File existed.
	Loaded bool `toml:"-"`
}

// BackendConfig configures the plan backend.
type BackendConfig struct {
	URL     string   `toml:"url"`
	Timeout Duration `toml:"timeout"`
}

// LLMConfig configures in-process generation. APIKey, Model and BaseURL
// apply to the selected provider. With no provider set, the standard
// vendor key variables are probed.
type LLMConfig struct {
	Provider string   `toml:"provider"`
	Model    string   `toml:"model,omitempty"`
	APIKey   string   `toml:"api_key,omitempty"`
	BaseURL  string   `toml:"base_url,omitempty"`
	Timeout  Duration `toml:"timeout"`
}

// StoreConfig configures the event database.
type StoreConfig struct {
	Path     string `toml:"path"`
	Disabled bool   `toml:"disabled"`
}

// LogConfig configures the log file.
type LogConfig struct {
	Path string `toml:"path"`
}

// Duration is a time.Duration written as a string ("90s") in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", b, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Source: SourceBackend,
		Backend: BackendConfig{
			URL:     backend.DefaultBaseURL,
			Timeout: Duration{backend.DefaultTimeout},
		},
		LLM: LLMConfig{
			Timeout: Duration{llm.DefaultConfig().Timeout},
		},
	}
}

// DefaultPath resolves the config file location:
// 1. SKILLFORGE_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/skillforge/config.toml
// 3. ~/.config/skillforge/config.toml
func DefaultPath() (string, error) {
	if p := os.Getenv("SKILLFORGE_CONFIG"); p != "" {
		return p, nil
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "skillforge", "config.toml"), nil
}

// Load reads the config file at path (DefaultPath when empty) and
// applies environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	cfg.File = path

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	} else {
		cfg.Loaded = true
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overlays SKILLFORGE_* environment variables. Provider
// credentials are handled by llm.ApplyEnv in ProviderConfig.
func (c *Config) ApplyEnv() {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Source, "SKILLFORGE_SOURCE")
	set(&c.Backend.URL, "SKILLFORGE_BACKEND_URL")
	set(&c.Store.Path, "SKILLFORGE_DB")
	set(&c.Log.Path, "SKILLFORGE_LOG")

	if v := os.Getenv("SKILLFORGE_BACKEND_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Backend.Timeout.Duration = d
		}
	}
	if v := os.Getenv("SKILLFORGE_NO_STORE"); v == "1" || strings.EqualFold(v, "true") {
		c.Store.Disabled = true
	}
}

// ProviderConfig builds the llm.Config for the LLM source.
func (c *Config) ProviderConfig() llm.Config {
	cfg := llm.DefaultConfig()

	if c.LLM.Provider == "" && os.Getenv("SKILLFORGE_LLM_PROVIDER") == "" {
		if found, ok := llm.DiscoverConfig(); ok {
			cfg = found
		}
	} else if c.LLM.Provider != "" {
		cfg.Provider = c.LLM.Provider
		c.applyProviderOverrides(&cfg)
	}

	llm.ApplyEnv(&cfg)
	if c.LLM.Timeout.Duration > 0 {
		cfg.Timeout = c.LLM.Timeout.Duration
	}
	return cfg
}

func (c *Config) applyProviderOverrides(cfg *llm.Config) {
	override := func(key, model *string) {
		if c.LLM.APIKey != "" {
			*key = c.LLM.APIKey
		}
		if c.LLM.Model != "" {
			*model = c.LLM.Model
		}
	}

	switch cfg.Provider {
	case "anthropic":
		override(&cfg.Anthropic.APIKey, &cfg.Anthropic.Model)
	case "openai":
		override(&cfg.OpenAI.APIKey, &cfg.OpenAI.Model)
		if c.LLM.BaseURL != "" {
			cfg.OpenAI.BaseURL = c.LLM.BaseURL
		}
	case "gemini":
		override(&cfg.Gemini.APIKey, &cfg.Gemini.Model)
	case "openrouter":
		override(&cfg.OpenRouter.APIKey, &cfg.OpenRouter.Model)
		if c.LLM.BaseURL != "" {
			cfg.OpenRouter.BaseURL = c.LLM.BaseURL
		}
	}
}

// ValidationError is a single invalid setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors collects every invalid setting.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the source and the settings it depends on.
func (c *Config) Validate() error {
	var errs ValidateErrors

	switch c.Source {
	case SourceBackend:
		if err := checkURL(c.Backend.URL); err != nil {
			errs = append(errs, ValidationError{Field: "backend.url", Message: err.Error()})
		}
	case SourceLLM:
		if err := c.ProviderConfig().Validate(); err != nil {
			errs = append(errs, ValidationError{Field: "llm", Message: err.Error()})
		}
	default:
		errs = append(errs, ValidationError{
			Field:   "source",
			Message: fmt.Sprintf("invalid source %q, must be one of: %s, %s", c.Source, SourceBackend, SourceLLM),
		})
	}

	if c.Backend.Timeout.Duration < 0 {
		errs = append(errs, ValidationError{Field: "backend.timeout", Message: "must not be negative"})
	}
	if c.LLM.Timeout.Duration < 0 {
		errs = append(errs, ValidationError{Field: "llm.timeout", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid URL %q: missing host", raw)
	}
	return nil
}

// String renders the configuration as TOML with secrets masked.
func (c *Config) String() string {
	safe := *c
	safe.LLM.APIKey = Mask(c.LLM.APIKey)

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(safe); err != nil {
		return fmt.Sprintf("# error encoding config: %v\n", err)
	}
	return buf.String()
}

// Mask hides all but the last four characters of a secret.
func Mask(secret string) string {
	switch {
	case secret == "":
		return ""
	case len(secret) <= 8:
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}
