package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/skillforge/internal/backend"
)

// clearEnv unsets every variable Load and ProviderConfig read.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SKILLFORGE_CONFIG", "SKILLFORGE_SOURCE", "SKILLFORGE_BACKEND_URL",
		"SKILLFORGE_BACKEND_TIMEOUT", "SKILLFORGE_DB", "SKILLFORGE_LOG", "SKILLFORGE_NO_STORE",
		"SKILLFORGE_LLM_PROVIDER", "SKILLFORGE_ANTHROPIC_API_KEY", "SKILLFORGE_ANTHROPIC_MODEL",
		"SKILLFORGE_OPENAI_API_KEY", "SKILLFORGE_OPENAI_MODEL", "SKILLFORGE_OPENAI_BASE_URL",
		"SKILLFORGE_GEMINI_API_KEY", "SKILLFORGE_GEMINI_MODEL",
		"SKILLFORGE_OPENROUTER_API_KEY", "SKILLFORGE_OPENROUTER_MODEL",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.False(t, cfg.Loaded)
	assert.Equal(t, SourceBackend, cfg.Source)
	assert.Equal(t, backend.DefaultBaseURL, cfg.Backend.URL)
	assert.Equal(t, backend.DefaultTimeout, cfg.Backend.Timeout.Duration)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
source = "llm"

[backend]
url = "https://plans.example.com"
timeout = "30s"

[llm]
provider = "openai"
model = "gpt-4.1-mini"
api_key = "sk-test-123456789"

[store]
disabled = true

[log]
path = "/tmp/sf.log"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Loaded)
	assert.Equal(t, SourceLLM, cfg.Source)
	assert.Equal(t, "https://plans.example.com", cfg.Backend.URL)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout.Duration)
	assert.True(t, cfg.Store.Disabled)
	assert.Equal(t, "/tmp/sf.log", cfg.Log.Path)

	pc := cfg.ProviderConfig()
	assert.Equal(t, "openai", pc.Provider)
	assert.Equal(t, "gpt-4.1-mini", pc.OpenAI.Model)
	assert.Equal(t, "sk-test-123456789", pc.OpenAI.APIKey)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
source = "llm"
[backend]
url = "http://file:8000"
[llm]
provider = "anthropic"
api_key = "from-file-key"
`)
	t.Setenv("SKILLFORGE_SOURCE", "backend")
	t.Setenv("SKILLFORGE_BACKEND_URL", "http://env:9000")
	t.Setenv("SKILLFORGE_BACKEND_TIMEOUT", "5s")
	t.Setenv("SKILLFORGE_ANTHROPIC_API_KEY", "from-env-key")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, SourceBackend, cfg.Source)
	assert.Equal(t, "http://env:9000", cfg.Backend.URL)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout.Duration)
	assert.Equal(t, "from-env-key", cfg.ProviderConfig().Anthropic.APIKey)
}

func TestLoad_BadFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, `source = `))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[backend]\ntimeout = \"soon\"\n"))
	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "skillforge", "config.toml"), p)

	t.Setenv("SKILLFORGE_CONFIG", "/custom.toml")
	p, err = DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/custom.toml", p)
}

func TestProviderConfig_Discovery(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-discovered")

	pc := Default().ProviderConfig()
	assert.Equal(t, "openai", pc.Provider)
	assert.Equal(t, "sk-discovered", pc.OpenAI.APIKey)
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad source", func(c *Config) { c.Source = "carrier-pigeon" }, "source"},
		{"no scheme", func(c *Config) { c.Backend.URL = "localhost:8000" }, "backend.url"},
		{"no host", func(c *Config) { c.Backend.URL = "http://" }, "backend.url"},
		{"negative timeout", func(c *Config) { c.Backend.Timeout.Duration = -time.Second }, "backend.timeout"},
		{"llm without key", func(c *Config) { c.Source = SourceLLM; c.LLM.Provider = "gemini" }, "llm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs), "expected ValidateErrors, got %v", err)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}

	cfg := Default()
	cfg.Source = SourceLLM
	cfg.LLM.Provider = "mock"
	assert.NoError(t, cfg.Validate())
}

func TestString_MasksKey(t *testing.T) {
	cfg := Default()
	cfg.LLM.Provider = "openai"
	cfg.LLM.APIKey = "sk-secret-abcd1234"

	out := cfg.String()
	assert.NotContains(t, out, "sk-secret")
	assert.Contains(t, out, "****1234")
	assert.True(t, strings.Contains(out, `timeout = "2m0s"`), out)
}

func TestMask(t *testing.T) {
	assert.Equal(t, "", Mask(""))
	assert.Equal(t, "****", Mask("short"))
	assert.Equal(t, "****wxyz", Mask("abcdefghwxyz"))
}
