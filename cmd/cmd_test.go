package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const planJSON = `{
  "goal": "Learn Go",
  "difficulty_level": "Beginner",
  "total_estimated_weeks": 2,
  "summary_motivation": "Small language, big reach.",
  "prerequisites": ["Any programming language"],
  "modules": [
    {
      "title": "Basics",
      "description": "Syntax and tooling.",
      "estimated_hours": 6,
      "key_topics": ["types", "slices"],
      "project_idea": "A CLI todo list",
      "resources": [{"title": "Tour of Go", "url": "https://go.dev/tour", "type": "Course"}]
    }
  ]
}`

// execute runs the root command with args in an isolated environment.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SKILLFORGE_CONFIG", filepath.Join(dir, "config.toml"))
	t.Setenv("SKILLFORGE_DB", filepath.Join(dir, "skillforge.db"))
	t.Setenv("SKILLFORGE_LOG", filepath.Join(dir, "skillforge.log"))
	t.Setenv("SKILLFORGE_SOURCE", "")
	t.Setenv("SKILLFORGE_BACKEND_URL", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		// Flag values persist on the package-level commands.
		for _, name := range []string{"backend", "source", "db", "config"} {
			_ = rootCmd.PersistentFlags().Set(name, "")
		}
		_ = rootCmd.PersistentFlags().Set("no-store", "false")
		_ = forgeCmd.Flags().Set("format", "text")
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func planServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			w.Write([]byte(`{"status": "Skill Forge API is running"}`))
		case "/api/generate-plan":
			w.WriteHeader(status)
			w.Write([]byte(body))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestForgeCommand_JSON(t *testing.T) {
	srv := planServer(t, http.StatusOK, planJSON)

	out, err := execute(t, "forge", "--backend", srv.URL, "--format", "json", "Learn", "Go")
	require.NoError(t, err)
	assert.Contains(t, out, `"difficulty_level": "Beginner"`)
	assert.Contains(t, out, `"project_idea": "A CLI todo list"`)
}

func TestForgeCommand_Markdown(t *testing.T) {
	srv := planServer(t, http.StatusOK, planJSON)

	out, err := execute(t, "forge", "--backend", srv.URL, "-f", "md", "Learn Go")
	require.NoError(t, err)
	assert.Contains(t, out, "# Learn Go")
	assert.Contains(t, out, "Basics")
}

func TestForgeCommand_Text(t *testing.T) {
	srv := planServer(t, http.StatusOK, planJSON)

	out, err := execute(t, "forge", "--backend", srv.URL, "Learn Go")
	require.NoError(t, err)
	assert.Contains(t, out, "01.")
	assert.Contains(t, out, "Tour of Go")
}

func TestForgeCommand_FailureShowsFixedMessage(t *testing.T) {
	srv := planServer(t, http.StatusInternalServerError, `{"detail": "model overloaded"}`)

	out, err := execute(t, "forge", "--backend", srv.URL, "Learn Go")
	require.Error(t, err)
	assert.Equal(t, "Something went wrong. Please check the backend connection.", err.Error())
	assert.NotContains(t, out, "overloaded")
}

func TestForgeCommand_OfflineMockProvider(t *testing.T) {
	t.Setenv("SKILLFORGE_LLM_PROVIDER", "mock")

	out, err := execute(t, "forge", "--source", "llm", "-f", "json", "Learn", "Rust")
	require.NoError(t, err)
	assert.Contains(t, out, `"goal": "Learn Rust"`)
	assert.Contains(t, out, `"title": "Foundations of Rust"`)
}

func TestForgeCommand_BadFormat(t *testing.T) {
	_, err := execute(t, "forge", "--format", "pdf", "Learn Go")
	assert.ErrorContains(t, err, "unknown format")
}

func TestHistoryCommand(t *testing.T) {
	srv := planServer(t, http.StatusOK, planJSON)
	dir := t.TempDir()
	db := filepath.Join(dir, "h.db")

	_, err := execute(t, "forge", "--backend", srv.URL, "--db", db, "-f", "json", "Learn Go")
	require.NoError(t, err)

	out, err := execute(t, "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Learn Go")
	assert.Contains(t, out, "backend")
}

func TestPingCommand(t *testing.T) {
	srv := planServer(t, http.StatusOK, planJSON)

	out, err := execute(t, "ping", "--backend", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Skill Forge API is running")
}

func TestConfigCommand(t *testing.T) {
	out, err := execute(t, "config", "--source", "backend", "--backend", "http://plans.internal:8000")
	require.NoError(t, err)
	assert.Contains(t, out, "not found, using defaults")
	assert.Contains(t, out, `url = "http://plans.internal:8000"`)
	assert.False(t, strings.Contains(out, "# invalid"), out)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "skillforge (devel)\n", out)
}
