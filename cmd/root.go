package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/skillforge/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "skillforge",
	Short: "AI curriculum architect for the terminal",
	Long: "Skill Forge turns a learning goal into a structured curriculum: modules,\n" +
		"key topics, resources and time estimates.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (overrides SKILLFORGE_CONFIG env var)")
	pf.String("backend", "", "Plan backend base URL (overrides SKILLFORGE_BACKEND_URL env var)")
	pf.String("source", "", "Plan source: backend or llm (overrides SKILLFORGE_SOURCE env var)")
	pf.String("db", "", "Path to SQLite database file (overrides SKILLFORGE_DB env var)")
	pf.Bool("no-store", false, "Do not record submissions or LLM usage")

	rootCmd.Flags().String("goal", "", "Pre-fill the goal and skip the splash screen")

	rootCmd.AddCommand(forgeCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and environment, then applies flags,
// which take precedence over both.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if v, _ := cmd.Flags().GetString("backend"); v != "" {
		cfg.Backend.URL = v
	}
	if v, _ := cmd.Flags().GetString("source"); v != "" {
		cfg.Source = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.Store.Path = v
	}
	if v, _ := cmd.Flags().GetBool("no-store"); v {
		cfg.Store.Disabled = true
	}
	return cfg, nil
}
