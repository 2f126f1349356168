package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillforge/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: "Print the configuration after applying the config file, SKILLFORGE_*\n" +
		"environment variables and flags. API keys are masked.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		state := "not found, using defaults"
		if cfg.Loaded {
			state = "loaded"
		}
		fmt.Fprintf(out, "# config file: %s (%s)\n", cfg.File, state)

		if cfg.Source == config.SourceLLM {
			pc := cfg.ProviderConfig()
			fmt.Fprintf(out, "# llm provider: %s\n", pc.Provider)
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(out, "# invalid: %v\n", err)
		}
		fmt.Fprintln(out)
		fmt.Fprint(out, cfg.String())
		return nil
	},
}
