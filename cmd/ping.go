package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillforge/internal/backend"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the plan backend is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		timeout, _ := cmd.Flags().GetDuration("timeout")
		client := backend.New(cfg.Backend.URL, backend.WithTimeout(timeout))

		start := time.Now()
		status, err := client.Ping(cmd.Context())
		if err != nil {
			return fmt.Errorf("backend %s unreachable: %w", client.BaseURL(), err)
		}
		if status == "" {
			status = "ok"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n",
			client.BaseURL(), status, time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func init() {
	pingCmd.Flags().Duration("timeout", 5*time.Second, "Request timeout")
}
