package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillforge/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past plan submissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		failed, _ := cmd.Flags().GetBool("failed")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := requireStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryForgeEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No submissions found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-8s  %-7s  %-7s  %s\n",
			"ID", "Timestamp", "Source", "Modules", "Ms", "Goal")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		for _, e := range events {
			if failed && e.Success {
				continue
			}
			modules := fmt.Sprintf("%d", e.ModuleCount)
			if !e.Success {
				modules = "✗"
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-8s  %-7s  %-7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Source,
				modules,
				e.LatencyMs,
				truncate(e.Goal, 48),
			)
			if failed && e.ErrorMessage != "" {
				fmt.Fprintf(out, "%5s  %s\n", "", truncate(e.ErrorMessage, 92))
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of submissions to show")
	historyCmd.Flags().Bool("failed", false, "Only show failed submissions, with their errors")
}
