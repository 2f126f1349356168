package cmd

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/skillforge/internal/export"
	"github.com/abhisek/skillforge/internal/forge"
	"github.com/abhisek/skillforge/internal/render"
)

var forgeCmd = &cobra.Command{
	Use:   "forge <goal...>",
	Short: "Generate a learning plan and print it",
	Example: `  skillforge forge Learn Rust for systems programming
  skillforge forge --format json "Become a data engineer" > plan.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatFlag, _ := cmd.Flags().GetString("format")
		format, err := export.ParseFormat(formatFlag)
		if err != nil {
			return err
		}

		goal := strings.TrimSpace(strings.Join(args, " "))
		if goal == "" {
			return errors.New("goal must not be empty")
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close()
		}
		logger := openLogger(cfg)
		defer logger.Close()

		forger, status, err := newForger(cmd.Context(), cfg, eventRepo(st), logger)
		if err != nil {
			return err
		}

		cycle := forge.NewCycle()
		req, _ := cycle.Begin(goal)
		logger.Printf("cli forge via %s", status)
		cycle.Resolve(forge.Run(cmd.Context(), forger, req))
		if cycle.Err != "" {
			return errors.New(cycle.Err)
		}

		return printPlan(cmd, cycle, format)
	},
}

func printPlan(cmd *cobra.Command, cycle *forge.Cycle, format export.Format) error {
	out := cmd.OutOrStdout()
	tty := isTerminal(out)

	if format == export.FormatText {
		_, err := lipgloss.Fprintln(out, render.Plan(cycle.Plan, terminalWidth(out)).String())
		return err
	}

	exp, err := export.For(format)
	if err != nil {
		return err
	}
	data, err := exp.Export(cycle.Plan)
	if err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}

	text := string(data)
	if tty {
		switch format {
		case export.FormatMarkdown:
			text = renderMarkdown(text, terminalWidth(out))
		case export.FormatJSON, export.FormatYAML:
			text = highlight(text, string(format))
		}
	}
	_, err = fmt.Fprint(out, text)
	if err == nil && !strings.HasSuffix(text, "\n") {
		_, err = fmt.Fprintln(out)
	}
	return err
}

func init() {
	forgeCmd.Flags().StringP("format", "f", "text",
		"Output format: text, json, yaml or markdown")
}
