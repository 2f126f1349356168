package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/skillforge/internal/app"
	"github.com/abhisek/skillforge/internal/clipboard"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
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

	repo := eventRepo(st)
	forger, status, err := newForger(ctx, cfg, repo, logger)
	if err != nil {
		return err
	}

	goal, _ := cmd.Flags().GetString("goal")
	logger.Printf("starting tui: source=%s %s", cfg.Source, status)

	return app.Run(app.Options{
		Forger:    forger,
		EventRepo: repo,
		Logger:    logger,
		Clipboard: clipboard.System{},
		Status:    status,
		Goal:      goal,
	})
}
