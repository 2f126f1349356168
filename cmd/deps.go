package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/abhisek/skillforge/internal/architect"
	"github.com/abhisek/skillforge/internal/backend"
	"github.com/abhisek/skillforge/internal/config"
	"github.com/abhisek/skillforge/internal/forge"
	"github.com/abhisek/skillforge/internal/llm"
	"github.com/abhisek/skillforge/internal/logging"
	"github.com/abhisek/skillforge/internal/store"
)

// resolveDBPath returns the configured database path, falling back to the
// default XDG location.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.Store.Path != "" {
		return cfg.Store.Path, store.EnsureDir(cfg.Store.Path)
	}
	return store.DefaultDBPath()
}

// openStore opens the event store. It returns nil when the store is
// disabled.
func openStore(cfg *config.Config) (*store.Store, error) {
	if cfg.Store.Disabled {
		return nil, nil
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// requireStore is openStore for commands that only read the store.
func requireStore(cfg *config.Config) (*store.Store, error) {
	if cfg.Store.Disabled {
		return nil, fmt.Errorf("the event store is disabled")
	}
	return openStore(cfg)
}

// openLogger opens the log file. Failure is not fatal: the app runs
// without a log and says so on stderr.
func openLogger(cfg *config.Config) *logging.Logger {
	path := cfg.Log.Path
	if path == "" {
		p, err := logging.DefaultPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Warning: logging disabled:", err)
			return nil
		}
		path = p
	}
	logger, err := logging.New(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: logging disabled:", err)
		return nil
	}
	return logger
}

// eventRepo returns the store's repo, or a nil interface without a store.
func eventRepo(st *store.Store) store.EventRepo {
	if st == nil {
		return nil
	}
	return st.EventRepo()
}

// newForger builds the plan generator for the configured source, wrapped
// with history recording. status describes it for the header.
func newForger(ctx context.Context, cfg *config.Config, repo store.EventRepo, logger *logging.Logger) (f forge.Forger, status string, err error) {
	switch cfg.Source {
	case config.SourceLLM:
		pc := cfg.ProviderConfig()
		if err := pc.Validate(); err != nil {
			return nil, "", err
		}
		provider, err := llm.NewProvider(ctx, pc, repo, logger)
		if err != nil {
			return nil, "", err
		}
		svc := architect.NewService(provider, architect.DefaultConfig())
		f = forge.WithTimeout(svc, pc.Timeout)
		status = fmt.Sprintf("%s · %s", provider.Name(), provider.ModelID())

	case config.SourceBackend:
		client := backend.New(cfg.Backend.URL, backend.WithTimeout(cfg.Backend.Timeout.Duration))
		f = client
		status = "backend · " + hostOf(client.BaseURL())

	default:
		return nil, "", fmt.Errorf("unknown plan source %q", cfg.Source)
	}

	return forge.WithHistory(f, repo, logger, cfg.Source), status, nil
}

func hostOf(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		return u.Host
	}
	return raw
}
