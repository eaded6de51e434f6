package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/budgetwise-dev/budgetwise/internal/config"
	"github.com/budgetwise-dev/budgetwise/internal/gitops"
	"github.com/budgetwise-dev/budgetwise/internal/ledger"
	"github.com/budgetwise-dev/budgetwise/internal/logging"
)

const configFile = "budgetwise.yaml"

const dateFormat = "2006-01-02"

// env is the resolved working state every data command starts from:
// the config, the store it selects, and the directory both live in.
type env struct {
	dir     string
	cfg     *config.Config
	store   ledger.Store
	csvRoot string // empty for the postgres backend
}

func openEnv(ctx context.Context, dir string) (*env, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absDir, configFile))
	if err != nil {
		return nil, fmt.Errorf("loading %s (run init first): %w", configFile, err)
	}

	e := &env{dir: absDir, cfg: cfg}
	switch cfg.Storage.Backend {
	case "", "csv":
		root := cfg.Storage.Root
		if !filepath.IsAbs(root) {
			root = filepath.Join(absDir, root)
		}
		e.store = ledger.NewCSVStore(root)
		e.csvRoot = root
	case "postgres":
		envName := cfg.Storage.PostgresURLEnv
		if envName == "" {
			envName = "DATABASE_URL"
		}
		url := os.Getenv(envName)
		if url == "" {
			return nil, fmt.Errorf("postgres backend selected but %s is not set", envName)
		}
		store, err := ledger.ConnectPostgres(ctx, url)
		if err != nil {
			return nil, err
		}
		e.store = store
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	return e, nil
}

func (e *env) owner() int {
	return e.cfg.Profile.OwnerID
}

// autoCommit records a ledger mutation in git when enabled. Failures
// are logged, never fatal: the ledger write already succeeded.
func (e *env) autoCommit(message string) {
	if e.csvRoot == "" || !e.cfg.Git.AutoCommit || !gitops.IsRepo(e.dir) {
		return
	}
	if _, err := gitops.CommitAll(e.dir, message, e.cfg.Git.AuthorName, e.cfg.Git.AuthorEmail); err != nil {
		logging.Logger.WithError(err).Warn("auto-commit failed")
	}
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}
