package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Alex")
	cfg.Storage.Backend = "postgres"
	cfg.Storage.PostgresURLEnv = "BUDGETWISE_DATABASE_URL"

	path := filepath.Join(t.TempDir(), "budgetwise.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Profile.OwnerID, got.Profile.OwnerID)
	assert.Equal(t, cfg.Profile.Name, got.Profile.Name)
	assert.Equal(t, cfg.Profile.Currency, got.Profile.Currency)
	assert.Equal(t, "postgres", got.Storage.Backend)
	assert.Equal(t, "BUDGETWISE_DATABASE_URL", got.Storage.PostgresURLEnv)
	assert.Equal(t, cfg.Recurrence.Schedule, got.Recurrence.Schedule)
	assert.Equal(t, cfg.Git.AutoCommit, got.Git.AutoCommit)
	assert.Equal(t, cfg.Git.AuthorName, got.Git.AuthorName)
}

func TestDefaults(t *testing.T) {
	cfg := Default("Alex")

	assert.Equal(t, 1, cfg.Profile.OwnerID)
	assert.Equal(t, "Alex", cfg.Profile.Name)
	assert.Equal(t, "USD", cfg.Profile.Currency)
	assert.Equal(t, "csv", cfg.Storage.Backend)
	assert.Equal(t, "ledger", cfg.Storage.Root)
	assert.Equal(t, "0 0 * * *", cfg.Recurrence.Schedule)
	assert.True(t, cfg.Git.AutoCommit)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Alex")
	path := filepath.Join(t.TempDir(), "budgetwise.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "owner_id: 1")
	assert.Contains(t, contents, "currency: USD")
	assert.Contains(t, contents, "backend: csv")
	assert.Contains(t, contents, "schedule: 0 0 * * *")
	assert.Contains(t, contents, "auto_commit: true")
}
