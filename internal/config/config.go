package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level budgetwise.yaml configuration.
type Config struct {
	Profile    ProfileConfig    `yaml:"profile"`
	Storage    StorageConfig    `yaml:"storage"`
	Recurrence RecurrenceConfig `yaml:"recurrence"`
	Git        GitConfig        `yaml:"git"`
}

// ProfileConfig identifies the local owner and display preferences.
type ProfileConfig struct {
	OwnerID  int    `yaml:"owner_id"`
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"`
	Timezone string `yaml:"timezone"`
}

// StorageConfig selects and locates the ledger backend.
type StorageConfig struct {
	// Backend is "csv" or "postgres".
	Backend string `yaml:"backend"`
	// Root is the CSV ledger directory, relative paths resolve against
	// the config file's directory.
	Root string `yaml:"root"`
	// PostgresURLEnv names the environment variable holding the
	// connection string, so credentials stay out of the YAML file.
	PostgresURLEnv string `yaml:"postgres_url_env,omitempty"`
}

// RecurrenceConfig controls the materialization daemon.
type RecurrenceConfig struct {
	Schedule string `yaml:"schedule"` // cron spec
}

// GitConfig controls auto-committing the CSV ledger.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a budgetwise.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default(name string) *Config {
	return &Config{
		Profile: ProfileConfig{
			OwnerID:  1,
			Name:     name,
			Currency: "USD",
			Timezone: "Local",
		},
		Storage: StorageConfig{
			Backend: "csv",
			Root:    "ledger",
		},
		Recurrence: RecurrenceConfig{
			Schedule: "0 0 * * *",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Budgetwise",
			AuthorEmail: "ledger@budgetwise.dev",
		},
	}
}

// LoadDotenv loads a .env file into the process environment if one
// exists. A missing file is not an error.
func LoadDotenv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}
