// ABOUTME: Anamnesis configuration management with backend selection.
// ABOUTME: Handles settings, local identity, schema source, and the storage factory.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/harperreed/anamnesis/internal/anamnesis"
	"github.com/harperreed/anamnesis/internal/charm"
	"github.com/harperreed/anamnesis/internal/metabolic"
	"github.com/harperreed/anamnesis/internal/models"
	"github.com/harperreed/anamnesis/internal/storage"
	"github.com/mitchellh/go-homedir"
)

const (
	BackendSQLite = "sqlite"
	BackendCharm  = "charm"
)

// Config stores anamnesis tool configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or "charm".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// SQLite puts anamnesis.db here. Supports ~ expansion.
	// Defaults to ~/.local/share/anamnesis.
	DataDir string `json:"data_dir,omitempty"`

	// UserID identifies who completed an assessment. Generated on first use.
	UserID string `json:"user_id,omitempty"`

	// BMRFormula is "mifflin_st_jeor" (default) or "harris_benedict".
	BMRFormula string `json:"bmr_formula,omitempty"`

	// SchemaPath points at a JSON or YAML questionnaire replacing the built-in one.
	SchemaPath string `json:"schema_path,omitempty"`

	LogLevel string `json:"log_level,omitempty"`

	// path is where Save writes; empty means GetConfigPath().
	path string
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	switch backend := c.GetBackend(); backend {
	case BackendSQLite:
		return storage.Open(filepath.Join(c.GetDataDir(), storage.DBFileName))
	case BackendCharm:
		return charm.InitClient()
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// LoadSchema returns the questionnaire at SchemaPath, or the built-in one.
func (c *Config) LoadSchema() (*models.Schema, error) {
	if c.SchemaPath == "" {
		return anamnesis.DefaultSchema(), nil
	}
	return anamnesis.LoadSchema(ExpandPath(c.SchemaPath))
}

// Calculator builds a metabolic calculator for the configured BMR formula.
func (c *Config) Calculator() (*metabolic.Calculator, error) {
	f, err := metabolic.ParseFormula(c.BMRFormula)
	if err != nil {
		return nil, err
	}
	return metabolic.New(metabolic.WithFormula(f)), nil
}

// EnsureUserID returns the configured user ID, generating and persisting one
// when absent.
func (c *Config) EnsureUserID() (string, error) {
	if c.UserID != "" {
		return c.UserID, nil
	}
	c.UserID = uuid.NewString()
	if err := c.Save(); err != nil {
		return "", fmt.Errorf("save generated user id: %w", err)
	}
	return c.UserID, nil
}

// Identity picks who owns new assessments. An explicit UserID wins; otherwise a
// repository that knows its account (Charm) answers, and finally a local ID is
// generated.
func (c *Config) Identity(repo storage.Repository) anamnesis.IdentityProvider {
	if c.UserID != "" {
		return anamnesis.StaticIdentity(c.UserID)
	}
	if id, ok := repo.(anamnesis.IdentityProvider); ok {
		return id
	}
	return localIdentity{cfg: c}
}

type localIdentity struct {
	cfg *Config
}

func (l localIdentity) UserID() (string, error) {
	return l.cfg.EnsureUserID()
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, _ := homedir.Dir()
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "anamnesis", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom reads config from an explicit path. A missing file yields defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{path: path}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.path = path
	return &cfg, nil
}

// Path returns where Save writes this config.
func (c *Config) Path() string {
	if c.path == "" {
		return GetConfigPath()
	}
	return c.path
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := c.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
