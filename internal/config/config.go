package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/moodlog/internal/constants"
	"github.com/julianstephens/moodlog/internal/utils"
)

// Config holds the runtime settings. Precedence, lowest first: defaults,
// YAML file, .env and MOODLOG_* environment, command-line flags.
type Config struct {
	Storage      string               `yaml:"storage"`
	StorageKey   string               `yaml:"storage_key"`
	LegacyLayout bool                 `yaml:"legacy_layout"`
	Timezone     string               `yaml:"timezone"`
	DateBasis    constants.DateBasis  `yaml:"date_basis"`
	ResetScope   constants.ResetScope `yaml:"reset_scope"`
	Debug        bool                 `yaml:"debug"`
}

func Defaults() *Config {
	return &Config{
		Storage:      constants.DefaultConfigPath,
		StorageKey:   constants.StorageKey,
		LegacyLayout: constants.DefaultLegacyLayout,
		Timezone:     constants.DefaultTimezone,
		DateBasis:    constants.DefaultDateBasis,
		ResetScope:   constants.DefaultResetScope,
	}
}

// GetConfigPath returns the config file path from environment or default.
func GetConfigPath() string {
	if path := os.Getenv(constants.EnvConfigFile); path != "" {
		return ExpandPath(path)
	}
	return ExpandPath(filepath.Join(constants.DefaultConfigDir, constants.DefaultConfigFile))
}

// Load builds a Config from defaults, the YAML file at path (a missing file
// is not an error) and the environment. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config yaml: %w", err)
			}
		}
	}

	_ = godotenv.Load()
	if err := applyEnvironmentOverrides(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	d := Defaults()
	if cfg.Storage == "" {
		cfg.Storage = d.Storage
	}
	if cfg.StorageKey == "" {
		cfg.StorageKey = d.StorageKey
	}
	if cfg.Timezone == "" {
		cfg.Timezone = d.Timezone
	}
	if cfg.DateBasis == "" {
		cfg.DateBasis = d.DateBasis
	}
	if cfg.ResetScope == "" {
		cfg.ResetScope = d.ResetScope
	}
}

func applyEnvironmentOverrides(cfg *Config) error {
	cfg.Storage = getEnv(constants.EnvStorage, cfg.Storage)
	cfg.StorageKey = getEnv(constants.EnvStorageKey, cfg.StorageKey)
	cfg.Timezone = getEnv(constants.EnvTimezone, cfg.Timezone)
	cfg.DateBasis = constants.DateBasis(getEnv(constants.EnvDateBasis, string(cfg.DateBasis)))
	cfg.ResetScope = constants.ResetScope(getEnv(constants.EnvResetScope, string(cfg.ResetScope)))

	var err error
	if cfg.LegacyLayout, err = getEnvBool(constants.EnvLegacyLayout, cfg.LegacyLayout); err != nil {
		return err
	}
	if cfg.Debug, err = getEnvBool(constants.EnvDebug, cfg.Debug); err != nil {
		return err
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean for %s: %q", key, value)
	}
	return b, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Storage) == "" {
		return fmt.Errorf("storage is required")
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		return fmt.Errorf("storage_key is required")
	}
	switch c.DateBasis {
	case constants.DateBasisUTC, constants.DateBasisLocal:
	default:
		return fmt.Errorf("date_basis must be %q or %q, got %q",
			constants.DateBasisUTC, constants.DateBasisLocal, c.DateBasis)
	}
	switch c.ResetScope {
	case constants.ResetScopeKey, constants.ResetScopeAll:
	default:
		return fmt.Errorf("reset_scope must be %q or %q, got %q",
			constants.ResetScopeKey, constants.ResetScopeAll, c.ResetScope)
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	return utils.LoadLocation(c.Timezone)
}

// Dir is where logs and file-backed stores live by default.
func (c *Config) Dir() string {
	return ExpandPath(constants.DefaultConfigDir)
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
