// Package config loads pairplan configuration from config.yaml in the
// resolved configuration directory, with environment-variable overrides
// under the PAIRPLAN_ prefix. A default config.yaml is written on first run;
// a missing file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "PAIRPLAN"
)

// Environment selectors for the spreadsheet id.
const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// DefaultPassphrase gates the app when no passphrase is configured.
const DefaultPassphrase = "1234"

// Config carries backend selection, credentials and the notification
// channel settings.
type Config struct {
	// Env selects which spreadsheet id to use: "dev" or "prod".
	Env string `mapstructure:"env"`

	// DataDir enables the local SQLite fallback when non-empty.
	DataDir string `mapstructure:"data_dir"`

	// Passphrase is the single shared secret gating the whole app.
	Passphrase string `mapstructure:"passphrase"`

	// Users are the two fixed identities allowed to author proposals.
	Users []string `mapstructure:"users"`

	// AppURL, when set, is appended to notification messages as a link
	// back to the app.
	AppURL string `mapstructure:"app_url"`

	Sheets struct {
		SpreadsheetIDDev  string `mapstructure:"spreadsheet_id_dev"`
		SpreadsheetIDProd string `mapstructure:"spreadsheet_id_prod"`
		APIKey            string `mapstructure:"api_key"`
	} `mapstructure:"sheets"`

	Notify struct {
		Token     string `mapstructure:"token"`
		Recipient string `mapstructure:"recipient"`
	} `mapstructure:"notify"`
}

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# pairplan configuration

# Environment selector: dev or prod
env: dev

# Local data directory for the SQLite fallback (optional)
# data_dir:

# Shared passphrase gating the app (default: 1234)
# passphrase:

# Link appended to notification messages (optional)
# app_url:

# The two user identities
users:
  - あなた
  - 彼女

sheets:
  # spreadsheet_id_dev:
  # spreadsheet_id_prod:
  # api_key:

notify:
  # token:
  # recipient:
`

// Load reads config.yaml from configDir, creating the directory and a
// default file on first run. Environment variables such as
// PAIRPLAN_SHEETS_API_KEY override file values.
func Load(configDir string) (*Config, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault("env", EnvDev)
	v.SetDefault("users", []string{"あなた", "彼女"})
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only covers keys viper has already seen from defaults or
	// the file; bind each key so env vars work for commented-out entries too.
	for _, key := range []string{
		"env", "data_dir", "passphrase", "app_url",
		"sheets.spreadsheet_id_dev", "sheets.spreadsheet_id_prod", "sheets.api_key",
		"notify.token", "notify.recipient",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Missing config.yaml is not an error.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks structural constraints.
func (c *Config) Validate() error {
	if c.Env != EnvDev && c.Env != EnvProd {
		return fmt.Errorf("env must be %q or %q, got %q", EnvDev, EnvProd, c.Env)
	}
	if len(c.Users) != 2 {
		return fmt.Errorf("users must name exactly two identities, got %d", len(c.Users))
	}
	return nil
}

// SpreadsheetID returns the spreadsheet id for the selected environment.
// Empty when the remote backend is not configured.
func (c *Config) SpreadsheetID() string {
	if c.Env == EnvProd {
		return c.Sheets.SpreadsheetIDProd
	}
	return c.Sheets.SpreadsheetIDDev
}

// SharedPassphrase returns the configured passphrase or the built-in
// default.
func (c *Config) SharedPassphrase() string {
	if c.Passphrase != "" {
		return c.Passphrase
	}
	return DefaultPassphrase
}

// KnownUser reports whether name is one of the two configured identities.
func (c *Config) KnownUser(name string) bool {
	for _, u := range c.Users {
		if u == name {
			return true
		}
	}
	return false
}

// ensureDefaultConfigFile creates a default config.yaml if absent.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
