// Package confluence wraps the Confluence Cloud REST API for searching,
// reading pages and verifying credentials. Configuration comes from the
// shared asutils config file plus a token in the environment.
package confluence

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// TokenEnvVar holds the Atlassian API token. One token covers both Jira
// and Confluence on the same site.
const TokenEnvVar = "JIRA_API_TOKEN"

// Config is the atlassian section of the asutils config file.
type Config struct {
	Confluence SiteConfig `mapstructure:"confluence" yaml:"confluence"`
	Jira       JiraConfig `mapstructure:"jira" yaml:"jira"`
}

// SiteConfig locates the Confluence site and the account to authenticate as.
type SiteConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	Email   string `mapstructure:"email" yaml:"email"`
}

// JiraConfig carries the Jira defaults used by the bundled skills.
type JiraConfig struct {
	BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
	DefaultProject string `mapstructure:"default_project" yaml:"default_project"`
}

// DefaultConfig returns the built-in site defaults, used until the user
// writes their own config file.
func DefaultConfig() Config {
	return Config{
		Confluence: SiteConfig{
			BaseURL: "https://epicgames.atlassian.net/wiki",
			Email:   "alex.spies@epicgames.com",
		},
		Jira: JiraConfig{
			BaseURL:        "https://epicgames.atlassian.net",
			DefaultProject: "EML",
		},
	}
}

// LoadConfig overlays the config file (already read into viper by the
// CLI) on top of the defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := viper.UnmarshalKey("confluence", &cfg.Confluence); err != nil {
		return cfg, errors.Wrap(err, "failed to parse confluence config")
	}
	if err := viper.UnmarshalKey("jira", &cfg.Jira); err != nil {
		return cfg, errors.Wrap(err, "failed to parse jira config")
	}
	return cfg, nil
}

// ConfigPath returns the canonical config file location.
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to locate home directory")
	}
	return filepath.Join(home, ".config", "asutils", "config.yaml"), nil
}

// SaveConfig writes the config as YAML, creating parent directories.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	return errors.Wrap(os.WriteFile(path, data, 0o644), "failed to write config")
}

// APIToken reads the Atlassian token from the environment.
func APIToken() (string, error) {
	token := os.Getenv(TokenEnvVar)
	if token == "" {
		return "", errors.Errorf(
			"%s environment variable not set; set it in your shell profile or run: export %s='your-token'",
			TokenEnvVar, TokenEnvVar,
		)
	}
	return token, nil
}
