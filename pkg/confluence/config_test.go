package confluence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Config{
		Confluence: SiteConfig{BaseURL: "https://example.atlassian.net/wiki", Email: "me@example.com"},
		Jira:       JiraConfig{BaseURL: "https://example.atlassian.net", DefaultProject: "ABC"},
	}

	require.NoError(t, SaveConfig(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded Config
	require.NoError(t, yaml.Unmarshal(data, &loaded))
	assert.Equal(t, cfg, loaded)
}

func TestAPIToken(t *testing.T) {
	t.Setenv(TokenEnvVar, "secret")

	token, err := APIToken()
	require.NoError(t, err)
	assert.Equal(t, "secret", token)
}

func TestAPITokenMissing(t *testing.T) {
	t.Setenv(TokenEnvVar, "")

	_, err := APIToken()
	require.Error(t, err)
	assert.Contains(t, err.Error(), TokenEnvVar)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.NotEmpty(t, cfg.Confluence.BaseURL)
	assert.NotEmpty(t, cfg.Jira.DefaultProject)
}
