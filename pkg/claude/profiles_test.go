package claude

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aspies/asutils/pkg/registry"
)

func profileFixtures() fstest.MapFS {
	return fstest.MapFS{
		"profiles/dev.yaml":  {Data: []byte("name: dev\ndescription: broad dev access\n")},
		"profiles/safe.yaml": {Data: []byte("name: safe\ndescription: read only\n")},
	}
}

func TestProfileManagerAddAll(t *testing.T) {
	cfg := testConfig(t, profileFixtures())
	m := NewProfileManager(cfg)

	results, err := m.AddAll(false)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.FileExists(t, filepath.Join(cfg.ProfilesDir, "dev.yaml"))
	assert.FileExists(t, filepath.Join(cfg.ProfilesDir, "safe.yaml"))
}

func TestProfileManagerSetDefault(t *testing.T) {
	cfg := testConfig(t, profileFixtures())
	m := NewProfileManager(cfg)

	_, err := m.AddAll(false)
	require.NoError(t, err)

	require.NoError(t, m.SetDefault("dev"))

	content, err := os.ReadFile(cfg.DefaultProfilePath)
	require.NoError(t, err)
	assert.Equal(t, "name: dev\ndescription: broad dev access\n", string(content))
	assert.Equal(t, "dev", m.CurrentDefault())
}

func TestProfileManagerSetDefaultRequiresInstalled(t *testing.T) {
	m := NewProfileManager(testConfig(t, profileFixtures()))

	err := m.SetDefault("dev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not installed")
}

func TestProfileManagerCurrentDefault(t *testing.T) {
	cfg := testConfig(t, profileFixtures())
	m := NewProfileManager(cfg)

	assert.Equal(t, "", m.CurrentDefault())

	_, err := m.AddAll(false)
	require.NoError(t, err)
	require.NoError(t, m.SetDefault("safe"))
	assert.Equal(t, "safe", m.CurrentDefault())

	// Hand-edited default no longer matches any installed profile.
	require.NoError(t, os.WriteFile(cfg.DefaultProfilePath, []byte("name: tweaked\n"), 0o644))
	assert.Equal(t, "(modified)", m.CurrentDefault())
}

func TestProfileManagerRemove(t *testing.T) {
	cfg := testConfig(t, profileFixtures())
	m := NewProfileManager(cfg)

	_, err := m.AddAll(false)
	require.NoError(t, err)

	results, err := m.Remove([]registry.Ref{{Name: "safe"}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, registry.OutcomeRemoved, results[0].Outcome)
	assert.Equal(t, []string{"dev"}, sortedKeys(m.Installed()))
}
