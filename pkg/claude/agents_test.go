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

func testConfig(t *testing.T, source fstest.MapFS) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		Source:             source,
		AgentsDir:          filepath.Join(dir, "agents"),
		SkillsDir:          filepath.Join(dir, "skills"),
		CommandsDir:        filepath.Join(dir, "commands"),
		ProfilesDir:        filepath.Join(dir, "permission-profiles"),
		DefaultProfilePath: filepath.Join(dir, "permission-profile.yaml"),
	}
}

func agentFixtures() fstest.MapFS {
	return fstest.MapFS{
		"agents/code-reviewer.yaml":  {Data: []byte("name: code-reviewer\ndescription: reviews diffs\n")},
		"agents/test-writer.yaml":    {Data: []byte("name: test-writer\ndescription: writes tests\n")},
		"agents/epic/ue-reviewer.md": {Data: []byte("---\nname: ue-reviewer\ndescription: reviews UE code\n---\nbody\n")},
	}
}

func TestAgentManagerAvailable(t *testing.T) {
	m := NewAgentManager(testConfig(t, agentFixtures()))

	available := m.Available()
	assert.Len(t, available, 3)
	assert.Contains(t, available, "code-reviewer")
	assert.Contains(t, available, "test-writer")
	assert.Contains(t, available, "epic/ue-reviewer")
}

func TestAgentManagerInstallPreservesExtension(t *testing.T) {
	cfg := testConfig(t, agentFixtures())
	m := NewAgentManager(cfg)

	results, err := m.Add([]registry.Ref{
		{Name: "code-reviewer"},
		{Namespace: NamespaceEpic, Name: "ue-reviewer"},
	}, false)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.FileExists(t, filepath.Join(cfg.AgentsDir, "code-reviewer.yaml"))
	assert.FileExists(t, filepath.Join(cfg.AgentsDir, "ue-reviewer.md"))
}

func TestAgentManagerLookupEpicFallback(t *testing.T) {
	m := NewAgentManager(testConfig(t, agentFixtures()))

	item, ok := m.Lookup("ue-reviewer")
	require.True(t, ok)
	assert.Equal(t, registry.Ref{Namespace: NamespaceEpic, Name: "ue-reviewer"}, item.Ref)

	_, ok = m.Lookup("no-such-agent")
	assert.False(t, ok)
}

func TestAgentManagerAddBundle(t *testing.T) {
	cfg := testConfig(t, agentFixtures())
	m := NewAgentManager(cfg)

	results, err := m.AddBundle("all", false)
	require.NoError(t, err)
	assert.Len(t, results, 2) // bundled only, epic excluded from "all"
	assert.FileExists(t, filepath.Join(cfg.AgentsDir, "code-reviewer.yaml"))
	assert.NoFileExists(t, filepath.Join(cfg.AgentsDir, "ue-reviewer.md"))

	results, err = m.AddBundle("epic", false)
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.FileExists(t, filepath.Join(cfg.AgentsDir, "ue-reviewer.md"))
}

func TestAgentManagerAddBundleUnknown(t *testing.T) {
	m := NewAgentManager(testConfig(t, agentFixtures()))

	_, err := m.AddBundle("nope", false)
	var notFound *registry.BundleNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestAgentManagerRemoveAll(t *testing.T) {
	cfg := testConfig(t, agentFixtures())
	m := NewAgentManager(cfg)

	_, err := m.AddBundle("all", false)
	require.NoError(t, err)
	require.NotEmpty(t, m.Installed())

	results, err := m.RemoveAll()
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Empty(t, m.Installed())
}

func TestAgentManagerAttribution(t *testing.T) {
	cfg := testConfig(t, agentFixtures())
	m := NewAgentManager(cfg)

	require.NoError(t, os.MkdirAll(cfg.AgentsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.AgentsDir, "my-own.yaml"), []byte("name: my-own\n"), 0o644))

	assert.Equal(t, SourceBundled, m.Attribution("code-reviewer"))
	assert.Equal(t, SourceEpic, m.Attribution("ue-reviewer"))
	assert.Equal(t, SourceCustom, m.Attribution("my-own"))
}
