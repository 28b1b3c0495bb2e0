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

func skillFixtures() fstest.MapFS {
	return fstest.MapFS{
		"skills/claude-hooks.md":    {Data: []byte("---\ndescription: hook help\n---\nhooks\n")},
		"skills/commit-style.md":    {Data: []byte("---\ndescription: commit help\n---\ncommits\n")},
		"skills/epic/jira.md":       {Data: []byte("---\ndescription: jira help\n---\njira\n")},
		"skills/epic/confluence.md": {Data: []byte("---\ndescription: confluence help\n---\nconfluence\n")},
		"commands/standup.md":       {Data: []byte("---\ndescription: standup command\n---\nstandup\n")},
	}
}

func TestSkillManagerRouting(t *testing.T) {
	cfg := testConfig(t, skillFixtures())
	m := NewSkillManager(cfg)

	results, err := m.Add([]registry.Ref{
		{Name: "claude-hooks"},
		{Namespace: NamespaceEpic, Name: "jira"},
		{Namespace: NamespaceCommands, Name: "standup"},
	}, false)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Plain skills go to the skills dir; namespaced items go to the
	// commands dir with the prefix stripped.
	assert.FileExists(t, filepath.Join(cfg.SkillsDir, "claude-hooks.md"))
	assert.FileExists(t, filepath.Join(cfg.CommandsDir, "jira.md"))
	assert.FileExists(t, filepath.Join(cfg.CommandsDir, "standup.md"))
	assert.NoFileExists(t, filepath.Join(cfg.SkillsDir, "jira.md"))
}

func TestSkillManagerBundles(t *testing.T) {
	m := NewSkillManager(testConfig(t, skillFixtures()))

	assert.Equal(t, []string{"all", "commands", "default", "dev", "epic", "minimal"}, m.Bundles())
}

func TestSkillManagerDevBundle(t *testing.T) {
	cfg := testConfig(t, skillFixtures())
	m := NewSkillManager(cfg)

	results, err := m.AddBundle("dev", false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.FileExists(t, filepath.Join(cfg.SkillsDir, "claude-hooks.md"))
	assert.NoFileExists(t, filepath.Join(cfg.SkillsDir, "commit-style.md"))
}

func TestSkillManagerMinimalBundleInstallsNothing(t *testing.T) {
	cfg := testConfig(t, skillFixtures())
	m := NewSkillManager(cfg)

	results, err := m.AddBundle("minimal", false)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, m.InstalledSkills())
}

func TestSkillManagerEpicBundle(t *testing.T) {
	cfg := testConfig(t, skillFixtures())
	m := NewSkillManager(cfg)

	results, err := m.AddBundle("epic", false)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, []string{"confluence", "jira"}, sortedKeys(m.InstalledCommands()))
	assert.Empty(t, m.InstalledSkills())
}

func TestSkillManagerDefaultBundleExcludesNamespaces(t *testing.T) {
	cfg := testConfig(t, skillFixtures())
	m := NewSkillManager(cfg)

	refs, err := m.Resolve("default")
	require.NoError(t, err)
	assert.Equal(t, []registry.Ref{{Name: "claude-hooks"}, {Name: "commit-style"}}, refs)
}

func TestSkillManagerAttribution(t *testing.T) {
	cfg := testConfig(t, skillFixtures())
	m := NewSkillManager(cfg)

	_, err := m.AddBundle("epic", false)
	require.NoError(t, err)
	_, err = m.AddBundle("commands", false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.CommandsDir, "mine.md"), []byte("mine"), 0o644))

	assert.Equal(t, SourceEpic, m.CommandAttribution("jira"))
	assert.Equal(t, SourceBundled, m.CommandAttribution("standup"))
	assert.Equal(t, SourceCustom, m.CommandAttribution("mine"))
	assert.Equal(t, SourceBundled, m.SkillAttribution("claude-hooks"))
	assert.Equal(t, SourceCustom, m.SkillAttribution("scratch"))
}

func TestSkillManagerRemoveAllSkillsLeavesCommands(t *testing.T) {
	cfg := testConfig(t, skillFixtures())
	m := NewSkillManager(cfg)

	_, err := m.AddBundle("default", false)
	require.NoError(t, err)
	_, err = m.AddBundle("epic", false)
	require.NoError(t, err)

	_, err = m.RemoveAllSkills()
	require.NoError(t, err)

	assert.Empty(t, m.InstalledSkills())
	assert.Len(t, m.InstalledCommands(), 2)
}
