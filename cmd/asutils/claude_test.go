package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aspies/asutils/pkg/presenter"
	"github.com/aspies/asutils/pkg/registry"
)

func TestReportSingleFailsOnMiss(t *testing.T) {
	results := []registry.Result{{Name: "no-such-thing", Outcome: registry.OutcomeNotFound}}

	err := reportSingle(results, "skill", "no-such-thing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `skill "no-such-thing" not found`)
}

func TestReportSingleSucceedsOnInstall(t *testing.T) {
	presenter.SetQuiet(true)
	t.Cleanup(func() { presenter.SetQuiet(false) })

	results := []registry.Result{{Name: "claude-hooks", Outcome: registry.OutcomeInstalled}}
	assert.NoError(t, reportSingle(results, "skill", "claude-hooks"))

	results = []registry.Result{{Name: "claude-hooks", Outcome: registry.OutcomeRemoved}}
	assert.NoError(t, reportSingle(results, "skill", "claude-hooks"))
}

func quietHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	presenter.SetQuiet(true)
	t.Cleanup(func() { presenter.SetQuiet(false) })
}

func TestSkillAddUnknownNameFails(t *testing.T) {
	quietHome(t)

	err := skillAddCmd.RunE(skillAddCmd, []string{"definitely-not-a-skill"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "definitely-not-a-skill")
}

func TestSkillRemoveUnknownNameFails(t *testing.T) {
	quietHome(t)

	err := skillRemoveCmd.RunE(skillRemoveCmd, []string{"definitely-not-a-skill"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "definitely-not-a-skill")
}

func TestSkillAddEmptyBundleSucceeds(t *testing.T) {
	quietHome(t)
	require.NoError(t, skillAddCmd.Flags().Set("bundle", "minimal"))
	t.Cleanup(func() { skillAddCmd.Flags().Set("bundle", "") })

	assert.NoError(t, skillAddCmd.RunE(skillAddCmd, nil))
}

func TestAgentRemoveUnknownNameFails(t *testing.T) {
	quietHome(t)

	err := agentRemoveCmd.RunE(agentRemoveCmd, []string{"not-installed-agent"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-installed-agent")
}

func TestPermissionAddUnknownNameFails(t *testing.T) {
	quietHome(t)

	err := permissionAddCmd.RunE(permissionAddCmd, []string{"no-such-profile"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-profile")
}

func TestPermissionRemoveUnknownNameFails(t *testing.T) {
	quietHome(t)

	err := permissionRemoveCmd.RunE(permissionRemoveCmd, []string{"no-such-profile"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-profile")
}
