package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/aspies/asutils/pkg/claude"
	"github.com/aspies/asutils/pkg/presenter"
	"github.com/aspies/asutils/pkg/registry"
)

var claudeCmd = &cobra.Command{
	Use:   "claude",
	Short: "Claude Code utilities",
	Long:  `Manage Claude Code agents, skills, slash commands and permission profiles.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var claudeSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "One-command Claude Code setup",
	Long: `Set up Claude Code in one go: install permission profiles, pick a
default profile, install a skill bundle and add all bundled agents.

Examples:
  asutils claude setup
  asutils claude setup --profile safe --skills dev
  asutils claude setup --force
`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		profile, _ := cmd.Flags().GetString("profile")
		skillBundle, _ := cmd.Flags().GetString("skills")
		force, _ := cmd.Flags().GetBool("force")

		cfg, err := claude.DefaultConfig()
		if err != nil {
			return err
		}

		presenter.Section("Setting up Claude Code")

		presenter.Info("Step 1: Installing permission profiles...")
		profiles := claude.NewProfileManager(cfg)
		results, err := profiles.AddAll(force)
		if err != nil {
			return err
		}
		reportResults(results)

		presenter.Info(fmt.Sprintf("Step 2: Setting default profile to '%s'...", profile))
		if err := profiles.SetDefault(profile); err != nil {
			return err
		}
		presenter.Success(fmt.Sprintf("Default profile: %s", profile))

		presenter.Info(fmt.Sprintf("Step 3: Installing '%s' skill bundle...", skillBundle))
		results, err = claude.NewSkillManager(cfg).AddBundle(skillBundle, force)
		if err != nil {
			return err
		}
		reportResults(results)

		presenter.Info("Step 4: Installing agents...")
		results, err = claude.NewAgentManager(cfg).AddBundle(registry.BundleAll, force)
		if err != nil {
			return err
		}
		reportResults(results)

		presenter.Success("Setup complete")
		return nil
	},
}

// reportResults prints one line per batch item; misses and skips warn
// but never fail the command.
func reportResults(results []registry.Result) {
	if len(results) == 0 {
		presenter.Info("Nothing to install or remove")
		return
	}
	for _, res := range results {
		switch res.Outcome {
		case registry.OutcomeInstalled:
			presenter.Success(fmt.Sprintf("Added '%s'", res.Name))
		case registry.OutcomeSkipped:
			presenter.Warning(fmt.Sprintf("'%s' already installed (use --force to overwrite)", res.Name))
		case registry.OutcomeRemoved:
			presenter.Success(fmt.Sprintf("Removed '%s'", res.Name))
		case registry.OutcomeNotFound:
			presenter.Warning(fmt.Sprintf("'%s' not found", res.Name))
		default:
			if res.Err != nil {
				presenter.Warning(fmt.Sprintf("'%s': %v", res.Name, res.Err))
			}
		}
	}
}

// reportSingle is reportResults for a command invoked with exactly one
// name: a miss fails the command instead of warning.
func reportSingle(results []registry.Result, kind, name string) error {
	if len(results) == 1 && results[0].Outcome == registry.OutcomeNotFound {
		return errors.Errorf("%s %q not found", kind, name)
	}
	reportResults(results)
	return nil
}

func init() {
	claudeSetupCmd.Flags().StringP("profile", "p", "dev", "Permission profile to set as default")
	claudeSetupCmd.Flags().StringP("skills", "s", "default", "Skill bundle to install")
	claudeSetupCmd.Flags().BoolP("force", "f", false, "Overwrite existing files")

	claudeCmd.AddCommand(claudeSetupCmd)
	rootCmd.AddCommand(claudeCmd)
}
