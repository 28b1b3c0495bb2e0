package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aspies/asutils/pkg/claude"
	"github.com/aspies/asutils/pkg/confluence"
	"github.com/aspies/asutils/pkg/presenter"
)

var epicCmd = &cobra.Command{
	Use:   "epic",
	Short: "Epic Games specific utilities",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var epicSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Set up Epic integrations (Confluence, Jira, skills)",
	Long: `Write the Epic config file, verify JIRA_API_TOKEN authentication
and install the epic Claude Code skills.

Examples:
  asutils epic setup
  asutils epic setup --force
  asutils epic setup --skip-verify --skip-skills
`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		skipSkills, _ := cmd.Flags().GetBool("skip-skills")
		skipVerify, _ := cmd.Flags().GetBool("skip-verify")

		presenter.Section("Setting up Epic integrations")

		presenter.Info("Step 1: Checking configuration...")
		if err := setupEpicConfig(force); err != nil {
			return err
		}

		if !skipVerify {
			presenter.Info("Step 2: Verifying authentication...")
			if err := verifyConfluenceAuth(cmd); err != nil {
				return err
			}
		}

		if !skipSkills {
			presenter.Info("Step 3: Installing epic skills...")
			cfg, err := claude.DefaultConfig()
			if err != nil {
				return err
			}
			results, err := claude.NewSkillManager(cfg).AddBundle("epic", force)
			if err != nil {
				presenter.Warning(fmt.Sprintf("Failed to install skills: %v", err))
				presenter.Info("You can install manually: asutils claude skill add --bundle epic")
			} else {
				reportResults(results)
			}
		}

		presenter.Success("Epic setup complete")
		return nil
	},
}

var epicStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show status of Epic integrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		presenter.Section("Epic Integration Status")

		path, err := confluence.ConfigPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil {
			cfg, err := confluence.LoadConfig()
			if err != nil {
				return err
			}
			presenter.Success(fmt.Sprintf("Config file: %s", path))
			presenter.Info(fmt.Sprintf("  Confluence: %s", cfg.Confluence.BaseURL))
			presenter.Info(fmt.Sprintf("  Email: %s", cfg.Confluence.Email))
		} else {
			presenter.Warning(fmt.Sprintf("Config file not found: %s", path))
		}

		if _, err := confluence.APIToken(); err == nil {
			presenter.Success(confluence.TokenEnvVar + " is set")
		} else {
			presenter.Warning(confluence.TokenEnvVar + " not set")
		}

		if err := verifyConfluenceAuth(cmd); err != nil {
			presenter.Warning(fmt.Sprintf("Confluence authentication failed: %v", err))
		} else {
			presenter.Success("Confluence authentication working")
		}

		claudeCfg, err := claude.DefaultConfig()
		if err != nil {
			return err
		}
		installed := claude.NewSkillManager(claudeCfg).InstalledCommands()
		for _, skill := range []string{"jira", "confluence"} {
			if _, ok := installed[skill]; ok {
				presenter.Success(fmt.Sprintf("/%s skill installed", skill))
			} else {
				presenter.Warning(fmt.Sprintf("/%s skill not installed", skill))
			}
		}
		return nil
	},
}

var epicVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify Epic authentication is working",
	RunE: func(cmd *cobra.Command, _ []string) error {
		presenter.Info("Verifying Confluence authentication...")
		if err := verifyConfluenceAuth(cmd); err != nil {
			return err
		}
		presenter.Success("Authentication successful")

		client, err := confluenceClient()
		if err != nil {
			return err
		}
		spaces, err := client.ListSpaces(cmd.Context(), 5)
		if err != nil {
			return err
		}

		presenter.Info(fmt.Sprintf("Found %d spaces (showing first 5):", len(spaces)))
		for _, s := range spaces {
			presenter.Info(fmt.Sprintf("  - %s: %s", s.Key, s.Name))
		}
		return nil
	},
}

func setupEpicConfig(force bool) error {
	path, err := confluence.ConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !force {
		presenter.Success(fmt.Sprintf("Config exists: %s", path))
		return nil
	}

	cfg, err := confluence.LoadConfig()
	if err != nil {
		cfg = confluence.DefaultConfig()
	}
	if err := confluence.SaveConfig(path, cfg); err != nil {
		return err
	}
	presenter.Success(fmt.Sprintf("Wrote config: %s", filepath.Clean(path)))
	return nil
}

func verifyConfluenceAuth(cmd *cobra.Command) error {
	client, err := confluenceClient()
	if err != nil {
		return err
	}
	return client.VerifyAuth(cmd.Context())
}

func init() {
	epicSetupCmd.Flags().BoolP("force", "f", false, "Overwrite existing config")
	epicSetupCmd.Flags().Bool("skip-skills", false, "Skip skill installation")
	epicSetupCmd.Flags().Bool("skip-verify", false, "Skip auth verification")

	epicCmd.AddCommand(epicSetupCmd)
	epicCmd.AddCommand(epicStatusCmd)
	epicCmd.AddCommand(epicVerifyCmd)
	rootCmd.AddCommand(epicCmd)
}
