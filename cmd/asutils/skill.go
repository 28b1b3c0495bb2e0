package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/aspies/asutils/pkg/claude"
	"github.com/aspies/asutils/pkg/presenter"
	"github.com/aspies/asutils/pkg/registry"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Manage Claude Code skills and slash commands",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available and installed skills",
	RunE: func(cmd *cobra.Command, _ []string) error {
		bundled, _ := cmd.Flags().GetBool("bundled")
		installed, _ := cmd.Flags().GetBool("installed")
		epic, _ := cmd.Flags().GetBool("epic")
		commands, _ := cmd.Flags().GetBool("commands")
		if !bundled && !installed && !epic && !commands {
			bundled, installed, epic, commands = true, true, true, true
		}

		cfg, err := claude.DefaultConfig()
		if err != nil {
			return err
		}
		m := claude.NewSkillManager(cfg)
		installedSkills := m.InstalledSkills()
		installedCommands := m.InstalledCommands()

		if bundled {
			presenter.Section("Bundled Skills")
			printCatalog(m.Bundled(), func(name string) bool {
				_, ok := installedSkills[name]
				return ok
			})
		}

		if epic {
			presenter.Section("Epic Skills (use --bundle epic to install)")
			printCatalog(m.Epic(), func(name string) bool {
				_, ok := installedCommands[registry.ParseRef(name).Name]
				return ok
			})
		}

		if commands {
			presenter.Section("Bundled Commands (use --bundle commands to install)")
			printCatalog(m.Commands(), func(name string) bool {
				_, ok := installedCommands[registry.ParseRef(name).Name]
				return ok
			})
		}

		if installed {
			presenter.Section("Installed Skills (~/.claude/skills/)")
			printInstalled(installedSkills, m.SkillAttribution)

			presenter.Section("Installed Commands (~/.claude/commands/)")
			printInstalled(installedCommands, m.CommandAttribution)
		}
		return nil
	},
}

var skillShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a skill's content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		installed, _ := cmd.Flags().GetBool("installed")

		cfg, err := claude.DefaultConfig()
		if err != nil {
			return err
		}
		m := claude.NewSkillManager(cfg)

		if installed {
			path, ok := m.InstalledSkills()[args[0]]
			if !ok {
				return errors.Errorf("skill %q not found in installed skills", args[0])
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrapf(err, "failed to read %s", path)
			}
			presenter.Section(fmt.Sprintf("installed: %s", path))
			fmt.Print(string(content))
			return nil
		}

		item, ok := m.Lookup(args[0])
		if !ok {
			return errors.Errorf("skill %q not found in bundled skills", args[0])
		}
		content, err := item.Content()
		if err != nil {
			return errors.Wrapf(err, "failed to read skill %q", args[0])
		}
		presenter.Section(fmt.Sprintf("bundled: %s", item.Ref.Display()))
		fmt.Print(string(content))
		return nil
	},
}

var skillAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Install skills or slash commands",
	Long: `Install one skill by name or a whole bundle with --bundle.

Epic skills ("epic/name") and bundled commands ("commands/name") are
installed to ~/.claude/commands/ as slash commands; everything else
goes to ~/.claude/skills/.

Examples:
  asutils claude skill add claude-hooks
  asutils claude skill add epic/jira
  asutils claude skill add --bundle epic
  asutils claude skill add --bundle default --force
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bundle, _ := cmd.Flags().GetString("bundle")
		force, _ := cmd.Flags().GetBool("force")

		if len(args) == 0 && bundle == "" {
			return errors.New("provide either a skill name or --bundle")
		}

		cfg, err := claude.DefaultConfig()
		if err != nil {
			return err
		}
		m := claude.NewSkillManager(cfg)

		if bundle != "" {
			results, err := m.AddBundle(bundle, force)
			if err != nil {
				return err
			}
			reportResults(results)
			return nil
		}

		results, err := m.Add([]registry.Ref{registry.ParseRef(args[0])}, force)
		if err != nil {
			return err
		}
		return reportSingle(results, "skill", args[0])
	},
}

var skillRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Remove installed skills",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bundle, _ := cmd.Flags().GetString("bundle")
		all, _ := cmd.Flags().GetBool("all")

		if len(args) == 0 && bundle == "" && !all {
			return errors.New("provide a skill name, --bundle, or --all")
		}

		cfg, err := claude.DefaultConfig()
		if err != nil {
			return err
		}
		m := claude.NewSkillManager(cfg)

		switch {
		case all:
			return removeAllSkills(m)
		case bundle != "":
			refs, err := m.Resolve(bundle)
			if err != nil {
				return err
			}
			results, err := m.Remove(refs)
			if err != nil {
				return err
			}
			reportResults(results)
			return nil
		default:
			results, err := m.Remove([]registry.Ref{registry.ParseRef(args[0])})
			if err != nil {
				return err
			}
			return reportSingle(results, "skill", args[0])
		}
	},
}

var skillBundlesCmd = &cobra.Command{
	Use:   "bundles",
	Short: "List skill bundles",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := claude.DefaultConfig()
		if err != nil {
			return err
		}
		m := claude.NewSkillManager(cfg)

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "BUNDLE\tSKILLS")
		for _, bundle := range m.Bundles() {
			refs, err := m.Resolve(bundle)
			if err != nil {
				continue
			}
			names := make([]string, 0, len(refs))
			for _, ref := range refs {
				names = append(names, ref.Display())
			}
			display := strings.Join(names, ", ")
			if display == "" {
				display = "(empty)"
			}
			fmt.Fprintf(tw, "%s\t%s\n", bundle, display)
		}
		tw.Flush()
		return nil
	},
}

func removeAllSkills(m *claude.SkillManager) error {
	results, err := m.RemoveAllSkills()
	if err != nil {
		return err
	}
	if len(results) == 0 {
		presenter.Warning("No matching skills to remove")
		return nil
	}
	reportResults(results)
	return nil
}

func printInstalled(installed map[string]string, attribution func(string) string) {
	if len(installed) == 0 {
		presenter.Info("Nothing installed")
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSOURCE\tPATH")
	for _, name := range sortedNames(installed) {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, attribution(name), installed[name])
	}
	tw.Flush()
}

func init() {
	skillListCmd.Flags().BoolP("bundled", "b", false, "Show bundled skills")
	skillListCmd.Flags().BoolP("installed", "i", false, "Show installed skills")
	skillListCmd.Flags().BoolP("epic", "e", false, "Show epic skills")
	skillListCmd.Flags().BoolP("commands", "c", false, "Show bundled commands")

	skillShowCmd.Flags().BoolP("installed", "i", false, "Show the installed version")

	skillAddCmd.Flags().StringP("bundle", "b", "", "Install a bundle (e.g. epic, commands, dev)")
	skillAddCmd.Flags().BoolP("force", "f", false, "Overwrite existing skills")

	skillRemoveCmd.Flags().StringP("bundle", "b", "", "Remove a bundle's skills")
	skillRemoveCmd.Flags().Bool("all", false, "Remove all installed skills")

	skillCmd.AddCommand(skillListCmd)
	skillCmd.AddCommand(skillShowCmd)
	skillCmd.AddCommand(skillAddCmd)
	skillCmd.AddCommand(skillRemoveCmd)
	skillCmd.AddCommand(skillBundlesCmd)
	claudeCmd.AddCommand(skillCmd)
}
