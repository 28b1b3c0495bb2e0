package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/aspies/asutils/pkg/claude"
	"github.com/aspies/asutils/pkg/presenter"
	"github.com/aspies/asutils/pkg/registry"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Manage Claude Code custom agents",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var agentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available and installed agents",
	RunE: func(cmd *cobra.Command, _ []string) error {
		bundled, _ := cmd.Flags().GetBool("bundled")
		installed, _ := cmd.Flags().GetBool("installed")
		epic, _ := cmd.Flags().GetBool("epic")
		if !bundled && !installed && !epic {
			bundled, installed, epic = true, true, true
		}

		cfg, err := claude.DefaultConfig()
		if err != nil {
			return err
		}
		m := claude.NewAgentManager(cfg)
		installedAgents := m.Installed()

		if bundled {
			presenter.Section("Bundled Agents")
			printCatalog(m.Bundled(), func(name string) bool {
				_, ok := installedAgents[name]
				return ok
			})
		}

		if epic {
			presenter.Section("Epic Agents (use --bundle epic to install)")
			printCatalog(m.Epic(), func(name string) bool {
				_, ok := installedAgents[registry.ParseRef(name).Name]
				return ok
			})
		}

		if installed {
			presenter.Section("Installed Agents")
			if len(installedAgents) == 0 {
				presenter.Info("No agents installed")
				return nil
			}
			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSOURCE\tPATH")
			for _, name := range sortedNames(installedAgents) {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", name, m.Attribution(name), installedAgents[name])
			}
			tw.Flush()
		}
		return nil
	},
}

var agentShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show an agent definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := claude.DefaultConfig()
		if err != nil {
			return err
		}

		item, ok := claude.NewAgentManager(cfg).Lookup(args[0])
		if !ok {
			return errors.Errorf("agent %q not found", args[0])
		}

		content, err := item.Content()
		if err != nil {
			return errors.Wrapf(err, "failed to read agent %q", args[0])
		}

		presenter.Section(fmt.Sprintf("Agent: %s", item.Ref.Display()))
		fmt.Print(string(content))
		return nil
	},
}

var agentAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Install agents into ~/.claude/agents",
	Long: `Install one agent by name, every bundled agent with --all, or a
bundle with --bundle (e.g. epic). Epic agents may be named with or
without the epic/ prefix.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		bundle, _ := cmd.Flags().GetString("bundle")
		force, _ := cmd.Flags().GetBool("force")

		if len(args) == 0 && !all && bundle == "" {
			return errors.New("provide an agent name, --all, or --bundle")
		}

		cfg, err := claude.DefaultConfig()
		if err != nil {
			return err
		}
		m := claude.NewAgentManager(cfg)

		var results []registry.Result
		switch {
		case bundle != "":
			results, err = m.AddBundle(bundle, force)
		case all:
			results, err = m.AddBundle(registry.BundleAll, force)
		default:
			item, ok := m.Lookup(args[0])
			if !ok {
				return errors.Errorf("agent %q not found", args[0])
			}
			results, err = m.Add([]registry.Ref{item.Ref}, force)
		}
		if err != nil {
			return err
		}

		reportResults(results)
		return nil
	},
}

var agentRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Remove installed agents",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if len(args) == 0 && !all {
			return errors.New("provide an agent name or use --all")
		}

		cfg, err := claude.DefaultConfig()
		if err != nil {
			return err
		}
		m := claude.NewAgentManager(cfg)

		if all {
			results, err := m.RemoveAll()
			if err != nil {
				return err
			}
			reportResults(results)
			return nil
		}

		results, err := m.Remove([]registry.Ref{{Name: args[0]}})
		if err != nil {
			return err
		}
		return reportSingle(results, "agent", args[0])
	},
}

// printCatalog renders a catalog as a NAME/INSTALLED/DESCRIPTION table.
func printCatalog(catalog map[string]registry.Item, isInstalled func(string) bool) {
	if len(catalog) == 0 {
		presenter.Info("Nothing available")
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tINSTALLED\tDESCRIPTION")
	for _, name := range registry.SortedNames(catalog) {
		installed := "no"
		if isInstalled(name) {
			installed = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, installed, registry.FirstLine(catalog[name].Description()))
	}
	tw.Flush()
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	agentListCmd.Flags().BoolP("bundled", "b", false, "Show bundled agents")
	agentListCmd.Flags().BoolP("installed", "i", false, "Show installed agents")
	agentListCmd.Flags().BoolP("epic", "e", false, "Show epic agents")

	agentAddCmd.Flags().BoolP("all", "a", false, "Add all bundled agents")
	agentAddCmd.Flags().StringP("bundle", "b", "", "Add agents from a bundle (e.g. epic)")
	agentAddCmd.Flags().BoolP("force", "f", false, "Overwrite existing agents")

	agentRemoveCmd.Flags().Bool("all", false, "Remove all installed agents")

	agentCmd.AddCommand(agentListCmd)
	agentCmd.AddCommand(agentShowCmd)
	agentCmd.AddCommand(agentAddCmd)
	agentCmd.AddCommand(agentRemoveCmd)
	claudeCmd.AddCommand(agentCmd)
}
