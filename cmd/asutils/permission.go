package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/aspies/asutils/pkg/claude"
	"github.com/aspies/asutils/pkg/presenter"
	"github.com/aspies/asutils/pkg/registry"
)

var permissionCmd = &cobra.Command{
	Use:   "permission",
	Short: "Manage Claude Code permission profiles",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var permissionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bundled and installed permission profiles",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := claude.DefaultConfig()
		if err != nil {
			return err
		}
		m := claude.NewProfileManager(cfg)
		installed := m.Installed()
		current := m.CurrentDefault()

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tINSTALLED\tDEFAULT\tDESCRIPTION")
		catalog := m.Available()
		for _, name := range registry.SortedNames(catalog) {
			installedMark := "no"
			if _, ok := installed[name]; ok {
				installedMark = "yes"
			}
			defaultMark := ""
			if name == current {
				defaultMark = "*"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				name, installedMark, defaultMark, registry.FirstLine(catalog[name].Description()))
		}
		tw.Flush()

		if current == "(modified)" {
			presenter.Warning("Active profile has local edits and matches no installed profile")
		}
		return nil
	},
}

var permissionAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Install permission profiles",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		cfg, err := claude.DefaultConfig()
		if err != nil {
			return err
		}
		m := claude.NewProfileManager(cfg)

		if len(args) == 0 {
			results, err := m.AddAll(force)
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
		return reportSingle(results, "profile", args[0])
	},
}

var permissionRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove an installed permission profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := claude.DefaultConfig()
		if err != nil {
			return err
		}

		results, err := claude.NewProfileManager(cfg).Remove([]registry.Ref{{Name: args[0]}})
		if err != nil {
			return err
		}
		return reportSingle(results, "profile", args[0])
	},
}

var permissionDefaultCmd = &cobra.Command{
	Use:   "default [name]",
	Short: "Show or set the active permission profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := claude.DefaultConfig()
		if err != nil {
			return err
		}
		m := claude.NewProfileManager(cfg)

		if len(args) == 0 {
			current := m.CurrentDefault()
			if current == "" {
				presenter.Info("No default profile set")
				return nil
			}
			presenter.Info(fmt.Sprintf("Default profile: %s", current))
			return nil
		}

		if err := m.SetDefault(args[0]); err != nil {
			return errors.Wrap(err, "failed to set default profile")
		}
		presenter.Success(fmt.Sprintf("Default profile set to '%s'", args[0]))
		return nil
	},
}

func init() {
	permissionAddCmd.Flags().BoolP("force", "f", false, "Overwrite existing profiles")

	permissionCmd.AddCommand(permissionListCmd)
	permissionCmd.AddCommand(permissionAddCmd)
	permissionCmd.AddCommand(permissionRemoveCmd)
	permissionCmd.AddCommand(permissionDefaultCmd)
	claudeCmd.AddCommand(permissionCmd)
}
