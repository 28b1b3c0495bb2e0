package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/aspies/asutils/pkg/p4"
	"github.com/aspies/asutils/pkg/presenter"
)

var p4Cmd = &cobra.Command{
	Use:   "p4",
	Short: "Perforce helpers with depot aliases",
	Long: `Wrapped p4 commands that accept depot aliases (fn, ue5, eos, ...)
and parse the output.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var p4DirsCmd = &cobra.Command{
	Use:   "dirs [path]",
	Short: "List directories under a depot path",
	Long: `List directories. With no argument, shows the known aliases.

Examples:
  asutils p4 dirs fn
  asutils p4 dirs //UE5/Main/Engine
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ALIAS\tPATH")
			for _, name := range p4.AliasNames() {
				fmt.Fprintf(tw, "%s\t%s\n", name, p4.DepotAliases[name])
			}
			tw.Flush()
			return nil
		}

		dirs, err := p4.NewClient().Dirs(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		for _, dir := range dirs {
			fmt.Println(dir)
		}
		return nil
	},
}

var p4FilesCmd = &cobra.Command{
	Use:   "files <path>",
	Short: "List files under a depot path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		files, err := p4.NewClient().Files(cmd.Context(), args[0], limit)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Printf("%s#%s\n", f.Path, f.Revision)
		}
		return nil
	},
}

var p4SearchCmd = &cobra.Command{
	Use:   "search <scope> <pattern>",
	Short: "Find files matching a pattern",
	Long: `Find files. A bare filename pattern searches recursively under the
scope; a pattern with directory components is appended to the scope.

Examples:
  asutils p4 search fn "*.Build.cs"
  asutils p4 search ue5 "Source/*.cpp" --limit 100
`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		files, err := p4.NewClient().SearchFiles(cmd.Context(), args[1], args[0], limit)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			presenter.Info("No matches")
			return nil
		}
		for _, f := range files {
			fmt.Println(f.Path)
		}
		return nil
	},
}

var p4InfoCmd = &cobra.Command{
	Use:   "info <path>",
	Short: "Show file details (fstat)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := p4.NewClient().FileInfo(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, key := range sortedNames(info) {
			fmt.Fprintf(tw, "%s\t%s\n", key, info[key])
		}
		tw.Flush()
		return nil
	},
}

var p4HistoryCmd = &cobra.Command{
	Use:   "history <path>",
	Short: "Show file history (filelog)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		history, err := p4.NewClient().FileLog(cmd.Context(), args[0], limit)
		if err != nil {
			return err
		}
		for _, rev := range history {
			presenter.Info(fmt.Sprintf("#%s change %s %s on %s by %s",
				rev.Revision, rev.Change, rev.Action, rev.Date, rev.User))
			if rev.Description != "" {
				fmt.Printf("  %s\n", rev.Description)
			}
		}
		return nil
	},
}

var p4DescribeCmd = &cobra.Command{
	Use:   "describe <changelist>",
	Short: "Show a changelist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cl, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return errors.Errorf("invalid changelist number %q", args[0])
		}

		info, err := p4.NewClient().Describe(cmd.Context(), cl)
		if err != nil {
			return err
		}

		presenter.Section(fmt.Sprintf("Change %d by %s on %s", info.Number, info.User, info.Date))
		if info.Description != "" {
			fmt.Println(info.Description)
			fmt.Println()
		}
		for _, file := range info.Files {
			fmt.Printf("  %s\n", file)
		}
		return nil
	},
}

var p4WhereCmd = &cobra.Command{
	Use:   "where <path>",
	Short: "Show workspace mapping for a depot path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mapping, err := p4.NewClient().Where(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !mapping.Mapped {
			presenter.Warning("Path not mapped in current workspace")
			return nil
		}

		fmt.Printf("depot:  %s\nclient: %s\nlocal:  %s\n", mapping.Depot, mapping.Client, mapping.Local)
		return nil
	},
}

var p4PrintCmd = &cobra.Command{
	Use:   "print <path>",
	Short: "Print file contents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		revision, _ := cmd.Flags().GetInt("revision")

		content, err := p4.NewClient().Print(cmd.Context(), args[0], revision)
		if err != nil {
			return err
		}
		fmt.Print(content)
		return nil
	},
}

var p4BranchesCmd = &cobra.Command{
	Use:   "branches <depot>",
	Short: "List branches under a depot root",
	Long: `List the top-level directories of a depot, classified by naming
convention (Main, Dev-*, Release-*).

Examples:
  asutils p4 branches fortnite
  asutils p4 branches ue5 --filter "Dev-*"
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, _ := cmd.Flags().GetString("filter")

		branches, err := p4.NewClient().Branches(cmd.Context(), args[0], filter)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tTYPE\tPATH")
		for _, b := range branches {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Name, b.Type, b.Path)
		}
		tw.Flush()
		return nil
	},
}

var p4VerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the Perforce connection",
	RunE: func(cmd *cobra.Command, _ []string) error {
		message, err := p4.VerifyConnection(cmd.Context())
		if err != nil {
			presenter.Warning(p4.ServerSuggestion())
			return err
		}
		presenter.Success(message)
		return nil
	},
}

func init() {
	p4FilesCmd.Flags().IntP("limit", "m", 100, "Maximum files")
	p4SearchCmd.Flags().IntP("limit", "m", 50, "Maximum results")
	p4HistoryCmd.Flags().IntP("limit", "m", 10, "Maximum history entries")
	p4PrintCmd.Flags().IntP("revision", "r", 0, "Specific revision")
	p4BranchesCmd.Flags().StringP("filter", "F", "", "Glob filter on branch names (e.g. 'Dev-*')")

	p4Cmd.AddCommand(p4DirsCmd)
	p4Cmd.AddCommand(p4FilesCmd)
	p4Cmd.AddCommand(p4SearchCmd)
	p4Cmd.AddCommand(p4InfoCmd)
	p4Cmd.AddCommand(p4HistoryCmd)
	p4Cmd.AddCommand(p4DescribeCmd)
	p4Cmd.AddCommand(p4WhereCmd)
	p4Cmd.AddCommand(p4PrintCmd)
	p4Cmd.AddCommand(p4BranchesCmd)
	p4Cmd.AddCommand(p4VerifyCmd)
	rootCmd.AddCommand(p4Cmd)
}
