package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aspies/asutils/pkg/presenter"
	"github.com/aspies/asutils/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		info := version.Get()
		if asJSON {
			out, err := info.JSON()
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		}

		presenter.Info(info.String())
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("json", false, "Output JSON")
	rootCmd.AddCommand(versionCmd)
}
