package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/aspies/asutils/pkg/presenter"
	"github.com/aspies/asutils/pkg/version"
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Test, build, tag and push a release",
	Long: `Run the release chores in order: go test, confirmation, go build,
git tag v<version> and git push --tags. Any failing step aborts.

Examples:
  asutils release
  asutils release --skip-tests -y
`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		skipTests, _ := cmd.Flags().GetBool("skip-tests")
		skipConfirm, _ := cmd.Flags().GetBool("yes")

		ver := version.Get().Version
		presenter.Section(fmt.Sprintf("Releasing asutils v%s", ver))

		if !skipTests {
			presenter.Info("Running tests...")
			if err := runStep(cmd, "go", "test", "./..."); err != nil {
				return errors.Wrap(err, "tests failed, aborting")
			}
			presenter.Success("Tests passed")
		}

		if !skipConfirm {
			answer := presenter.Prompt(fmt.Sprintf("Release v%s?", ver), "y", "N")
			if !strings.EqualFold(answer, "y") {
				presenter.Info("Aborted")
				return nil
			}
		}

		presenter.Info("Building...")
		if err := runStep(cmd, "go", "build", "./..."); err != nil {
			return errors.Wrap(err, "build failed, aborting")
		}
		presenter.Success("Build complete")

		tag := "v" + ver
		if err := runStep(cmd, "git", "tag", tag); err != nil {
			return errors.Wrapf(err, "failed to tag %s", tag)
		}
		if err := runStep(cmd, "git", "push", "--tags"); err != nil {
			return errors.Wrap(err, "failed to push tags")
		}

		presenter.Success(fmt.Sprintf("Tagged and pushed %s", tag))
		return nil
	},
}

// runStep runs a subprocess with output passed straight through.
func runStep(cmd *cobra.Command, name string, args ...string) error {
	c := exec.CommandContext(cmd.Context(), name, args...)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

func init() {
	releaseCmd.Flags().Bool("skip-tests", false, "Skip running tests")
	releaseCmd.Flags().BoolP("yes", "y", false, "Skip confirmation")

	rootCmd.AddCommand(releaseCmd)
}
