package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aspies/asutils/pkg/confluence"
	"github.com/aspies/asutils/pkg/presenter"
)

var confluenceCmd = &cobra.Command{
	Use:   "confluence",
	Short: "Search and read Confluence",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

// confluenceClient builds a client from config file + token env var.
func confluenceClient() (*confluence.Client, error) {
	cfg, err := confluence.LoadConfig()
	if err != nil {
		return nil, err
	}
	token, err := confluence.APIToken()
	if err != nil {
		return nil, err
	}
	return confluence.NewClient(cfg.Confluence, token), nil
}

var confluenceSearchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Full-text search",
	Long: `Search Confluence. Multiple queries run in parallel and merge
their results.

Examples:
  asutils confluence search "build farm"
  asutils confluence search "onboarding" --space ENG --limit 5
  asutils confluence search "cook" "bake" "stage" --json
`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		space, _ := cmd.Flags().GetString("space")
		asJSON, _ := cmd.Flags().GetBool("json")

		client, err := confluenceClient()
		if err != nil {
			return err
		}

		var results []confluence.SearchResult
		if len(args) == 1 {
			results, err = client.Search(cmd.Context(), args[0], limit, space)
			if err != nil {
				return err
			}
		} else {
			results = client.SearchParallel(cmd.Context(), args, limit, space)
		}

		return printSearchResults(results, asJSON)
	},
}

var confluenceCQLCmd = &cobra.Command{
	Use:   "cql <query>",
	Short: "Search with raw CQL",
	Long: `Run a raw CQL (Confluence Query Language) query.

Examples:
  asutils confluence cql 'space = ENG AND title ~ "onboarding"'
  asutils confluence cql 'label = runbook ORDER BY lastmodified DESC'
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		client, err := confluenceClient()
		if err != nil {
			return err
		}

		results, err := client.SearchCQL(cmd.Context(), args[0], limit)
		if err != nil {
			return err
		}
		return printSearchResults(results, asJSON)
	},
}

var confluencePageCmd = &cobra.Command{
	Use:   "page <page-id>",
	Short: "Fetch a page as markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")
		asJSON, _ := cmd.Flags().GetBool("json")

		client, err := confluenceClient()
		if err != nil {
			return err
		}

		page, err := client.GetPage(cmd.Context(), args[0], !raw)
		if err != nil {
			return err
		}

		if asJSON {
			return printJSON(page)
		}

		presenter.Section(page.Title)
		presenter.Info(fmt.Sprintf("Space: %s  URL: %s", page.Space, page.URL))
		fmt.Println()
		fmt.Println(page.Body)
		return nil
	},
}

var confluenceSpacesCmd = &cobra.Command{
	Use:   "spaces",
	Short: "List spaces",
	RunE: func(cmd *cobra.Command, _ []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		client, err := confluenceClient()
		if err != nil {
			return err
		}

		spaces, err := client.ListSpaces(cmd.Context(), limit)
		if err != nil {
			return err
		}

		if asJSON {
			return printJSON(spaces)
		}
		for _, s := range spaces {
			fmt.Printf("%s\t%s\t%s\n", s.Key, s.Name, s.Type)
		}
		return nil
	},
}

var confluenceChildrenCmd = &cobra.Command{
	Use:   "children <page-id>",
	Short: "List child pages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		client, err := confluenceClient()
		if err != nil {
			return err
		}

		children, err := client.ChildPages(cmd.Context(), args[0], limit)
		if err != nil {
			return err
		}

		if asJSON {
			return printJSON(children)
		}
		for _, c := range children {
			fmt.Printf("%s\t%s\n", c.ID, c.Title)
		}
		return nil
	},
}

func printSearchResults(results []confluence.SearchResult, asJSON bool) error {
	if asJSON {
		return printJSON(results)
	}
	if len(results) == 0 {
		presenter.Info("No results")
		return nil
	}
	for _, r := range results {
		presenter.Section(r.Title)
		presenter.Info(fmt.Sprintf("Space: %s  Page: %s", r.Space, r.PageID))
		presenter.Info(r.URL)
		if r.Excerpt != "" {
			fmt.Println(r.Excerpt)
		}
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	for _, cmd := range []*cobra.Command{
		confluenceSearchCmd, confluenceCQLCmd, confluenceSpacesCmd, confluenceChildrenCmd,
	} {
		cmd.Flags().Bool("json", false, "Output JSON")
	}
	confluenceSearchCmd.Flags().IntP("limit", "l", 10, "Maximum results per query")
	confluenceSearchCmd.Flags().StringP("space", "s", "", "Limit search to a space key")
	confluenceCQLCmd.Flags().IntP("limit", "l", 10, "Maximum results")
	confluenceSpacesCmd.Flags().IntP("limit", "l", 50, "Maximum spaces")
	confluenceChildrenCmd.Flags().IntP("limit", "l", 50, "Maximum children")
	confluencePageCmd.Flags().Bool("raw", false, "Keep the body as HTML")
	confluencePageCmd.Flags().Bool("json", false, "Output JSON")

	confluenceCmd.AddCommand(confluenceSearchCmd)
	confluenceCmd.AddCommand(confluenceCQLCmd)
	confluenceCmd.AddCommand(confluencePageCmd)
	confluenceCmd.AddCommand(confluenceSpacesCmd)
	confluenceCmd.AddCommand(confluenceChildrenCmd)
	rootCmd.AddCommand(confluenceCmd)
}
