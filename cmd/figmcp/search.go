package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"figmcp/internal/figma"
)

var (
	searchFile   string
	searchFormat string

	componentsFile   string
	componentsLimit  int
	componentsFormat string
)

var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Find nodes by name",
	Long: `Find nodes whose name contains the query, case-insensitively.

Matches are returned in document order, capped by search.maxResults and
search.maxDepth.

Examples:
  figmcp search button --file ABC123
  figmcp search nav --format=human`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

var componentsCmd = &cobra.Command{
	Use:   "components",
	Short: "List top-level components of a file",
	Long: `List frames, components, component sets and instances on the pages of a
file. Only each page's direct children and component set variants are
inspected.

Examples:
  figmcp components --file ABC123 --limit 25`,
	Args: cobra.NoArgs,
	RunE: runComponents,
}

func init() {
	searchCmd.Flags().StringVar(&searchFile, "file", "", "File key (default: the default file, else the first listed)")
	searchCmd.Flags().StringVar(&searchFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(searchCmd)

	componentsCmd.Flags().StringVar(&componentsFile, "file", "", "File key (default: the default file, else the first listed)")
	componentsCmd.Flags().IntVar(&componentsLimit, "limit", 0, "Maximum number of results (default: traversal.scanLimit)")
	componentsCmd.Flags().StringVar(&componentsFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(componentsCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	session, ctx, cancel, err := cliSession()
	if err != nil {
		return err
	}
	defer cancel()

	res, err := session.FindByName(ctx, args[0], searchFile)
	if err != nil {
		return err
	}

	return writeOutput(cmd, searchFormat, res, func(w io.Writer) {
		fmt.Fprintf(w, "%d matches for %q in %s\n", len(res.Matches), res.Query, res.FileKey)
		printNodes(w, res.FileKey, res.Matches)
	})
}

func runComponents(cmd *cobra.Command, args []string) error {
	session, ctx, cancel, err := cliSession()
	if err != nil {
		return err
	}
	defer cancel()

	list, err := session.ListComponents(ctx, componentsFile, componentsLimit)
	if err != nil {
		return err
	}

	return writeOutput(cmd, componentsFormat, list, func(w io.Writer) {
		fmt.Fprintf(w, "%d components in %s\n", len(list.Components), list.FileKey)
		printNodes(w, list.FileKey, list.Components)
	})
}

func printNodes(w io.Writer, fileKey string, nodes []figma.NodeSummary) {
	for _, n := range nodes {
		fmt.Fprintf(w, "  %-14s %-32s figma://node/%s/%s\n", n.Type, n.Name, fileKey, n.ID)
	}
}
