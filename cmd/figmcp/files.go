package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"figmcp/internal/figma"
)

var filesFormat string

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List the Figma files the API key can see",
	Long: `List Figma files. With figma.projectId set, the project's files are
listed; otherwise the account's. When listing fails, the default file
(FIGMA_FILE_KEY) is fetched on its own.

Examples:
  figmcp files
  figmcp files --format=human`,
	Args: cobra.NoArgs,
	RunE: runFiles,
}

func init() {
	filesCmd.Flags().StringVar(&filesFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(filesCmd)
}

func runFiles(cmd *cobra.Command, args []string) error {
	session, ctx, cancel, err := cliSession()
	if err != nil {
		return err
	}
	defer cancel()

	files, err := session.Files(ctx)
	if err != nil {
		return err
	}

	return writeOutput(cmd, filesFormat, files, func(w io.Writer) {
		printFiles(w, files)
	})
}

func printFiles(w io.Writer, files []figma.FileMeta) {
	if len(files) == 0 {
		fmt.Fprintln(w, "No files found.")
		return
	}
	for _, f := range files {
		modified := "-"
		if !f.LastModified.IsZero() {
			modified = humanize.Time(f.LastModified)
		}
		fmt.Fprintf(w, "%-24s %-40s %s\n", f.Key, f.Name, modified)
	}
}
