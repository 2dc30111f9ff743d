package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"figmcp/internal/mcp"
	"figmcp/internal/slogutil"
	"figmcp/internal/version"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server on stdio",
	Long: `Start the Model Context Protocol (MCP) server.

The server speaks JSON-RPC 2.0 over stdin/stdout. Logs go to
~/.figmcp/logs/mcp.log (logging.file), never to stdout.

Resources:
  - figma://files                      Known files
  - figma://file/{fileKey}             Frames and components of a file
  - figma://node/{fileKey}/{nodeId}    Raw node detail
  - figma://cache/stats                Cache counters

Tools:
  - set_active_file, get_active_file, list_files
  - list_components, find_by_name
  - generate_component, export_image, extract_design_tokens

Example MCP client entry:
  {"command": "figmcp", "args": ["mcp"], "env": {"FIGMA_API_KEY": "..."}}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadServingConfig()
	if err != nil {
		return err
	}

	logger, closer, err := slogutil.NewMCPLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer closer.Close()

	logger.Info("Starting MCP server",
		"version", version.Info(),
		"baseUrl", cfg.Figma.BaseURL,
		"defaultFileKey", cfg.Figma.DefaultFileKey,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := mcp.NewServer(version.Version, newSession(cfg, logger), logger)
	return server.Serve(ctx, os.Stdin, os.Stdout)
}
