package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"figmcp/internal/config"
	"figmcp/internal/design"
	"figmcp/internal/errors"
	"figmcp/internal/figma"
	"figmcp/internal/paths"
	"figmcp/internal/slogutil"
	"figmcp/internal/version"
)

var (
	// configPathFlag is the --config flag value
	configPathFlag string
	verbosity      int
	quiet          bool
)

var rootCmd = &cobra.Command{
	Use:   "figmcp",
	Short: "figmcp - Figma design context for MCP clients",
	Long: `figmcp reads Figma files through the Figma REST API and exposes their
frames, components and nodes to MCP clients as resources, tools and prompts.

Run "figmcp mcp" from your MCP client configuration. The other commands are
for inspecting files and configuration from a terminal.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("figmcp version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "",
		"Config file (default: ~/.figmcp/config.toml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")
}

// configPath resolves the config file location. Precedence: --config flag,
// then FIGMCP_HOME/config.toml, then ~/.figmcp/config.toml.
func configPath() (string, error) {
	if configPathFlag != "" {
		return configPathFlag, nil
	}
	return paths.GetConfigPath()
}

func loadConfig() (*config.Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return config.LoadConfig(path)
}

// loadServingConfig loads and validates the config for commands that call the
// Figma API.
func loadServingConfig() (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, configMissing(err)
	}
	return cfg, nil
}

func configMissing(err error) error {
	return errors.New(errors.ConfigMissing, "configuration is incomplete", err).
		WithHints(
			"export FIGMA_API_KEY=<personal access token>",
			"or run: figmcp config init --api-key <token>",
		)
}

// newSession wires the Figma client and the design session from config.
func newSession(cfg *config.Config, logger *slog.Logger) *design.Session {
	client := figma.NewClient(figma.Options{
		BaseURL:   cfg.Figma.BaseURL,
		Token:     cfg.Figma.APIKey,
		ProjectID: cfg.Figma.ProjectID,
		Timeout:   time.Duration(cfg.Figma.TimeoutSeconds) * time.Second,
		Logger:    logger,
	})

	return design.NewSession(client, design.Options{
		DefaultFileKey: cfg.Figma.DefaultFileKey,
		Traversal: design.Bounds{
			MaxNodes: cfg.Traversal.MaxNodes,
			MaxDepth: cfg.Traversal.MaxDepth,
		},
		ScanLimit: cfg.Traversal.ScanLimit,
		Search: design.Bounds{
			MaxNodes: cfg.Search.MaxResults,
			MaxDepth: cfg.Search.MaxDepth,
		},
		Logger: logger,
	})
}

// cliSession builds a session for a one-shot command along with a context
// bounded by the HTTP timeout.
func cliSession() (*design.Session, context.Context, context.CancelFunc, error) {
	cfg, err := loadServingConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	// The CLI logger writes to stderr and holds nothing to close.
	logger, _ := slogutil.NewCLILogger(verbosity, quiet)

	timeout := time.Duration(cfg.Figma.TimeoutSeconds)*time.Second + 5*time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	return newSession(cfg, logger), ctx, cancel, nil
}
