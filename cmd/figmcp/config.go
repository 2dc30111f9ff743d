package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"figmcp/internal/config"
)

var (
	configShowFormat string

	configInitAPIKey  string
	configInitFileKey string
	configInitForce   bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage figmcp configuration",
	Long:  "View and manage figmcp configuration stored in ~/.figmcp/config.toml",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Display the configuration after defaults and environment overrides are
applied. The API key is masked.

Examples:
  figmcp config show
  figmcp config show --format=json`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with defaults",
	Long: `Write a config file populated with defaults. An existing file is kept
unless --force is given.

Examples:
  figmcp config init --api-key figd_xxx --file-key ABC123`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configShowCmd.Flags().StringVar(&configShowFormat, "format", "toml", "Output format (toml, json)")

	configInitCmd.Flags().StringVar(&configInitAPIKey, "api-key", "", "Figma personal access token")
	configInitCmd.Flags().StringVar(&configInitFileKey, "file-key", "", "Default file key")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return err
	}

	out, err := renderConfig(cfg, configShowFormat)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", path, out)
	return nil
}

// renderConfig prints the redacted config as toml or json.
func renderConfig(cfg *config.Config, format string) (string, error) {
	redacted := cfg.Redacted()

	switch format {
	case "toml":
		data, err := toml.Marshal(redacted)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case "json":
		data, err := json.MarshalIndent(redacted, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	}
	return "", fmt.Errorf("invalid format %q (valid: toml, json)", format)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := initConfig(path, configInitAPIKey, configInitFileKey, configInitForce); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

// initConfig writes a default config to path. An existing file is an error
// unless force is set.
func initConfig(path, apiKey, fileKey string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := config.DefaultConfig()
	cfg.Figma.APIKey = apiKey
	cfg.Figma.DefaultFileKey = fileKey
	return cfg.Save(path)
}
