package paths

import (
	"os"
	"path/filepath"
)

// HomeEnvVar overrides the state directory (default ~/.figmcp).
const HomeEnvVar = "FIGMCP_HOME"

const (
	configFileName = "config.toml"
	logsDirName    = "logs"
	mcpLogName     = "mcp.log"
)

// GetHome returns the figmcp state directory.
// FIGMCP_HOME wins over the user's home directory.
func GetHome() (string, error) {
	if env := os.Getenv(HomeEnvVar); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".figmcp"), nil
}

// GetConfigPath returns the default config file location
func GetConfigPath() (string, error) {
	home, err := GetHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

// GetLogsDir returns the directory holding operational logs
func GetLogsDir() (string, error) {
	home, err := GetHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, logsDirName), nil
}

// GetMCPLogPath returns the MCP server log file path
func GetMCPLogPath() (string, error) {
	dir, err := GetLogsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, mcpLogName), nil
}

// EnsureLogsDir creates the logs directory if needed and returns it
func EnsureLogsDir() (string, error) {
	dir, err := GetLogsDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
