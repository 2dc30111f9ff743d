package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetHome(t *testing.T) {
	customHome := "/custom/figmcp/home"
	t.Setenv(HomeEnvVar, customHome)

	home, err := GetHome()
	if err != nil {
		t.Fatalf("GetHome failed: %v", err)
	}
	if home != customHome {
		t.Errorf("Expected %s, got %s", customHome, home)
	}

	t.Setenv(HomeEnvVar, "")
	home, err = GetHome()
	if err != nil {
		t.Fatalf("GetHome failed: %v", err)
	}
	if !strings.HasSuffix(home, ".figmcp") {
		t.Errorf("Expected path ending in .figmcp, got %s", home)
	}
}

func TestDerivedPaths(t *testing.T) {
	root := t.TempDir()
	t.Setenv(HomeEnvVar, root)

	cfg, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath failed: %v", err)
	}
	if cfg != filepath.Join(root, "config.toml") {
		t.Errorf("config path = %s", cfg)
	}

	logPath, err := GetMCPLogPath()
	if err != nil {
		t.Fatalf("GetMCPLogPath failed: %v", err)
	}
	if logPath != filepath.Join(root, "logs", "mcp.log") {
		t.Errorf("log path = %s", logPath)
	}
}

func TestEnsureLogsDir(t *testing.T) {
	root := t.TempDir()
	t.Setenv(HomeEnvVar, root)

	dir, err := EnsureLogsDir()
	if err != nil {
		t.Fatalf("EnsureLogsDir failed: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("logs dir missing: %v", err)
	}
	if !info.IsDir() {
		t.Error("logs path should be a directory")
	}
}
