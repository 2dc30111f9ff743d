package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// CurrentVersion is the only config schema version this build understands.
const CurrentVersion = 1

// DefaultBaseURL is the Figma REST API root.
const DefaultBaseURL = "https://api.figma.com/v1"

// Config represents the complete figmcp configuration
type Config struct {
	Version int `json:"version" mapstructure:"version" toml:"version"`

	Figma     FigmaConfig     `json:"figma" mapstructure:"figma" toml:"figma"`
	Traversal TraversalConfig `json:"traversal" mapstructure:"traversal" toml:"traversal"`
	Search    SearchConfig    `json:"search" mapstructure:"search" toml:"search"`
	Logging   LoggingConfig   `json:"logging" mapstructure:"logging" toml:"logging"`
}

// FigmaConfig holds the remote API settings
type FigmaConfig struct {
	APIKey         string `json:"apiKey" mapstructure:"apiKey" toml:"apiKey"`
	BaseURL        string `json:"baseUrl" mapstructure:"baseUrl" toml:"baseUrl"`
	DefaultFileKey string `json:"defaultFileKey" mapstructure:"defaultFileKey" toml:"defaultFileKey"`
	ProjectID      string `json:"projectId" mapstructure:"projectId" toml:"projectId"`
	TimeoutSeconds int    `json:"timeoutSeconds" mapstructure:"timeoutSeconds" toml:"timeoutSeconds"`
}

// TraversalConfig bounds the node walks behind file resources and component listings
type TraversalConfig struct {
	MaxNodes  int `json:"maxNodes" mapstructure:"maxNodes" toml:"maxNodes"`
	MaxDepth  int `json:"maxDepth" mapstructure:"maxDepth" toml:"maxDepth"`
	ScanLimit int `json:"scanLimit" mapstructure:"scanLimit" toml:"scanLimit"`
}

// SearchConfig bounds find_by_name
type SearchConfig struct {
	MaxDepth   int `json:"maxDepth" mapstructure:"maxDepth" toml:"maxDepth"`
	MaxResults int `json:"maxResults" mapstructure:"maxResults" toml:"maxResults"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `json:"level" mapstructure:"level" toml:"level"`
	File       string `json:"file" mapstructure:"file" toml:"file"`
	MaxSize    string `json:"maxSize" mapstructure:"maxSize" toml:"maxSize"`
	MaxBackups int    `json:"maxBackups" mapstructure:"maxBackups" toml:"maxBackups"`
	Stderr     bool   `json:"stderr" mapstructure:"stderr" toml:"stderr"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Figma: FigmaConfig{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: 30,
		},
		Traversal: TraversalConfig{
			MaxNodes:  50,
			MaxDepth:  3,
			ScanLimit: 10,
		},
		Search: SearchConfig{
			MaxDepth:   10,
			MaxResults: 10,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSize:    "10MB",
			MaxBackups: 3,
		},
	}
}

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string][]string{
	"figma.apiKey":         {"FIGMA_API_KEY", "FIGMA_ACCESS_TOKEN"},
	"figma.defaultFileKey": {"FIGMA_FILE_KEY"},
	"figma.projectId":      {"FIGMA_PROJECT_ID"},
	"figma.baseUrl":        {"FIGMA_API_URL"},
	"logging.level":        {"FIGMCP_LOG_LEVEL"},
	"logging.file":         {"FIGMCP_LOG_FILE"},
}

// LoadConfig loads configuration from path (TOML). An empty path or a missing
// file yields defaults; environment variables are applied on top either way.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("version", d.Version)
	v.SetDefault("figma.apiKey", d.Figma.APIKey)
	v.SetDefault("figma.baseUrl", d.Figma.BaseURL)
	v.SetDefault("figma.defaultFileKey", d.Figma.DefaultFileKey)
	v.SetDefault("figma.projectId", d.Figma.ProjectID)
	v.SetDefault("figma.timeoutSeconds", d.Figma.TimeoutSeconds)
	v.SetDefault("traversal.maxNodes", d.Traversal.MaxNodes)
	v.SetDefault("traversal.maxDepth", d.Traversal.MaxDepth)
	v.SetDefault("traversal.scanLimit", d.Traversal.ScanLimit)
	v.SetDefault("search.maxDepth", d.Search.MaxDepth)
	v.SetDefault("search.maxResults", d.Search.MaxResults)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.maxSize", d.Logging.MaxSize)
	v.SetDefault("logging.maxBackups", d.Logging.MaxBackups)
	v.SetDefault("logging.stderr", d.Logging.Stderr)
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// Save writes the configuration as TOML. The file holds the API key, so it is
// created owner-readable only.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() *Config {
	cp := *c
	if cp.Figma.APIKey != "" {
		cp.Figma.APIKey = "********"
	}
	return &cp
}

// Validate checks if the configuration is usable for serving
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return &ConfigError{Field: "version", Message: fmt.Sprintf("unsupported config version %d", c.Version)}
	}
	if c.Figma.APIKey == "" {
		return &ConfigError{Field: "figma.apiKey", Message: "required (set FIGMA_API_KEY or figma.apiKey)"}
	}
	if u, err := url.Parse(c.Figma.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return &ConfigError{Field: "figma.baseUrl", Message: fmt.Sprintf("not an absolute URL: %q", c.Figma.BaseURL)}
	}

	// Depth 0 is a valid bound (the root alone); counts must be positive.
	bounds := []struct {
		field string
		value int
		min   int
	}{
		{"traversal.maxNodes", c.Traversal.MaxNodes, 1},
		{"traversal.maxDepth", c.Traversal.MaxDepth, 0},
		{"traversal.scanLimit", c.Traversal.ScanLimit, 1},
		{"search.maxDepth", c.Search.MaxDepth, 0},
		{"search.maxResults", c.Search.MaxResults, 1},
	}
	for _, b := range bounds {
		if b.value < b.min {
			return &ConfigError{Field: b.field, Message: fmt.Sprintf("must be at least %d", b.min)}
		}
	}

	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
