// Package config holds all configuration for the srcpack tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectTypeAuto selects the language profile by marker-file detection.
const ProjectTypeAuto = "auto"

// Config drives one bundling pipeline run.
type Config struct {
	SourceDir      string   `yaml:"source_dir"`
	ProjectType    string   `yaml:"project_type"`
	OutputDir      string   `yaml:"output_dir"`
	OutputPrefix   string   `yaml:"output_prefix"`
	ChunkSizeKB    int      `yaml:"chunk_size_kb"`
	RemoveComments bool     `yaml:"remove_comments"`
	OutputFormat   string   `yaml:"output_format"` // text | markdown | json
	Extensions     []string `yaml:"extensions"`    // overrides the profile when non-empty
	IgnorePatterns []string `yaml:"ignore_patterns"` // merged after profile defaults
	IgnoreFiles    []string `yaml:"ignore_files"`  // exact basenames
	ExtraRootFiles []string `yaml:"extra_root_files"`
	Verbose        bool     `yaml:"verbose"`

	Watch WatchConfig `yaml:"watch"`
}

// WatchConfig tunes the debounced rebuild loop.
type WatchConfig struct {
	DebounceMillis int `yaml:"debounce_millis"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		SourceDir:      ".",
		ProjectType:    ProjectTypeAuto,
		OutputDir:      ".",
		OutputPrefix:   "bundle",
		ChunkSizeKB:    1000,
		RemoveComments: true,
		OutputFormat:   "text",
		Watch: WatchConfig{
			DebounceMillis: 500,
		},
	}
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.ChunkSizeKB <= 0 {
		return fmt.Errorf("chunk_size_kb must be positive, got %d", c.ChunkSizeKB)
	}
	switch c.OutputFormat {
	case "text", "markdown", "json":
	default:
		return fmt.Errorf("output_format must be text, markdown or json, got %q", c.OutputFormat)
	}
	if c.OutputPrefix == "" {
		return fmt.Errorf("output_prefix must not be empty")
	}
	return nil
}

// Load loads configuration from a YAML file, layering it over defaults.
// A missing file yields defaults; malformed yaml is a hard error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("malformed configuration %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory, trying srcpack.yaml
// then .srcpack/config.yaml.
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "srcpack.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".srcpack", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// HistoryDBPath returns the path to the run-history database.
func HistoryDBPath(dir string) string {
	return filepath.Join(dir, ".srcpack", "history.db")
}

// EnsureStateDir ensures the .srcpack directory exists.
func EnsureStateDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".srcpack"), 0755)
}
