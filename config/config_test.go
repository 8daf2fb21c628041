package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ChunkSizeKB != 1000 {
		t.Errorf("expected ChunkSizeKB=1000, got %d", cfg.ChunkSizeKB)
	}
	if !cfg.RemoveComments {
		t.Error("expected RemoveComments=true by default")
	}
	if cfg.OutputFormat != "text" {
		t.Errorf("expected OutputFormat=text, got %s", cfg.OutputFormat)
	}
	if cfg.ProjectType != ProjectTypeAuto {
		t.Errorf("expected ProjectType=auto, got %s", cfg.ProjectType)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/srcpack.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil || cfg.ChunkSizeKB != 1000 {
		t.Error("expected default config for missing file")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "srcpack.yaml")

	content := `
source_dir: src
project_type: python
chunk_size_kb: 256
remove_comments: false
output_format: markdown
ignore_patterns:
  - "**/migrations/**"
ignore_files:
  - secrets.py
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.SourceDir != "src" {
		t.Errorf("expected SourceDir=src, got %s", cfg.SourceDir)
	}
	if cfg.ChunkSizeKB != 256 {
		t.Errorf("expected ChunkSizeKB=256, got %d", cfg.ChunkSizeKB)
	}
	if cfg.RemoveComments {
		t.Error("expected RemoveComments=false")
	}
	if len(cfg.IgnorePatterns) != 1 || cfg.IgnorePatterns[0] != "**/migrations/**" {
		t.Errorf("ignore patterns not loaded: %v", cfg.IgnorePatterns)
	}
	// Unset fields keep their defaults.
	if cfg.OutputPrefix != "bundle" {
		t.Errorf("expected default OutputPrefix, got %s", cfg.OutputPrefix)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "srcpack.yaml")
	if err := os.WriteFile(configPath, []byte("chunk_size_kb: [not an int\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "srcpack.yaml")

	content := `
output_prefix: ctx
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputPrefix != "ctx" {
		t.Errorf("expected OutputPrefix=ctx, got %s", cfg.OutputPrefix)
	}
}

func TestLoadFromDir_Fallback(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, ".srcpack"), 0755); err != nil {
		t.Fatal(err)
	}
	content := "output_prefix: hidden\n"
	if err := os.WriteFile(filepath.Join(tmpDir, ".srcpack", "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputPrefix != "hidden" {
		t.Errorf("expected OutputPrefix=hidden, got %s", cfg.OutputPrefix)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "srcpack.yaml")

	cfg := DefaultConfig()
	cfg.ProjectType = "go"
	cfg.ChunkSizeKB = 512
	cfg.ExtraRootFiles = []string{"README.md"}

	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.ProjectType != "go" || loaded.ChunkSizeKB != 512 {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
	if len(loaded.ExtraRootFiles) != 1 || loaded.ExtraRootFiles[0] != "README.md" {
		t.Errorf("extra root files lost: %v", loaded.ExtraRootFiles)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero chunk size", func(c *Config) { c.ChunkSizeKB = 0 }},
		{"negative chunk size", func(c *Config) { c.ChunkSizeKB = -5 }},
		{"bad format", func(c *Config) { c.OutputFormat = "xml" }},
		{"empty prefix", func(c *Config) { c.OutputPrefix = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
