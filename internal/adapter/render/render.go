// Package render serializes chunks into self-contained output artifacts.
// Artifacts are named <prefix>-NNN.<ext>, NNN zero-padded and 1-based.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"srcpack/internal/port"
)

const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// NewRenderer returns the renderer for a configured output format.
func NewRenderer(format string) (port.Renderer, error) {
	switch format {
	case FormatText:
		return &TextRenderer{}, nil
	case FormatMarkdown:
		return &MarkdownRenderer{}, nil
	case FormatJSON:
		return &JSONRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %q", format)
	}
}

// artifactName builds the output basename for one chunk.
func artifactName(prefix string, index int, ext string) string {
	return fmt.Sprintf("%s-%03d.%s", prefix, index, ext)
}

// writeArtifact performs the single write a renderer is allowed per chunk.
func writeArtifact(outputDir, name string, data []byte) (string, error) {
	path := filepath.Join(outputDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write artifact %s: %w", name, err)
	}
	return path, nil
}

// CleanOutputs deletes previously generated artifacts matching
// <prefix>-NNN.(txt|md|json) under dir and returns how many were removed.
func CleanOutputs(dir, prefix string) (int, error) {
	re := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `-\d{3}\.(txt|md|json)$`)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read output directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !re.MatchString(entry.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}
