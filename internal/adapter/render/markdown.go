package render

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"srcpack/internal/domain"
	"srcpack/internal/port"
)

var (
	slugStripRe  = regexp.MustCompile(`[^a-z0-9 -]`)
	slugHyphenRe = regexp.MustCompile(`\s+`)
)

// MarkdownRenderer emits a part header, a table of contents with slugified
// anchors and one fenced code section per file.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Extension() string { return "md" }

func (r *MarkdownRenderer) RenderChunk(chunk domain.Chunk, meta port.RenderMeta, outputDir string) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s — Part %03d\n\n", meta.OutputPrefix, chunk.Index)
	fmt.Fprintf(&b, "Generated: %s\n\n", meta.GeneratedAt.UTC().Format(time.RFC3339))

	b.WriteString("## Table of Contents\n\n")
	for _, m := range chunk.Members {
		fmt.Fprintf(&b, "- [%s](#%s)\n", m.RelPath, Slugify(m.RelPath))
	}
	b.WriteString("\n")

	for _, m := range chunk.Members {
		fmt.Fprintf(&b, "## %s\n\n", m.RelPath)
		b.WriteString("```\n")
		b.WriteString(m.Content)
		if !strings.HasSuffix(m.Content, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("```\n\n")
	}

	return writeArtifact(outputDir, artifactName(meta.OutputPrefix, chunk.Index, r.Extension()), []byte(b.String()))
}

// Slugify lowercases a path, strips every character outside [a-z0-9 -] and
// converts whitespace runs to single hyphens.
func Slugify(path string) string {
	s := strings.ToLower(path)
	s = slugStripRe.ReplaceAllString(s, "")
	return slugHyphenRe.ReplaceAllString(s, "-")
}
