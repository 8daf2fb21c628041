package render

import (
	"strings"

	"srcpack/internal/domain"
	"srcpack/internal/port"
)

// TextRenderer emits a path marker line, the content and a blank separator
// per member.
type TextRenderer struct{}

func (r *TextRenderer) Extension() string { return "txt" }

func (r *TextRenderer) RenderChunk(chunk domain.Chunk, meta port.RenderMeta, outputDir string) (string, error) {
	var b strings.Builder
	for _, m := range chunk.Members {
		b.WriteString("// File: ")
		b.WriteString(m.RelPath)
		b.WriteString("\n")
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}
	return writeArtifact(outputDir, artifactName(meta.OutputPrefix, chunk.Index, r.Extension()), []byte(b.String()))
}
