package render

import (
	"encoding/json"
	"fmt"
	"time"

	"srcpack/internal/domain"
	"srcpack/internal/port"
)

type jsonFile struct {
	Path         string `json:"path"`
	SizeBytes    int64  `json:"size_bytes"`
	ContentBytes int    `json:"content_bytes"`
	LastModified string `json:"last_modified"`
	Content      string `json:"content"`
}

type jsonConfig struct {
	SourceDir      string `json:"source_dir"`
	OutputPrefix   string `json:"output_prefix"`
	RemoveComments bool   `json:"remove_comments"`
}

type jsonSummary struct {
	FileCount         int `json:"file_count"`
	TotalContentBytes int `json:"total_content_bytes"`
}

type jsonArtifact struct {
	Part        int         `json:"part"`
	GeneratedAt string      `json:"generated_at"`
	Config      jsonConfig  `json:"config"`
	Summary     jsonSummary `json:"summary"`
	Files       []jsonFile  `json:"files"`
}

// JSONRenderer emits a structured artifact carrying the run configuration,
// summary counts and the full per-file content.
type JSONRenderer struct{}

func (r *JSONRenderer) Extension() string { return "json" }

func (r *JSONRenderer) RenderChunk(chunk domain.Chunk, meta port.RenderMeta, outputDir string) (string, error) {
	artifact := jsonArtifact{
		Part:        chunk.Index,
		GeneratedAt: meta.GeneratedAt.UTC().Format(time.RFC3339),
		Config: jsonConfig{
			SourceDir:      meta.SourceDir,
			OutputPrefix:   meta.OutputPrefix,
			RemoveComments: meta.RemoveComments,
		},
		Summary: jsonSummary{
			FileCount:         len(chunk.Members),
			TotalContentBytes: chunk.ContentBytes(),
		},
		Files: make([]jsonFile, 0, len(chunk.Members)),
	}

	for _, m := range chunk.Members {
		artifact.Files = append(artifact.Files, jsonFile{
			Path:         m.RelPath,
			SizeBytes:    m.SizeBytes,
			ContentBytes: len(m.Content),
			LastModified: m.ModTime.UTC().Format(time.RFC3339),
			Content:      m.Content,
		})
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal artifact: %w", err)
	}
	data = append(data, '\n')

	return writeArtifact(outputDir, artifactName(meta.OutputPrefix, chunk.Index, r.Extension()), data)
}
