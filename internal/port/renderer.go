package port

import (
	"time"

	"srcpack/internal/domain"
)

// RenderMeta carries the run-level fields a renderer embeds in artifacts.
type RenderMeta struct {
	GeneratedAt    time.Time
	SourceDir      string
	OutputPrefix   string
	RemoveComments bool
}

// Renderer serializes one chunk into a self-contained artifact and writes
// it under outputDir, returning the written path. Exactly one write per
// chunk.
type Renderer interface {
	RenderChunk(chunk domain.Chunk, meta RenderMeta, outputDir string) (string, error)

	// Extension returns the artifact file extension without the dot.
	Extension() string
}
