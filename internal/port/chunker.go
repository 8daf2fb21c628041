package port

import "srcpack/internal/domain"

type Chunker interface {
	Chunk(records []domain.FileRecord) []domain.Chunk
}
