// Package chunker partitions the ordered, filtered file sequence into
// byte-bounded groups, one group per output artifact.
package chunker

import "srcpack/internal/domain"

// SizeChunker packs records greedily in input order. A record whose content
// alone exceeds the budget becomes a solo oversized chunk; that is the only
// tolerated budget violation.
type SizeChunker struct {
	budgetBytes int
}

func NewSizeChunker(budgetBytes int) *SizeChunker {
	return &SizeChunker{budgetBytes: budgetBytes}
}

// Chunk partitions records into 1-indexed chunks. Concatenating all chunk
// members in order reproduces records exactly. An empty input yields zero
// chunks.
func (c *SizeChunker) Chunk(records []domain.FileRecord) []domain.Chunk {
	var chunks []domain.Chunk
	var current []domain.FileRecord
	running := 0

	for _, rec := range records {
		size := len(rec.Content)
		if len(current) > 0 && running+size > c.budgetBytes {
			chunks = append(chunks, domain.Chunk{Index: len(chunks) + 1, Members: current})
			current = nil
			running = 0
		}
		current = append(current, rec)
		running += size
	}
	if len(current) > 0 {
		chunks = append(chunks, domain.Chunk{Index: len(chunks) + 1, Members: current})
	}
	return chunks
}
