package chunker

import (
	"strings"
	"testing"

	"srcpack/internal/domain"
)

func record(path string, size int) domain.FileRecord {
	return domain.FileRecord{
		RelPath: path,
		Content: strings.Repeat("a", size),
	}
}

func TestChunkThreeFilesTwoChunks(t *testing.T) {
	// 400KB + 400KB fit a 1000KB budget; the third 400KB file starts chunk 2.
	c := NewSizeChunker(1000 * 1024)
	records := []domain.FileRecord{
		record("f1", 400*1024),
		record("f2", 400*1024),
		record("f3", 400*1024),
	}

	chunks := c.Chunk(records)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if len(chunks[0].Members) != 2 || len(chunks[1].Members) != 1 {
		t.Errorf("member split = %d/%d, want 2/1", len(chunks[0].Members), len(chunks[1].Members))
	}
	if chunks[0].ContentBytes() != 800*1024 {
		t.Errorf("chunk 1 bytes = %d, want %d", chunks[0].ContentBytes(), 800*1024)
	}
}

func TestChunkOversizedSoloFile(t *testing.T) {
	c := NewSizeChunker(1000 * 1024)
	chunks := c.Chunk([]domain.FileRecord{record("big", 2000*1024)})

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if len(chunks[0].Members) != 1 {
		t.Errorf("expected single member, got %d", len(chunks[0].Members))
	}
	if chunks[0].ContentBytes() <= 1000*1024 {
		t.Error("oversized solo chunk should exceed budget")
	}
}

func TestChunkOversizedNeverSharesChunk(t *testing.T) {
	c := NewSizeChunker(100)
	chunks := c.Chunk([]domain.FileRecord{
		record("a", 50),
		record("big", 500),
		record("b", 50),
	})

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for _, ch := range chunks {
		if ch.ContentBytes() > 100 && len(ch.Members) != 1 {
			t.Errorf("chunk %d exceeds budget with %d members", ch.Index, len(ch.Members))
		}
	}
}

func TestChunkEmptyInput(t *testing.T) {
	c := NewSizeChunker(1024)
	if chunks := c.Chunk(nil); len(chunks) != 0 {
		t.Errorf("expected zero chunks for empty input, got %d", len(chunks))
	}
}

func TestChunkPartitionLaw(t *testing.T) {
	c := NewSizeChunker(120)
	var records []domain.FileRecord
	paths := []string{"a", "b", "c", "d", "e", "f", "g"}
	sizes := []int{40, 90, 10, 130, 5, 60, 60}
	for i, p := range paths {
		records = append(records, record(p, sizes[i]))
	}

	chunks := c.Chunk(records)

	var flat []string
	for i, ch := range chunks {
		if ch.Index != i+1 {
			t.Errorf("chunk %d has index %d", i, ch.Index)
		}
		if len(ch.Members) == 0 {
			t.Error("empty chunk produced")
		}
		if ch.ContentBytes() > 120 && len(ch.Members) > 1 {
			t.Errorf("chunk %d over budget with multiple members", ch.Index)
		}
		for _, m := range ch.Members {
			flat = append(flat, m.RelPath)
		}
	}

	if len(flat) != len(paths) {
		t.Fatalf("partition lost or duplicated records: %v", flat)
	}
	for i, p := range paths {
		if flat[i] != p {
			t.Errorf("order broken at %d: got %s, want %s", i, flat[i], p)
		}
	}
}
