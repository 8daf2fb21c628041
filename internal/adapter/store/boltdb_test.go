package store

import (
	"path/filepath"
	"testing"
	"time"

	"srcpack/internal/domain"
)

func openStore(t *testing.T) *BoltRunStore {
	t.Helper()
	s, err := NewBoltRunStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndListRuns(t *testing.T) {
	s := openStore(t)

	for i := 0; i < 3; i++ {
		summary := domain.RunSummary{
			StartedAt:     time.Unix(int64(1700000000+i), 0).UTC(),
			SourceDir:     "src",
			FilesIncluded: 10 + i,
			FilesIgnored:  2,
			Chunks:        1,
			TotalBytes:    4096,
			Outputs:       []string{"bundle-001.txt"},
			ReasonCounts:  map[string]int{"**/vendor/**": 2},
		}
		if err := s.AppendRun(summary); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.ListRuns(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}

	// Most recent first.
	if runs[0].FilesIncluded != 12 || runs[2].FilesIncluded != 10 {
		t.Errorf("runs not in reverse insertion order: %+v", runs)
	}
	if runs[0].ReasonCounts["**/vendor/**"] != 2 {
		t.Errorf("reason counts lost: %+v", runs[0].ReasonCounts)
	}
}

func TestListRunsLimit(t *testing.T) {
	s := openStore(t)

	for i := 0; i < 5; i++ {
		if err := s.AppendRun(domain.RunSummary{FilesIncluded: i}); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.ListRuns(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].FilesIncluded != 4 || runs[1].FilesIncluded != 3 {
		t.Errorf("wrong runs returned: %+v", runs)
	}
}

func TestListRunsEmpty(t *testing.T) {
	s := openStore(t)
	runs, err := s.ListRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
