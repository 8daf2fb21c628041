package port

import "srcpack/internal/domain"

// RunStore persists build summaries across runs.
type RunStore interface {
	AppendRun(summary domain.RunSummary) error

	// ListRuns returns up to limit summaries, most recent first.
	ListRuns(limit int) ([]domain.RunSummary, error)

	Close() error
}
