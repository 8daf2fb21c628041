package domain

import "time"

// Grammar identifies the comment rules of a language family.
type Grammar int

const (
	GrammarCStyle Grammar = iota
	GrammarPythonStyle
	GrammarHashStyle
	GrammarHTMLStyle
	GrammarMixedWeb
)

func (g Grammar) String() string {
	switch g {
	case GrammarCStyle:
		return "c-style"
	case GrammarPythonStyle:
		return "python-style"
	case GrammarHashStyle:
		return "hash-style"
	case GrammarHTMLStyle:
		return "html-style"
	case GrammarMixedWeb:
		return "mixed-web"
	default:
		return "unknown"
	}
}

// LanguageProfile describes how to discover and clean source files for one
// project type. Profiles are built once at startup and never mutated.
type LanguageProfile struct {
	Tag         string
	Extensions  []string
	Grammar     Grammar
	IgnoreGlobs []string
	SourceRoots []string
}

// HasExtension reports whether ext (including the leading dot) belongs to
// the profile.
func (p LanguageProfile) HasExtension(ext string) bool {
	for _, e := range p.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// FileRecord is one file considered by a pipeline run. Content is filled
// after reading and rewritten once by the comment stripper; ignored records
// carry empty content and a human-readable reason.
type FileRecord struct {
	AbsolutePath string
	RelPath      string
	SizeBytes    int64
	ModTime      time.Time
	Content      string
	Ignored      bool
	IgnoreReason string
}

// Chunk is one size-bounded, ordered group of non-ignored records destined
// for a single output artifact. Index is 1-based.
type Chunk struct {
	Index   int
	Members []FileRecord
}

// ContentBytes returns the summed content size of the chunk members.
func (c Chunk) ContentBytes() int {
	total := 0
	for _, m := range c.Members {
		total += len(m.Content)
	}
	return total
}

// ProcessingResult aggregates one pipeline run: the records that survived
// filtering, the records that were ignored, and how often each ignore
// reason occurred.
type ProcessingResult struct {
	Included     []FileRecord
	Ignored      []FileRecord
	ReasonCounts map[string]int
}

// RunSummary is one entry of the persisted build history.
type RunSummary struct {
	StartedAt     time.Time      `json:"started_at"`
	SourceDir     string         `json:"source_dir"`
	FilesIncluded int            `json:"files_included"`
	FilesIgnored  int            `json:"files_ignored"`
	Chunks        int            `json:"chunks"`
	TotalBytes    int            `json:"total_bytes"`
	Outputs       []string       `json:"outputs"`
	ReasonCounts  map[string]int `json:"reason_counts,omitempty"`
	Duration      time.Duration  `json:"duration_ns"`
}
