// Package fs discovers candidate source files under a root directory and
// classifies each one as included or ignored-with-reason.
package fs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"

	"srcpack/internal/domain"
)

// ReasonGeneratedMarker is the ignore reason for files carrying a
// generated-code marker in their content.
const ReasonGeneratedMarker = "contains generated marker"

// generatedMarkers maps each grammar to the literal tokens that mark a file
// as machine generated. Matched anywhere in the content, not just the first
// line.
var generatedMarkers = map[domain.Grammar][]string{
	domain.GrammarCStyle:      {"// GENERATED CODE"},
	domain.GrammarPythonStyle: {"# GENERATED CODE"},
	domain.GrammarHashStyle:   {"# GENERATED CODE"},
	domain.GrammarHTMLStyle:   {"<!-- GENERATED CODE"},
	domain.GrammarMixedWeb:    {"// GENERATED CODE", "<!-- GENERATED CODE"},
}

// Walker walks a root directory and yields FileRecords for every file
// matching one of the configured extensions. Ignore globs use doublestar
// syntax and are matched against slash-separated paths relative to root;
// the first matching pattern wins and becomes the ignore reason.
type Walker struct {
	extensions  map[string]struct{}
	ignoreGlobs []string
	ignoreFiles map[string]struct{}
	grammar     domain.Grammar
}

func NewWalker(extensions, ignoreGlobs, ignoreFiles []string, grammar domain.Grammar) *Walker {
	extSet := make(map[string]struct{}, len(extensions))
	for _, e := range extensions {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		extSet[e] = struct{}{}
	}
	fileSet := make(map[string]struct{}, len(ignoreFiles))
	for _, f := range ignoreFiles {
		fileSet[f] = struct{}{}
	}
	return &Walker{
		extensions:  extSet,
		ignoreGlobs: ignoreGlobs,
		ignoreFiles: fileSet,
		grammar:     grammar,
	}
}

// Scan is a lazy, finite, non-restartable sequence of FileRecords. It is
// consumed exactly once via Next; Err reports a traversal failure after
// Next returns false.
type Scan struct {
	records chan domain.FileRecord
	err     error
}

func (s *Scan) Next() (domain.FileRecord, bool) {
	rec, ok := <-s.records
	return rec, ok
}

// Err is valid once Next has returned false.
func (s *Scan) Err() error {
	return s.err
}

// Scan starts a traversal of root. A nonexistent or unreadable root is a
// run-level failure; everything below that is encoded per record.
func (w *Walker) Scan(root string) (*Scan, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("source directory not accessible: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source path is not a directory: %s", root)
	}

	s := &Scan{records: make(chan domain.FileRecord)}

	go func() {
		defer close(s.records)
		s.err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Recoverable: skip the entry and keep scanning.
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return nil
			}
			rel = filepath.ToSlash(rel)

			if d.IsDir() {
				if rel != "." && w.matchIgnoreGlob(rel+"/") != "" {
					return filepath.SkipDir
				}
				return nil
			}

			if _, ok := w.extensions[filepath.Ext(path)]; !ok {
				return nil
			}

			s.records <- w.classify(path, rel, d)
			return nil
		})
	}()

	return s, nil
}

// classify applies the filter sequence to one candidate file. Path-shape
// filters run before any bytes are read.
func (w *Walker) classify(path, rel string, d fs.DirEntry) domain.FileRecord {
	rec := domain.FileRecord{
		AbsolutePath: path,
		RelPath:      rel,
	}
	if info, err := d.Info(); err == nil {
		rec.SizeBytes = info.Size()
		rec.ModTime = info.ModTime()
	}

	if pattern := w.matchIgnoreGlob(rel); pattern != "" {
		rec.Ignored = true
		rec.IgnoreReason = pattern
		return rec
	}
	if _, ok := w.ignoreFiles[filepath.Base(path)]; ok {
		rec.Ignored = true
		rec.IgnoreReason = fmt.Sprintf("ignore-file match: %s", filepath.Base(path))
		return rec
	}

	data, err := os.ReadFile(path)
	if err != nil {
		rec.Ignored = true
		rec.IgnoreReason = fmt.Sprintf("unreadable: %v", err)
		return rec
	}
	if !utf8.Valid(data) {
		rec.Ignored = true
		rec.IgnoreReason = "unreadable: content is not valid UTF-8"
		return rec
	}

	content := string(data)
	for _, marker := range generatedMarkers[w.grammar] {
		if strings.Contains(content, marker) {
			rec.Ignored = true
			rec.IgnoreReason = ReasonGeneratedMarker
			return rec
		}
	}

	rec.Content = content
	return rec
}

// matchIgnoreGlob returns the first pattern matching rel, or "".
func (w *Walker) matchIgnoreGlob(rel string) string {
	for _, pattern := range w.ignoreGlobs {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return pattern
		}
	}
	return ""
}
