// Package usecase wires discovery, stripping, chunking and rendering into
// the pipeline exposed to the CLI and watch layers.
package usecase

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"srcpack/config"
	"srcpack/internal/adapter/chunker"
	"srcpack/internal/adapter/fs"
	"srcpack/internal/adapter/lang"
	"srcpack/internal/adapter/render"
	"srcpack/internal/domain"
	"srcpack/internal/port"
)

// BundleUseCase runs the bundling pipeline: one control flow per
// invocation, no shared mutable state across runs.
type BundleUseCase struct {
	stripper port.Stripper
	store    port.RunStore // optional; nil disables history
	logger   *zap.Logger
	now      func() time.Time

	// OnFile, when set, observes every record as it is classified.
	OnFile func(rec domain.FileRecord)
}

func NewBundleUseCase(stripper port.Stripper, store port.RunStore, logger *zap.Logger) *BundleUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BundleUseCase{
		stripper: stripper,
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

// Process discovers, filters and strips the configured source tree. The
// result keeps discovery order; per-file problems become ignored records,
// never errors.
func (u *BundleUseCase) Process(cfg *config.Config, workingDir string) (*domain.ProcessingResult, error) {
	sourceDir := resolvePath(workingDir, cfg.SourceDir)
	if info, err := os.Stat(sourceDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("source directory does not exist: %s", sourceDir)
	}

	profile, err := resolveProfile(cfg, sourceDir)
	if err != nil {
		return nil, err
	}

	extensions := profile.Extensions
	if len(cfg.Extensions) > 0 {
		extensions = cfg.Extensions
	}
	ignoreGlobs := append(append([]string{}, profile.IgnoreGlobs...), cfg.IgnorePatterns...)

	walker := fs.NewWalker(extensions, ignoreGlobs, cfg.IgnoreFiles, profile.Grammar)
	scan, err := walker.Scan(sourceDir)
	if err != nil {
		return nil, err
	}

	result := &domain.ProcessingResult{
		ReasonCounts: make(map[string]int),
	}
	for {
		rec, ok := scan.Next()
		if !ok {
			break
		}
		if rec.Ignored {
			result.Ignored = append(result.Ignored, rec)
			result.ReasonCounts[rec.IgnoreReason]++
		} else {
			if cfg.RemoveComments {
				rec.Content = u.stripper.Strip(rec.Content, profile.Grammar)
			}
			result.Included = append(result.Included, rec)
		}
		if u.OnFile != nil {
			u.OnFile(rec)
		}
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	u.logger.Debug("processing finished",
		zap.String("sourceDir", sourceDir),
		zap.String("profile", profile.Tag),
		zap.Int("included", len(result.Included)),
		zap.Int("ignored", len(result.Ignored)),
	)
	return result, nil
}

// Render chunks the records and writes one artifact per chunk plus the
// configured extra root files. Either every chunk is written or an error
// is returned naming the failed artifact.
func (u *BundleUseCase) Render(records []domain.FileRecord, cfg *config.Config, outputDir string) ([]string, error) {
	renderer, err := render.NewRenderer(cfg.OutputFormat)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	meta := port.RenderMeta{
		GeneratedAt:    u.now(),
		SourceDir:      cfg.SourceDir,
		OutputPrefix:   cfg.OutputPrefix,
		RemoveComments: cfg.RemoveComments,
	}

	chunks := chunker.NewSizeChunker(cfg.ChunkSizeKB * 1024).Chunk(records)

	paths := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		path, err := renderer.RenderChunk(chunk, meta, outputDir)
		if err != nil {
			return paths, fmt.Errorf("chunk %d not written: %w", chunk.Index, err)
		}
		paths = append(paths, path)
	}

	if err := u.copyExtraRootFiles(cfg, outputDir); err != nil {
		return paths, err
	}

	return paths, nil
}

// Run executes a full build: clean previous outputs, process, render,
// record history.
func (u *BundleUseCase) Run(cfg *config.Config, workingDir string) (*domain.RunSummary, error) {
	start := u.now()

	sourceDir := resolvePath(workingDir, cfg.SourceDir)
	outputDir := resolvePath(workingDir, cfg.OutputDir)

	removed, err := render.CleanOutputs(outputDir, cfg.OutputPrefix)
	if err != nil {
		return nil, err
	}
	if removed > 0 {
		u.logger.Debug("removed previous outputs", zap.Int("count", removed))
	}

	result, err := u.Process(cfg, workingDir)
	if err != nil {
		return nil, err
	}

	runCfg := *cfg
	runCfg.SourceDir = sourceDir
	paths, err := u.Render(result.Included, &runCfg, outputDir)
	if err != nil {
		return nil, err
	}

	totalBytes := 0
	for _, rec := range result.Included {
		totalBytes += len(rec.Content)
	}

	summary := &domain.RunSummary{
		StartedAt:     start,
		SourceDir:     sourceDir,
		FilesIncluded: len(result.Included),
		FilesIgnored:  len(result.Ignored),
		Chunks:        len(paths),
		TotalBytes:    totalBytes,
		Outputs:       paths,
		ReasonCounts:  result.ReasonCounts,
		Duration:      u.now().Sub(start),
	}

	if u.store != nil {
		if err := u.store.AppendRun(*summary); err != nil {
			u.logger.Warn("failed to record run history", zap.Error(err))
		}
	}

	return summary, nil
}

// copyExtraRootFiles copies the configured root files verbatim next to the
// generated artifacts.
func (u *BundleUseCase) copyExtraRootFiles(cfg *config.Config, outputDir string) error {
	for _, name := range cfg.ExtraRootFiles {
		src := filepath.Join(cfg.SourceDir, name)
		data, err := os.ReadFile(src)
		if err != nil {
			return fmt.Errorf("extra root file %s not readable: %w", name, err)
		}
		dst := filepath.Join(outputDir, filepath.Base(name))
		if err := os.WriteFile(dst, data, 0644); err != nil {
			return fmt.Errorf("failed to copy extra root file %s: %w", name, err)
		}
	}
	return nil
}

// resolveProfile picks the language profile by tag or marker detection.
func resolveProfile(cfg *config.Config, sourceDir string) (domain.LanguageProfile, error) {
	tag := cfg.ProjectType
	if tag == "" || tag == config.ProjectTypeAuto {
		detected, err := lang.Detect(sourceDir)
		if err != nil {
			return domain.LanguageProfile{}, fmt.Errorf("project type auto-detection failed: %w", err)
		}
		tag = detected
	}
	profile, ok := lang.Lookup(tag)
	if !ok {
		return domain.LanguageProfile{}, fmt.Errorf("unknown project type: %q", tag)
	}
	return profile, nil
}

func resolvePath(workingDir, p string) string {
	if p == "" {
		return workingDir
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(workingDir, p)
}

// SetClock pins the run timestamp; artifacts embed it, so a fixed clock
// makes repeated runs byte-identical.
func (u *BundleUseCase) SetClock(now func() time.Time) {
	u.now = now
}
