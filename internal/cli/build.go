package cli

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"srcpack/config"
	"srcpack/internal/adapter/store"
	"srcpack/internal/adapter/strip"
	"srcpack/internal/domain"
	"srcpack/internal/usecase"
)

var (
	buildSource       string
	buildOutDir       string
	buildPrefix       string
	buildFormat       string
	buildChunkKB      int
	buildKeepComments bool
)

var buildCmd = &cobra.Command{
	Use:   "build [path]",
	Short: "Bundle a source tree into artifacts",
	Long: `Scan the source tree, filter and optionally strip comments, then write
size-bounded artifacts to the output directory. Previous artifacts with the
same prefix are removed first.

Examples:
  srcpack build                   # Bundle per ./srcpack.yaml
  srcpack build /path/to/project  # Bundle a specific directory
  srcpack build --format markdown --chunk-kb 500`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildSource, "source", "s", "", "source directory (overrides config)")
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", "", "output directory (overrides config)")
	buildCmd.Flags().StringVar(&buildPrefix, "prefix", "", "artifact name prefix (overrides config)")
	buildCmd.Flags().StringVarP(&buildFormat, "format", "f", "", "output format: text, markdown, or json")
	buildCmd.Flags().IntVar(&buildChunkKB, "chunk-kb", 0, "chunk size budget in KB (overrides config)")
	buildCmd.Flags().BoolVar(&buildKeepComments, "keep-comments", false, "do not strip comments")
	rootCmd.AddCommand(buildCmd)
}

// applyBuildFlags layers command-line overrides on top of the loaded config.
func applyBuildFlags(cmd *cobra.Command, cfg *config.Config, args []string) error {
	if len(args) > 0 {
		buildSource = args[0]
	}
	if buildSource != "" {
		cfg.SourceDir = buildSource
	}
	if buildOutDir != "" {
		cfg.OutputDir = buildOutDir
	}
	if buildPrefix != "" {
		cfg.OutputPrefix = buildPrefix
	}
	if buildFormat != "" {
		cfg.OutputFormat = buildFormat
	}
	if buildChunkKB > 0 {
		cfg.ChunkSizeKB = buildChunkKB
	}
	if cmd.Flags().Changed("keep-comments") {
		cfg.RemoveComments = !buildKeepComments
	}
	return cfg.Validate()
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if err := applyBuildFlags(cmd, cfg, args); err != nil {
		return err
	}

	if err := config.EnsureStateDir(GetRootDir()); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	runStore, err := store.NewBoltRunStore(config.HistoryDBPath(GetRootDir()))
	if err != nil {
		logger.Warn("run history unavailable", zap.Error(err))
		runStore = nil
	}
	if runStore != nil {
		defer runStore.Close()
	}

	uc := usecase.NewBundleUseCase(strip.NewStripper(), runStore, logger)

	// Total file count is unknown until the scan finishes, so the bar
	// runs as a spinner keyed on files classified.
	bar := progressbar.NewOptions(-1,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Bundling[reset]"),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
	uc.OnFile = func(rec domain.FileRecord) {
		bar.Add(1)
	}

	start := time.Now()
	summary, err := uc.Run(cfg, GetRootDir())
	bar.Finish()
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	printSummary(summary, time.Since(start))
	return nil
}

func printSummary(s *domain.RunSummary, elapsed time.Duration) {
	fmt.Printf("\nBundle complete:\n")
	fmt.Printf("  Files included: %d\n", s.FilesIncluded)
	fmt.Printf("  Files ignored:  %d\n", s.FilesIgnored)
	fmt.Printf("  Chunks written: %d\n", s.Chunks)
	fmt.Printf("  Total bytes:    %d\n", s.TotalBytes)
	fmt.Printf("  Elapsed:        %s\n", elapsed.Round(time.Millisecond))

	if len(s.ReasonCounts) > 0 {
		fmt.Printf("\nIgnored by reason:\n")
		reasons := make([]string, 0, len(s.ReasonCounts))
		for r := range s.ReasonCounts {
			reasons = append(reasons, r)
		}
		sort.Strings(reasons)
		for _, r := range reasons {
			fmt.Printf("  %4d  %s\n", s.ReasonCounts[r], r)
		}
	}

	fmt.Printf("\nArtifacts:\n")
	for _, p := range s.Outputs {
		fmt.Printf("  %s\n", filepath.Clean(p))
	}
}
