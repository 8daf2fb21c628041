package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"srcpack/config"
	"srcpack/internal/adapter/lang"
	"srcpack/internal/adapter/store"
	"srcpack/internal/adapter/strip"
	"srcpack/internal/usecase"
	"srcpack/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Rebuild artifacts whenever source files change",
	Long: `Run an initial build, then watch the source tree and rebuild after
changes settle. Bursts of events within the debounce window produce a
single rebuild; events arriving mid-build are dropped.

Examples:
  srcpack watch
  srcpack watch /path/to/project`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if len(args) > 0 {
		cfg.SourceDir = args[0]
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sourceDir := cfg.SourceDir
	if !filepath.IsAbs(sourceDir) {
		sourceDir = filepath.Join(GetRootDir(), sourceDir)
	}
	if info, err := os.Stat(sourceDir); err != nil || !info.IsDir() {
		return fmt.Errorf("source directory does not exist: %s", sourceDir)
	}

	extensions, err := watchedExtensions(cfg, sourceDir)
	if err != nil {
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

	rebuild := func() {
		start := time.Now()
		summary, err := uc.Run(cfg, GetRootDir())
		if err != nil {
			logger.Error("rebuild failed", zap.Error(err))
			fmt.Printf("rebuild failed: %v\n", err)
			return
		}
		fmt.Printf("[%s] rebuilt: %d files, %d chunks in %s\n",
			time.Now().Format("15:04:05"),
			summary.FilesIncluded, summary.Chunks,
			time.Since(start).Round(time.Millisecond))
	}

	fmt.Printf("Watching %s (debounce %dms, Ctrl-C to stop)\n", sourceDir, cfg.Watch.DebounceMillis)
	rebuild()

	// The output directory and dot-directories never feed rebuilds.
	skipDirs := []string{filepath.Base(cfg.OutputDir), "node_modules", "vendor"}
	watcher, err := watch.NewWatcher(sourceDir, extensions, skipDirs, logger)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", sourceDir, err)
	}
	defer watcher.Close()

	debouncer := watch.NewDebouncer(time.Duration(cfg.Watch.DebounceMillis)*time.Millisecond, rebuild)
	debouncer.Start()
	defer debouncer.Stop()

	stop := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		close(stop)
	}()

	watcher.Run(debouncer.Notify, stop)
	fmt.Println("\nStopped.")
	return nil
}

// watchedExtensions resolves which file extensions trigger rebuilds,
// preferring the explicit config override, then the language profile.
func watchedExtensions(cfg *config.Config, sourceDir string) ([]string, error) {
	if len(cfg.Extensions) > 0 {
		return cfg.Extensions, nil
	}

	tag := cfg.ProjectType
	if tag == config.ProjectTypeAuto {
		detected, err := lang.Detect(sourceDir)
		if err != nil {
			return nil, fmt.Errorf("cannot detect project type: %w", err)
		}
		tag = detected
	}
	profile, ok := lang.Lookup(tag)
	if !ok {
		return nil, fmt.Errorf("unknown project type: %s", tag)
	}
	return profile.Extensions, nil
}
