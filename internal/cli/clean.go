package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"srcpack/internal/adapter/render"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove previously generated artifacts",
	Long: `Delete every artifact in the output directory whose name matches the
configured prefix and numbering scheme. Other files are left alone.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	outputDir := cfg.OutputDir
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(GetRootDir(), outputDir)
	}

	removed, err := render.CleanOutputs(outputDir, cfg.OutputPrefix)
	if err != nil {
		return fmt.Errorf("clean failed: %w", err)
	}

	fmt.Printf("Removed %d artifact(s) from %s\n", removed, outputDir)
	return nil
}
