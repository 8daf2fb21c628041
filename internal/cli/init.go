package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"srcpack/config"
	"srcpack/internal/adapter/lang"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a srcpack.yaml through an interactive wizard",
	Long: `Walk through the bundle settings interactively and write the result
to srcpack.yaml in the working directory.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cfgPath := filepath.Join(GetRootDir(), "srcpack.yaml")

	if _, err := os.Stat(cfgPath); err == nil {
		overwrite, err := pterm.DefaultInteractiveConfirm.
			WithDefaultValue(false).
			Show("srcpack.yaml already exists. Overwrite?")
		if err != nil {
			return err
		}
		if !overwrite {
			pterm.Info.Println("Keeping existing configuration.")
			return nil
		}
	}

	out := config.DefaultConfig()

	sourceDir, err := pterm.DefaultInteractiveTextInput.
		WithDefaultValue(out.SourceDir).
		Show("Source directory")
	if err != nil {
		return err
	}
	out.SourceDir = sourceDir

	types := append([]string{config.ProjectTypeAuto}, lang.Tags()...)
	projectType, err := pterm.DefaultInteractiveSelect.
		WithOptions(types).
		WithDefaultOption(config.ProjectTypeAuto).
		Show("Project type")
	if err != nil {
		return err
	}
	out.ProjectType = projectType

	format, err := pterm.DefaultInteractiveSelect.
		WithOptions([]string{"text", "markdown", "json"}).
		WithDefaultOption(out.OutputFormat).
		Show("Output format")
	if err != nil {
		return err
	}
	out.OutputFormat = format

	chunkStr, err := pterm.DefaultInteractiveTextInput.
		WithDefaultValue(strconv.Itoa(out.ChunkSizeKB)).
		Show("Chunk size (KB)")
	if err != nil {
		return err
	}
	chunkKB, err := strconv.Atoi(chunkStr)
	if err != nil || chunkKB <= 0 {
		return fmt.Errorf("chunk size must be a positive integer, got %q", chunkStr)
	}
	out.ChunkSizeKB = chunkKB

	removeComments, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(out.RemoveComments).
		Show("Strip comments from bundled files?")
	if err != nil {
		return err
	}
	out.RemoveComments = removeComments

	outputDir, err := pterm.DefaultInteractiveTextInput.
		WithDefaultValue(out.OutputDir).
		Show("Output directory")
	if err != nil {
		return err
	}
	out.OutputDir = outputDir

	prefix, err := pterm.DefaultInteractiveTextInput.
		WithDefaultValue(out.OutputPrefix).
		Show("Artifact name prefix")
	if err != nil {
		return err
	}
	out.OutputPrefix = prefix

	if err := out.Validate(); err != nil {
		return err
	}
	if err := out.Save(cfgPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	pterm.Success.Printfln("Wrote %s", cfgPath)
	pterm.Info.Println("Run 'srcpack build' to create the first bundle.")
	return nil
}
