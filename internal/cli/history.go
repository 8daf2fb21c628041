package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"srcpack/config"
	"srcpack/internal/adapter/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent bundle runs",
	Long: `List summaries of recent runs recorded in .srcpack/history.db,
newest first.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum runs to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	dbPath := config.HistoryDBPath(GetRootDir())
	if _, err := os.Stat(dbPath); err != nil {
		fmt.Println("No run history yet. Run 'srcpack build' first.")
		return nil
	}

	runStore, err := store.NewBoltRunStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open run history: %w", err)
	}
	defer runStore.Close()

	runs, err := runStore.ListRuns(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read run history: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No run history yet. Run 'srcpack build' first.")
		return nil
	}

	for _, r := range runs {
		fmt.Printf("%s  %-30s  %3d files, %2d chunks, %9d bytes\n",
			r.StartedAt.Format("2006-01-02 15:04:05"),
			r.SourceDir,
			r.FilesIncluded, r.Chunks, r.TotalBytes)
	}
	return nil
}
