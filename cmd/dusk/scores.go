package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/duskfall/internal/registry"
	"github.com/vovakirdan/duskfall/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <stage>",
	Short: "Show the best runs on a stage",
	Long: `Display the best runs (most gold) on the specified stage, with
totals over every recorded run.

Examples:
  dusk scores meadow
  dusk scores ravine --limit 25`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, args []string) error {
	stageID := args[0]

	if !registry.Exists(stageID) {
		return fmt.Errorf("unknown stage %q (run 'dusk list' to see available stages)", stageID)
	}

	game, err := registry.Create(stageID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer store.Close()

	runs, err := store.TopRuns(stageID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("error retrieving runs: %w", err)
	}

	fmt.Printf("Best Runs - %s\n", game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'dusk play %s' to set the first record!\n", stageID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %s\n", "Rank", "Gold", "Level", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %s\n", "----", "----", "-----", "----")

	for i, entry := range runs {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-5d  %s\n", i+1, entry.Gold, entry.Level, dateStr)
	}

	fmt.Println()
	if stats, err := store.Stats(stageID); err == nil {
		fmt.Printf("Runs: %d  Best: %d gold  Average: %.0f gold  Highest level: %d\n",
			stats.Runs, stats.BestGold, stats.AvgGold, stats.BestLevel)
	}
	return nil
}
