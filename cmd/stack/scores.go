package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-stack/internal/platform/tui"
	"github.com/vovakirdan/tui-stack/internal/registry"
	"github.com/vovakirdan/tui-stack/internal/stack"
	"github.com/vovakirdan/tui-stack/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display the top 10 scores for a variant (default: stack).

Examples:
  stack scores
  stack scores stack_zen
  stack scores --tui
  stack scores stack_hard --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the history and best score of the variant")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := "stack"
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 'stack list' to see available variants", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", gameID)
		return nil
	}

	if flagScoresTUI {
		cfg := runtimeConfig()
		_, err := tui.RunScoreboard(store, gameID, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	return printScores(store, gameID)
}

func printScores(store *storage.Store, gameID string) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieve scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'stack play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-7s  %-5s  %s\n", "Rank", "Score", "Perfect", "Combo", "Date")
	fmt.Printf("  %-4s  %-6s  %-7s  %-5s  %s\n", "----", "-----", "-------", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-6d  %-7d  %-5d  %s\n",
			i+1, entry.Score, entry.Perfects, entry.BestCombo,
			entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	best, err := stack.NewHighScores(store.Settings(gameID)).Best()
	if err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}
