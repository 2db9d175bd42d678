package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-stack/internal/core"
	"github.com/vovakirdan/tui-stack/internal/platform/tui"
	"github.com/vovakirdan/tui-stack/internal/registry"
	"github.com/vovakirdan/tui-stack/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a game variant",
	Long: `Start playing the specified variant (default: stack).

Controls:
  Space/Enter/Up/Click  - Start, drop the block, play again
  P                     - Pause
  Esc                   - Pause
  Ctrl+S                - Screenshot
  ?                     - Help
  Q/Ctrl+C              - Quit

Difficulty options:
  easy   - Start slow, speed up to the maximum
  normal - Start at 30% speed-up
  hard   - Start at 70% speed-up
  fixed  - No speed-up

Examples:
  stack play
  stack play stack_zen
  stack play --difficulty hard
  stack play --seed 42 --config ./my-stack.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "stack"
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 'stack list' to see available variants", gameID)
	}

	logger, err := newLogger("stack", true)
	if err != nil {
		return err
	}

	cfg := runtimeConfig()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// The game still works, scores just are not kept
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	sessionID := uuid.NewString()
	game, err := tui.NewGame(gameID, store, logger.With("session", sessionID), sessionID, nil)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}

	if err := tui.Run(game, store, cfg,
		tui.WithLogger(logger),
		tui.WithSessionID(sessionID),
	); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
