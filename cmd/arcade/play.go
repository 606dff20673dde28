package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blank-arcade/internal/platform/tui"
	"github.com/vovakirdan/blank-arcade/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD/hjkl - Move or steer
  Enter/Space      - Start from the title screen
  P/Esc            - Pause
  R                - Restart
  B                - Leave the game
  Ctrl+S           - Save a text screenshot to ~/.arcade/screenshots
  Q/Ctrl+C         - Quit

Examples:
  arcade play alphabet2048
  arcade play penguin --seed 42
  arcade play penguin --config ./my-arcade.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	// A missing store only costs the scores.
	store, err := openStore()
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "error", err)
		store = nil
	}
	env, cleanup := newEnv(store, playerIdentity())
	defer cleanup()

	restore := logToFile()
	defer restore()

	if err := tui.Run(env, gameID, runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
