// arcade is a terminal arcade with Alphabet 2048 and Penguin.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show high scores for a game
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Use this SQLite file instead of the configured store
//	--config <path>       - Load settings from this YAML file
//	--user <name>         - Player name scores are saved under
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blank-arcade/internal/core"

	// Import games to register them
	_ "github.com/vovakirdan/blank-arcade/internal/games/alphabet"
	_ "github.com/vovakirdan/blank-arcade/internal/games/penguin"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagUser     string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Blank Arcade - letter merging and fish catching in your terminal",
	Long: `Blank Arcade is a terminal arcade with two games:

  alphabet2048  - slide and merge letter tiles, A+A makes B
  penguin       - steer a growing penguin line toward the fish

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  arcade list
  arcade play penguin
  arcade menu --user alice
  arcade serve --ssh :2222
  arcade scores alphabet2048`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultTickRate, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "SQLite scores file (overrides the configured store)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to arcade YAML config")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", defaultUser(), "Player name for saved scores")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

func defaultUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "guest"
}
