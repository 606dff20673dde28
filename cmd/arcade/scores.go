package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blank-arcade/internal/registry"
	"github.com/vovakirdan/blank-arcade/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresRuns  bool
	flagScoresMine  bool
	flagScoresClear bool
	flagScoresAll   bool
)

const dateLayout = "2006-01-02 15:04"

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the leaderboard for the specified game: the best score of
every player, followed by overall statistics. Without a game, print a
summary of every game.

Examples:
  arcade scores
  arcade scores penguin
  arcade scores alphabet2048 --limit 20
  arcade scores penguin --runs          # best individual runs
  arcade scores penguin --mine          # your most recent runs
  arcade scores penguin --all           # every recorded run
  arcade scores penguin --clear         # delete every score of the game`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagScoresRuns, "runs", false, "List individual runs instead of per-player bests")
	scoresCmd.Flags().BoolVar(&flagScoresMine, "mine", false, "List the most recent runs of --user")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores of the game")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "List every recorded run of the game, ignoring --limit")
}

func runScores(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && (flagScoresRuns || flagScoresMine || flagScoresClear || flagScoresAll) {
		return fmt.Errorf("--runs, --mine, --all and --clear need a game")
	}
	var info registry.GameInfo
	if len(args) == 1 {
		var ok bool
		if info, ok = registry.Lookup(args[0]); !ok {
			return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", args[0])
		}
	}

	store, err := openStore()
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	out := cmd.OutOrStdout()

	if info.ID == "" {
		return printSummary(ctx, out, store)
	}
	gameID := info.ID

	if flagScoresClear {
		if err := store.ClearScores(ctx, gameID); err != nil {
			return err
		}
		logger.Info("scores cleared", "game", gameID)
		fmt.Fprintf(out, "All scores for %s deleted.\n", info.Title)
		return nil
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", info.Title)

	var rows int
	switch {
	case flagScoresAll:
		entries, err := store.AllScores(ctx, gameID)
		if err != nil {
			return err
		}
		rows = len(entries)
		printRuns(out, entries)
	case flagScoresMine:
		entries, err := store.UserScores(ctx, flagUser, gameID, flagScoresLimit)
		if err != nil {
			return err
		}
		rows = len(entries)
		printRuns(out, entries)
	case flagScoresRuns:
		entries, err := store.TopScores(ctx, gameID, flagScoresLimit)
		if err != nil {
			return err
		}
		rows = len(entries)
		printRuns(out, entries)
	default:
		entries, err := store.Leaderboard(ctx, gameID, flagScoresLimit)
		if err != nil {
			return err
		}
		rows = len(entries)
		printLeaderboard(out, entries)
	}

	if rows == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	stats, err := store.GetGameStats(ctx, gameID)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Runs: %d  Players: %d  Best: %d  Average: %.1f\n",
		stats.GamesCount, stats.Players, stats.HighScore, stats.AvgScore)
	if !stats.LastPlayed.IsZero() {
		fmt.Fprintf(out, "Last played: %s\n", stats.LastPlayed.Local().Format(dateLayout))
	}
	return nil
}

func printLeaderboard(out io.Writer, entries []storage.BestEntry) {
	if len(entries) == 0 {
		return
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  Rank\tPlayer\tScore\tDate")
	fmt.Fprintln(tw, "  ----\t------\t-----\t----")
	for i, e := range entries {
		name := e.DisplayName
		if name == "" {
			name = e.UserID
		}
		fmt.Fprintf(tw, "  %d\t%s\t%d\t%s\n", i+1, name, e.Score, e.UpdatedAt.Local().Format(dateLayout))
	}
	tw.Flush()
}

func printRuns(out io.Writer, entries []storage.ScoreEntry) {
	if len(entries) == 0 {
		return
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  Rank\tPlayer\tScore\tDate")
	fmt.Fprintln(tw, "  ----\t------\t-----\t----")
	for i, e := range entries {
		fmt.Fprintf(tw, "  %d\t%s\t%d\t%s\n", i+1, e.UserID, e.Score, e.CreatedAt.Local().Format(dateLayout))
	}
	tw.Flush()
}

// printSummary lists every registered game with its run statistics.
func printSummary(ctx context.Context, out io.Writer, store *storage.Store) error {
	stats, err := store.GetAllGamesStats(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  Game\tRuns\tPlayers\tBest\tAverage\tLast played")
	fmt.Fprintln(tw, "  ----\t----\t-------\t----\t-------\t-----------")
	for _, g := range registry.List() {
		st, ok := stats[g.ID]
		if !ok {
			fmt.Fprintf(tw, "  %s\t0\t0\t-\t-\t-\n", g.Title)
			continue
		}
		last := "-"
		if !st.LastPlayed.IsZero() {
			last = st.LastPlayed.Local().Format(dateLayout)
		}
		fmt.Fprintf(tw, "  %s\t%d\t%d\t%d\t%.1f\t%s\n",
			g.Title, st.GamesCount, st.Players, st.HighScore, st.AvgScore, last)
	}
	return tw.Flush()
}
