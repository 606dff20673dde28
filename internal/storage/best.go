package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/blank-arcade/internal/scoring"
)

// BestEntry is a user's best score for one game.
type BestEntry struct {
	UserID      string
	DisplayName string
	GameID      string
	Score       int
	UpdatedAt   time.Time
}

var (
	_ scoring.Sink       = (*Store)(nil)
	_ scoring.BestLookup = (*Store)(nil)
)

// SaveBest stores r as the user's best score unless an equal or higher score
// is already recorded. It reports whether the row changed.
func (s *Store) SaveBest(ctx context.Context, r scoring.Report) (bool, error) {
	at := r.At
	if at.IsZero() {
		at = time.Now()
	}

	res, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO best_scores (user_id, game_id, display_name, score, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, game_id) DO UPDATE SET
			score = excluded.score,
			display_name = excluded.display_name,
			updated_at = excluded.updated_at
		 WHERE excluded.score > best_scores.score`),
		r.UserID, r.GameID, r.DisplayName, r.Score, at.UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot save best score: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot read affected rows: %w", err)
	}
	return n > 0, nil
}

// ReportScore implements scoring.Sink.
func (s *Store) ReportScore(ctx context.Context, r scoring.Report) error {
	if r.UserID == "" || r.GameID == "" {
		return fmt.Errorf("storage: score report needs a user and a game")
	}
	_, err := s.SaveBest(ctx, r)
	return err
}

// BestScore returns the stored best of a user for a game, 0 when none.
func (s *Store) BestScore(ctx context.Context, userID, gameID string) (int, error) {
	var score int
	err := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT score FROM best_scores WHERE user_id = ? AND game_id = ?`),
		userID, gameID,
	).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return score, nil
}

// Leaderboard returns the best score of each user for a game, highest first.
// Ties go to whoever reached the score first.
func (s *Store) Leaderboard(ctx context.Context, gameID string, limit int) ([]BestEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT user_id, display_name, game_id, score, updated_at
		 FROM best_scores
		 WHERE game_id = ?
		 ORDER BY score DESC, updated_at ASC, user_id ASC
		 LIMIT ?`),
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []BestEntry
	for rows.Next() {
		var e BestEntry
		var updatedAt any
		if err := rows.Scan(&e.UserID, &e.DisplayName, &e.GameID, &e.Score, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}
