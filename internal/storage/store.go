// Package storage persists finished runs and best scores.
// SQLite (pure-Go modernc.org/sqlite, no CGO) is the default backend;
// PostgreSQL through lib/pq serves shared deployments of the SSH server.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"  // PostgreSQL driver
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Store manages the database connection for score persistence.
type Store struct {
	db     *sql.DB
	driver string
}

// Open connects to the given backend and runs migrations.
// For sqlite the DSN is a file path; a leading ~ is expanded and parent
// directories are created.
func Open(driver, dsn string) (*Store, error) {
	switch driver {
	case DriverSQLite:
		path, err := prepareSQLitePath(dsn)
		if err != nil {
			return nil, err
		}
		dsn = path
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("storage: unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db, driver: driver}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func prepareSQLitePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("storage: empty database path")
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}
	return path, nil
}

// Driver returns the backend name.
func (s *Store) Driver() string {
	return s.driver
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	ctx := context.Background()

	schema := sqliteSchema
	if s.driver == DriverPostgres {
		schema = postgresSchema
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return err
	}
	return s.ensureUserColumn(ctx)
}

// ensureUserColumn upgrades score tables created before runs carried a user.
func (s *Store) ensureUserColumn(ctx context.Context) error {
	if s.driver == DriverPostgres {
		_, err := s.db.ExecContext(ctx,
			`ALTER TABLE scores ADD COLUMN IF NOT EXISTS user_id TEXT NOT NULL DEFAULT ''`)
		if err != nil {
			return err
		}
		_, err = s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_scores_user ON scores(user_id, game_id)`)
		return err
	}

	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pragma_table_info('scores') WHERE name = 'user_id'`,
	).Scan(&n)
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := s.db.ExecContext(ctx, `ALTER TABLE scores ADD COLUMN user_id TEXT NOT NULL DEFAULT ''`); err != nil {
			return err
		}
	}
	_, err = s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_scores_user ON scores(user_id, game_id)`)
	return err
}

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT NOT NULL,
		score INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
	CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

	CREATE TABLE IF NOT EXISTS best_scores (
		user_id TEXT NOT NULL,
		game_id TEXT NOT NULL,
		display_name TEXT NOT NULL DEFAULT '',
		score INTEGER NOT NULL,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (user_id, game_id)
	);
	CREATE INDEX IF NOT EXISTS idx_best_scores_top ON best_scores(game_id, score DESC);
`

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS scores (
		id BIGSERIAL PRIMARY KEY,
		game_id TEXT NOT NULL,
		score INTEGER NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
	CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

	CREATE TABLE IF NOT EXISTS best_scores (
		user_id TEXT NOT NULL,
		game_id TEXT NOT NULL,
		display_name TEXT NOT NULL DEFAULT '',
		score INTEGER NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL,
		PRIMARY KEY (user_id, game_id)
	);
	CREATE INDEX IF NOT EXISTS idx_best_scores_top ON best_scores(game_id, score DESC);
`

// rebind rewrites ? placeholders to the backend's syntax.
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	return rebindDollar(query)
}

// rebindDollar turns ? placeholders into $1, $2, ... outside string literals.
func rebindDollar(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inString := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '\'':
			inString = !inString
			b.WriteByte(ch)
		case ch == '?' && !inString:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	time.RFC3339Nano,
}

// parseTime handles both time.Time and string timestamps.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	case []byte:
		return parseTime(string(t))
	}
	return time.Time{}
}
