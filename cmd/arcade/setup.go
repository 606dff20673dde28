package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blank-arcade/internal/config"
	"github.com/vovakirdan/blank-arcade/internal/core"
	"github.com/vovakirdan/blank-arcade/internal/games/alphabet"
	"github.com/vovakirdan/blank-arcade/internal/games/penguin"
	"github.com/vovakirdan/blank-arcade/internal/platform/tui"
	"github.com/vovakirdan/blank-arcade/internal/scoring"
	"github.com/vovakirdan/blank-arcade/internal/session"
	"github.com/vovakirdan/blank-arcade/internal/storage"
)

var (
	appConfig config.Config
	logger    *log.Logger
)

// setup loads the configuration, builds the logger and applies game options.
func setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagDBPath != "" {
		cfg.Storage.Driver = storage.DriverSQLite
		cfg.Storage.DSN = flagDBPath
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	appConfig = cfg

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
		Level:           cfg.LogLevel(),
	})
	log.SetDefault(logger)

	alphabet.SetOptions(alphabet.Options{SettleDelay: cfg.Alphabet.SettleDelay})
	penguin.SetOptions(penguin.Options{
		GridSize:     cfg.Penguin.GridSize,
		TickInterval: cfg.Penguin.TickInterval,
	})
	return nil
}

// logToFile moves log output off the terminal while a full-screen UI runs.
// The returned function restores stderr.
func logToFile() func() {
	home, err := os.UserHomeDir()
	if err != nil {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }
	}
	dir := filepath.Join(home, ".arcade")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }
	}

	f, err := os.OpenFile(filepath.Join(dir, "arcade.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		f.Close()
	}
}

// openStore opens the configured score store.
func openStore() (*storage.Store, error) {
	store, err := storage.Open(appConfig.Storage.Driver, appConfig.Storage.DSN)
	if err != nil {
		return nil, err
	}
	logger.Debug("score store opened", "driver", store.Driver())
	return store, nil
}

// newEnv wires the store and a background score reporter for identity.
// A nil store runs without persistence. The returned function flushes
// pending reports and closes the store.
func newEnv(store *storage.Store, identity session.Identity) (tui.Env, func()) {
	env := tui.Env{
		Identity: identity,
		Logger:   logger,
	}
	if store == nil {
		return env, func() {}
	}

	reporter := scoring.NewReporter(store, scoring.ReporterOptions{
		QueueSize: appConfig.Scoring.QueueSize,
		Timeout:   appConfig.Scoring.Timeout,
		Logger:    logger.WithPrefix("scoring"),
	})
	env.Store = store
	env.Reporter = reporter

	return env, func() {
		if err := reporter.Close(); err != nil {
			logger.Warn("score reporter did not drain", "error", err)
		}
		if n := reporter.Dropped(); n > 0 {
			logger.Warn("score reports dropped", "count", n)
		}
		if err := store.Close(); err != nil {
			logger.Warn("could not close score store", "error", err)
		}
	}
}

// playerIdentity returns the identity given by --user.
func playerIdentity() session.Identity {
	return session.Identity{UserID: flagUser, DisplayName: flagUser}
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
