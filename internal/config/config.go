// Package config provides YAML-based configuration loading for the arcade:
// game tuning, the score store, logging and the SSH server.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid value")

// Config is the whole arcade configuration.
type Config struct {
	Penguin  PenguinConfig  `yaml:"penguin"`
	Alphabet AlphabetConfig `yaml:"alphabet"`
	Storage  StorageConfig  `yaml:"storage"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
}

// PenguinConfig tunes the Penguin game.
type PenguinConfig struct {
	GridSize     int           `yaml:"grid_size"`
	TickInterval time.Duration `yaml:"tick_interval"`
}

// AlphabetConfig tunes Alphabet 2048.
type AlphabetConfig struct {
	SettleDelay time.Duration `yaml:"settle_delay"`
}

// StorageConfig selects the score store.
type StorageConfig struct {
	Driver string `yaml:"driver"` // sqlite or postgres
	DSN    string `yaml:"dsn"`    // File path for sqlite, connection URL for postgres
}

// ScoringConfig tunes background score reporting.
type ScoringConfig struct {
	QueueSize int           `yaml:"queue_size"`
	Timeout   time.Duration `yaml:"timeout"`
}

// LogConfig sets up the logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ServerConfig configures `arcade serve`.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Penguin: PenguinConfig{
			GridSize:     15,
			TickInterval: 200 * time.Millisecond,
		},
		Alphabet: AlphabetConfig{
			SettleDelay: 100 * time.Millisecond,
		},
		Storage: StorageConfig{
			Driver: "sqlite",
			DSN:    "~/.arcade/scores.db",
		},
		Scoring: ScoringConfig{
			QueueSize: 32,
			Timeout:   2 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(field string, v any) {
		errs = append(errs, fmt.Errorf("config: %s = %v: %w", field, v, ErrInvalid))
	}

	if c.Penguin.GridSize < 3 || c.Penguin.GridSize > 64 {
		bad("penguin.grid_size", c.Penguin.GridSize)
	}
	if c.Penguin.TickInterval <= 0 {
		bad("penguin.tick_interval", c.Penguin.TickInterval)
	}
	if c.Alphabet.SettleDelay < 0 {
		bad("alphabet.settle_delay", c.Alphabet.SettleDelay)
	}

	switch c.Storage.Driver {
	case "sqlite", "postgres":
	default:
		bad("storage.driver", c.Storage.Driver)
	}
	if c.Storage.DSN == "" {
		bad("storage.dsn", `""`)
	}

	if c.Scoring.QueueSize <= 0 {
		bad("scoring.queue_size", c.Scoring.QueueSize)
	}
	if c.Scoring.Timeout <= 0 {
		bad("scoring.timeout", c.Scoring.Timeout)
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		bad("log.level", c.Log.Level)
	}

	if c.Server.Address == "" {
		bad("server.address", `""`)
	}
	if c.Server.IdleTimeout < 0 {
		bad("server.idle_timeout", c.Server.IdleTimeout)
	}

	return errors.Join(errs...)
}

// LogLevel returns the parsed log level, info when unset or invalid.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
