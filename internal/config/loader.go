package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the search directories.
const FileName = "arcade.yaml"

//go:embed defaults/arcade.yaml
var defaultYAML []byte

// Load reads the arcade configuration.
// Search order: customPath -> ~/.arcade/configs/arcade.yaml ->
// ./configs/arcade.yaml -> embedded default. Keys missing from the file keep
// their default values. A custom path must exist and parse; the other
// locations are skipped when unreadable.
func Load(customPath string) (Config, error) {
	cfg, err := parse(defaultYAML, Default())
	if err != nil {
		cfg = Default()
	}

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err = parse(data, cfg)
		if err != nil {
			return cfg, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if parsed, err := parse(data, cfg); err == nil {
			return parsed, parsed.Validate()
		}
	}

	return cfg, cfg.Validate()
}

// parse decodes data on top of base.
func parse(data []byte, base Config) (Config, error) {
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, err
	}
	return cfg, nil
}

func searchPaths() []string {
	var paths []string
	if p := userConfigPath(FileName); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", FileName))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultYAML))
	copy(out, defaultYAML)
	return out
}
