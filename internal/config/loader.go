package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const match3File = "match3.yaml"

// LoadMatch3 loads match-3 configuration.
// Search order: customPath -> ~/.match3/configs/match3.yaml -> ./configs/match3.yaml -> embedded default
// Fields missing from a file keep their default values.
func LoadMatch3(customPath string) (Match3Config, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := readMatch3(customPath)
		if err != nil {
			return DefaultMatch3Config(), err
		}
		return cfg, nil
	}

	return loadFirst(searchPaths(match3File)), nil
}

// loadFirst returns the first readable, valid config among paths, then the
// embedded default, then the hard-coded default.
func loadFirst(paths []string) Match3Config {
	for _, p := range paths {
		if cfg, err := readMatch3(p); err == nil {
			return cfg
		}
	}

	// Use embedded default YAML
	cfg, err := parseMatch3(defaultMatch3YAML)
	if err != nil {
		return DefaultMatch3Config() // Fallback to hardcoded if embed fails
	}
	return cfg
}

func readMatch3(path string) (Match3Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Match3Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := parseMatch3(data)
	if err != nil {
		return Match3Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func parseMatch3(data []byte) (Match3Config, error) {
	cfg := DefaultMatch3Config()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Match3Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Match3Config{}, err
	}
	return cfg, nil
}

// searchPaths lists the user and local locations of a config file.
func searchPaths(filename string) []string {
	var paths []string
	if p := userConfigPath(filename); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", filename))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".match3", "configs", filename)
}

// Validate rejects values the engine cannot work with.
func (c Match3Config) Validate() error {
	if c.Board.MinMatchCount < 2 {
		return fmt.Errorf("board.min_match_count must be at least 2, got %d", c.Board.MinMatchCount)
	}
	if c.Board.MinPossibleMatches < 0 {
		return fmt.Errorf("board.min_possible_matches must not be negative, got %d", c.Board.MinPossibleMatches)
	}
	if c.Generation.MaxSetupAttempts < 1 {
		return fmt.Errorf("generation.max_setup_attempts must be at least 1, got %d", c.Generation.MaxSetupAttempts)
	}
	switch c.Stuck.Policy {
	case "report", "reshuffle":
	default:
		return fmt.Errorf("stuck.policy must be report or reshuffle, got %q", c.Stuck.Policy)
	}
	if _, ok := ParsePreset(string(c.Difficulty.Preset)); !ok {
		return fmt.Errorf("unknown difficulty preset %q", c.Difficulty.Preset)
	}
	return nil
}

// ApplyMatch3Preset selects a difficulty preset.
func ApplyMatch3Preset(cfg *Match3Config, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset
}
