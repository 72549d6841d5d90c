package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/they4kman/termsweep/game"
	"gopkg.in/yaml.v2"
)

const (
	DirectorNone       = "none"
	DirectorRandom     = "random"
	DirectorConstraint = "constraint"
)

var Directors = []string{DirectorNone, DirectorRandom, DirectorConstraint}

type Config struct {
	// Preset name: easy, medium, hard or a key of Presets
	Difficulty string `yaml:"difficulty"`
	// Mine placement seed; 0 picks one from the clock
	Seed int64 `yaml:"seed"`
	// Computer player used for hints and autoplay
	Director string `yaml:"director"`

	Log LogConfig `yaml:"log"`

	// Extra named board sizes
	Presets map[string]game.Settings `yaml:"presets"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Log destination. Empty discards logs while the terminal UI is running.
	File string `yaml:"file"`
}

func Default() Config {
	return Config{
		Difficulty: game.Easy.String(),
		Director:   DirectorConstraint,
		Log: LogConfig{
			Level: logrus.InfoLevel.String(),
		},
	}
}

// Parse reads a YAML config on top of the defaults. Unknown keys are errors.
func Parse(data []byte) (Config, error) {
	config := Default()
	if err := yaml.UnmarshalStrict(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	config, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

func (config Config) Validate() error {
	for name, settings := range config.Presets {
		if err := settings.Validate(); err != nil {
			return fmt.Errorf("preset %q: %w", name, err)
		}
	}

	if _, err := config.Resolve(config.Difficulty); err != nil {
		return err
	}

	if !isDirector(config.Director) {
		return fmt.Errorf("invalid director %q (want one of %s)", config.Director, strings.Join(Directors, ", "))
	}

	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	return nil
}

// Resolve looks up board settings by preset name. Custom presets shadow the
// built-in difficulties.
func (config Config) Resolve(name string) (game.Settings, error) {
	if settings, ok := config.Presets[name]; ok {
		return settings, nil
	}

	difficulty, err := game.ParseDifficulty(name)
	if err != nil {
		if len(config.Presets) > 0 {
			return game.Settings{}, fmt.Errorf("%w; custom presets: %s", err, strings.Join(config.PresetNames(), ", "))
		}
		return game.Settings{}, err
	}

	settings, _ := difficulty.Settings()
	return settings, nil
}

func (config Config) PresetNames() []string {
	names := make([]string, 0, len(config.Presets))
	for name := range config.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isDirector(name string) bool {
	for _, director := range Directors {
		if director == name {
			return true
		}
	}
	return false
}
