package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/they4kman/termsweep/game"
)

func TestDefaultIsValid(t *testing.T) {
	config := Default()
	if err := config.Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}

	settings, err := config.Resolve(config.Difficulty)
	if err != nil {
		t.Fatal(err)
	}
	if settings != (game.Settings{Rows: 8, Cols: 8, Mines: 10}) {
		t.Errorf("Expected easy settings, got %v", settings)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
difficulty: huge
seed: 1234
director: random
log:
  level: debug
  file: /tmp/termsweep.log
presets:
  huge: {rows: 24, cols: 30, mines: 99}
  tiny: {rows: 2, cols: 2, mines: 1}
`)

	config, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}

	if config.Seed != 1234 || config.Director != DirectorRandom {
		t.Errorf("Unexpected config: %+v", config)
	}
	if config.Log.Level != "debug" || config.Log.File != "/tmp/termsweep.log" {
		t.Errorf("Unexpected log config: %+v", config.Log)
	}

	settings, err := config.Resolve(config.Difficulty)
	if err != nil {
		t.Fatal(err)
	}
	if settings != (game.Settings{Rows: 24, Cols: 30, Mines: 99}) {
		t.Errorf("Unexpected settings: %v", settings)
	}

	if names := config.PresetNames(); strings.Join(names, ",") != "huge,tiny" {
		t.Errorf("Unexpected preset names: %v", names)
	}

	// Built-in presets stay reachable
	if settings, err := config.Resolve("hard"); err != nil || settings.Rows != 16 {
		t.Errorf("Resolve(hard) = %v, %v", settings, err)
	}
}

func TestParseKeepsDefaults(t *testing.T) {
	config, err := Parse([]byte("seed: 9\n"))
	if err != nil {
		t.Fatal(err)
	}

	expected := Default()
	expected.Seed = 9
	if config.Difficulty != expected.Difficulty || config.Director != expected.Director || config.Log != expected.Log {
		t.Errorf("Expected defaults to survive, got %+v", config)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   string
	}{
		{"Unknown key", "colour: red\n", "colour"},
		{"Bad difficulty", "difficulty: impossible\n", "invalid difficulty"},
		{"Bad director", "director: oracle\n", "invalid director"},
		{"Bad log level", "log: {level: loud}\n", "log level"},
		{"Bad preset", "presets: {full: {rows: 2, cols: 2, mines: 4}}\n", `preset "full"`},
		{"Malformed", "difficulty: [\n", "parsing config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatalf("Expected error")
			}
			if !strings.Contains(err.Error(), tt.err) {
				t.Errorf("Expected error containing %q, got %v", tt.err, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("difficulty: medium\n"), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if config.Difficulty != "medium" {
		t.Errorf("Expected medium, got %q", config.Difficulty)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Errorf("Expected error for missing file")
	}
}
