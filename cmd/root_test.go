package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/they4kman/termsweep/config"
	"github.com/they4kman/termsweep/director/constraint"
	"github.com/they4kman/termsweep/director/random"
	"github.com/they4kman/termsweep/game"
)

// resetFlags restores the flag variables and their changed marks, which
// cobra leaves set between executions of the same command
func resetFlags() {
	unchange := func(flag *pflag.Flag) { flag.Changed = false }
	rootCmd.PersistentFlags().VisitAll(unchange)
	autoplayCmd.Flags().VisitAll(unchange)

	configPath = ""
	options = config.Default()
	rows, cols, mines = 0, 0, 0
	logLevel, logFile = options.Log.Level, ""
	numGames, maxMoves, quiet = 1, 0, false
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestAutoplay(t *testing.T) {
	out, err := execute(t, "autoplay", "--difficulty", "easy", "--seed", "5", "--director", "constraint",
		"--games", "3", "--log-level", "error")
	if err != nil {
		t.Fatal(err)
	}

	if strings.Count(out, "game ") != 3 {
		t.Errorf("Expected 3 game reports, got:\n%s", out)
	}
	if !strings.Contains(out, "game 1 (seed 5)") {
		t.Errorf("Expected first game to use the given seed, got:\n%s", out)
	}
	if !strings.Contains(out, "/3 games (8x8, 10 mines, constraint director)") {
		t.Errorf("Expected summary line, got:\n%s", out)
	}

	again, err := execute(t, "autoplay", "--difficulty", "easy", "--seed", "5", "--director", "constraint",
		"--games", "3", "--log-level", "error")
	if err != nil {
		t.Fatal(err)
	}
	if again != out {
		t.Errorf("Expected identical output for the same seed")
	}
}

func TestAutoplayErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		err  string
	}{
		{"No director", []string{"--difficulty", "easy", "--director", "none", "--games", "1"}, "needs a director"},
		{"No games", []string{"--difficulty", "easy", "--director", "random", "--games", "0"}, "at least 1"},
		{"Unknown difficulty", []string{"--difficulty", "brutal", "--director", "random", "--games", "1"}, "invalid difficulty"},
		{"Unknown director", []string{"--difficulty", "easy", "--director", "oracle", "--games", "1"}, "invalid director"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"autoplay", "--seed", "1", "--log-level", "error"}, tt.args...)...)
			if err == nil || !strings.Contains(err.Error(), tt.err) {
				t.Errorf("Expected error containing %q, got %v", tt.err, err)
			}
		})
	}
}

func TestAutoplayWithConfig(t *testing.T) {
	dir := t.TempDir()

	logPath := filepath.Join(dir, "termsweep.log")
	configFile := filepath.Join(dir, "config.yaml")
	data := []byte(`
presets:
  strip: {rows: 1, cols: 5, mines: 1}
log:
  level: info
  file: ` + logPath + `
`)
	if err := os.WriteFile(configFile, data, 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "autoplay", "--config", configFile, "--difficulty", "strip", "--seed", "3",
		"--director", "random", "--games", "2", "--log-level", "info", "--quiet")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "/2 games (1x5, 1 mines, random director)") {
		t.Errorf("Expected custom preset in summary, got:\n%s", out)
	}
	if strings.Contains(out, "game 1") {
		t.Errorf("Expected --quiet to hide per-game reports, got:\n%s", out)
	}

	logged, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(logged), "game finished") != 2 {
		t.Errorf("Expected two game log entries, got:\n%s", logged)
	}
}

func TestBoardFactory(t *testing.T) {
	settings := game.Settings{Rows: 8, Cols: 8, Mines: 10}
	a := boardFactory(settings, 99, nil)
	b := boardFactory(settings, 99, nil)

	for i := 0; i < 3; i++ {
		boardA, err := a()
		if err != nil {
			t.Fatal(err)
		}
		boardB, _ := b()

		if i == 0 && boardA.Seed() != 99 {
			t.Errorf("Expected first board to use seed 99, got %d", boardA.Seed())
		}
		if boardA.Seed() != boardB.Seed() {
			t.Errorf("Game %d: expected matching seeds, got %d and %d", i, boardA.Seed(), boardB.Seed())
		}
		minesA, minesB := boardA.Mines(), boardB.Mines()
		if len(minesA) != 10 || len(minesB) != 10 {
			t.Fatalf("Game %d: expected 10 mines, got %d and %d", i, len(minesA), len(minesB))
		}
		for j := range minesA {
			if minesA[j] != minesB[j] {
				t.Errorf("Game %d: layouts differ at %v and %v", i, minesA[j], minesB[j])
			}
		}
	}
}

func TestNewDirector(t *testing.T) {
	if director := newDirector(config.DirectorNone, 1); director != nil {
		t.Errorf("Expected no director, got %T", director)
	}
	if _, ok := newDirector(config.DirectorRandom, 1).(*random.Director); !ok {
		t.Errorf("Expected random director")
	}
	if _, ok := newDirector(config.DirectorConstraint, 1).(*constraint.Director); !ok {
		t.Errorf("Expected constraint director")
	}
}

func TestDirectorValue(t *testing.T) {
	var name string
	value := newDirectorValue("none", &name)

	if value.String() != "none" || name != "none" {
		t.Errorf("Expected initial value none, got %q", value.String())
	}
	if err := value.Set("random"); err != nil || name != "random" {
		t.Errorf("Set(random) = %v, name %q", err, name)
	}
	if err := value.Set("psychic"); err == nil {
		t.Errorf("Expected error for unknown director")
	}
	if name != "random" {
		t.Errorf("Expected failed Set to leave value alone, got %q", name)
	}
}
