package game

import (
	"fmt"
	"strings"
)

type Difficulty int

const (
	Easy Difficulty = iota + 1
	Medium
	Hard
)

// Settings are the dimensions and mine count of a board
type Settings struct {
	Rows  int `yaml:"rows"`
	Cols  int `yaml:"cols"`
	Mines int `yaml:"mines"`
}

func (settings Settings) Validate() error {
	return validateConfig(settings.Rows, settings.Cols, settings.Mines)
}

func (settings Settings) String() string {
	return fmt.Sprintf("%dx%d, %d mines", settings.Rows, settings.Cols, settings.Mines)
}

var difficultySettings = map[Difficulty]Settings{
	Easy:   {Rows: 8, Cols: 8, Mines: 10},
	Medium: {Rows: 12, Cols: 12, Mines: 25},
	Hard:   {Rows: 16, Cols: 16, Mines: 40},
}

var difficultyNames = map[string]Difficulty{
	"easy":   Easy,
	"medium": Medium,
	"hard":   Hard,
}

// Difficulties lists the presets in increasing order
var Difficulties = []Difficulty{Easy, Medium, Hard}

func (difficulty Difficulty) Settings() (Settings, bool) {
	settings, ok := difficultySettings[difficulty]
	return settings, ok
}

func (difficulty Difficulty) String() string {
	for name, d := range difficultyNames {
		if d == difficulty {
			return name
		}
	}
	return fmt.Sprint(int(difficulty))
}

// ParseDifficulty accepts a preset name or its menu number (1-3)
func ParseDifficulty(value string) (Difficulty, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if difficulty, ok := difficultyNames[value]; ok {
		return difficulty, nil
	}
	for _, difficulty := range Difficulties {
		if value == fmt.Sprint(int(difficulty)) {
			return difficulty, nil
		}
	}
	return 0, fmt.Errorf("invalid difficulty %q (want easy, medium or hard)", value)
}
