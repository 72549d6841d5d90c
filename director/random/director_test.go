package random

import (
	"testing"

	"github.com/they4kman/termsweep/game"
)

func TestNextPicksCoveredCells(t *testing.T) {
	board, err := game.NewWithMines(4, 4, []game.Coord{{Row: 0, Col: 0}, {Row: 3, Col: 3}})
	if err != nil {
		t.Fatal(err)
	}
	_ = board.ToggleFlag(0, 0)
	if _, err := board.Reveal(1, 1); err != nil {
		t.Fatal(err)
	}

	director := New(1)
	for i := 0; i < 50; i++ {
		move, ok := director.Next(board)
		if !ok {
			t.Fatalf("Expected a move")
		}
		if move.Action != game.Click {
			t.Errorf("Expected a reveal, got %v", move.Action)
		}
		state, _ := board.CellState(move.Cell.Row, move.Cell.Col)
		if state != game.Covered {
			t.Errorf("Picked %v in state %v", move.Cell, state)
		}
	}
}

func TestPlayUntilOver(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		board, err := game.NewFromDifficulty(game.Easy, game.WithSeed(seed))
		if err != nil {
			t.Fatal(err)
		}

		moves, err := game.Play(board, New(seed), 0)
		if err != nil {
			t.Fatal(err)
		}
		if moves == 0 {
			t.Errorf("seed %d: expected at least one move", seed)
		}
		if !board.Outcome().IsOver() {
			t.Errorf("seed %d: expected the game to end, got %v", seed, board.Outcome())
		}
	}
}

func TestNoCandidates(t *testing.T) {
	board, _ := game.NewWithMines(1, 2, []game.Coord{{Row: 0, Col: 1}})
	_ = board.ToggleFlag(0, 0)
	_ = board.ToggleFlag(0, 1)

	if _, ok := New(1).Next(board); ok {
		t.Errorf("Expected no move when every cell is flagged")
	}
}
