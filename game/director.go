package game

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

type Action int

const (
	Click Action = iota
	RightClick
	MiddleClick
)

func (action Action) String() string {
	switch action {
	case Click:
		return "reveal"
	case RightClick:
		return "flag"
	case MiddleClick:
		return "chord"
	default:
		return "unknown"
	}
}

// Move is a single player action on a cell
type Move struct {
	Cell   Coord
	Action Action
}

func (move Move) String() string {
	return fmt.Sprintf("%s %v", move.Action, move.Cell)
}

// Director plays the game in place of a human
type Director interface {
	// Next picks the next move for the board, or returns false when it has
	// nothing to do
	Next(board *Board) (Move, bool)
}

// Apply performs move on the board. Flag moves produce an empty result.
func (board *Board) Apply(move Move) (RevealResult, error) {
	switch move.Action {
	case Click:
		return board.Reveal(move.Cell.Row, move.Cell.Col)
	case RightClick:
		if err := board.ToggleFlag(move.Cell.Row, move.Cell.Col); err != nil {
			return RevealResult{}, err
		}
		return RevealResult{Outcome: board.outcome}, nil
	case MiddleClick:
		return board.Chord(move.Cell.Row, move.Cell.Col)
	default:
		return RevealResult{}, fmt.Errorf("unknown action %d", int(move.Action))
	}
}

// Play lets director make moves until the game is over, the director gives
// up, or maxMoves moves have been made (maxMoves <= 0 means no limit).
// Returns the number of moves made.
func Play(board *Board, director Director, maxMoves int) (int, error) {
	moves := 0
	for board.canPlay() && (maxMoves <= 0 || moves < maxMoves) {
		move, ok := director.Next(board)
		if !ok {
			break
		}

		result, err := board.Apply(move)
		if err != nil {
			return moves, fmt.Errorf("move %d (%v): %w", moves+1, move, err)
		}
		moves++

		board.log.WithFields(logrus.Fields{
			"move":     move,
			"revealed": len(result.Cells),
		}).Debug("director moved")
	}
	return moves, nil
}
