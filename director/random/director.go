package random

import (
	"math/rand"

	"github.com/they4kman/termsweep/game"
)

// Director reveals a random covered, unflagged cell on every move
type Director struct {
	rand *rand.Rand
}

func New(seed int64) *Director {
	return &Director{rand: rand.New(rand.NewSource(seed))}
}

func (director *Director) Next(board *game.Board) (game.Move, bool) {
	candidates := make([]game.Coord, 0, board.Rows()*board.Cols())
	for row := 0; row < board.Rows(); row++ {
		for col := 0; col < board.Cols(); col++ {
			if state, _ := board.CellState(row, col); state == game.Covered {
				candidates = append(candidates, game.Coord{Row: row, Col: col})
			}
		}
	}

	if len(candidates) == 0 {
		return game.Move{}, false
	}

	cell := candidates[director.rand.Intn(len(candidates))]
	return game.Move{Cell: cell, Action: game.Click}, true
}
