package constraint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/they4kman/termsweep/director/random"
	"github.com/they4kman/termsweep/game"
	"github.com/they4kman/termsweep/util/collections"
)

// Director deduces safe cells and mines from revealed numbers, and defers to
// Fallback when nothing can be deduced
type Director struct {
	Fallback game.Director
}

// Observation states that numMines of the cells are mines
type Observation struct {
	origin   game.Coord
	numMines int
	cells    collections.Set[game.Coord]
}

func (observation Observation) String() string {
	cells := make([]string, 0, observation.cells.Len())
	for _, cell := range sorted(observation.cells) {
		cells = append(cells, fmt.Sprintf("(%d, %d)", cell.Row, cell.Col))
	}
	return fmt.Sprintf("Obs[(%d, %d), %d ε %s]",
		observation.origin.Row, observation.origin.Col, observation.numMines, strings.Join(cells, ", "))
}

func New(seed int64) *Director {
	return &Director{Fallback: random.New(seed)}
}

func (director *Director) Next(board *game.Board) (game.Move, bool) {
	observations := director.observe(board)

	if move, ok := director.actDeliberate(observations); ok {
		return move, true
	}
	if move, ok := director.actSubsets(observations); ok {
		return move, true
	}

	if director.Fallback == nil {
		return game.Move{}, false
	}
	return director.Fallback.Next(board)
}

// observe builds one observation per revealed number that still borders
// covered cells. Flagged neighbors are taken to be mines.
func (director *Director) observe(board *game.Board) []*Observation {
	var observations []*Observation

	for row := 0; row < board.Rows(); row++ {
		for col := 0; col < board.Cols(); col++ {
			view, _ := board.View(row, col)
			if view.Kind != game.ViewNumber || view.Count == 0 {
				continue
			}

			origin := game.Coord{Row: row, Col: col}
			observation := &Observation{
				origin:   origin,
				numMines: view.Count,
				cells:    collections.NewSet[game.Coord](),
			}

			for _, neighbor := range board.Neighbors(origin) {
				switch state, _ := board.CellState(neighbor.Row, neighbor.Col); state {
				case game.Flagged:
					observation.numMines--
				case game.Covered:
					observation.cells.Add(neighbor)
				}
			}

			// Negative counts mean the player flagged a safe cell; nothing can
			// be trusted around it
			if observation.cells.Len() > 0 && observation.numMines >= 0 {
				observations = append(observations, observation)
			}
		}
	}

	return observations
}

func (director *Director) actDeliberate(observations []*Observation) (game.Move, bool) {
	for _, observation := range observations {
		if move, ok := deduce(observation.cells, observation.numMines); ok {
			return move, true
		}
	}
	return game.Move{}, false
}

// actSubsets compares pairs of observations: when one's cells are contained in
// another's, the remaining cells hold the difference of their mine counts
func (director *Director) actSubsets(observations []*Observation) (game.Move, bool) {
	for _, inner := range observations {
		for _, outer := range observations {
			if inner == outer || !inner.cells.IsSubset(outer.cells) || inner.cells.Equal(outer.cells) {
				continue
			}

			rest := outer.cells.Difference(inner.cells)
			if move, ok := deduce(rest, outer.numMines-inner.numMines); ok {
				return move, true
			}
		}
	}
	return game.Move{}, false
}

func deduce(cells collections.Set[game.Coord], numMines int) (game.Move, bool) {
	if cells.Len() == 0 {
		return game.Move{}, false
	}
	switch numMines {
	case 0:
		return game.Move{Cell: sorted(cells)[0], Action: game.Click}, true
	case cells.Len():
		return game.Move{Cell: sorted(cells)[0], Action: game.RightClick}, true
	}
	return game.Move{}, false
}

func sorted(cells collections.Set[game.Coord]) []game.Coord {
	out := cells.Slice()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}
