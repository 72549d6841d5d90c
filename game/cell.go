package game

import (
	"fmt"
	"sort"
)

// Coord identifies a single cell of the board
type Coord struct {
	Row, Col int
}

func (coord Coord) String() string {
	return fmt.Sprintf("Cell(%d, %d)", coord.Row, coord.Col)
}

func (coord Coord) offset(dRow, dCol int) Coord {
	return Coord{Row: coord.Row + dRow, Col: coord.Col + dCol}
}

var neighborOffsets = [maxNeighbors][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// sendNeighbors calls visit for each in-bounds neighbor of coord
func (board *Board) sendNeighbors(coord Coord, visit func(Coord)) {
	for _, off := range neighborOffsets {
		neighbor := coord.offset(off[0], off[1])
		if board.inBounds(neighbor) {
			visit(neighbor)
		}
	}
}

// Neighbors returns the in-bounds neighbors of coord (up to 8). Returns
// nil if coord itself is outside the board.
func (board *Board) Neighbors(coord Coord) []Coord {
	if !board.inBounds(coord) {
		return nil
	}
	neighbors := make([]Coord, 0, maxNeighbors)
	board.sendNeighbors(coord, func(neighbor Coord) {
		neighbors = append(neighbors, neighbor)
	})
	return neighbors
}

func sortCoords(coords []Coord) {
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Row != coords[j].Row {
			return coords[i].Row < coords[j].Row
		}
		return coords[i].Col < coords[j].Col
	})
}
