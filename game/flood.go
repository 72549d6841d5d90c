package game

import "github.com/gammazero/deque"

// flood uncovers origin and, through every zero-count cell it reaches, the
// connected zero region plus its bordering numbered cells. Flagged cells are
// never entered. Returns the cells uncovered, in visiting order.
//
// origin must be a covered, non-mine cell.
func (board *Board) flood(origin Coord) []Coord {
	var visitQueue deque.Deque
	visitQueue.PushBack(origin)

	uncovered := make([]Coord, 0, 1)

	for visitQueue.Len() > 0 {
		coord := visitQueue.PopFront().(Coord)

		// A cell may be queued by several zero neighbors before it is visited
		if board.stateAt(coord) != Covered {
			continue
		}

		board.setState(coord, Revealed)
		board.revealedSafeCount++
		uncovered = append(uncovered, coord)

		// Neighbors of a zero cell are never mines
		if board.adjacency[coord.Row][coord.Col] == 0 {
			board.sendNeighbors(coord, func(neighbor Coord) {
				if board.stateAt(neighbor) == Covered {
					visitQueue.PushBack(neighbor)
				}
			})
		}
	}

	return uncovered
}
