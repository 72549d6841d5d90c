package game

type CellState int
type Outcome int

const (
	Covered CellState = iota
	Flagged
	Revealed
)

var cellStateNames = map[CellState]string{
	Covered:  "covered",
	Flagged:  "flagged",
	Revealed: "revealed",
}

func (state CellState) String() string {
	if name, ok := cellStateNames[state]; ok {
		return name
	}
	return "unknown"
}

const (
	InProgress Outcome = iota
	Won
	Lost
)

func (outcome Outcome) String() string {
	switch outcome {
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// IsOver reports whether the board is frozen
func (outcome Outcome) IsOver() bool {
	return outcome != InProgress
}

// ViewKind is what a renderer should draw for a single cell
type ViewKind int

const (
	ViewCovered ViewKind = iota
	ViewFlagged
	ViewNumber
	ViewMine
)

type CellView struct {
	Kind ViewKind
	// Adjacent mine count; only meaningful for ViewNumber
	Count int
}

const maxNeighbors = 8
