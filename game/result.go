package game

// RevealResult describes what a single Reveal changed
type RevealResult struct {
	// Cells uncovered by this call. On a loss, every mine, detonated one first.
	Cells   []Coord
	Outcome Outcome
}

// Empty reports whether the call changed nothing
func (result RevealResult) Empty() bool {
	return len(result.Cells) == 0
}
