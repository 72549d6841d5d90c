package game

import (
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/they4kman/termsweep/util/collections"
)

// Board owns the mine layout and the player-visible state of a single game.
//
// A Board is not safe for concurrent use; callers must serialize Reveal and
// ToggleFlag (e.g. by confining the Board to one event loop).
type Board struct {
	rows, cols int
	mineCount  int

	mines     collections.Set[Coord]
	adjacency [][]int
	cells     [][]CellState

	revealedSafeCount int
	numFlags          int
	outcome           Outcome

	seed int64
	rand *rand.Rand
	log  logrus.FieldLogger
}

type boardOptions struct {
	seed    int64
	hasSeed bool
	rand    *rand.Rand
	log     logrus.FieldLogger
}

type Option func(*boardOptions)

// WithSeed makes mine placement reproducible
func WithSeed(seed int64) Option {
	return func(opts *boardOptions) {
		opts.seed = seed
		opts.hasSeed = true
	}
}

// WithRand places mines using the given source. Takes precedence over WithSeed.
func WithRand(r *rand.Rand) Option {
	return func(opts *boardOptions) {
		opts.rand = r
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(opts *boardOptions) {
		opts.log = log
	}
}

func discardLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func validateConfig(rows, cols, mineCount int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d must be positive", ErrInvalidConfiguration, rows, cols)
	}
	if mineCount < 0 || mineCount >= rows*cols {
		return fmt.Errorf("%w: %d mines on a %dx%d board (want 0 <= mines < %d)",
			ErrInvalidConfiguration, mineCount, rows, cols, rows*cols)
	}
	return nil
}

func createBoard(rows, cols, mineCount int, opts []Option) *Board {
	options := boardOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.log == nil {
		options.log = discardLogger()
	}
	if !options.hasSeed {
		options.seed = time.Now().UnixNano()
	}
	if options.rand == nil {
		options.rand = rand.New(rand.NewSource(options.seed))
	}

	board := &Board{
		rows:      rows,
		cols:      cols,
		mineCount: mineCount,
		mines:     make(collections.Set[Coord], mineCount),
		adjacency: make([][]int, rows),
		cells:     make([][]CellState, rows),
		outcome:   InProgress,
		seed:      options.seed,
		rand:      options.rand,
		log:       options.log,
	}
	for row := 0; row < rows; row++ {
		board.adjacency[row] = make([]int, cols)
		board.cells[row] = make([]CellState, cols)
	}
	return board
}

// New creates a board with mineCount mines placed uniformly at random
func New(rows, cols, mineCount int, opts ...Option) (*Board, error) {
	if err := validateConfig(rows, cols, mineCount); err != nil {
		return nil, err
	}

	board := createBoard(rows, cols, mineCount, opts)

	// Store cell indexes, to shuffle and take the first mineCount as mines
	cellIndexes := make([]int, rows*cols)
	for idx := range cellIndexes {
		cellIndexes[idx] = idx
	}
	board.rand.Shuffle(len(cellIndexes), func(i, j int) {
		cellIndexes[i], cellIndexes[j] = cellIndexes[j], cellIndexes[i]
	})

	mines := make([]Coord, mineCount)
	for i := 0; i < mineCount; i++ {
		mines[i] = Coord{Row: cellIndexes[i] / cols, Col: cellIndexes[i] % cols}
	}
	board.fillMines(mines)

	board.log.WithFields(logrus.Fields{
		"rows":  rows,
		"cols":  cols,
		"mines": mineCount,
		"seed":  board.seed,
	}).Debug("created board")

	return board, nil
}

// NewWithMines creates a board with a fixed mine layout
func NewWithMines(rows, cols int, mines []Coord, opts ...Option) (*Board, error) {
	if err := validateConfig(rows, cols, len(mines)); err != nil {
		return nil, err
	}

	board := createBoard(rows, cols, len(mines), opts)

	seen := make(collections.Set[Coord], len(mines))
	for _, mine := range mines {
		if !board.inBounds(mine) {
			return nil, fmt.Errorf("%w: mine at %v is outside the %dx%d board", ErrInvalidConfiguration, mine, rows, cols)
		}
		if seen.Contains(mine) {
			return nil, fmt.Errorf("%w: duplicate mine at %v", ErrInvalidConfiguration, mine)
		}
		seen.Add(mine)
	}
	board.fillMines(mines)

	board.log.WithFields(logrus.Fields{
		"rows":  rows,
		"cols":  cols,
		"mines": len(mines),
	}).Debug("created board from fixed layout")

	return board, nil
}

// NewFromDifficulty creates a randomly-mined board sized by a preset
func NewFromDifficulty(difficulty Difficulty, opts ...Option) (*Board, error) {
	settings, ok := difficulty.Settings()
	if !ok {
		return nil, fmt.Errorf("%w: unknown difficulty %d", ErrInvalidConfiguration, int(difficulty))
	}
	return New(settings.Rows, settings.Cols, settings.Mines, opts...)
}

// fillMines records the mines and increments the count of every neighbor
func (board *Board) fillMines(mines []Coord) {
	for _, mine := range mines {
		board.mines.Add(mine)
		board.sendNeighbors(mine, func(neighbor Coord) {
			board.adjacency[neighbor.Row][neighbor.Col]++
		})
	}
}

func (board *Board) Rows() int {
	return board.rows
}

func (board *Board) Cols() int {
	return board.cols
}

func (board *Board) MineCount() int {
	return board.mineCount
}

// Seed returns the seed used for mine placement. Meaningless for boards
// built with WithRand or NewWithMines.
func (board *Board) Seed() int64 {
	return board.seed
}

func (board *Board) Outcome() Outcome {
	return board.outcome
}

func (board *Board) RevealedSafeCount() int {
	return board.revealedSafeCount
}

func (board *Board) SafeCellCount() int {
	return board.rows*board.cols - board.mineCount
}

func (board *Board) FlagCount() int {
	return board.numFlags
}

// RemainingMines is the mine counter shown to the player. Goes negative when
// more cells are flagged than there are mines.
func (board *Board) RemainingMines() int {
	return board.mineCount - board.numFlags
}

// Mines returns the mine coordinates in row-major order
func (board *Board) Mines() []Coord {
	mines := board.mines.Slice()
	sortCoords(mines)
	return mines
}

func (board *Board) inBounds(coord Coord) bool {
	return coord.Row >= 0 && coord.Col >= 0 && coord.Row < board.rows && coord.Col < board.cols
}

func (board *Board) checkBounds(coord Coord) error {
	if !board.inBounds(coord) {
		return fmt.Errorf("%w: %v on a %dx%d board", ErrOutOfBounds, coord, board.rows, board.cols)
	}
	return nil
}

func (board *Board) stateAt(coord Coord) CellState {
	return board.cells[coord.Row][coord.Col]
}

func (board *Board) setState(coord Coord, state CellState) {
	board.cells[coord.Row][coord.Col] = state
}

func (board *Board) IsMine(row, col int) (bool, error) {
	coord := Coord{Row: row, Col: col}
	if err := board.checkBounds(coord); err != nil {
		return false, err
	}
	return board.mines.Contains(coord), nil
}

// AdjacencyCount returns the number of mines among the cell's neighbors. For a
// mine cell this is the number of neighboring mines, which is not shown to
// the player.
func (board *Board) AdjacencyCount(row, col int) (int, error) {
	coord := Coord{Row: row, Col: col}
	if err := board.checkBounds(coord); err != nil {
		return 0, err
	}
	return board.adjacency[row][col], nil
}

func (board *Board) CellState(row, col int) (CellState, error) {
	coord := Coord{Row: row, Col: col}
	if err := board.checkBounds(coord); err != nil {
		return Covered, err
	}
	return board.stateAt(coord), nil
}

// View returns what the renderer should draw for the cell
func (board *Board) View(row, col int) (CellView, error) {
	coord := Coord{Row: row, Col: col}
	if err := board.checkBounds(coord); err != nil {
		return CellView{}, err
	}
	return board.view(coord), nil
}

func (board *Board) view(coord Coord) CellView {
	switch board.stateAt(coord) {
	case Flagged:
		return CellView{Kind: ViewFlagged}
	case Revealed:
		if board.mines.Contains(coord) {
			return CellView{Kind: ViewMine}
		}
		return CellView{Kind: ViewNumber, Count: board.adjacency[coord.Row][coord.Col]}
	default:
		return CellView{Kind: ViewCovered}
	}
}

func (board *Board) canPlay() bool {
	return board.outcome == InProgress
}

// Reveal uncovers the cell at (row, col). Flagged and already-revealed cells
// are left alone, as is every cell once the game is over.
func (board *Board) Reveal(row, col int) (RevealResult, error) {
	coord := Coord{Row: row, Col: col}
	if err := board.checkBounds(coord); err != nil {
		return RevealResult{}, err
	}

	result := RevealResult{Outcome: board.outcome}
	if !board.canPlay() {
		return result, nil
	}

	switch board.stateAt(coord) {
	case Flagged, Revealed:
		return result, nil
	}

	if board.mines.Contains(coord) {
		result.Cells = board.lose(coord)
	} else {
		result.Cells = board.flood(coord)
		if board.revealedSafeCount == board.SafeCellCount() {
			board.win()
		}
	}
	result.Outcome = board.outcome

	board.log.WithFields(logrus.Fields{
		"cell":     coord,
		"revealed": len(result.Cells),
		"outcome":  result.Outcome,
	}).Debug("revealed cell")

	return result, nil
}

// ToggleFlag flags a covered cell or unflags a flagged one. Revealed cells
// cannot be flagged.
func (board *Board) ToggleFlag(row, col int) error {
	coord := Coord{Row: row, Col: col}
	if err := board.checkBounds(coord); err != nil {
		return err
	}
	if !board.canPlay() {
		return nil
	}

	switch board.stateAt(coord) {
	case Covered:
		board.setState(coord, Flagged)
		board.numFlags++
	case Flagged:
		board.setState(coord, Covered)
		board.numFlags--
	}
	return nil
}

// Chord reveals every covered neighbor of a revealed number once as many of
// its neighbors are flagged as it counts mines. Flags are trusted, so a
// misplaced flag loses the game.
func (board *Board) Chord(row, col int) (RevealResult, error) {
	coord := Coord{Row: row, Col: col}
	if err := board.checkBounds(coord); err != nil {
		return RevealResult{}, err
	}

	result := RevealResult{Outcome: board.outcome}
	if !board.canPlay() || board.stateAt(coord) != Revealed {
		return result, nil
	}

	numFlagged := 0
	var covered []Coord
	board.sendNeighbors(coord, func(neighbor Coord) {
		switch board.stateAt(neighbor) {
		case Flagged:
			numFlagged++
		case Covered:
			covered = append(covered, neighbor)
		}
	})
	if numFlagged != board.adjacency[row][col] {
		return result, nil
	}

	for _, neighbor := range covered {
		revealed, err := board.Reveal(neighbor.Row, neighbor.Col)
		if err != nil {
			return result, err
		}
		result.Cells = append(result.Cells, revealed.Cells...)
		if revealed.Outcome.IsOver() {
			break
		}
	}
	result.Outcome = board.outcome
	return result, nil
}

func (board *Board) win() {
	board.outcome = Won
	board.log.WithField("seed", board.seed).Info("game won")
}

// lose discloses every mine, including flagged ones, and returns them with
// the detonated mine first
func (board *Board) lose(detonated Coord) []Coord {
	board.outcome = Lost

	revealed := []Coord{detonated}
	board.setState(detonated, Revealed)

	for _, mine := range board.Mines() {
		switch board.stateAt(mine) {
		case Revealed:
			continue
		case Flagged:
			board.numFlags--
		}
		board.setState(mine, Revealed)
		revealed = append(revealed, mine)
	}

	board.log.WithFields(logrus.Fields{
		"cell": detonated,
		"seed": board.seed,
	}).Info("game lost")

	return revealed
}

// String renders the player-visible grid, one row per line: "-" covered,
// "F" flagged, "X" mine, " " empty and digits for counts
func (board *Board) String() string {
	var out strings.Builder
	for row := 0; row < board.rows; row++ {
		for col := 0; col < board.cols; col++ {
			out.WriteString(board.view(Coord{Row: row, Col: col}).Symbol())
		}
		out.WriteByte('\n')
	}
	return out.String()
}

// Symbol is the single-character text rendering of a cell
func (view CellView) Symbol() string {
	switch view.Kind {
	case ViewFlagged:
		return "F"
	case ViewMine:
		return "X"
	case ViewNumber:
		if view.Count == 0 {
			return " "
		}
		return strconv.Itoa(view.Count)
	default:
		return "-"
	}
}
