// Package ui renders a game.Board in the terminal and turns key presses into
// board actions.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/they4kman/termsweep/game"
)

const (
	// Board is drawn below the status line
	boardTop = 2
	// Each cell is two columns wide so the grid looks square
	cellWidth = 2
)

var (
	styleDefault   = tcell.StyleDefault
	styleCovered   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFlag      = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleMine      = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	styleDetonated = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorRed)
	styleWon       = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleLost      = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleHelp      = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

var numberColors = [9]tcell.Color{
	tcell.ColorDefault,
	tcell.ColorBlue,
	tcell.ColorGreen,
	tcell.ColorRed,
	tcell.ColorNavy,
	tcell.ColorMaroon,
	tcell.ColorTeal,
	tcell.ColorBlack,
	tcell.ColorGray,
}

const helpText = "arrows/hjkl move  space reveal  f flag  c chord  a hint  n new  q quit"

// BoardFactory creates the board for a new game
type BoardFactory func() (*game.Board, error)

// Game owns a board for the duration of the terminal session. All board
// access happens on the goroutine calling Run.
type Game struct {
	screen   tcell.Screen
	newBoard BoardFactory
	director game.Director
	log      logrus.FieldLogger

	board     *game.Board
	cursor    game.Coord
	detonated *game.Coord
	message   string
	quit      bool
}

// New starts the first game. director may be nil, which disables hints.
func New(screen tcell.Screen, newBoard BoardFactory, director game.Director, log logrus.FieldLogger) (*Game, error) {
	g := &Game{
		screen:   screen,
		newBoard: newBoard,
		director: director,
		log:      log,
	}
	if err := g.reset(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) Board() *game.Board {
	return g.board
}

func (g *Game) Cursor() game.Coord {
	return g.cursor
}

func (g *Game) reset() error {
	board, err := g.newBoard()
	if err != nil {
		return err
	}

	g.board = board
	g.cursor = game.Coord{Row: board.Rows() / 2, Col: board.Cols() / 2}
	g.detonated = nil
	g.message = ""

	g.log.WithFields(logrus.Fields{
		"rows":  board.Rows(),
		"cols":  board.Cols(),
		"mines": board.MineCount(),
		"seed":  board.Seed(),
	}).Info("new game")
	return nil
}

// Run draws the board and handles input until the player quits
func (g *Game) Run() error {
	for !g.quit {
		g.Draw()

		switch ev := g.screen.PollEvent().(type) {
		case nil:
			// Screen finalized
			return nil
		case *tcell.EventResize:
			g.screen.Sync()
		case *tcell.EventKey:
			if err := g.HandleKey(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// HandleKey applies a single key press. Errors are only returned when a new
// board cannot be created.
func (g *Game) HandleKey(ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.quit = true
	case tcell.KeyUp:
		g.moveCursor(-1, 0)
	case tcell.KeyDown:
		g.moveCursor(1, 0)
	case tcell.KeyLeft:
		g.moveCursor(0, -1)
	case tcell.KeyRight:
		g.moveCursor(0, 1)
	case tcell.KeyEnter:
		g.apply(game.Move{Cell: g.cursor, Action: game.Click})
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			g.quit = true
		case 'k':
			g.moveCursor(-1, 0)
		case 'j':
			g.moveCursor(1, 0)
		case 'h':
			g.moveCursor(0, -1)
		case 'l':
			g.moveCursor(0, 1)
		case ' ':
			g.apply(game.Move{Cell: g.cursor, Action: game.Click})
		case 'f':
			g.apply(game.Move{Cell: g.cursor, Action: game.RightClick})
		case 'c':
			g.apply(game.Move{Cell: g.cursor, Action: game.MiddleClick})
		case 'a':
			g.hint()
		case 'n':
			return g.reset()
		}
	}
	return nil
}

func (g *Game) Quit() bool {
	return g.quit
}

func (g *Game) moveCursor(dRow, dCol int) {
	row, col := g.cursor.Row+dRow, g.cursor.Col+dCol
	if row >= 0 && row < g.board.Rows() && col >= 0 && col < g.board.Cols() {
		g.cursor = game.Coord{Row: row, Col: col}
	}
}

func (g *Game) hint() {
	if g.director == nil || g.board.Outcome().IsOver() {
		return
	}
	move, ok := g.director.Next(g.board)
	if !ok {
		g.message = "no hint available"
		return
	}
	g.cursor = move.Cell
	g.apply(move)
}

func (g *Game) apply(move game.Move) {
	result, err := g.board.Apply(move)
	if err != nil {
		// The cursor never leaves the board
		g.log.WithError(err).Error("applying move")
		return
	}
	g.message = ""

	if result.Outcome == game.Lost && !result.Empty() {
		detonated := result.Cells[0]
		g.detonated = &detonated
	}
}

// Draw renders the status line, the board and the key help
func (g *Game) Draw() {
	g.screen.Clear()

	g.drawStatus()
	for row := 0; row < g.board.Rows(); row++ {
		for col := 0; col < g.board.Cols(); col++ {
			g.drawCell(game.Coord{Row: row, Col: col})
		}
	}
	drawText(g.screen, 0, boardTop+g.board.Rows()+1, styleHelp, helpText)

	g.screen.Show()
}

func (g *Game) drawStatus() {
	x := drawText(g.screen, 0, 0, styleDefault, fmt.Sprintf("%03d", g.board.RemainingMines()))

	switch g.board.Outcome() {
	case game.Won:
		drawText(g.screen, x, 0, styleWon, "   WIN!")
	case game.Lost:
		drawText(g.screen, x, 0, styleLost, "   LOSE :(")
	default:
		if g.message != "" {
			drawText(g.screen, x, 0, styleHelp, "   "+g.message)
		}
	}
}

func (g *Game) drawCell(coord game.Coord) {
	view, _ := g.board.View(coord.Row, coord.Col)

	symbol, style := cellRune(view)
	if view.Kind == game.ViewMine && g.detonated != nil && *g.detonated == coord {
		style = styleDetonated
	}
	if coord == g.cursor {
		style = style.Reverse(true)
	}

	x, y := coord.Col*cellWidth, boardTop+coord.Row
	g.screen.SetContent(x, y, symbol, nil, style)
}

func cellRune(view game.CellView) (rune, tcell.Style) {
	switch view.Kind {
	case game.ViewFlagged:
		return 'F', styleFlag
	case game.ViewMine:
		return '*', styleMine
	case game.ViewNumber:
		if view.Count == 0 {
			return '.', styleCovered
		}
		return rune('0' + view.Count), styleDefault.Foreground(numberColors[view.Count]).Bold(true)
	default:
		return '#', styleCovered
	}
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) int {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
