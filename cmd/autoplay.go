package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/they4kman/termsweep/config"
	"github.com/they4kman/termsweep/game"
)

var (
	numGames int
	maxMoves int
	quiet    bool
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "Let a director play without the terminal UI",
	Long: `Play one or more games with the configured director and print each
final board. Cells are drawn as "-" covered, "F" flagged, "X" mine,
" " empty, or the number of neighboring mines.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if options.Director == config.DirectorNone {
			return fmt.Errorf("autoplay needs a director (--director random or constraint)")
		}
		if numGames < 1 {
			return fmt.Errorf("--games must be at least 1")
		}

		settings, err := boardSettings(cmd)
		if err != nil {
			return err
		}

		log, closeLog, err := newLogger(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer closeLog()

		seed := startingSeed()
		newBoard := boardFactory(settings, seed, log)
		director := newDirector(options.Director, seed)
		out := cmd.OutOrStdout()

		wins := 0
		for i := 1; i <= numGames; i++ {
			board, err := newBoard()
			if err != nil {
				return err
			}

			moves, err := game.Play(board, director, maxMoves)
			if err != nil {
				return err
			}
			if board.Outcome() == game.Won {
				wins++
			}

			log.WithFields(logrus.Fields{
				"game":    i,
				"seed":    board.Seed(),
				"moves":   moves,
				"outcome": board.Outcome(),
			}).Info("game finished")

			if !quiet {
				fmt.Fprintf(out, "game %d (seed %d): %s after %d moves\n%s\n",
					i, board.Seed(), board.Outcome(), moves, board)
			}
		}

		fmt.Fprintf(out, "won %d/%d games (%s, %s director)\n", wins, numGames, settings, options.Director)
		return nil
	},
}

func init() {
	autoplayCmd.Flags().IntVarP(&numGames, "games", "g", 1, "Number of games to play")
	autoplayCmd.Flags().IntVar(&maxMoves, "max-moves", 0, "Stop each game after this many moves (0 for no limit)")
	autoplayCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print the summary")
}
