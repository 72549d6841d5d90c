package cmd

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/they4kman/termsweep/config"
	"github.com/they4kman/termsweep/director/constraint"
	"github.com/they4kman/termsweep/director/random"
	"github.com/they4kman/termsweep/game"
	"github.com/they4kman/termsweep/ui"
)

var (
	configPath string
	options    = config.Default()

	rows, cols, mines int
	logLevel, logFile string
)

var rootCmd = &cobra.Command{
	Use:   "termsweep",
	Short: "Play Minesweeper in the terminal",
	Long: `termsweep is a Minesweeper game for the terminal, which supports
human- or computer-driven playing.

Run with no arguments to play an easy board
	termsweep

Pick a bigger board
	termsweep --difficulty hard

Let the computer play a few games for you
	termsweep autoplay --games 10
`,
	SilenceUsage:      true,
	PersistentPreRunE: loadOptions,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := boardSettings(cmd)
		if err != nil {
			return err
		}

		log, closeLog, err := newLogger(io.Discard)
		if err != nil {
			return err
		}
		defer closeLog()

		seed := startingSeed()
		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		if err := screen.Init(); err != nil {
			return err
		}
		defer screen.Fini()

		g, err := ui.New(screen, boardFactory(settings, seed, log), newDirector(options.Director, seed), log)
		if err != nil {
			return err
		}
		return g.Run()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadOptions reads the config file, then lets explicitly-set flags override it
func loadOptions(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		// Flags were parsed into options; keep the ones the user set
		if flags.Changed("difficulty") {
			loaded.Difficulty = options.Difficulty
		}
		if flags.Changed("seed") {
			loaded.Seed = options.Seed
		}
		if flags.Changed("director") {
			loaded.Director = options.Director
		}
		options = loaded
	}

	if flags.Changed("log-level") {
		options.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		options.Log.File = logFile
	}

	return options.Validate()
}

// boardSettings resolves the difficulty and applies any dimension overrides
func boardSettings(cmd *cobra.Command) (game.Settings, error) {
	settings, err := options.Resolve(options.Difficulty)
	if err != nil {
		return game.Settings{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("rows") {
		settings.Rows = rows
	}
	if flags.Changed("cols") {
		settings.Cols = cols
	}
	if flags.Changed("mines") {
		settings.Mines = mines
	}

	if err := settings.Validate(); err != nil {
		return game.Settings{}, err
	}
	return settings, nil
}

func startingSeed() int64 {
	if options.Seed != 0 {
		return options.Seed
	}
	return time.Now().UnixNano()
}

// boardFactory creates boards for successive games. The first game uses seed,
// so a game can be replayed by passing its seed back in.
func boardFactory(settings game.Settings, seed int64, log logrus.FieldLogger) ui.BoardFactory {
	seeds := rand.New(rand.NewSource(seed))
	next := seed

	return func() (*game.Board, error) {
		current := next
		next = seeds.Int63()
		return game.New(settings.Rows, settings.Cols, settings.Mines, game.WithSeed(current), game.WithLogger(log))
	}
}

func newDirector(name string, seed int64) game.Director {
	switch name {
	case config.DirectorRandom:
		return random.New(seed)
	case config.DirectorConstraint:
		return constraint.New(seed)
	default:
		return nil
	}
}

// newLogger builds the logger described by the options. Logs go to fallback
// when no file is configured.
func newLogger(fallback io.Writer) (*logrus.Logger, func() error, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(options.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	log.SetLevel(level)

	if options.Log.File == "" {
		log.SetOutput(fallback)
		return log, func() error { return nil }, nil
	}

	file, err := os.OpenFile(options.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	log.SetOutput(file)
	return log, file.Close, nil
}

type directorValue string

func newDirectorValue(val string, p *string) *directorValue {
	*p = val
	return (*directorValue)(p)
}

func (value *directorValue) String() string {
	return string(*value)
}

func (value *directorValue) Set(name string) error {
	for _, director := range config.Directors {
		if director == name {
			*value = directorValue(name)
			return nil
		}
	}
	return fmt.Errorf("invalid director (want one of %s)", strings.Join(config.Directors, ", "))
}

func (value *directorValue) Type() string {
	return "director"
}

func init() {
	flags := rootCmd.PersistentFlags()

	flags.StringVar(&configPath, "config", "", "Path to a YAML config file")
	flags.StringVarP(&options.Difficulty, "difficulty", "d", options.Difficulty,
		"Board preset: easy (8x8, 10 mines), medium (12x12, 25), hard (16x16, 40), or a preset from the config file")
	flags.IntVarP(&rows, "rows", "r", 0, "Number of rows, overriding the difficulty")
	flags.IntVarP(&cols, "cols", "c", 0, "Number of columns, overriding the difficulty")
	flags.IntVarP(&mines, "mines", "m", 0, "Number of mines, overriding the difficulty")
	flags.Int64Var(&options.Seed, "seed", 0, "Seed for mine placement (0 picks one from the clock)")
	flags.Var(newDirectorValue(options.Director, &options.Director), "director",
		`Computer player used for hints and autoplay.
none: no hints
random: reveals random covered cells
constraint: deduces safe cells and mines from revealed numbers, guessing only when stuck`)
	flags.StringVar(&logLevel, "log-level", options.Log.Level, "Log level (debug, info, warning, error)")
	flags.StringVar(&logFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(autoplayCmd)
}
