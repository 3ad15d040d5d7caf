package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"chessbot/experiments"
	"chessbot/experiments/metrics"
	"chessbot/game"
	"chessbot/meta"
	"chessbot/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage:
  chessbot bestmove [-fen FEN] [-clock 60s] [-iterations N] [-duration D] [-v]
  chessbot experiment -name strength|exploration|throughput [-out dir] [-db dir] [-v]`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "bestmove":
		err = bestMove(os.Args[2:], os.Stdout)
	case "experiment":
		err = experiment(os.Args[2:])
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msg(os.Args[1] + " failed")
	}
}

func setupLogging(verbose bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// bestMove searches one position and prints the chosen move in UCI.
func bestMove(args []string, out io.Writer) error {
	flags := flag.NewFlagSet("bestmove", flag.ContinueOnError)
	fen := flags.String("fen", game.StartFEN, "Position to search")
	clock := flags.Duration("clock", meta.START_CLOCK, "Time left on the mover's clock")
	iterations := flags.Int("iterations", 0, "Cap on simulations, 0 for the default")
	duration := flags.Duration("duration", 0, "Fixed search time, overrides -clock")
	exploration := flags.Float64("exploration", searcher.ExplorationConstant, "UCT exploration constant")
	verbose := flags.Bool("v", false, "Debug logging")
	if err := flags.Parse(args); err != nil {
		return err
	}
	setupLogging(*verbose)

	board, err := game.NewBoard(*fen)
	if err != nil {
		return err
	}
	if len(board.LegalMoves(false)) == 0 {
		return fmt.Errorf("no legal moves in %s", *fen)
	}

	mcts := searcher.NewMCTS(
		searcher.WithIterations(*iterations),
		searcher.WithDuration(*duration),
		searcher.WithExplorationConstant(*exploration),
	)
	turnClock := game.NewTurnClock(*clock, 0)
	turnClock.StartTurn()

	move := mcts.SelectMove(board, turnClock)
	_, err = fmt.Fprintln(out, move)
	return err
}

func experiment(args []string) error {
	flags := flag.NewFlagSet("experiment", flag.ContinueOnError)
	name := flags.String("name", "strength", "strength, exploration or throughput")
	out := flags.String("out", "experiments", "Directory for the result files")
	db := flags.String("db", "", "Badger directory to resume from, empty to disable")
	verbose := flags.Bool("v", false, "Debug logging")
	if err := flags.Parse(args); err != nil {
		return err
	}
	setupLogging(*verbose)

	var store *metrics.Store
	if *db != "" {
		var err error
		store, err = metrics.OpenStore(*db)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	switch *name {
	case "strength":
		writer, err := experiments.StrengthExperiment().Run(*out, store)
		if err != nil {
			return err
		}
		log.Info().Str("dir", writer.Dir()).Msg("results written")
	case "exploration":
		writer, err := experiments.ExplorationExperiment().Run(*out, store)
		if err != nil {
			return err
		}
		log.Info().Str("dir", writer.Dir()).Msg("results written")
	case "throughput":
		if _, err := experiments.RunThroughputExperiment(*out, store); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown experiment %q", *name)
	}
	return nil
}
