package experiments

import (
	"errors"
	"fmt"
	"time"

	"chessbot/engine"
	"chessbot/experiments/metrics"
	"chessbot/game"
	"chessbot/meta"
	"chessbot/searcher"
	"chessbot/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const TimeBudget = 10 * time.Millisecond

// Openings is the pool of starting positions, drawn per game with the
// experiment seed.
var Openings = []string{
	game.StartFEN,
	"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",     // 1.e4 e5
	"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",     // Sicilian
	"rnbqkbnr/pppp1ppp/4p3/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",     // French
	"rnbqkbnr/ppp1pppp/8/3p4/2PP4/8/PP2PPPP/RNBQKBNR b KQkq - 0 2",     // Queen's Gambit
	"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3", // Italian
	"rnbqkb1r/pppppp1p/5np1/8/2PP4/8/PP2PPPP/RNBQKBNR w KQkq - 0 3",    // King's Indian
}

var budgetConfigs = []metrics.AgentConfig{
	{ID: 1, Duration: TimeBudget / 4},
	{ID: 2, Duration: TimeBudget / 2},
	{ID: 3, Duration: TimeBudget},
	{ID: 4, Duration: TimeBudget * 2},
	{ID: 5, Duration: TimeBudget * 4},
}

// Experiment is a set of match-ups between agent configs, each played
// meta.NUM_GAMES times.
type Experiment struct {
	Name     string
	Configs  []metrics.AgentConfig
	MatchUps [][2]metrics.AgentConfig
	NumGames int
	MaxPlies int
	Seed     uint64
}

// StrengthExperiment pairs agents with growing time budgets against the
// baseline budget.
func StrengthExperiment() Experiment {
	baseline := metrics.AgentConfig{ID: 0, Duration: TimeBudget}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range budgetConfigs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}

	return Experiment{
		Name:     "budget_to_strength",
		Configs:  append([]metrics.AgentConfig{baseline}, budgetConfigs...),
		MatchUps: matchUps,
		NumGames: meta.NUM_GAMES,
		MaxPlies: meta.MAX_PLIES,
		Seed:     meta.SEED,
	}
}

// ExplorationExperiment pairs agents with different exploration constants
// against the default one at the same budget.
func ExplorationExperiment() Experiment {
	baseline := metrics.AgentConfig{ID: 0, Duration: TimeBudget, Exploration: searcher.ExplorationConstant}
	configs := []metrics.AgentConfig{
		{ID: 1, Duration: TimeBudget, Exploration: 0.5},
		{ID: 2, Duration: TimeBudget, Exploration: 1.0},
		{ID: 3, Duration: TimeBudget, Exploration: 2.0},
		{ID: 4, Duration: TimeBudget, Exploration: 3.0},
	}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}

	return Experiment{
		Name:     "exploration",
		Configs:  append([]metrics.AgentConfig{baseline}, configs...),
		MatchUps: matchUps,
		NumGames: meta.NUM_GAMES,
		MaxPlies: meta.MAX_PLIES,
		Seed:     meta.SEED,
	}
}

// Run plays every game of the experiment and writes the results under root.
// Games already in store (if not nil) are reused instead of replayed.
func (x Experiment) Run(root string, store *metrics.Store) (*metrics.Writer, error) {
	gameRecords, moveRecords, err := x.collect(store)
	if err != nil {
		return nil, err
	}
	return writeResults(root, x.Name, x.Configs, gameRecords, moveRecords)
}

func (x Experiment) collect(store *metrics.Store) ([]metrics.GameRecord, []metrics.MoveRecord, error) {
	rng := rand.New(rand.NewSource(x.Seed))

	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", x.Name)

	for mi, matchup := range x.MatchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(x.MatchUps), matchup[0], matchup[1])

		for i := 0; i < x.NumGames; i++ {
			count++
			// Drawn even for stored games so the sequence does not depend on resumption
			fen := Openings[rng.Intn(len(Openings))]
			white, black := matchup[0], matchup[1]
			if i%2 == 1 {
				white, black = black, white
			}

			if store != nil {
				gameRecord, moves, err := store.Game(x.Name, count)
				if err == nil {
					log.Info().Msgf("reusing stored game %d", count)
					gameRecords = append(gameRecords, gameRecord)
					moveRecords = append(moveRecords, moves...)
					continue
				}
				if !errors.Is(err, metrics.ErrNoRecord) {
					return nil, nil, fmt.Errorf("failed to load game %d: %w", count, err)
				}
			}

			log.Info().Msgf("starting matchup %d of %d game %d of %d...", mi+1, len(x.MatchUps), i+1, x.NumGames)

			winner, gameMetric, moveMetrics, err := runGame(white, black, fen, x.MaxPlies)
			if err != nil {
				return nil, nil, err
			}
			gameRecord := metrics.GameRecord{
				ID:         count,
				White:      white.ID,
				Black:      black.ID,
				GameMetric: gameMetric,
			}
			moves := make([]metrics.MoveRecord, len(moveMetrics))
			for j, mm := range moveMetrics {
				moves[j] = metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				}
			}
			gameRecords = append(gameRecords, gameRecord)
			moveRecords = append(moveRecords, moves...)

			if store != nil {
				if err := store.SaveGame(x.Name, gameRecord, moves); err != nil {
					return nil, nil, fmt.Errorf("failed to store game %d: %w", count, err)
				}
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %q", mi+1, len(x.MatchUps), i+1, winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(x.MatchUps))
	}

	log.Info().Msgf("completed %s experiment", x.Name)

	return gameRecords, moveRecords, nil
}

func writeResults(root, name string, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) (*metrics.Writer, error) {
	// Store experiment metadata
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return nil, err
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	if err := writer.WriteGameRecords(games); err != nil {
		return nil, err
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moves); err != nil {
		return nil, err
	}
	log.Info().Msg("stored move records")

	return writer, nil
}

// runGame executes a single game between two agents and returns the winner
func runGame(white, black metrics.AgentConfig, fen string, maxPlies int) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	agents := [2]agent.Agent{
		agent.NewEvaluationAgent(createMCTS(white)),
		agent.NewEvaluationAgent(createMCTS(black)),
	}
	options := []engine.Option{
		engine.WithStartFEN(fen),
		engine.WithMaxPlies(maxPlies),
	}
	// Both sides share one clock setting per game
	if white.Clock > 0 {
		options = append(options, engine.WithClock(white.Clock, white.Increment))
	}

	e, err := engine.LocalEngine(agents, options...)
	if err != nil {
		return "", metrics.GameMetric{}, nil, fmt.Errorf("failed to create engine: %w", err)
	}

	winner, gameMetric, moveMetrics := e.Run()

	return winner, gameMetric, moveMetrics, nil
}

func createMCTS(config metrics.AgentConfig) *searcher.MCTS {
	options := []searcher.Option{}

	if config.Iterations > 0 {
		options = append(options, searcher.WithIterations(config.Iterations))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Exploration > 0 {
		options = append(options, searcher.WithExplorationConstant(config.Exploration))
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewMCTS(options...)
}
