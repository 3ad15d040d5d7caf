package experiments

import (
	"cmp"
	"time"

	"chessbot/experiments/metrics"
	"chessbot/meta"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// ThroughputExperiment self-plays one game per time budget, both sides with
// the same config for similar game length.
func ThroughputExperiment() Experiment {
	const Duration = 1 * time.Millisecond
	configs := []metrics.AgentConfig{
		{ID: 1, Duration: Duration},
		{ID: 2, Duration: Duration * 2},
		{ID: 3, Duration: Duration * 5},
		{ID: 4, Duration: Duration * 10},
		{ID: 5, Duration: Duration * 20},
		{ID: 6, Duration: Duration * 50},
		{ID: 7, Duration: Duration * 100},
	}
	matchUps := make([][2]metrics.AgentConfig, len(configs))
	for i, config := range configs {
		matchUps[i] = [2]metrics.AgentConfig{config, config}
	}

	return Experiment{
		Name:     "throughput",
		Configs:  configs,
		MatchUps: matchUps,
		NumGames: 1,
		MaxPlies: meta.MAX_PLIES,
		Seed:     meta.SEED,
	}
}

type Throughput struct {
	Agent      int // AgentConfig.ID
	Moves      int
	Iterations int
	Duration   time.Duration // Total search time
}

// PerSecond is the average number of iterations per second of search.
func (t Throughput) PerSecond() float64 {
	if t.Duration <= 0 {
		return 0
	}
	return float64(t.Iterations) / t.Duration.Seconds()
}

// RunThroughputExperiment plays the throughput experiment and logs the
// iterations per second of each config.
func RunThroughputExperiment(root string, store *metrics.Store) ([]Throughput, error) {
	x := ThroughputExperiment()
	games, moves, err := x.collect(store)
	if err != nil {
		return nil, err
	}
	if _, err := writeResults(root, x.Name, x.Configs, games, moves); err != nil {
		return nil, err
	}

	throughputs := ComputeThroughput(games, moves)
	for _, t := range throughputs {
		log.Info().
			Int("agent", t.Agent).
			Int("moves", t.Moves).
			Float64("iterations_per_second", t.PerSecond()).
			Msg("throughput")
	}
	return throughputs, nil
}

// ComputeThroughput sums the search metrics of every move per agent config,
// in config ID order.
func ComputeThroughput(games []metrics.GameRecord, moves []metrics.MoveRecord) []Throughput {
	type sides struct{ white, black int }
	agents := make(map[int]sides, len(games))
	for _, g := range games {
		agents[g.ID] = sides{g.White, g.Black}
	}

	byAgent := map[int]*Throughput{}
	for _, m := range moves {
		s, ok := agents[m.Game]
		if !ok {
			continue
		}
		id := s.white
		if m.Player == "black" {
			id = s.black
		}
		t, ok := byAgent[id]
		if !ok {
			t = &Throughput{Agent: id}
			byAgent[id] = t
		}
		t.Moves++
		t.Iterations += m.Iterations
		t.Duration += m.Duration
	}

	throughputs := make([]Throughput, 0, len(byAgent))
	for _, t := range byAgent {
		throughputs = append(throughputs, *t)
	}
	slices.SortFunc(throughputs, func(a, b Throughput) int {
		return cmp.Compare(a.Agent, b.Agent)
	})
	return throughputs
}
