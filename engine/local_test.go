package engine

import (
	"testing"

	"chessbot/experiments/metrics"
	"chessbot/game"
	"chessbot/searcher"
	"chessbot/searcher/agent"

	"github.com/stretchr/testify/require"
)

// scriptedAgent plays a fixed list of UCI moves.
type scriptedAgent struct {
	moves []string
	next  int
}

func script(moves ...string) *scriptedAgent {
	return &scriptedAgent{moves: moves}
}

func (a *scriptedAgent) FindMove(pos game.Position, clock game.Clock) (game.Move, metrics.SearchMetric) {
	if a.next >= len(a.moves) {
		panic("script exhausted")
	}
	move, err := pos.(*game.Board).ParseMove(a.moves[a.next])
	if err != nil {
		panic(err)
	}
	a.next++
	return move, metrics.SearchMetric{Iterations: a.next}
}

func mustEngine(t *testing.T, agents [2]agent.Agent, options ...Option) *Local {
	t.Helper()
	e, err := LocalEngine(agents, options...)
	require.NoError(t, err)
	return e
}

func TestLocalEngine(t *testing.T) {
	t.Run("rejects an invalid start position", func(t *testing.T) {
		_, err := LocalEngine([2]agent.Agent{script(), script()}, WithStartFEN("not a fen"))
		require.ErrorIs(t, err, game.ErrInvalidFEN)
	})

	t.Run("panics without two agents", func(t *testing.T) {
		require.Panics(t, func() {
			LocalEngine([2]agent.Agent{script(), nil})
		})
	})
}

func TestLocalRun(t *testing.T) {
	t.Run("checkmate", func(t *testing.T) {
		e := mustEngine(t, [2]agent.Agent{
			script("f2f3", "g2g4"),
			script("e7e5", "d8h4"),
		})

		winner, gameMetric, moveMetrics := e.Run()
		require.Equal(t, "black", winner)
		require.Equal(t, "black", gameMetric.Winner)
		require.Equal(t, "Checkmate", gameMetric.Method)
		require.Equal(t, 4, gameMetric.TotalMoves)
		require.Equal(t, game.StartFEN, gameMetric.StartFEN)
		require.Contains(t, gameMetric.PGN, "0-1")
		require.False(t, gameMetric.EndTime.Before(gameMetric.StartTime))

		require.Len(t, moveMetrics, 4)
		require.Equal(t, metrics.MoveMetric{
			Ply:          4,
			Player:       "black",
			Move:         "d8h4",
			SearchMetric: metrics.SearchMetric{Iterations: 2},
		}, moveMetrics[3])
	})

	t.Run("claims a threefold repetition", func(t *testing.T) {
		e := mustEngine(t, [2]agent.Agent{
			script("g1f3", "f3g1", "g1f3", "f3g1"),
			script("g8f6", "f6g8", "g8f6", "f6g8"),
		})

		winner, gameMetric, _ := e.Run()
		require.Empty(t, winner, "Repetition should be a draw")
		require.Equal(t, "ThreefoldRepetition", gameMetric.Method)
		require.Equal(t, 8, gameMetric.TotalMoves)
		require.Contains(t, gameMetric.PGN, "1/2-1/2")
	})

	t.Run("stops at the ply limit", func(t *testing.T) {
		e := mustEngine(t, [2]agent.Agent{
			script("g1f3", "f3g1"),
			script("g8f6"),
		}, WithMaxPlies(3))

		winner, gameMetric, moveMetrics := e.Run()
		require.Empty(t, winner)
		require.Equal(t, MethodMaxPlies, gameMetric.Method)
		require.Len(t, moveMetrics, 3)
	})

	t.Run("flag loses", func(t *testing.T) {
		e := mustEngine(t, [2]agent.Agent{
			agent.NewFirstMoveAgent(),
			agent.NewFirstMoveAgent(),
		}, WithClock(0, 0))

		winner, gameMetric, moveMetrics := e.Run()
		require.Equal(t, "black", winner, "White should lose on time before moving")
		require.Equal(t, MethodTimeForfeit, gameMetric.Method)
		require.Empty(t, moveMetrics)
	})

	t.Run("search agents play to mate", func(t *testing.T) {
		newAgent := func() agent.Agent {
			return agent.NewEvaluationAgent(searcher.NewMCTS(
				searcher.WithIterations(500),
				searcher.WithUnlimitedTime(),
				searcher.WithMetrics(),
			))
		}
		e := mustEngine(t, [2]agent.Agent{newAgent(), newAgent()},
			WithStartFEN("7k/8/5K2/8/8/8/8/6Q1 w - - 0 1"))

		winner, gameMetric, moveMetrics := e.Run()
		require.Equal(t, "white", winner)
		require.Equal(t, "Checkmate", gameMetric.Method)
		require.Len(t, moveMetrics, 1)
		require.Equal(t, "g1g7", moveMetrics[0].Move)
		require.Equal(t, "white", moveMetrics[0].Player)
		require.Equal(t, 500, moveMetrics[0].Iterations)
	})
}
