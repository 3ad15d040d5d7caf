package agent

import (
	"testing"

	"chessbot/game"
	"chessbot/searcher"

	"github.com/stretchr/testify/require"
)

func TestEvaluationAgent(t *testing.T) {
	t.Run("plays the searched move", func(t *testing.T) {
		fen := "7k/8/5K2/8/8/8/8/6Q1 w - - 0 1"
		pos, err := game.NewBoard(fen)
		require.NoError(t, err)
		a := NewEvaluationAgent(searcher.NewMCTS(
			searcher.WithIterations(500),
			searcher.WithUnlimitedTime(),
			searcher.WithMetrics(),
		))

		move, metric := a.FindMove(pos, nil)
		require.Equal(t, "g1g7", move.String(), "Mate in one should be found")
		require.Equal(t, 500, metric.Iterations)
		require.Equal(t, fen, pos.FEN(), "Position should be left unchanged")
	})
}

func TestFirstMoveAgent(t *testing.T) {
	pos, err := game.NewBoard(game.StartFEN)
	require.NoError(t, err)

	move, metric := NewFirstMoveAgent().FindMove(pos, nil)
	require.Equal(t, pos.LegalMoves(false)[0].String(), move.String())
	require.Zero(t, metric.Iterations)
}
