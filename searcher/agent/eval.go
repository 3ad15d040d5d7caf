package agent

import (
	"chessbot/experiments/metrics"
	"chessbot/game"
	"chessbot/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(pos game.Position, clock game.Clock) (game.Move, metrics.SearchMetric) {
	return a.mcts.Search(pos, clock)
}

type firstMoveAgent struct{}

// NewFirstMoveAgent returns an agent that always plays the first legal move,
// as a fixed baseline opponent.
func NewFirstMoveAgent() Agent {
	return firstMoveAgent{}
}

func (firstMoveAgent) FindMove(pos game.Position, clock game.Clock) (game.Move, metrics.SearchMetric) {
	moves := pos.LegalMoves(false)
	if len(moves) == 0 {
		panic("cannot select a move: no legal moves")
	}
	return moves[0], metrics.SearchMetric{}
}
