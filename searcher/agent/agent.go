package agent

import (
	"chessbot/experiments/metrics"
	"chessbot/game"
)

type Agent interface {
	// FindMove returns the move to play and the search metrics (if collected).
	// pos is left as it was given.
	FindMove(pos game.Position, clock game.Clock) (game.Move, metrics.SearchMetric)
}
