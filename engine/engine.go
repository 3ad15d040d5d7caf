package engine

import "chessbot/experiments/metrics"

type Engine interface {
	// Run plays a game till it ends or a max number of plies is reached
	Run() (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

// Game end methods not reported by notnil/chess.
const (
	MethodTimeForfeit = "TimeForfeit"
	MethodMaxPlies    = "MaxPlies"
)
