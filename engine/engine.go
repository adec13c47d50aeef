package engine

import "tictactoe/experiments/metrics"

// MaxMoves can never be reached on a 3x3 board. It guards the loop against a
// game that fails to end.
const MaxMoves = 9

type Engine interface {
	// Run plays a game until it is won or tied
	Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
