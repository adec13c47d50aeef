package searcher

import "math"

// Game is the capability set the minimax engine needs from a game. Any
// game that aims to be searchable implements it for its own state and move
// types; the engine never inspects S or M directly.
type Game[S, M any] interface {
	// Score values a state from a fixed global convention: higher favors the
	// maximizing side.
	Score(state S) int
	// Maximizing reports whether the side to act in state is the maximizing side.
	Maximizing(state S) bool
	// Transition applies move to a copy of state and returns the result,
	// turn ownership included.
	Transition(state S, move M) S
	// PossibleMoves lists the legal moves from state. Order decides which of
	// several equally good moves wins.
	PossibleMoves(state S) []M
	// StopCondition reports whether state is terminal.
	StopCondition(state S) bool
}

type (
	ScoreFunc[S any]            func(state S) int
	MaximizingFunc[S any]       func(state S) bool
	TransitionFunc[S, M any]    func(state S, move M) S
	PossibleMovesFunc[S, M any] func(state S) []M
	StopConditionFunc[S any]    func(state S) bool
)

// ScoreDepth ranks a state by its score, preferring the shallower of two
// equal scores.
type ScoreDepth struct {
	Score int  `json:"score"`
	Depth uint `json:"depth"`
}

// Sentinels an internal node starts from before looking at its children.
var (
	worstForMax = ScoreDepth{Score: math.MinInt, Depth: math.MaxUint}
	worstForMin = ScoreDepth{Score: math.MaxInt, Depth: math.MaxUint}
)

func initialScore(maximizing bool) ScoreDepth {
	if maximizing {
		return worstForMax
	}
	return worstForMin
}

// Better reports whether a beats b for the maximizing (or minimizing) side.
// Equal scores go to the shallower one for both sides, so a side that is
// already lost also takes the faster loss.
func (a ScoreDepth) Better(b ScoreDepth, maximizing bool) bool {
	if a.Score == b.Score {
		return a.Depth < b.Depth
	}
	if maximizing {
		return a.Score > b.Score
	}
	return a.Score < b.Score
}
