package searcher

import (
	"errors"
	"fmt"
)

// Callback names one of the five operations a Minimax needs before it can search.
type Callback int

const (
	ScoreCallback Callback = iota
	MaximizingCallback
	TransitionCallback
	StopConditionCallback
	PossibleMovesCallback
)

func (c Callback) String() string {
	switch c {
	case ScoreCallback:
		return "score"
	case MaximizingCallback:
		return "maximizing"
	case TransitionCallback:
		return "transition"
	case StopConditionCallback:
		return "stop condition"
	case PossibleMovesCallback:
		return "possible moves"
	default:
		return fmt.Sprintf("callback(%d)", int(c))
	}
}

var (
	ErrMissingCallback = errors.New("missing callback")
	ErrNoLegalMoves    = errors.New("no legal moves from the starting state")
)

// MissingCallbackError is returned when a search starts before one of the
// callbacks was set.
type MissingCallbackError struct {
	Which Callback
}

func (e *MissingCallbackError) Error() string {
	return fmt.Sprintf("minimax: missing %s callback", e.Which)
}

func (e *MissingCallbackError) Is(target error) bool {
	return target == ErrMissingCallback
}
