package game

import (
	"fmt"
	"math"
)

// Heuristic weight of a mark by cell kind. X counts positive, O negative.
const (
	CenterWeight = 100
	CornerWeight = 50
	EdgeWeight   = 30
)

// Score values b from X's point of view. Finished games take the extreme
// scores so a real outcome always beats any heuristic estimate, which stays
// within ±(CenterWeight + 4*CornerWeight + 4*EdgeWeight).
func Score(b Board) int {
	switch b.Status() {
	case XWon:
		return math.MaxInt
	case OWon:
		return math.MinInt
	case Tied:
		return 0
	}

	score := 0
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			mark := b.Cell(i, j)
			if mark == Empty {
				continue
			}
			weight := cellWeight(i, j)
			if mark == O {
				weight = -weight
			}
			score += weight
		}
	}
	return score
}

func cellWeight(row, col int) int {
	switch {
	case row == 1 && col == 1:
		return CenterWeight
	case row != 1 && col != 1:
		return CornerWeight
	default:
		return EdgeWeight
	}
}

// Maximizing reports whether X, the maximizing side, is to move.
func Maximizing(b Board) bool {
	return b.Turn() == X
}

// Transition plays m on a copy of b. Search only offers moves from
// PossibleMoves, so an illegal one is a programming error.
func Transition(b Board, m Move) Board {
	next := b
	if err := next.Play(m); err != nil {
		panic(fmt.Sprintf("illegal transition %v on\n%v: %v", m, b, err))
	}
	return next
}

func PossibleMoves(b Board) []Move {
	return b.LegalMoves()
}

func StopCondition(b Board) bool {
	return b.Over()
}

// Rules bundles the callbacks above as one capability set for the searcher.
type Rules struct{}

func (Rules) Score(b Board) int                { return Score(b) }
func (Rules) Maximizing(b Board) bool          { return Maximizing(b) }
func (Rules) Transition(b Board, m Move) Board { return Transition(b, m) }
func (Rules) PossibleMoves(b Board) []Move     { return PossibleMoves(b) }
func (Rules) StopCondition(b Board) bool       { return StopCondition(b) }
