package player

import (
	"tictactoe/game"
	"tictactoe/searcher"

	"golang.org/x/exp/rand"
)

// Random plays a uniformly random legal move. It is the baseline opponent in
// experiments.
type Random struct {
	name string
	rng  *rand.Rand
}

func NewRandom(name string, seed uint64) *Random {
	return &Random{
		name: name,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

func (r *Random) Name() string {
	return r.name
}

func (r *Random) FindMove(board game.Board) (game.Move, searcher.SearchMetric, error) {
	moves := board.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, searcher.SearchMetric{}, game.ErrGameOver
	}
	return moves[r.rng.Intn(len(moves))], searcher.SearchMetric{}, nil
}
