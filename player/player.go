package player

import (
	"tictactoe/game"
	"tictactoe/searcher"
)

// Player picks moves for one side of the board. Implementations are not safe
// for concurrent use: give every game its own players.
type Player interface {
	Name() string
	// FindMove returns a legal move for the side to act in board, and the
	// search metric if the move came out of a search.
	FindMove(board game.Board) (game.Move, searcher.SearchMetric, error)
}

// Interactive is implemented by players a person moves for at the console.
// The game loop prompts them instead of announcing their moves.
type Interactive interface {
	Interactive() bool
}

func IsInteractive(p Player) bool {
	i, ok := p.(Interactive)
	return ok && i.Interactive()
}
