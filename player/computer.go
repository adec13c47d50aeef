package player

import (
	"fmt"

	"tictactoe/game"
	"tictactoe/searcher"

	"github.com/rs/zerolog/log"
)

type Option = searcher.Option[game.Board, game.Move]

// WithMetrics makes FindMove report the search metric of every move.
func WithMetrics() Option {
	return searcher.WithMetrics[game.Board, game.Move]()
}

// Computer plays the minimax move for the side to act.
type Computer struct {
	name   string
	search *searcher.Minimax[game.Board, game.Move]
}

func NewComputer(name string, depth int, options ...Option) *Computer {
	options = append([]Option{searcher.WithGame[game.Board, game.Move](game.Rules{})}, options...)
	return &Computer{
		name:   name,
		search: searcher.NewMinimax(game.NewBoard(), depth, options...),
	}
}

func (c *Computer) Name() string {
	return c.name
}

func (c *Computer) Depth() int {
	return c.search.MaxDepth()
}

// Analyze searches board and returns every root move with its score.
func (c *Computer) Analyze(board game.Board) (searcher.Result[game.Move], error) {
	c.search.SetState(board)
	return c.search.Search()
}

func (c *Computer) FindMove(board game.Board) (game.Move, searcher.SearchMetric, error) {
	result, err := c.Analyze(board)
	if err != nil {
		return game.Move{}, result.Metric, fmt.Errorf("%s found no move: %w", c.name, err)
	}
	log.Debug().Msgf("%s plays %v with score %d at depth %d", c.name, result.Move, result.Score.Score, result.Score.Depth)
	return result.Move, result.Metric, nil
}
