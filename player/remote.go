package player

import (
	"context"
	"fmt"
	"time"

	"tictactoe/communication/client"
	"tictactoe/game"
	"tictactoe/searcher"
)

// Remote asks an agent server for its moves.
type Remote struct {
	name    string
	depth   int
	timeout time.Duration
	client  *client.ClientCommunicator
}

func NewRemote(name, serverURL string, depth int, timeout time.Duration) *Remote {
	return &Remote{
		name:    name,
		depth:   depth,
		timeout: timeout,
		client:  client.NewClientCommunicator(serverURL),
	}
}

func (r *Remote) Name() string {
	return r.name
}

func (r *Remote) FindMove(board game.Board) (game.Move, searcher.SearchMetric, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	resp, err := r.client.FindMove(ctx, board, r.depth)
	if err != nil {
		return game.Move{}, searcher.SearchMetric{}, fmt.Errorf("%s found no move: %w", r.name, err)
	}
	if err := board.Validate(resp.Move()); err != nil {
		return game.Move{}, resp.Metric, fmt.Errorf("%s answered %v: %w", r.name, resp.Move(), err)
	}
	return resp.Move(), resp.Metric, nil
}
