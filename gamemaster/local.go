package gamemaster

import (
	"fmt"

	"tictactoe/game"
	"tictactoe/utils"
)

// UpdateGetter returns the next played move without blocking. ok is false
// when no update is pending, and stays false once the game is over and every
// update has been read.
type UpdateGetter func() (u Update, ok bool)

type Engine interface {
	Init(start game.Board) (game.Board, UpdateGetter)
	Play(game.Move) error
	State() game.Board
	History() []Update
}

// Update is one played move and the board it produced.
type Update struct {
	Move  game.Move
	Board game.Board
}

type localEngine struct {
	state    game.Board
	updateCh chan Update
	history  []Update
}

func NewLocalEngine() *localEngine {
	return &localEngine{}
}

func (e *localEngine) Init(start game.Board) (game.Board, UpdateGetter) {
	e.state = start
	e.history = nil
	// A game never has more updates than cells, so Play never blocks.
	e.updateCh = make(chan Update, game.Size*game.Size)
	if start.Over() {
		close(e.updateCh)
	}

	return e.state, func() (Update, bool) {
		select {
		case u, ok := <-e.updateCh:
			return u, ok
		default:
			return Update{}, false
		}
	}
}

func (e *localEngine) Play(move game.Move) error {
	if e.state.Over() {
		return game.ErrGameOver
	}

	if !utils.Contains(e.state.LegalMoves(), move) {
		return fmt.Errorf("illegal move %v: %w", move, e.state.Validate(move))
	}

	if err := e.state.Play(move); err != nil {
		return err
	}
	u := Update{Move: move, Board: e.state}
	e.history = append(e.history, u)
	e.updateCh <- u

	if e.state.Over() {
		close(e.updateCh)
	}
	return nil
}

func (e *localEngine) State() game.Board {
	return e.state
}

func (e *localEngine) History() []Update {
	return append([]Update(nil), e.history...)
}
