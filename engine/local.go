package engine

import (
	"fmt"
	"time"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/gamemaster"
	"tictactoe/player"

	"github.com/rs/zerolog/log"
)

type localEngine struct {
	start   game.Board
	players map[game.Mark]player.Player
	master  gamemaster.Engine
	display *Display
}

// LocalEngine plays x against o in this process, starting from start. A nil
// display keeps the game silent.
func LocalEngine(x, o player.Player, start game.Board, display *Display) Engine {
	if x == nil || o == nil {
		panic("need two players")
	}
	return &localEngine{
		start:   start,
		players: map[game.Mark]player.Player{game.X: x, game.O: o},
		master:  gamemaster.NewLocalEngine(),
		display: display,
	}
}

// Run executes the entire game loop until the game is over.
func (e *localEngine) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	state, getUpdate := e.master.Init(e.start)

	gameMetric := metrics.GameMetric{
		StartingPlayer: state.Turn().String(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Msgf("player %s is starting", state.Turn())

	for step := 1; !state.Over(); step++ {
		if step > MaxMoves {
			return gameMetric, moveMetrics, fmt.Errorf("game still running after %d moves", MaxMoves)
		}

		mark := state.Turn()
		p := e.players[mark]
		interactive := player.IsInteractive(p)
		if interactive && e.display != nil {
			e.display.Board(state)
			e.display.Prompt(state)
		}

		move, searchMetric, err := p.FindMove(state)
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("player %s: %w", mark, err)
		}
		if err := e.master.Play(move); err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("player %s: %w", mark, err)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       mark.String(),
			SearchMetric: searchMetric,
		})

		for u, ok := getUpdate(); ok; u, ok = getUpdate() {
			log.Debug().Msgf("step %d: %s (%s) played %v", step, mark, p.Name(), u.Move)
			if !interactive && e.display != nil {
				e.display.Played(p, mark, u.Move)
			}
			state = u.Board
		}
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	if winner := state.Winner(); winner != game.Empty {
		gameMetric.Winner = winner.String()
	}

	if e.display != nil {
		e.display.ReportEnding(state)
	}
	log.Debug().Msgf("game over after %d moves: %s", gameMetric.TotalMoves, state.Status())

	return gameMetric, moveMetrics, nil
}
