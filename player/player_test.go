package player

import (
	"bufio"
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"tictactoe/game"
	"tictactoe/searcher"

	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, turn game.Mark, rows ...string) game.Board {
	t.Helper()
	b, err := game.ParseBoard(rows, turn)
	require.NoError(t, err)
	return b
}

func scanner(input string) *bufio.Scanner {
	return bufio.NewScanner(strings.NewReader(input))
}

func TestComputer(t *testing.T) {
	t.Run("opens in the centre or a corner", func(t *testing.T) {
		for _, depth := range []int{1, 2, 3, 9} {
			move, _, err := NewComputer("x", depth).FindMove(game.NewBoard())
			require.NoError(t, err)

			centre := move == game.Move{Row: 1, Col: 1}
			corner := move.Row != 1 && move.Col != 1
			require.True(t, centre || corner, "Depth %d opened with %v", depth, move)
		}
	})

	t.Run("takes an immediate win", func(t *testing.T) {
		boards := map[string]game.Board{
			"x": parse(t, game.X, "xx ", "oo ", "   "),
			"o": parse(t, game.O, "oo ", "xx ", "x  "),
		}
		for side, b := range boards {
			for depth := 1; depth <= 5; depth++ {
				move, _, err := NewComputer(side, depth).FindMove(b)
				require.NoError(t, err)
				require.Equal(t, game.Move{Row: 0, Col: 2}, move, "%s at depth %d should win", side, depth)
			}
		}
	})

	t.Run("blocks the opponent's line", func(t *testing.T) {
		boards := map[string]game.Board{
			"x": parse(t, game.X, "x  ", "oo ", "  x"),
			"o": parse(t, game.O, "o  ", "xx ", "  o"),
		}
		for side, b := range boards {
			for depth := 2; depth <= 6; depth++ {
				move, _, err := NewComputer(side, depth).FindMove(b)
				require.NoError(t, err)
				require.Equal(t, game.Move{Row: 1, Col: 2}, move, "%s at depth %d should block", side, depth)
			}
		}
	})

	t.Run("takes the faster loss once the position is lost", func(t *testing.T) {
		// x wins through 2 0, or after a block through the fork at 1 1.
		b := parse(t, game.O, "xo ", "x  ", "   ")
		for depth := 2; depth <= 3; depth++ {
			move, _, err := NewComputer("o", depth).FindMove(b)
			require.NoError(t, err)
			require.Equal(t, game.Move{Row: 2, Col: 0}, move, "Depth %d cannot see the fork", depth)
		}
		for depth := 4; depth <= 6; depth++ {
			result, err := NewComputer("o", depth).Analyze(b)
			require.NoError(t, err)
			require.Equal(t, game.Move{Row: 0, Col: 2}, result.Move, "Depth %d", depth)
			require.Equal(t, searcher.ScoreDepth{Score: math.MaxInt, Depth: 2}, result.Score)
		}
	})

	t.Run("reports the search when asked", func(t *testing.T) {
		c := NewComputer("x", 2, searcher.WithMetrics[game.Board, game.Move]())
		_, metric, err := c.FindMove(game.NewBoard())
		require.NoError(t, err)
		require.Equal(t, 1+9+9*8, metric.Nodes)
		require.Equal(t, 9*8, metric.Leaves)
		require.Equal(t, 2, metric.Deepest)
	})

	t.Run("fails on a finished board", func(t *testing.T) {
		_, _, err := NewComputer("o", 3).FindMove(parse(t, game.O, "xxx", "oo ", "   "))
		require.ErrorIs(t, err, searcher.ErrNoLegalMoves)
	})
}

func TestRandom(t *testing.T) {
	t.Run("plays legal moves until the game ends", func(t *testing.T) {
		x, o := NewRandom("x", 1), NewRandom("o", 2)
		b := game.NewBoard()
		for !b.Over() {
			p := Player(x)
			if b.Turn() == game.O {
				p = o
			}
			move, _, err := p.FindMove(b)
			require.NoError(t, err)
			require.NoError(t, b.Play(move))
		}
	})

	t.Run("is reproducible from its seed", func(t *testing.T) {
		a, b := NewRandom("a", 42), NewRandom("b", 42)
		for i := 0; i < 20; i++ {
			ma, _, _ := a.FindMove(game.NewBoard())
			mb, _, _ := b.FindMove(game.NewBoard())
			require.Equal(t, ma, mb)
		}
	})

	t.Run("has nothing to play on a finished board", func(t *testing.T) {
		_, _, err := NewRandom("o", 1).FindMove(parse(t, game.O, "xxx", "oo ", "   "))
		require.ErrorIs(t, err, game.ErrGameOver)
	})
}

func TestHuman(t *testing.T) {
	play := func(input string, b game.Board) (game.Move, string, error) {
		var out bytes.Buffer
		h := NewHuman("x", scanner(input), &out)
		move, _, err := h.FindMove(b)
		return move, out.String(), err
	}

	t.Run("reads a row and a column", func(t *testing.T) {
		move, out, err := play("2 1\n", game.NewBoard())
		require.NoError(t, err)
		require.Equal(t, game.Move{Row: 2, Col: 1}, move)
		require.Empty(t, out)
	})

	t.Run("asks again for indices out of range", func(t *testing.T) {
		move, out, err := play("3 3\n-1 0\n0 0\n", game.NewBoard())
		require.NoError(t, err)
		require.Equal(t, game.Move{Row: 0, Col: 0}, move)
		require.Equal(t, 2, strings.Count(out, "Both indices should be in [0, 2]"))
	})

	t.Run("asks again for a taken field", func(t *testing.T) {
		b := parse(t, game.O, "   ", " x ", "   ")
		move, out, err := play("1 1\n0 1\n", b)
		require.NoError(t, err)
		require.Equal(t, game.Move{Row: 0, Col: 1}, move)
		require.Contains(t, out, "Field is already taken, enter a new pair of indices")
	})

	t.Run("asks again for unreadable input", func(t *testing.T) {
		move, out, err := play("middle\n\n1 1\n", game.NewBoard())
		require.NoError(t, err)
		require.Equal(t, game.Move{Row: 1, Col: 1}, move)
		require.Contains(t, out, "Enter a row and a column")
	})

	t.Run("fails when input runs out", func(t *testing.T) {
		_, _, err := play("9 9\n", game.NewBoard())
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("answers hints with the advisor's search", func(t *testing.T) {
		var out bytes.Buffer
		h := NewHuman("x", scanner("hint\n0 2\n"), &out)
		h.SetAdvisor(NewComputer("advisor", 9))

		move, _, err := h.FindMove(parse(t, game.X, "xx ", "oo ", "   "))
		require.NoError(t, err)
		require.Equal(t, game.Move{Row: 0, Col: 2}, move)
		require.Contains(t, out.String(), "* 0 2: x wins in 1")
	})

	t.Run("is the only interactive player", func(t *testing.T) {
		require.True(t, IsInteractive(NewHuman("x", scanner(""), io.Discard)))
		require.False(t, IsInteractive(NewComputer("o", 1)))
		require.False(t, IsInteractive(NewRandom("o", 1)))
	})

	t.Run("has no hints without an advisor", func(t *testing.T) {
		_, out, err := play("hint\n0 0\n", game.NewBoard())
		require.NoError(t, err)
		require.Contains(t, out, "No hints in this game")
	})
}
