package player

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"tictactoe/game"
	"tictactoe/searcher"
)

// Human reads "row col" lines until one of them is a legal move. Humans at
// the same console share one scanner.
type Human struct {
	name    string
	in      *bufio.Scanner
	out     io.Writer
	advisor *Computer
}

func NewHuman(name string, in *bufio.Scanner, out io.Writer) *Human {
	return &Human{
		name: name,
		in:   in,
		out:  out,
	}
}

// SetAdvisor enables the "hint" command, answered by the advisor's search.
func (h *Human) SetAdvisor(advisor *Computer) {
	h.advisor = advisor
}

func (h *Human) Name() string {
	return h.name
}

func (h *Human) Interactive() bool {
	return true
}

func (h *Human) FindMove(board game.Board) (game.Move, searcher.SearchMetric, error) {
	for {
		line, err := h.readLine()
		if err != nil {
			return game.Move{}, searcher.SearchMetric{}, err
		}

		if line == "hint" || line == "?" {
			h.hint(board)
			continue
		}

		var move game.Move
		if _, err := fmt.Sscan(line, &move.Row, &move.Col); err != nil {
			fmt.Fprintln(h.out, "Enter a row and a column, e.g. 1 2")
			continue
		}

		switch err := board.Validate(move); {
		case err == nil:
			return move, searcher.SearchMetric{}, nil
		case errors.Is(err, game.ErrOutOfRange):
			fmt.Fprintln(h.out, "Both indices should be in [0, 2]")
		case errors.Is(err, game.ErrCellTaken):
			fmt.Fprintln(h.out, "Field is already taken, enter a new pair of indices")
		default:
			return game.Move{}, searcher.SearchMetric{}, err
		}
	}
}

func (h *Human) readLine() (string, error) {
	if !h.in.Scan() {
		if err := h.in.Err(); err != nil {
			return "", fmt.Errorf("reading move: %w", err)
		}
		return "", fmt.Errorf("reading move: %w", io.ErrUnexpectedEOF)
	}
	return strings.ToLower(strings.TrimSpace(h.in.Text())), nil
}

func (h *Human) hint(board game.Board) {
	if h.advisor == nil {
		fmt.Fprintln(h.out, "No hints in this game")
		return
	}
	result, err := h.advisor.Analyze(board)
	if err != nil {
		fmt.Fprintf(h.out, "No hint: %v\n", err)
		return
	}
	for _, e := range result.Evaluations {
		marker := " "
		if e.Move == result.Move {
			marker = "*"
		}
		fmt.Fprintf(h.out, "%s %v: %s\n", marker, e.Move, DescribeScore(e.ScoreDepth))
	}
}

// DescribeScore turns a propagated score into words for the console.
func DescribeScore(s searcher.ScoreDepth) string {
	switch s.Score {
	case math.MaxInt:
		return fmt.Sprintf("x wins in %d", s.Depth)
	case math.MinInt:
		return fmt.Sprintf("o wins in %d", s.Depth)
	default:
		return fmt.Sprintf("score %d at depth %d", s.Score, s.Depth)
	}
}
