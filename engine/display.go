package engine

import (
	"fmt"
	"io"

	"tictactoe/game"
	"tictactoe/player"

	"github.com/muesli/termenv"
)

// Display writes the console side of a game: boards, prompts and the ending.
type Display struct {
	out *termenv.Output
}

// NewDisplay writes to w. Colors are only used when color is set and w
// supports them.
func NewDisplay(w io.Writer, color bool) *Display {
	var opts []termenv.OutputOption
	if !color {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	return &Display{out: termenv.NewOutput(w, opts...)}
}

func (d *Display) mark(m game.Mark) string {
	switch m {
	case game.X:
		return d.out.String(m.String()).Foreground(d.out.Color("1")).Bold().String()
	case game.O:
		return d.out.String(m.String()).Foreground(d.out.Color("4")).Bold().String()
	default:
		return m.String()
	}
}

func (d *Display) Board(b game.Board) {
	fmt.Fprintln(d.out, b.Render(d.mark))
}

func (d *Display) Prompt(b game.Board) {
	fmt.Fprintf(d.out, "Player: %s, Enter a row and a column to make a move\n", d.mark(b.Turn()))
}

func (d *Display) Played(p player.Player, mark game.Mark, move game.Move) {
	fmt.Fprintf(d.out, "Player: %s (%s) plays %v\n", d.mark(mark), p.Name(), move)
}

func (d *Display) ReportEnding(b game.Board) {
	fmt.Fprintln(d.out, b.Render(d.mark))
	switch b.Status() {
	case game.XWon, game.OWon:
		fmt.Fprintf(d.out, "\nCongratulations: Player %s won the game!\n", d.mark(b.Winner()))
	case game.Tied:
		fmt.Fprintln(d.out, "\nTied game.")
	default:
		fmt.Fprintln(d.out, "\nUnexpected ending.")
	}
}
