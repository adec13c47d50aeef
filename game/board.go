package game

import (
	"fmt"
	"strings"
)

// Board is a complete tic-tac-toe position. It is a plain value: copies share
// nothing, so searching on a copy never touches the board it came from.
type Board struct {
	cells  [Size][Size]Mark
	turn   Mark
	status Status
}

// NewBoard returns an empty board with X to move.
func NewBoard() Board {
	b := Board{turn: X, status: InProgress}
	for i := range b.cells {
		for j := range b.cells[i] {
			b.cells[i][j] = Empty
		}
	}
	return b
}

// ParseBoard reads three rows of three cells each. 'x' and 'o' (any case)
// are marks; ' ', '.', '-' and '_' are empty cells. An Empty turn is inferred
// from the mark counts.
func ParseBoard(rows []string, turn Mark) (Board, error) {
	if len(rows) != Size {
		return Board{}, fmt.Errorf("%w: want %d rows, got %d", ErrInvalidBoard, Size, len(rows))
	}

	b := NewBoard()
	counts := map[Mark]int{}
	for i, row := range rows {
		if len(row) != Size {
			return Board{}, fmt.Errorf("%w: row %d has %d cells", ErrInvalidBoard, i, len(row))
		}
		for j := 0; j < Size; j++ {
			switch row[j] {
			case 'x', 'X':
				b.cells[i][j] = X
			case 'o', 'O':
				b.cells[i][j] = O
			case ' ', '.', '-', '_':
				b.cells[i][j] = Empty
			default:
				return Board{}, fmt.Errorf("%w: unknown cell %q at %d %d", ErrInvalidBoard, row[j], i, j)
			}
			counts[b.cells[i][j]]++
		}
	}

	switch turn {
	case X, O:
		b.turn = turn
	case Empty:
		b.turn = X
		if counts[X] > counts[O] {
			b.turn = O
		}
	default:
		return Board{}, fmt.Errorf("%w: unknown turn %q", ErrInvalidBoard, turn)
	}

	xWins, oWins := b.completes(X), b.completes(O)
	switch {
	case xWins && oWins:
		return Board{}, fmt.Errorf("%w: both players have three in a row", ErrInvalidBoard)
	case xWins:
		b.status = XWon
	case oWins:
		b.status = OWon
	case b.full():
		b.status = Tied
	}
	return b, nil
}

func (b Board) Turn() Mark {
	return b.turn
}

func (b Board) Status() Status {
	return b.status
}

func (b Board) Over() bool {
	return b.status != InProgress
}

// Winner returns the winning mark, or Empty while in progress or tied.
func (b Board) Winner() Mark {
	switch b.status {
	case XWon:
		return X
	case OWon:
		return O
	default:
		return Empty
	}
}

func (b Board) Cell(row, col int) Mark {
	return b.cells[row][col]
}

// Validate reports why m cannot be played, or nil.
func (b Board) Validate(m Move) error {
	if b.Over() {
		return ErrGameOver
	}
	if !m.inRange() {
		return ErrOutOfRange
	}
	if b.cells[m.Row][m.Col] != Empty {
		return ErrCellTaken
	}
	return nil
}

// Play places the mark of the player to move, settles the status and passes
// the turn.
func (b *Board) Play(m Move) error {
	if err := b.Validate(m); err != nil {
		return err
	}

	b.cells[m.Row][m.Col] = b.turn
	if b.winningMove(m) {
		b.status = wonBy(b.turn)
	} else if b.full() {
		b.status = Tied
	}
	b.turn = b.turn.Opponent()
	return nil
}

// LegalMoves lists empty cells in row-major order. A finished game has none.
func (b Board) LegalMoves() []Move {
	if b.Over() {
		return nil
	}
	moves := make([]Move, 0, Size*Size)
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if b.cells[i][j] == Empty {
				moves = append(moves, Move{Row: i, Col: j})
			}
		}
	}
	return moves
}

func (b Board) winningMove(m Move) bool {
	mark := b.cells[m.Row][m.Col]
	return b.wholeRow(m.Row, mark) || b.wholeCol(m.Col, mark) || b.diagonal(mark)
}

func (b Board) wholeRow(row int, mark Mark) bool {
	for j := 0; j < Size; j++ {
		if b.cells[row][j] != mark {
			return false
		}
	}
	return true
}

func (b Board) wholeCol(col int, mark Mark) bool {
	for i := 0; i < Size; i++ {
		if b.cells[i][col] != mark {
			return false
		}
	}
	return true
}

func (b Board) diagonal(mark Mark) bool {
	down, up := true, true
	for i := 0; i < Size; i++ {
		down = down && b.cells[i][i] == mark
		up = up && b.cells[i][Size-1-i] == mark
	}
	return down || up
}

func (b Board) completes(mark Mark) bool {
	for i := 0; i < Size; i++ {
		if b.wholeRow(i, mark) || b.wholeCol(i, mark) {
			return true
		}
	}
	return b.diagonal(mark)
}

func (b Board) full() bool {
	for i := range b.cells {
		for j := range b.cells[i] {
			if b.cells[i][j] == Empty {
				return false
			}
		}
	}
	return true
}

// Rows is the inverse of ParseBoard.
func (b Board) Rows() []string {
	rows := make([]string, Size)
	for i := range b.cells {
		var sb strings.Builder
		for j := range b.cells[i] {
			sb.WriteByte(byte(b.cells[i][j]))
		}
		rows[i] = sb.String()
	}
	return rows
}

// Render draws the grid with box-drawing characters, formatting every cell
// through mark.
func (b Board) Render(mark func(Mark) string) string {
	var sb strings.Builder
	sb.WriteString("┌─┬─┬─┐\n")
	for i := range b.cells {
		if i > 0 {
			sb.WriteString("├─┼─┼─┤\n")
		}
		sb.WriteString("│")
		for j := range b.cells[i] {
			sb.WriteString(mark(b.cells[i][j]))
			sb.WriteString("│")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("└─┴─┴─┘")
	return sb.String()
}

func (b Board) String() string {
	return b.Render(Mark.String)
}
