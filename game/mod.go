package game

import (
	"errors"
	"fmt"
	"strings"
)

const Size = 3

var (
	ErrOutOfRange   = errors.New("both indices should be in [0, 2]")
	ErrCellTaken    = errors.New("field is already taken")
	ErrGameOver     = errors.New("game is over - no moves allowed")
	ErrInvalidBoard = errors.New("invalid board")
)

// Mark is the content of a cell, and doubles as the name of a player.
type Mark byte

const (
	Empty Mark = ' '
	X     Mark = 'x'
	O     Mark = 'o'
)

func (m Mark) Opponent() Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (m Mark) String() string {
	return string(m)
}

// ParseMark accepts "x" or "o" in either case.
func ParseMark(s string) (Mark, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return X, nil
	case "o":
		return O, nil
	default:
		return Empty, fmt.Errorf("unknown player %q", s)
	}
}

type Status int

const (
	InProgress Status = iota
	Tied
	XWon
	OWon
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case Tied:
		return "tied"
	case XWon:
		return "x won"
	case OWon:
		return "o won"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

func wonBy(m Mark) Status {
	if m == X {
		return XWon
	}
	return OWon
}

// Mode decides who sits on each side of the board.
type Mode int

const (
	Multiplayer  Mode = iota // Human vs human
	Singleplayer             // Human vs computer
	Computer                 // Computer vs computer
)

func (m Mode) String() string {
	switch m {
	case Multiplayer:
		return "multiplayer"
	case Singleplayer:
		return "singleplayer"
	case Computer:
		return "computer"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "multiplayer", "multi", "2p":
		return Multiplayer, nil
	case "singleplayer", "single", "1p":
		return Singleplayer, nil
	case "computer", "cpu", "0p":
		return Computer, nil
	default:
		return Multiplayer, fmt.Errorf("unknown game mode %q", s)
	}
}

// Move addresses a cell by zero-based row and column.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (m Move) String() string {
	return fmt.Sprintf("%d %d", m.Row, m.Col)
}

func (m Move) inRange() bool {
	return m.Row >= 0 && m.Row < Size && m.Col >= 0 && m.Col < Size
}
