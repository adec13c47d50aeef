package communication

import (
	"fmt"

	"tictactoe/game"
	"tictactoe/searcher"
)

// FindMoveRequest asks an agent for the move of the side to act.
type FindMoveRequest struct {
	Board []string `json:"board"`
	Turn  string   `json:"turn,omitempty"` // Inferred from the mark counts when empty
	Depth int      `json:"depth,omitempty"`
}

func NewFindMoveRequest(board game.Board, depth int) FindMoveRequest {
	return FindMoveRequest{
		Board: board.Rows(),
		Turn:  board.Turn().String(),
		Depth: depth,
	}
}

func (r FindMoveRequest) ParseBoard() (game.Board, error) {
	turn := game.Empty
	if r.Turn != "" {
		var err error
		if turn, err = game.ParseMark(r.Turn); err != nil {
			return game.Board{}, fmt.Errorf("%w: %v", game.ErrInvalidBoard, err)
		}
	}
	return game.ParseBoard(r.Board, turn)
}

type Evaluation struct {
	Row   int  `json:"row"`
	Col   int  `json:"col"`
	Score int  `json:"score"`
	Depth uint `json:"depth"`
}

type FindMoveResponse struct {
	Row         int                   `json:"row"`
	Col         int                   `json:"col"`
	Score       int                   `json:"score"`
	Depth       uint                  `json:"depth"`
	Evaluations []Evaluation          `json:"evaluations,omitempty"`
	Metric      searcher.SearchMetric `json:"metric"`
}

func NewFindMoveResponse(result searcher.Result[game.Move]) FindMoveResponse {
	resp := FindMoveResponse{
		Row:         result.Move.Row,
		Col:         result.Move.Col,
		Score:       result.Score.Score,
		Depth:       result.Score.Depth,
		Evaluations: make([]Evaluation, len(result.Evaluations)),
		Metric:      result.Metric,
	}
	for i, e := range result.Evaluations {
		resp.Evaluations[i] = Evaluation{Row: e.Move.Row, Col: e.Move.Col, Score: e.Score, Depth: e.Depth}
	}
	return resp
}

func (r FindMoveResponse) Move() game.Move {
	return game.Move{Row: r.Row, Col: r.Col}
}

type ErrorResponse struct {
	Error string `json:"error"`
}
