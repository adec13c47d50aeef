package metrics

import (
	"strconv"
	"time"

	"tictactoe/searcher"
)

// AgentConfig describes one computer player in an arena.
type AgentConfig struct {
	ID     int
	Depth  int    // Minimax depth, ignored for random agents
	Random bool   // Plays uniformly random legal moves
	Seed   uint64 // Seed of random agents
}

func (c AgentConfig) String() string {
	if c.Random {
		return "random"
	}
	return "minimax-" + strconv.Itoa(c.Depth)
}

type MoveMetric struct {
	Step   int
	Player string // Mark of the player
	searcher.SearchMetric
}

type GameMetric struct {
	StartingPlayer string // Mark of the player
	Winner         string // Mark of the winner, empty on a tie
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID playing x
	Agent2 int // AgentConfig.ID playing o
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}
