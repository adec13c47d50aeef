package searcher

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

type mockMove int

// mockState is identified by the moves that led to it, e.g. "021".
type mockState struct {
	path       string
	maximizing bool
}

type mockGame struct {
	branching int
	score     func(path string) int
	terminal  map[string]bool
}

func (g mockGame) Score(s mockState) int {
	if g.score == nil {
		return 0
	}
	return g.score(s.path)
}

func (g mockGame) Maximizing(s mockState) bool {
	return s.maximizing
}

func (g mockGame) Transition(s mockState, m mockMove) mockState {
	return mockState{path: s.path + strconv.Itoa(int(m)), maximizing: !s.maximizing}
}

func (g mockGame) PossibleMoves(s mockState) []mockMove {
	moves := make([]mockMove, g.branching)
	for i := range moves {
		moves[i] = mockMove(i)
	}
	return moves
}

func (g mockGame) StopCondition(s mockState) bool {
	return g.terminal[s.path]
}

func scoresOf(scores map[string]int) func(string) int {
	return func(path string) int {
		return scores[path]
	}
}

// scrambled gives leaves a spread of positive and negative scores with
// plenty of ties.
func scrambled(path string) int {
	v := 0
	for _, c := range path {
		v = v*7 + int(c-'0') + 1
	}
	return v%23 - 11
}

func newMockMinimax(g mockGame, maximizing bool, depth int, options ...Option[mockState, mockMove]) *Minimax[mockState, mockMove] {
	options = append([]Option[mockState, mockMove]{WithGame[mockState, mockMove](g)}, options...)
	return NewMinimax(mockState{maximizing: maximizing}, depth, options...)
}

// checkSubtree verifies the scoring invariants of every node under index i
// and returns the deepest depth found.
func checkSubtree(t *testing.T, m *Minimax[mockState, mockMove], tr *tree[mockState, mockMove], i int, depth int) int {
	t.Helper()

	n := tr.nodes[i]
	if n.leaf() {
		require.Equal(t, ScoreDepth{Score: m.score(n.state), Depth: uint(depth)}, n.score,
			"Leaf %q should carry its heuristic score and construction depth", n.state.path)
		return depth
	}

	maximizing := m.maximizing(n.state)
	children := tr.children(i)
	want := children[0].score.Score
	for _, child := range children {
		if (maximizing && child.score.Score > want) || (!maximizing && child.score.Score < want) {
			want = child.score.Score
		}
	}
	wantDepth := ^uint(0)
	for _, child := range children {
		if child.score.Score == want && child.score.Depth < wantDepth {
			wantDepth = child.score.Depth
		}
	}
	require.Equal(t, want, n.score.Score, "Node %q should carry the best child score", n.state.path)
	require.Equal(t, wantDepth, n.score.Depth, "Node %q should carry the shallowest tied depth", n.state.path)

	deepest := depth
	for c := n.first; c < n.first+n.count; c++ {
		deepest = max(deepest, checkSubtree(t, m, tr, c, depth+1))
	}
	return deepest
}

func TestMinimaxMissingCallbacks(t *testing.T) {
	unset := map[Callback]func(m *Minimax[mockState, mockMove]){
		ScoreCallback:         func(m *Minimax[mockState, mockMove]) { m.SetScore(nil) },
		MaximizingCallback:    func(m *Minimax[mockState, mockMove]) { m.SetMaximizing(nil) },
		TransitionCallback:    func(m *Minimax[mockState, mockMove]) { m.SetTransition(nil) },
		StopConditionCallback: func(m *Minimax[mockState, mockMove]) { m.SetStopCondition(nil) },
		PossibleMovesCallback: func(m *Minimax[mockState, mockMove]) { m.SetPossibleMoves(nil) },
	}

	for which, unsetFn := range unset {
		t.Run("reports the missing "+which.String()+" callback", func(t *testing.T) {
			m := newMockMinimax(mockGame{branching: 2}, true, 2)
			unsetFn(m)

			_, err := m.NextMove()

			var missing *MissingCallbackError
			require.ErrorAs(t, err, &missing)
			require.Equal(t, which, missing.Which)
			require.ErrorIs(t, err, ErrMissingCallback)
			require.Contains(t, err.Error(), which.String())
		})
	}

	t.Run("reports the score callback first when nothing is set", func(t *testing.T) {
		m := NewMinimax[mockState, mockMove](mockState{}, 3)

		_, err := m.NextMove()

		var missing *MissingCallbackError
		require.ErrorAs(t, err, &missing)
		require.Equal(t, ScoreCallback, missing.Which)
	})

	t.Run("succeeds once every callback is set one by one", func(t *testing.T) {
		g := mockGame{branching: 2, score: scrambled}
		m := NewMinimax[mockState, mockMove](mockState{maximizing: true}, 2)
		m.SetScore(g.Score)
		m.SetMaximizing(g.Maximizing)
		m.SetTransition(g.Transition)
		m.SetPossibleMoves(g.PossibleMoves)
		m.SetStopCondition(g.StopCondition)

		_, err := m.NextMove()
		require.NoError(t, err)
	})

	t.Run("succeeds with every callback passed as an option", func(t *testing.T) {
		g := mockGame{branching: 2, score: scrambled}
		m := NewMinimax(mockState{maximizing: true}, 2,
			WithScore[mockState, mockMove](g.Score),
			WithMaximizing[mockState, mockMove](g.Maximizing),
			WithTransition[mockState, mockMove](g.Transition),
			WithPossibleMoves[mockState, mockMove](g.PossibleMoves),
			WithStopCondition[mockState, mockMove](g.StopCondition),
		)

		_, err := m.NextMove()
		require.NoError(t, err)
	})
}

func TestMinimaxTreeInvariants(t *testing.T) {
	for _, maximizing := range []bool{true, false} {
		for depth := 1; depth <= 4; depth++ {
			g := mockGame{branching: 3, score: scrambled}
			m := newMockMinimax(g, maximizing, depth)

			tr := m.grow()
			deepest := checkSubtree(t, m, tr, 0, 0)

			require.Equal(t, depth, deepest, "Tree should reach but never exceed the depth bound")
		}
	}

	t.Run("contiguous children are tagged with their moves in order", func(t *testing.T) {
		m := newMockMinimax(mockGame{branching: 3}, true, 2)

		tr := m.grow()

		for i, child := range tr.children(0) {
			require.Equal(t, mockMove(i), child.move)
			require.Equal(t, strconv.Itoa(i), child.state.path)
		}
		require.Equal(t, 1+3+9, tr.size())
	})

	t.Run("depth bound below one still expands the root", func(t *testing.T) {
		m := newMockMinimax(mockGame{branching: 2, score: scrambled}, true, 0)

		tr := m.grow()

		require.Equal(t, 1, checkSubtree(t, m, tr, 0, 0))
		require.Equal(t, 3, tr.size())
	})

	t.Run("terminal states are never expanded", func(t *testing.T) {
		g := mockGame{branching: 2, score: scrambled, terminal: map[string]bool{"1": true, "01": true}}
		m := newMockMinimax(g, true, 5)

		tr := m.grow()

		for i := range tr.nodes {
			n := tr.nodes[i]
			if g.terminal[n.state.path] {
				require.True(t, n.leaf(), "Terminal node %q should have no children", n.state.path)
			}
		}
		checkSubtree(t, m, tr, 0, 0)
	})
}

func TestMinimaxNextMove(t *testing.T) {
	t.Run("maximizing root picks the highest scoring move", func(t *testing.T) {
		g := mockGame{branching: 3, score: scoresOf(map[string]int{"0": 1, "1": 8, "2": 3})}
		move, err := newMockMinimax(g, true, 1).NextMove()

		require.NoError(t, err)
		require.Equal(t, mockMove(1), move)
	})

	t.Run("minimizing root picks the lowest scoring move", func(t *testing.T) {
		g := mockGame{branching: 3, score: scoresOf(map[string]int{"0": 1, "1": 8, "2": -3})}
		move, err := newMockMinimax(g, false, 1).NextMove()

		require.NoError(t, err)
		require.Equal(t, mockMove(2), move)
	})

	t.Run("first move wins among equally good moves", func(t *testing.T) {
		g := mockGame{branching: 3, score: scoresOf(map[string]int{"0": 5, "1": 9, "2": 9})}
		move, err := newMockMinimax(g, true, 1).NextMove()
		require.NoError(t, err)
		require.Equal(t, mockMove(1), move)

		g = mockGame{branching: 3, score: scoresOf(map[string]int{"0": 5, "1": 1, "2": 1})}
		move, err = newMockMinimax(g, false, 1).NextMove()
		require.NoError(t, err)
		require.Equal(t, mockMove(1), move)
	})

	t.Run("maximizing side prefers the faster of two wins", func(t *testing.T) {
		scores := map[string]int{"1": 100}
		for _, leaf := range []string{"000", "001", "010", "011"} {
			scores[leaf] = 100
		}
		g := mockGame{branching: 2, score: scoresOf(scores), terminal: map[string]bool{"1": true}}

		result, err := newMockMinimax(g, true, 3).Search()

		require.NoError(t, err)
		require.Equal(t, mockMove(1), result.Move)
		require.Equal(t, ScoreDepth{Score: 100, Depth: 1}, result.Score)
		require.Equal(t, []Evaluation[mockMove]{
			{Move: 0, ScoreDepth: ScoreDepth{Score: 100, Depth: 3}},
			{Move: 1, ScoreDepth: ScoreDepth{Score: 100, Depth: 1}},
		}, result.Evaluations)
	})

	t.Run("minimizing side prefers the faster of two wins", func(t *testing.T) {
		scores := map[string]int{"1": -100}
		for _, leaf := range []string{"000", "001", "010", "011"} {
			scores[leaf] = -100
		}
		g := mockGame{branching: 2, score: scoresOf(scores), terminal: map[string]bool{"1": true}}

		move, err := newMockMinimax(g, false, 3).NextMove()

		require.NoError(t, err)
		require.Equal(t, mockMove(1), move)
	})

	t.Run("opponent replies are assumed to be best for the opponent", func(t *testing.T) {
		// Move 0 looks great unless the opponent answers with 01.
		scores := map[string]int{"00": 50, "01": -40, "10": 10, "11": 20}
		g := mockGame{branching: 2, score: scoresOf(scores)}

		result, err := newMockMinimax(g, true, 2).Search()

		require.NoError(t, err)
		require.Equal(t, mockMove(1), result.Move)
		require.Equal(t, ScoreDepth{Score: 10, Depth: 2}, result.Score)
	})

	t.Run("repeated calls return the same move", func(t *testing.T) {
		m := newMockMinimax(mockGame{branching: 3, score: scrambled}, true, 4)

		first, err := m.Search()
		require.NoError(t, err)
		second, err := m.Search()
		require.NoError(t, err)

		require.Equal(t, first.Move, second.Move)
		require.Equal(t, first.Evaluations, second.Evaluations)
	})

	t.Run("reconfigured state and depth take effect on the next call", func(t *testing.T) {
		g := mockGame{branching: 2, score: scoresOf(map[string]int{"10": 4, "11": 9, "0": 1, "1": 2})}
		m := newMockMinimax(g, true, 1)

		move, err := m.NextMove()
		require.NoError(t, err)
		require.Equal(t, mockMove(1), move)

		m.SetState(mockState{path: "1", maximizing: true})
		m.SetMaxDepth(1)
		move, err = m.NextMove()
		require.NoError(t, err)
		require.Equal(t, mockMove(1), move)
		require.Equal(t, 1, m.MaxDepth())
	})

	t.Run("fails when the starting state has no legal moves", func(t *testing.T) {
		_, err := newMockMinimax(mockGame{branching: 0}, true, 3).NextMove()
		require.True(t, errors.Is(err, ErrNoLegalMoves))
	})

	t.Run("fails when the starting state is terminal", func(t *testing.T) {
		g := mockGame{branching: 2, terminal: map[string]bool{"": true}}
		_, err := newMockMinimax(g, true, 3).NextMove()
		require.ErrorIs(t, err, ErrNoLegalMoves)
	})
}

func TestMinimaxMetrics(t *testing.T) {
	t.Run("collects tree statistics when enabled", func(t *testing.T) {
		m := newMockMinimax(mockGame{branching: 2, score: scrambled}, true, 3, WithMetrics[mockState, mockMove]())

		result, err := m.Search()

		require.NoError(t, err)
		require.Equal(t, 15, result.Metric.Nodes)
		require.Equal(t, 8, result.Metric.Leaves)
		require.Equal(t, 3, result.Metric.Deepest)
		require.Equal(t, 3, result.Metric.MaxDepth)
		require.False(t, result.Metric.StartTime.IsZero())
	})

	t.Run("collects nothing by default", func(t *testing.T) {
		result, err := newMockMinimax(mockGame{branching: 2, score: scrambled}, true, 3).Search()

		require.NoError(t, err)
		require.Equal(t, SearchMetric{}, result.Metric)
	})
}
