package searcher

import (
	"github.com/rs/zerolog/log"
)

type Option[S, M any] func(m *Minimax[S, M])

// Minimax searches a bounded game tree built from a starting state through
// injected callbacks. Each search builds its own tree and drops it before
// returning. Configuration is not synchronized: do not reconfigure a
// Minimax while a search is running.
type Minimax[S, M any] struct {
	state         S
	maxDepth      int
	score         ScoreFunc[S]
	maximizing    MaximizingFunc[S]
	transition    TransitionFunc[S, M]
	possibleMoves PossibleMovesFunc[S, M]
	stopCondition StopConditionFunc[S]
	metrics       MetricsCollector
}

// Evaluation is the propagated score of one move from the starting state.
type Evaluation[M any] struct {
	Move M `json:"move"`
	ScoreDepth
}

type Result[M any] struct {
	Move        M
	Score       ScoreDepth
	Evaluations []Evaluation[M] // One per legal move, in PossibleMoves order
	Metric      SearchMetric
}

func WithScore[S, M any](f ScoreFunc[S]) Option[S, M] {
	return func(m *Minimax[S, M]) {
		m.score = f
	}
}

func WithMaximizing[S, M any](f MaximizingFunc[S]) Option[S, M] {
	return func(m *Minimax[S, M]) {
		m.maximizing = f
	}
}

func WithTransition[S, M any](f TransitionFunc[S, M]) Option[S, M] {
	return func(m *Minimax[S, M]) {
		m.transition = f
	}
}

func WithPossibleMoves[S, M any](f PossibleMovesFunc[S, M]) Option[S, M] {
	return func(m *Minimax[S, M]) {
		m.possibleMoves = f
	}
}

func WithStopCondition[S, M any](f StopConditionFunc[S]) Option[S, M] {
	return func(m *Minimax[S, M]) {
		m.stopCondition = f
	}
}

// WithGame sets all five callbacks from one capability set.
func WithGame[S, M any](game Game[S, M]) Option[S, M] {
	return func(m *Minimax[S, M]) {
		if game != nil {
			m.SetGame(game)
		}
	}
}

func WithMetrics[S, M any]() Option[S, M] {
	return func(m *Minimax[S, M]) {
		m.metrics = NewMetricsCollector()
	}
}

// NewMinimax returns an engine searching from state down to maxDepth plies.
// Callbacks left unset are reported when a search starts.
func NewMinimax[S, M any](state S, maxDepth int, options ...Option[S, M]) *Minimax[S, M] {
	m := &Minimax[S, M]{
		state:    state,
		maxDepth: maxDepth,
		metrics:  NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Minimax[S, M]) SetState(state S) {
	m.state = state
}

func (m *Minimax[S, M]) SetMaxDepth(depth int) {
	m.maxDepth = depth
}

func (m *Minimax[S, M]) MaxDepth() int {
	return m.maxDepth
}

func (m *Minimax[S, M]) SetScore(f ScoreFunc[S]) {
	m.score = f
}

func (m *Minimax[S, M]) SetMaximizing(f MaximizingFunc[S]) {
	m.maximizing = f
}

func (m *Minimax[S, M]) SetTransition(f TransitionFunc[S, M]) {
	m.transition = f
}

func (m *Minimax[S, M]) SetPossibleMoves(f PossibleMovesFunc[S, M]) {
	m.possibleMoves = f
}

func (m *Minimax[S, M]) SetStopCondition(f StopConditionFunc[S]) {
	m.stopCondition = f
}

func (m *Minimax[S, M]) SetGame(game Game[S, M]) {
	m.score = game.Score
	m.maximizing = game.Maximizing
	m.transition = game.Transition
	m.possibleMoves = game.PossibleMoves
	m.stopCondition = game.StopCondition
}

// NextMove returns the move judged best for the side to act in the starting state.
func (m *Minimax[S, M]) NextMove() (M, error) {
	result, err := m.Search()
	return result.Move, err
}

// Search builds and scores the tree, then picks the best root move. Among
// equally good root moves the first in PossibleMoves order wins.
func (m *Minimax[S, M]) Search() (Result[M], error) {
	if err := m.checkCallbacks(); err != nil {
		return Result[M]{}, err
	}

	bound := m.depthBound()
	m.metrics.Start(bound)

	t := m.grow()
	metric := m.metrics.Complete()

	log.Debug().Msgf("built minimax tree of %d nodes with depth bound %d", t.size(), bound)

	if t.root().leaf() {
		return Result[M]{Metric: metric}, ErrNoLegalMoves
	}

	maximizing := m.maximizing(m.state)
	children := t.children(0)
	evaluations := make([]Evaluation[M], len(children))
	best := 0
	for i, child := range children {
		evaluations[i] = Evaluation[M]{Move: child.move, ScoreDepth: child.score}
		if child.score.Better(children[best].score, maximizing) {
			best = i
		}
	}

	return Result[M]{
		Move:        children[best].move,
		Score:       children[best].score,
		Evaluations: evaluations,
		Metric:      metric,
	}, nil
}

func (m *Minimax[S, M]) checkCallbacks() error {
	switch {
	case m.score == nil:
		return &MissingCallbackError{Which: ScoreCallback}
	case m.maximizing == nil:
		return &MissingCallbackError{Which: MaximizingCallback}
	case m.transition == nil:
		return &MissingCallbackError{Which: TransitionCallback}
	case m.stopCondition == nil:
		return &MissingCallbackError{Which: StopConditionCallback}
	case m.possibleMoves == nil:
		return &MissingCallbackError{Which: PossibleMovesCallback}
	}
	return nil
}

// grow builds the tree from the starting state and scores every node.
func (m *Minimax[S, M]) grow() *tree[S, M] {
	t := newTree[S, M](m.state)
	m.metrics.AddNode(0)
	m.buildTree(t, 0, 0)
	m.addScores(t, 0, 0)
	return t
}

// The root is always expanded, so a bound below one searches one ply.
func (m *Minimax[S, M]) depthBound() int {
	return max(1, m.maxDepth)
}

// buildTree expands the node at index i depth first. All children of a node
// are appended before any of them is expanded, which keeps them contiguous.
func (m *Minimax[S, M]) buildTree(t *tree[S, M], i int, depth int) {
	state := t.nodes[i].state
	if m.stopCondition(state) || depth >= m.depthBound() {
		return
	}

	moves := m.possibleMoves(state)
	first := t.size()
	for _, move := range moves {
		t.nodes = append(t.nodes, node[S, M]{state: m.transition(state, move), move: move})
		m.metrics.AddNode(depth + 1)
	}
	t.nodes[i].first = first
	t.nodes[i].count = len(moves)

	for c := first; c < first+len(moves); c++ {
		m.buildTree(t, c, depth+1)
	}
}

// addScores scores the subtree at index i in post-order. Leaves take the
// heuristic score, internal nodes the best child under their own polarity.
func (m *Minimax[S, M]) addScores(t *tree[S, M], i int, depth int) {
	n := &t.nodes[i]
	if n.leaf() {
		n.score = ScoreDepth{Score: m.score(n.state), Depth: uint(depth)}
		m.metrics.AddLeaf()
		return
	}

	for c := n.first; c < n.first+n.count; c++ {
		m.addScores(t, c, depth+1)
	}

	maximizing := m.maximizing(n.state)
	best := initialScore(maximizing)
	for _, child := range t.children(i) {
		if child.score.Better(best, maximizing) {
			best = child.score
		}
	}
	n.score = best
}
