package searcher

// node is one explored position. Its children live in the tree arena at
// indices [first, first+count).
type node[S, M any] struct {
	state S
	move  M
	first int
	count int
	score ScoreDepth
}

func (n *node[S, M]) leaf() bool {
	return n.count == 0
}

// tree owns every node built by a single search. The root is always nodes[0].
type tree[S, M any] struct {
	nodes []node[S, M]
}

func newTree[S, M any](root S) *tree[S, M] {
	t := &tree[S, M]{nodes: make([]node[S, M], 1, 64)}
	t.nodes[0].state = root
	return t
}

func (t *tree[S, M]) root() *node[S, M] {
	return &t.nodes[0]
}

// children returns the child range of the node at index i. The slice aliases
// the arena and must not be held across appends.
func (t *tree[S, M]) children(i int) []node[S, M] {
	n := t.nodes[i]
	return t.nodes[n.first : n.first+n.count]
}

func (t *tree[S, M]) size() int {
	return len(t.nodes)
}
