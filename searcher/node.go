package searcher

import (
	"math"

	"chessbot/game"
)

type nodeState uint8

const (
	unvisited nodeState = iota // Allocated, not yet evaluated
	evaluated                  // Evaluated once, moves not generated yet
	expanded                   // Moves generated, at least one legal
	terminal                   // Moves generated, none legal
)

// node values are from the perspective of the player to move at the node.
type node struct {
	state    nodeState
	visits   int
	value    float64
	moves    []game.Move
	children []int32 // Arena index per move, 0 until first selected
}

// tree is an arena of nodes with the root at index 0. Children refer to each
// other by index, so pointers into nodes are invalidated by any allocation.
type tree struct {
	nodes []node
}

func newTree() *tree {
	return &tree{nodes: make([]node, 1, 1024)}
}

func (t *tree) root() *node {
	return &t.nodes[0]
}

// child returns the arena index of the i'th child of parent, allocating it on
// first use.
func (t *tree) child(parent int32, i int) int32 {
	if c := t.nodes[parent].children[i]; c != 0 {
		return c
	}
	c := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{})
	t.nodes[parent].children[i] = c
	return c
}

// tried reports whether the i'th child of n has completed a visit.
func (t *tree) tried(n *node, i int) (*node, bool) {
	c := n.children[i]
	if c == 0 || t.nodes[c].visits == 0 {
		return nil, false
	}
	return &t.nodes[c], true
}

// selectChild picks the child to descend into: untried children first, then
// the maximum UCT score. Ties go to the later index.
func (t *tree) selectChild(parent int32, c float64) int {
	n := &t.nodes[parent]
	policy := newUCT(c, n.visits)

	best := -1
	bestScore := math.Inf(-1)
	bestUntried := false
	for i := range n.children {
		child, ok := t.tried(n, i)
		if !ok {
			best = i
			bestUntried = true
			continue
		}
		if bestUntried {
			continue
		}
		// Child values are from the opponent's perspective
		score := policy.evaluate(-child.value, child.visits)
		if score >= bestScore {
			bestScore = score
			best = i
		}
	}
	return best
}

// bestChild returns the root child with the highest average value for the
// root player, ignoring exploration, or -1 if no child has been visited.
func (t *tree) bestChild() (int, float64) {
	root := t.root()
	best := -1
	bestValue := math.Inf(-1)
	for i := range root.children {
		child, ok := t.tried(root, i)
		if !ok {
			continue
		}
		if v := -child.value / float64(child.visits); v > bestValue {
			bestValue = v
			best = i
		}
	}
	return best, bestValue
}
