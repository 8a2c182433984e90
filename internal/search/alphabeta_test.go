package search

import (
	"iter"
	"testing"
)

// testNode is a hand-built game tree for exercising the search.
type testNode struct {
	score    float32
	terminal bool
	children []testNode
	labels   []string
}

func (n testNode) Terminal() bool { return n.terminal }
func (n testNode) Score() float32 { return n.score }

func (n testNode) Children() iter.Seq2[testNode, string] {
	return func(yield func(testNode, string) bool) {
		for i, c := range n.children {
			label := ""
			if i < len(n.labels) {
				label = n.labels[i]
			}
			if !yield(c, label) {
				return
			}
		}
	}
}

func leaf(score float32) testNode {
	return testNode{score: score}
}

func branch(labels []string, children ...testNode) testNode {
	return testNode{children: children, labels: labels}
}

func TestDepthZeroReturnsScore(t *testing.T) {
	n := leaf(3.5)
	res := Run[testNode, string](n, Settings{Depth: 0})
	if res.Value != 3.5 {
		t.Errorf("Value = %v, want 3.5", res.Value)
	}
	if res.Count != 1 {
		t.Errorf("Count = %d, want 1", res.Count)
	}
}

func TestTerminalStopsDescent(t *testing.T) {
	n := testNode{score: -2, terminal: true, children: []testNode{leaf(99)}}
	res := Run[testNode, string](n, Settings{Depth: 5})
	if res.Value != -2 {
		t.Errorf("Value = %v, want -2 (terminal score, not child score)", res.Value)
	}
	if res.Count != 1 {
		t.Errorf("Count = %d, want 1", res.Count)
	}
}

// minimaxTree is a depth-2 tree with a known value: the root maximizes over
// three minimizing branches whose minima are 3, 2 and 1, so the root value
// is 3 and the best line starts with "a".
func minimaxTree() testNode {
	return branch([]string{"a", "b", "c"},
		branch([]string{"a1", "a2"}, leaf(3), leaf(7)),
		branch([]string{"b1", "b2"}, leaf(2), leaf(8)),
		branch([]string{"c1", "c2"}, leaf(1), leaf(9)),
	)
}

func TestMinimaxValue(t *testing.T) {
	res := Run[testNode, string](minimaxTree(), Settings{Depth: 2})
	if res.Value != 3 {
		t.Errorf("Value = %v, want 3", res.Value)
	}
	if res.Count != 6 {
		t.Errorf("Count = %d, want 6 leaves", res.Count)
	}

	// Line is child-to-root: the root move comes last
	if len(res.Line) != 2 || res.Line[len(res.Line)-1] != "a" || res.Line[0] != "a1" {
		t.Errorf("Line = %v, want [a1 a]", res.Line)
	}
}

func TestPruningPreservesValue(t *testing.T) {
	tree := minimaxTree()

	full := Run[testNode, string](tree, Settings{Depth: 2})
	pruned := Run[testNode, string](tree, Settings{Depth: 2, Prune: true})

	if full.Value != pruned.Value {
		t.Errorf("pruned value %v differs from full value %v", pruned.Value, full.Value)
	}
	if pruned.Count >= full.Count {
		// the b and c branches both admit a cutoff after their first leaf
		t.Errorf("no cutoff happened: %d of %d leaves visited", pruned.Count, full.Count)
	}
}

func TestDivideCountsChildren(t *testing.T) {
	tree := minimaxTree()

	res := Run[testNode, string](tree, Divide(1))
	if res.Count != 3 {
		t.Errorf("Divide(1) Count = %d, want 3 children", res.Count)
	}

	res = Run[testNode, string](tree, Divide(2))
	if res.Count != 6 {
		t.Errorf("Divide(2) Count = %d, want 6 grandchildren", res.Count)
	}
}

func TestNoChildrenFallsBackToLeaf(t *testing.T) {
	// a node that claims to be non-terminal but has nothing to play
	n := testNode{score: -1}
	res := Run[testNode, string](n, Settings{Depth: 3})
	if res.Value != -1 {
		t.Errorf("Value = %v, want the node's own score -1", res.Value)
	}
	if res.Count != 1 {
		t.Errorf("Count = %d, want 1", res.Count)
	}
	if len(res.Line) != 0 {
		t.Errorf("Line = %v, want empty", res.Line)
	}
}

func TestDeeperAlternation(t *testing.T) {
	// depth 3: root maximizes, children minimize, grandchildren maximize
	tree := branch([]string{"l", "r"},
		branch([]string{"ll", "lr"},
			branch([]string{"x", "y"}, leaf(1), leaf(4)), // max: 4
			branch([]string{"x", "y"}, leaf(6), leaf(2)), // max: 6
		), // min: 4
		branch([]string{"rl", "rr"},
			branch([]string{"x", "y"}, leaf(3), leaf(5)), // max: 5
			branch([]string{"x", "y"}, leaf(9), leaf(0)), // max: 9
		), // min: 5
	)
	// root max: 5 via "r"

	res := Run[testNode, string](tree, Settings{Depth: 3})
	if res.Value != 5 {
		t.Errorf("Value = %v, want 5", res.Value)
	}
	if rootLabel := res.Line[len(res.Line)-1]; rootLabel != "r" {
		t.Errorf("root move = %q, want r", rootLabel)
	}

	pruned := Run[testNode, string](tree, Settings{Depth: 3, Prune: true})
	if pruned.Value != res.Value {
		t.Errorf("pruned value %v differs from full value %v", pruned.Value, res.Value)
	}
}
