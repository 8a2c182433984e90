package engine

import (
	"iter"

	"github.com/hailam/chessmind/internal/board"
	"github.com/hailam/chessmind/internal/search"
)

// gameNode adapts a Position to the search.Node contract. Each child is the
// position after one legal move, labeled with that move. Position values are
// owned clones, so branches of the search tree share nothing.
type gameNode struct {
	pos board.Position
}

// Terminal is always false: a position with no legal replies surfaces as a
// node with zero children, which the search degrades to the leaf case.
func (n gameNode) Terminal() bool {
	return false
}

// Score is a constant stub. Real evaluation is external policy; the search
// layer only promises to propagate whatever the leaves report.
func (n gameNode) Score() float32 {
	return 1.0
}

// Children yields the positions reachable by one legal move.
func (n gameNode) Children() iter.Seq2[gameNode, board.Move] {
	return func(yield func(gameNode, board.Move) bool) {
		for _, m := range n.pos.LegalMoves() {
			next, err := n.pos.ApplyMove(m)
			if err != nil {
				// legal moves always apply
				panic(err)
			}
			if !yield(gameNode{pos: next}, m) {
				return
			}
		}
	}
}

// Search runs the alpha-beta search from pos and returns the leaf count,
// the root value, and the best line in child-to-root order.
func Search(pos board.Position, depth int, prune, divide bool) (uint64, float32, []board.Move) {
	res := search.Run[gameNode, board.Move](gameNode{pos: pos}, search.Settings{
		Depth:  depth,
		Prune:  prune,
		Divide: divide,
	})
	return res.Count, res.Value, res.Line
}

// Perft counts the leaf nodes of the legal-move tree at the given depth
// using the search engine's divide mode.
func Perft(pos board.Position, depth int) uint64 {
	res := search.Run[gameNode, board.Move](gameNode{pos: pos}, search.Divide(depth))
	return res.Count
}
