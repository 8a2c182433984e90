// Package search implements a generic depth-limited alpha-beta tree search.
// It knows nothing about chess: any node type exposing a terminal test, a
// leaf score, and a lazy child sequence can be searched.
package search

import (
	"iter"
	"math"
)

// Node is the capability contract a game-tree node must satisfy. N is the
// concrete node type itself and L the move-label type attached to each
// child edge.
//
// Children yields (child, label) pairs. The sequence is finite, consumed in
// one pass per invocation, and not restartable; calling Children again
// produces a fresh pass.
type Node[N, L any] interface {
	// Terminal reports whether the node ends the game on its own.
	Terminal() bool
	// Score is the node's leaf evaluation.
	Score() float32
	// Children enumerates the successor nodes and their move labels.
	Children() iter.Seq2[N, L]
}

// Settings control one search invocation.
type Settings struct {
	Depth int
	// Prune enables alpha-beta cutoffs. With pruning on or off the returned
	// value is identical; only the node count may shrink.
	Prune bool
	// Divide short-circuits when exactly one ply of depth remains and
	// returns the number of children as the count, without recursing or
	// evaluating. The value is meaningless in this mode; it exists to
	// validate move-generation totals against known perft figures.
	Divide bool
}

// Divide returns the settings for a leaf-counting run at the given depth.
func Divide(depth int) Settings {
	return Settings{Depth: depth, Divide: true}
}

// Result is the outcome of a search.
type Result[L any] struct {
	// Count is the number of leaf nodes visited.
	Count uint64
	// Value is the minimax value of the root.
	Value float32
	// Line is the best line in child-to-root order: read it back to front
	// to obtain the root-to-leaf principal variation.
	Line []L
}

// Run searches the tree rooted at node with the root treated as the
// maximizing player.
func Run[N Node[N, L], L any](node N, s Settings) Result[L] {
	return alphabeta[N, L](node, s, s.Depth, negInf, posInf, true)
}

var (
	negInf = float32(math.Inf(-1))
	posInf = float32(math.Inf(1))
)

func alphabeta[N Node[N, L], L any](node N, s Settings, depth int, alpha, beta float32, max bool) Result[L] {
	if depth <= 0 || node.Terminal() {
		return Result[L]{Count: 1, Value: node.Score()}
	}

	if depth == 1 && s.Divide {
		var n uint64
		for range node.Children() {
			n++
		}
		return Result[L]{Count: n}
	}

	value := negInf
	if !max {
		value = posInf
	}
	var count uint64
	var line []L

	for child, label := range node.Children() {
		res := alphabeta[N, L](child, s, depth-1, alpha, beta, !max)
		count += res.Count
		if max {
			if res.Value > value {
				value = res.Value
				line = append(res.Line, label)
			}
			if value > alpha {
				alpha = value
			}
			if value >= beta && s.Prune {
				break
			}
		} else {
			if res.Value < value {
				value = res.Value
				line = append(res.Line, label)
			}
			if value < beta {
				beta = value
			}
			if value <= alpha && s.Prune {
				break
			}
		}
	}

	// No children visited: a true terminal with no replies (checkmate or
	// stalemate, not distinguished here). Degrade to the leaf case.
	if count == 0 {
		return Result[L]{Count: 1, Value: node.Score()}
	}

	return Result[L]{Count: count, Value: value, Line: line}
}
