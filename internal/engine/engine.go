// Package engine drives the alpha-beta search over chess positions: it
// adapts positions to game-tree nodes, exposes perft counting, and runs
// timed best-move decisions on a dedicated worker goroutine.
package engine

import (
	"context"
	"time"

	"github.com/hailam/chessmind/internal/board"
)

// Info reports the outcome of one completed search depth.
type Info struct {
	Depth int
	Value float32
	Nodes uint64
	Time  time.Duration
	PV    []board.Move // root-to-leaf order
}

// Result is a best-move decision.
type Result struct {
	BestMove board.Move
	Value    float32
	Nodes    uint64
	Depth    int
	PV       []board.Move // root-to-leaf order
}

// Engine turns positions into move decisions.
type Engine struct {
	// MaxDepth bounds iterative deepening.
	MaxDepth int
	// OnInfo, when set, is called after each completed depth.
	OnInfo func(Info)
}

// New creates an engine searching up to maxDepth plies.
func New(maxDepth int) *Engine {
	return &Engine{MaxDepth: maxDepth}
}

// BestMove picks a move for the side to move by iterative deepening: the
// whole search is re-invoked with increasing depth, each call independent.
// Every invocation runs on its own goroutine and races the context: when
// the context fires first, the deepest fully completed result is reused and
// the in-flight recursion is abandoned, never interrupted. The search
// itself is single-threaded and takes no locks; it operates on its own
// owned clone of the position.
//
// A position with no legal moves yields Result{BestMove: NoMove}.
func (e *Engine) BestMove(ctx context.Context, pos board.Position) (Result, error) {
	start := time.Now()

	var last Result
	have := false

	for depth := 1; depth <= e.MaxDepth; depth++ {
		if ctx.Err() != nil {
			if have {
				return last, nil
			}
			return Result{BestMove: board.NoMove}, ctx.Err()
		}

		done := make(chan Result, 1)
		go func(d int) {
			nodes, value, line := Search(pos, d, true, false)
			done <- Result{
				BestMove: rootMove(line),
				Value:    value,
				Nodes:    nodes,
				Depth:    d,
				PV:       reversed(line),
			}
		}(depth)

		select {
		case res := <-done:
			last = res
			have = true
			if e.OnInfo != nil {
				e.OnInfo(Info{
					Depth: res.Depth,
					Value: res.Value,
					Nodes: res.Nodes,
					Time:  time.Since(start),
					PV:    res.PV,
				})
			}
		case <-ctx.Done():
			if have {
				return last, nil
			}
			return Result{BestMove: board.NoMove}, ctx.Err()
		}
	}

	if !have {
		return Result{BestMove: board.NoMove}, nil
	}
	return last, nil
}

// rootMove extracts the root move from a child-to-root best line.
func rootMove(line []board.Move) board.Move {
	if len(line) == 0 {
		return board.NoMove
	}
	return line[len(line)-1]
}

// reversed flips a child-to-root line into root-to-leaf order.
func reversed(line []board.Move) []board.Move {
	out := make([]board.Move, len(line))
	for i, m := range line {
		out[len(line)-1-i] = m
	}
	return out
}
