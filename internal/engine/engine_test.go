package engine

import (
	"context"
	"testing"
	"time"

	"github.com/hailam/chessmind/internal/board"
)

func mustParse(t *testing.T, fen string) board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return pos
}

func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
		nodes uint64
	}{
		{"startpos depth 1", board.StartFEN, 1, 20},
		{"startpos depth 2", board.StartFEN, 2, 400},
		{"startpos depth 3", board.StartFEN, 3, 8902},
		{"kiwipete depth 2", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2, 2039},
		{"en passant pin depth 2", "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1", 2, 94},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustParse(t, tc.fen)
			if got := Perft(pos, tc.depth); got != tc.nodes {
				t.Errorf("Perft(%d) = %d, want %d", tc.depth, got, tc.nodes)
			}
		})
	}
}

// TestSearchNodeCountWithoutPruning checks that an unpruned search visits
// exactly the leaf nodes of the legal-move tree, which ties the search
// recursion to the move generator's perft figures.
func TestSearchNodeCountWithoutPruning(t *testing.T) {
	pos := board.NewPosition()

	nodes, _, _ := Search(pos, 3, false, false)
	if nodes != 8902 {
		t.Errorf("unpruned depth-3 search visited %d leaves, want 8902", nodes)
	}
}

func TestPruningPreservesValue(t *testing.T) {
	fens := []string{
		board.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}

	for _, fen := range fens {
		pos := mustParse(t, fen)

		fullNodes, fullValue, _ := Search(pos, 3, false, false)
		prunedNodes, prunedValue, _ := Search(pos, 3, true, false)

		if fullValue != prunedValue {
			t.Errorf("%q: pruned value %v differs from full value %v", fen, prunedValue, fullValue)
		}
		if prunedNodes > fullNodes {
			t.Errorf("%q: pruned search visited more leaves (%d > %d)", fen, prunedNodes, fullNodes)
		}
	}
}

func TestBestMoveIsLegal(t *testing.T) {
	pos := board.NewPosition()
	eng := New(3)

	res, err := eng.BestMove(context.Background(), pos)
	if err != nil {
		t.Fatalf("BestMove: %v", err)
	}
	if res.Depth != 3 {
		t.Errorf("Depth = %d, want 3", res.Depth)
	}

	legal := pos.LegalMoves()
	found := false
	for _, m := range legal {
		if m == res.BestMove {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("best move %s is not legal in the root position", res.BestMove)
	}

	if len(res.PV) == 0 || res.PV[0] != res.BestMove {
		t.Errorf("PV %v does not start with the best move %s", res.PV, res.BestMove)
	}
}

func TestBestMoveNoLegalMoves(t *testing.T) {
	// stalemate: black has nothing to play
	pos := mustParse(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	eng := New(2)

	res, err := eng.BestMove(context.Background(), pos)
	if err != nil {
		t.Fatalf("BestMove: %v", err)
	}
	if res.BestMove != board.NoMove {
		t.Errorf("BestMove = %s, want none", res.BestMove)
	}
}

func TestBestMoveCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng := New(3)
	_, err := eng.BestMove(ctx, board.NewPosition())
	if err == nil {
		t.Fatal("BestMove on a cancelled context returned no error")
	}
}

func TestBestMoveUnderDeadline(t *testing.T) {
	// depth 1 completes in microseconds, so whether or not the deadline cuts
	// the deepening short, a completed result must come back
	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	eng := New(6)
	res, err := eng.BestMove(ctx, board.NewPosition())
	if err != nil {
		t.Fatalf("BestMove: %v", err)
	}
	if res.BestMove == board.NoMove {
		t.Error("no best move despite completed depths")
	}
	if res.Depth < 1 || res.Depth > 6 {
		t.Errorf("Depth = %d, want between 1 and 6", res.Depth)
	}
}

func TestOnInfoReportsEachDepth(t *testing.T) {
	eng := New(3)
	var depths []int
	eng.OnInfo = func(info Info) {
		depths = append(depths, info.Depth)
	}

	if _, err := eng.BestMove(context.Background(), board.NewPosition()); err != nil {
		t.Fatal(err)
	}
	if len(depths) != 3 || depths[0] != 1 || depths[2] != 3 {
		t.Errorf("OnInfo depths = %v, want [1 2 3]", depths)
	}
}
