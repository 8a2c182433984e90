package board

import "testing"

// perft counts the leaf nodes of the legal-move tree. Depth 1 avoids the
// per-child apply since the move count alone is the answer.
func perft(pos Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := pos.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		next, err := pos.ApplyMove(m)
		if err != nil {
			panic(err)
		}
		nodes += perft(next, depth-1)
	}
	return nodes
}

func TestPerft(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		counts []uint64 // counts[i] is the expected total at depth i+1
	}{
		{
			name:   "starting position",
			fen:    StartFEN,
			counts: []uint64{20, 400, 8902, 197281},
		},
		{
			name:   "kiwipete",
			fen:    "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
			counts: []uint64{48, 2039, 97862},
		},
		{
			name:   "rook endgame with en passant",
			fen:    "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
			counts: []uint64{14, 191, 2812, 43238},
		},
		{
			name:   "en passant discovered pin",
			fen:    "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
			counts: []uint64{6, 94},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustParse(t, tc.fen)
			for depth, want := range tc.counts {
				depth++
				if testing.Short() && want > 10000 {
					t.Skipf("skipping depth %d in short mode", depth)
				}
				if got := perft(pos, depth); got != want {
					t.Errorf("perft(%d) = %d, want %d", depth, got, want)
				}
			}
		})
	}
}

func BenchmarkPerft(b *testing.B) {
	pos := NewPosition()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		perft(pos, 3)
	}
}
