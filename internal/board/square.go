// Package board implements chess position representation using bitboards,
// ray-casting attack detection, and fully legal move generation.
package board

import "fmt"

// Square represents a square on the chess board (0-63).
// Uses Little-Endian Rank-File Mapping: A1=0, H1=7, A8=56, H8=63.
type Square uint8

// Square constants for all 64 squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank (row) of the square (0-7, where 0=1, 7=8).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}

// NewSquare creates a square from file and rank (0-indexed).
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	file := int(s[0] - 'a')
	rank := int(s[1] - '1')

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return NewSquare(file, rank), nil
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// Direction is one of the 8 ray directions a sliding piece can travel.
// The same 8 indices also select entries of the knight-jump table, which
// is a fixed offset mapping rather than a ray.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// Diagonal returns true for the four diagonal ray directions.
func (d Direction) Diagonal() bool {
	return d&1 == 1
}

// allDirections lists every ray direction for table building and attack scans.
var allDirections = [8]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

// (file, rank) deltas per direction, and the 8 knight jumps.
var (
	rayDeltas    = [8][2]int{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
	knightDeltas = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
)

// Precomputed step tables. Stepping off the board yields NoSquare. The
// tables behave identically to doing the file/rank arithmetic on demand,
// just cheaper.
var (
	nextSquare [64][8]Square
	nextKnight [64][8]Square
)

func init() {
	for sq := A1; sq <= H8; sq++ {
		for i, d := range rayDeltas {
			nextSquare[sq][i] = stepped(sq, d[0], d[1])
		}
		for i, d := range knightDeltas {
			nextKnight[sq][i] = stepped(sq, d[0], d[1])
		}
	}
}

func stepped(sq Square, df, dr int) Square {
	f := sq.File() + df
	r := sq.Rank() + dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return NoSquare
	}
	return NewSquare(f, r)
}

// Next returns the adjacent square in the given ray direction, or NoSquare
// at the edge of the board.
func (sq Square) Next(d Direction) Square {
	return nextSquare[sq][d]
}

// NextKnight returns the square a knight jump away in the given direction
// slot, or NoSquare when the jump leaves the board.
func (sq Square) NextKnight(d Direction) Square {
	return nextKnight[sq][d]
}
