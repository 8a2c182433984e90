package board

import "fmt"

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr&WhiteKingSideCastle != 0
		}
		return cr&WhiteQueenSideCastle != 0
	}
	if kingSide {
		return cr&BlackKingSideCastle != 0
	}
	return cr&BlackQueenSideCastle != 0
}

// remove clears the given rights; rights are never re-granted.
func (cr CastlingRights) remove(flags CastlingRights) CastlingRights {
	return cr &^ flags
}

// sideCastling returns both flags for one side.
func sideCastling(c Color) CastlingRights {
	if c == White {
		return WhiteKingSideCastle | WhiteQueenSideCastle
	}
	return BlackKingSideCastle | BlackQueenSideCastle
}

// DebugMoveValidation enables the occupancy sanity check after every move
// application. Off by default; move application is on the hot search path.
var DebugMoveValidation = false

// Position represents a complete chess position. It is a plain value:
// applying a move produces a new Position and never mutates the receiver,
// so search-tree branches can share nothing.
type Position struct {
	// Piece bitboards indexed by PieceType, and side occupancy bitboards
	// indexed by Color. A square may be a member of at most one piece
	// bitboard and at most one side bitboard; every occupied square belongs
	// to exactly one of each.
	Pieces [6]Bitboard
	Sides  [2]Bitboard

	SideToMove     Color
	Castling       CastlingRights
	EnPassant      Square // target square for en passant, NoSquare if none
	HalfMoveClock  int    // plies since last pawn move or capture
	FullMoveNumber int    // full move counter, starts at 1, increments after Black
}

// NewPosition creates the starting position.
func NewPosition() Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

// Occupied returns the set of all occupied squares.
func (p Position) Occupied() Bitboard {
	return p.Sides[White] | p.Sides[Black]
}

// IsEmpty returns true if the square is empty.
func (p Position) IsEmpty(sq Square) bool {
	return !p.Occupied().IsSet(sq)
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p Position) PieceAt(sq Square) Piece {
	var c Color
	if p.Sides[White].IsSet(sq) {
		c = White
	} else if p.Sides[Black].IsSet(sq) {
		c = Black
	} else {
		return NoPiece
	}

	for pt := Pawn; pt <= King; pt++ {
		if p.Pieces[pt].IsSet(sq) {
			return NewPiece(pt, c)
		}
	}

	return NoPiece
}

// ClearSquare removes whatever occupies the square from every bitboard.
func (p *Position) ClearSquare(sq Square) {
	for pt := Pawn; pt <= King; pt++ {
		p.Pieces[pt] = p.Pieces[pt].Clear(sq)
	}
	p.Sides[White] = p.Sides[White].Clear(sq)
	p.Sides[Black] = p.Sides[Black].Clear(sq)
}

// SetSquare places a piece on the square, clearing any previous occupant.
func (p *Position) SetSquare(sq Square, piece Piece) {
	if piece == NoPiece {
		p.ClearSquare(sq)
		return
	}
	p.ClearSquare(sq)
	p.Pieces[piece.Type()] = p.Pieces[piece.Type()].Set(sq)
	p.Sides[piece.Color()] = p.Sides[piece.Color()].Set(sq)
}

// KingSquare returns the square of the given side's king. A missing king is
// an internal-consistency failure: the move generator and FEN importer can
// never produce such a position.
func (p Position) KingSquare(c Color) Square {
	sq := (p.Pieces[King] & p.Sides[c]).LSB()
	if sq == NoSquare {
		panic(fmt.Sprintf("no %v king on board:\n%s", c, p))
	}
	return sq
}

// Sanity verifies the occupancy invariant: piece bitboards are pairwise
// disjoint, side bitboards are disjoint, and every occupied square belongs
// to exactly one piece bitboard and one side bitboard.
func (p Position) Sanity() error {
	var pieceUnion Bitboard
	for pt := Pawn; pt <= King; pt++ {
		if pieceUnion&p.Pieces[pt] != 0 {
			return fmt.Errorf("square in more than one piece bitboard: %v", pt)
		}
		pieceUnion |= p.Pieces[pt]
	}

	if p.Sides[White]&p.Sides[Black] != 0 {
		return fmt.Errorf("square occupied by both sides")
	}

	if pieceUnion != p.Sides[White]|p.Sides[Black] {
		return fmt.Errorf("piece occupancy does not match side occupancy")
	}

	return nil
}

// String returns a visual representation of the position.
func (p Position) String() string {
	s := "\n"
	for rank := 7; rank >= 0; rank-- {
		s += fmt.Sprintf("%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				s += ". "
			} else {
				s += piece.String() + " "
			}
		}
		s += "\n"
	}
	s += "\n   a b c d e f g h\n\n"
	s += fmt.Sprintf("Side to move: %s\n", p.SideToMove)
	s += fmt.Sprintf("Castling: %s\n", p.Castling)
	s += fmt.Sprintf("En passant: %s\n", p.EnPassant)
	s += fmt.Sprintf("Half-move clock: %d\n", p.HalfMoveClock)
	s += fmt.Sprintf("Full move: %d\n", p.FullMoveNumber)
	return s
}
