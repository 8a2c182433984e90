package board

// ApplyMove applies a move to the position and returns the resulting new
// position; the receiver is never modified. The only failure is a
// StructuralError when the start square is empty; legality is not checked
// here, that is MoveLegal's job.
//
// A king moving two files on its home rank is a castling move and relocates
// the corresponding rook. A pawn landing on the en-passant target removes
// the pawn captured en passant. Castling rights are cleared when a side's
// king moves or a rook leaves its home square; the en-passant target is
// cleared every ply and set only after a pawn double push.
func (pos Position) ApplyMove(m Move) (Position, error) {
	p := pos

	moving := p.PieceAt(m.From)
	if moving == NoPiece {
		return Position{}, &StructuralError{Start: m.From}
	}
	side := moving.Color()
	pt := moving.Type()

	captured := !p.IsEmpty(m.To)
	p.ClearSquare(m.From)

	// castling: relocate the rook alongside the king.
	if pt == King && fileDistance(m.From, m.To) == 2 {
		rank := m.From.Rank()
		if m.To.File() == 6 {
			p.ClearSquare(NewSquare(7, rank))
			p.SetSquare(NewSquare(5, rank), NewPiece(Rook, side))
		} else {
			p.ClearSquare(NewSquare(0, rank))
			p.SetSquare(NewSquare(3, rank), NewPiece(Rook, side))
		}
	}

	// en-passant capture: the captured pawn sits on the rank behind the
	// destination, which is the mover's start rank.
	if pt == Pawn && m.To == p.EnPassant && p.EnPassant != NoSquare {
		p.ClearSquare(NewSquare(m.To.File(), m.From.Rank()))
		captured = true
	}

	// castling rights: cleared, never re-granted.
	if pt == King {
		p.Castling = p.Castling.remove(sideCastling(side))
	}
	if pt == Rook {
		switch m.From {
		case A1:
			p.Castling = p.Castling.remove(WhiteQueenSideCastle)
		case H1:
			p.Castling = p.Castling.remove(WhiteKingSideCastle)
		case A8:
			p.Castling = p.Castling.remove(BlackQueenSideCastle)
		case H8:
			p.Castling = p.Castling.remove(BlackKingSideCastle)
		}
	}

	p.EnPassant = NoSquare
	if pt == Pawn && rankDistance(m.From, m.To) == 2 {
		p.EnPassant = NewSquare(m.From.File(), (m.From.Rank()+m.To.Rank())/2)
	}

	placed := moving
	if m.Promo != NoPieceType {
		placed = NewPiece(m.Promo, side)
	}
	p.SetSquare(m.To, placed)

	if pt == Pawn || captured {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}
	if side == Black {
		p.FullMoveNumber++
	}
	p.SideToMove = side.Other()

	if DebugMoveValidation {
		if err := p.Sanity(); err != nil {
			panic("position corrupted by " + m.String() + ": " + err.Error())
		}
	}

	return p, nil
}
