package board

// pieceMoves builds the pseudo-legal destination bitboard for the piece on
// sq. Sliders accumulate squares along rays until blocked, including the
// blocking square iff it holds an enemy piece. Pawns handle single and
// double pushes (both blocked by any occupant), the two diagonal captures,
// and the en-passant capture. Knights and the king use the fixed offset
// tables. Castling is synthesized separately.
func (p Position) pieceMoves(sq Square) Bitboard {
	piece := p.PieceAt(sq)
	if piece == NoPiece {
		return EmptyBB
	}

	side := piece.Color()
	ours := p.Sides[side]
	theirs := p.Sides[side.Other()]

	var bb Bitboard
	switch piece.Type() {
	case Pawn:
		bb = p.pawnMoves(sq, side, theirs)
	case Knight:
		for _, dir := range allDirections {
			if next := sq.NextKnight(dir); next != NoSquare {
				bb = bb.Set(next)
			}
		}
	case King:
		for _, dir := range allDirections {
			if next := sq.Next(dir); next != NoSquare {
				bb = bb.Set(next)
			}
		}
	case Bishop:
		bb = p.slidingMoves(sq, ours, theirs, true)
	case Rook:
		bb = p.slidingMoves(sq, ours, theirs, false)
	case Queen:
		bb = p.slidingMoves(sq, ours, theirs, true) | p.slidingMoves(sq, ours, theirs, false)
	}

	return bb &^ ours
}

// slidingMoves walks the four diagonal or four orthogonal rays from sq.
func (p Position) slidingMoves(sq Square, ours, theirs Bitboard, diagonal bool) Bitboard {
	var bb Bitboard
	for _, dir := range allDirections {
		if dir.Diagonal() != diagonal {
			continue
		}
		cur := sq
		for {
			next := cur.Next(dir)
			if next == NoSquare || ours.IsSet(next) {
				break
			}
			bb = bb.Set(next)
			if theirs.IsSet(next) {
				break
			}
			cur = next
		}
	}
	return bb
}

func (p Position) pawnMoves(sq Square, side Color, theirs Bitboard) Bitboard {
	push := North
	startRank := 1
	if side == Black {
		push = South
		startRank = 6
	}

	var bb Bitboard
	if one := sq.Next(push); one != NoSquare && p.IsEmpty(one) {
		bb = bb.Set(one)
		if sq.Rank() == startRank {
			if two := one.Next(push); two != NoSquare && p.IsEmpty(two) {
				bb = bb.Set(two)
			}
		}
	}

	c1, c2 := NorthWest, NorthEast
	if side == Black {
		c1, c2 = SouthWest, SouthEast
	}
	for _, d := range [2]Direction{c1, c2} {
		target := sq.Next(d)
		if target == NoSquare {
			continue
		}
		if theirs.IsSet(target) || target == p.EnPassant {
			bb = bb.Set(target)
		}
	}

	return bb
}

// castleMoves synthesizes the castling moves still on offer: the right must
// be held and the squares between king and rook must be empty. Whether the
// king passes through attacked squares is deferred to MoveLegal.
func (p Position) castleMoves(side Color) []Move {
	rank := 0
	if side == Black {
		rank = 7
	}

	var moves []Move
	kingSq := (p.Pieces[King] & p.Sides[side]).LSB()
	if kingSq == NoSquare {
		return nil
	}

	if p.Castling.CanCastle(side, true) && p.castleRoomy(rank, true) {
		moves = append(moves, NewMove(kingSq, NewSquare(6, kingSq.Rank())))
	}
	if p.Castling.CanCastle(side, false) && p.castleRoomy(rank, false) {
		moves = append(moves, NewMove(kingSq, NewSquare(2, kingSq.Rank())))
	}
	return moves
}

// castleRoomy reports whether the squares between king and rook are empty:
// f and g for kingside, b, c and d for queenside.
func (p Position) castleRoomy(rank int, kingSide bool) bool {
	if kingSide {
		return p.IsEmpty(NewSquare(5, rank)) && p.IsEmpty(NewSquare(6, rank))
	}
	return p.IsEmpty(NewSquare(1, rank)) && p.IsEmpty(NewSquare(2, rank)) && p.IsEmpty(NewSquare(3, rank))
}

// promotionPieces in the order the moves are offered.
var promotionPieces = [4]PieceType{Queen, Rook, Bishop, Knight}

// Moves returns the pseudo-legal moves for the given side: per-square piece
// moves with pawn moves onto the last rank expanded into the four
// promotions, plus synthesized castling moves.
func (p Position) Moves(side Color) []Move {
	moves := make([]Move, 0, 64)

	promoRank := 7
	if side == Black {
		promoRank = 0
	}

	occupied := p.Sides[side]
	for occupied != 0 {
		from := occupied.PopLSB()
		isPawn := p.PieceAt(from).Type() == Pawn

		targets := p.pieceMoves(from)
		for targets != 0 {
			to := targets.PopLSB()
			if isPawn && to.Rank() == promoRank {
				for _, promo := range promotionPieces {
					moves = append(moves, NewPromotion(from, to, promo))
				}
			} else {
				moves = append(moves, NewMove(from, to))
			}
		}
	}

	return append(moves, p.castleMoves(side)...)
}

// LegalMoves returns the fully legal moves for the side to move.
func (p Position) LegalMoves() []Move {
	side := p.SideToMove
	pseudo := p.Moves(side)
	moves := pseudo[:0]
	for _, m := range pseudo {
		if p.MoveLegal(m, side) {
			moves = append(moves, m)
		}
	}
	return moves
}

// MoveLegal reports whether the move is legal for the given side: the start
// square must hold one of side's pieces, and applying the move must not
// leave side's king in check. Castling additionally requires the right to
// still be held, the rook to sit untouched on its home square, and the
// king's start, transit, and destination squares to be unattacked. Those
// attack checks ignore pins: a pinned enemy piece still controls the squares
// the king would cross.
func (p Position) MoveLegal(m Move, side Color) bool {
	piece := p.PieceAt(m.From)
	if piece == NoPiece || piece.Color() != side {
		return false
	}

	applied, err := p.ApplyMove(m)
	if err != nil {
		return false
	}
	if applied.IsInCheck(side) {
		return false
	}

	if piece.Type() == King && fileDistance(m.From, m.To) == 2 {
		rank := 0
		if side == Black {
			rank = 7
		}
		kingSide := m.To.File() > m.From.File()

		if !p.Castling.CanCastle(side, kingSide) {
			return false
		}

		rookFile := 7
		transitFiles := []int{4, 5, 6}
		if !kingSide {
			rookFile = 0
			transitFiles = []int{4, 3, 2}
		}

		if p.PieceAt(NewSquare(rookFile, rank)) != NewPiece(Rook, side) {
			return false
		}
		for _, file := range transitFiles {
			if p.IsAttacked(NewSquare(file, rank), side, true) {
				return false
			}
		}
	}

	return true
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func (p Position) HasLegalMoves() bool {
	side := p.SideToMove
	for _, m := range p.Moves(side) {
		if p.MoveLegal(m, side) {
			return true
		}
	}
	return false
}
