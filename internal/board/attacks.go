package board

// IsInCheck returns true if the given side's king is attacked. A piece's own
// pin status is irrelevant to whether it delivers check, so pins are ignored.
func (p Position) IsInCheck(side Color) bool {
	return p.IsAttacked(p.KingSquare(side), side, true)
}

// IsAttacked returns true if sq is attacked by any piece of us.Other().
//
// Sliding attacks are found by stepping outward from sq along each of the 8
// ray directions until a piece or the board edge is met; the first piece met
// attacks sq iff its movement matches the ray (diagonal: bishop/queen,
// orthogonal: rook/queen) or it is a king at distance one. Knight attacks
// use the fixed jump table; pawn attacks look at the two diagonal squares a
// pawn would capture from.
//
// With ignorePins false, an attacker that is itself pinned against its own
// king is disregarded: only pieces that could actually stay put while
// attacking count.
func (p Position) IsAttacked(sq Square, us Color, ignorePins bool) bool {
	for _, dir := range allDirections {
		if p.attackedAlongRay(sq, us, dir, ignorePins) {
			return true
		}
	}

	// knights
	for _, dir := range allDirections {
		next := sq.NextKnight(dir)
		if next == NoSquare {
			continue
		}
		piece := p.PieceAt(next)
		if piece != NoPiece && piece.Type() == Knight && piece.Color() != us &&
			(ignorePins || !p.IsPinnedByUs(next, us)) {
			return true
		}
	}

	// pawns: an enemy pawn attacks sq from the two diagonal squares one rank
	// toward us's side of the board.
	d1, d2 := NorthWest, NorthEast
	if us == Black {
		d1, d2 = SouthWest, SouthEast
	}
	for _, d := range [2]Direction{d1, d2} {
		source := sq.Next(d)
		if source == NoSquare {
			continue
		}
		piece := p.PieceAt(source)
		if piece != NoPiece && piece.Type() == Pawn && piece.Color() != us &&
			(ignorePins || !p.IsPinnedByUs(source, us)) {
			return true
		}
	}

	return false
}

// attackedAlongRay steps outward from sq in dir and decides whether the
// first piece met attacks sq.
func (p Position) attackedAlongRay(sq Square, us Color, dir Direction, ignorePins bool) bool {
	cur := sq
	first := true
	for {
		next := cur.Next(dir)
		if next == NoSquare {
			return false
		}
		piece := p.PieceAt(next)
		if piece != NoPiece {
			if piece.Color() == us {
				return false
			}
			if !ignorePins && p.IsPinnedByUs(next, us) {
				return false
			}
			pt := piece.Type()
			if dir.Diagonal() {
				return pt == Bishop || pt == Queen || (first && pt == King)
			}
			return pt == Rook || pt == Queen || (first && pt == King)
		}
		cur = next
		first = false
	}
}

// IsPinnedByUs returns true if removing the piece on sq would put
// us.Other()'s king in check while it currently is not: the piece on sq is
// the sole blocker of an attack on the enemy king. A king square can never
// be pinned.
func (p Position) IsPinnedByUs(sq Square, us Color) bool {
	them := us.Other()
	if p.KingSquare(them) == sq {
		return false
	}

	without := p
	without.ClearSquare(sq)
	return without.IsInCheck(them) && !p.IsInCheck(them)
}
