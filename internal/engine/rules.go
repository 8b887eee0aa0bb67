package engine

// LegalMoves computes the destinations the piece may actually move to:
// pseudo-legal candidates, bounds-filtered, minus own-color occupied squares,
// plus castling destinations for an eligible king, minus every move that
// would leave the mover's own king in check. It returns nothing for a nil
// piece or a piece that does not belong to the side to move.
func LegalMoves(p *Piece, b *Board) []Square {
	if p == nil || p.Color != b.SideToMove() {
		return nil
	}
	return legalMoves(p, b)
}

// legalMoves is LegalMoves without the side-to-move guard, so checkmate
// detection can probe the side that just became the mover.
func legalMoves(p *Piece, b *Board) []Square {
	var candidates []Square
	for _, sq := range pseudoMoves(p, b) {
		if !sq.InBounds() {
			continue
		}
		if own := b.PieceAt(sq); own != nil && own.Color == p.Color {
			continue
		}
		candidates = append(candidates, sq)
	}
	if p.Kind == King && p.CanCastle {
		candidates = append(candidates, castlingSquares(p, b)...)
	}

	var legal []Square
	for _, sq := range candidates {
		rec := b.apply(p, sq)
		if !IsKingInCheck(p.Color, b) {
			legal = append(legal, sq)
		}
		b.revert(rec)
	}
	return legal
}

// castlingSquares yields the kingside and queenside castling destinations
// still open to the king: the paired rook must retain its castling right and
// every square strictly between king and rook must be empty. Attack on the
// origin, transit or destination squares is deliberately not considered.
func castlingSquares(king *Piece, b *Board) []Square {
	var squares []Square
	rank := king.Square.Rank
	if dest := (Square{king.Square.File + 2, rank}); dest.InBounds() &&
		rookEligible(b, Square{7, rank}, king.Color) && corridorEmpty(b, king.Square.File, 7, rank) {
		squares = append(squares, dest)
	}
	if dest := (Square{king.Square.File - 2, rank}); dest.InBounds() &&
		rookEligible(b, Square{0, rank}, king.Color) && corridorEmpty(b, 0, king.Square.File, rank) {
		squares = append(squares, dest)
	}
	return squares
}

func rookEligible(b *Board, sq Square, c Color) bool {
	p := b.PieceAt(sq)
	return p != nil && p.Kind == Rook && p.Color == c && p.CanCastle
}

func corridorEmpty(b *Board, fromFile, toFile, rank int) bool {
	for f := fromFile + 1; f < toFile; f++ {
		if !b.IsEmpty(Square{f, rank}) {
			return false
		}
	}
	return true
}

// AttackedSquares returns the on-board squares the piece threatens. No
// self-check filtering applies; the result describes threat, not mobility.
func AttackedSquares(p *Piece, b *Board) []Square {
	var squares []Square
	for _, sq := range attackSquares(p, b) {
		if sq.InBounds() {
			squares = append(squares, sq)
		}
	}
	return squares
}

// IsSquareAttacked reports whether any piece of byColor threatens sq.
func IsSquareAttacked(sq Square, byColor Color, b *Board) bool {
	for _, p := range b.Pieces() {
		if p.Color != byColor {
			continue
		}
		for _, attacked := range AttackedSquares(p, b) {
			if attacked == sq {
				return true
			}
		}
	}
	return false
}

func IsKingInCheck(c Color, b *Board) bool {
	kingSq, ok := b.KingSquare(c)
	if !ok {
		return false
	}
	return IsSquareAttacked(kingSq, c.Opponent(), b)
}

// IsCheckmate reports whether the given side is in check with no legal move
// on the whole board. The self-check filter inside legalMoves guarantees any
// surviving move escapes the check.
func IsCheckmate(c Color, b *Board) bool {
	if !IsKingInCheck(c, b) {
		return false
	}
	// Snapshot the piece list: legalMoves temporarily removes captured
	// pieces while simulating.
	pieces := append([]*Piece(nil), b.Pieces()...)
	for _, p := range pieces {
		if p.Color != c {
			continue
		}
		if len(legalMoves(p, b)) > 0 {
			return false
		}
	}
	return true
}

// moveRecord is the undo log for one simulated move: the mover's origin and
// the captured piece, if any, removed for the duration of the probe.
type moveRecord struct {
	piece    *Piece
	from     Square
	captured *Piece
}

// apply relocates p to the target square for legality simulation, removing
// any enemy piece standing there. The board must not be observed by anything
// else until revert runs; the owning game's lock guarantees that.
func (b *Board) apply(p *Piece, to Square) moveRecord {
	rec := moveRecord{piece: p, from: p.Square}
	if victim := b.PieceAt(to); victim != nil && victim != p {
		rec.captured = victim
		b.RemovePiece(victim)
	}
	p.Square = to
	return rec
}

func (b *Board) revert(rec moveRecord) {
	rec.piece.Square = rec.from
	if rec.captured != nil {
		b.AddPiece(rec.captured)
	}
}
