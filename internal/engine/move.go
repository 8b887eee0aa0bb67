package engine

// Outcome reports the state of the game after a committed move.
type Outcome struct {
	// Checkmate is true when the move ended the game; Winner is only
	// meaningful in that case. There is no draw detection.
	Checkmate bool
	Winner    Color

	// Captured is the piece removed by the move, if any (ordinary capture
	// or en passant), and Promoted the queen a pawn was replaced by.
	Captured *Piece
	Promoted *Piece
}

// MovePiece attempts to move p to dest, given the legal-move set previously
// computed for p. A destination outside that set is rejected with no state
// change. An accepted move commits fully: capture, en passant removal,
// castling rook relocation, flag bookkeeping, promotion and the turn flip,
// then a checkmate probe against the new side to move.
func MovePiece(b *Board, p *Piece, dest Square, legal []Square) (Outcome, bool) {
	if p == nil || !containsSquare(legal, dest) {
		return Outcome{}, false
	}

	var out Outcome

	if victim := b.PieceAt(dest); victim != nil && victim.Color != p.Color {
		b.RemovePiece(victim)
		out.Captured = victim
	}

	// A pawn arriving diagonally on an empty square is capturing en
	// passant; the victim stands beside the pawn's origin.
	if p.Kind == Pawn && dest.File != p.Square.File && out.Captured == nil {
		victim := b.PieceAt(Square{dest.File, p.Square.Rank})
		if victim != nil && victim.Kind == Pawn && victim.Color != p.Color && victim.JustDoubleMoved {
			b.RemovePiece(victim)
			out.Captured = victim
		}
	}

	if p.Kind == King && abs(dest.File-p.Square.File) == 2 {
		b.relocateCastlingRook(p, dest)
	}

	if p.Kind == Pawn && abs(dest.Rank-p.Square.Rank) == 2 {
		p.JustDoubleMoved = true
	}
	// The en passant window is a single ply; every enemy pawn's flag
	// expires now.
	for _, q := range b.Pieces() {
		if q.Kind == Pawn && q.Color != p.Color {
			q.JustDoubleMoved = false
		}
	}

	p.Square = dest
	if p.Kind == King || p.Kind == Rook {
		p.CanCastle = false
	}

	if p.Kind == Pawn && (dest.Rank == 0 || dest.Rank == 7) {
		promoted := &Piece{Color: p.Color, Kind: Queen, Square: dest}
		b.RemovePiece(p)
		b.AddPiece(promoted)
		out.Promoted = promoted
	}

	b.FlipSideToMove()

	if IsCheckmate(p.Color.Opponent(), b) {
		out.Checkmate = true
		out.Winner = p.Color
	}
	return out, true
}

// relocateCastlingRook moves the rook paired with a castling king: the
// kingside rook two files toward the king's origin, the queenside rook
// three. Called before the king itself is relocated.
func (b *Board) relocateCastlingRook(king *Piece, dest Square) {
	rank := king.Square.Rank
	if dest.File > king.Square.File {
		if rook := b.PieceAt(Square{7, rank}); rook != nil && rook.Kind == Rook {
			rook.Square.File -= 2
			rook.CanCastle = false
		}
		return
	}
	if rook := b.PieceAt(Square{0, rank}); rook != nil && rook.Kind == Rook {
		rook.Square.File += 3
		rook.CanCastle = false
	}
}

func containsSquare(squares []Square, sq Square) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
