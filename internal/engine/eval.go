package engine

// Value is the conventional material worth of the piece kind.
func (k PieceKind) Value() int {
	switch k {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	case King:
		return 1000
	}
	return 0
}

// MaterialBalance is white's material minus black's. Positive favors white.
func MaterialBalance(b *Board) int {
	balance := 0
	for _, p := range b.Pieces() {
		if p.Color == White {
			balance += p.Kind.Value()
		} else {
			balance -= p.Kind.Value()
		}
	}
	return balance
}
