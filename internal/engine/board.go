// Package engine implements the chess rules: move generation, legality
// filtering, check and checkmate detection, and move execution including
// castling, en passant and promotion. It has no transport or presentation
// concerns; the server layers consume it through ParseFEN, LegalMoves and
// MovePiece.
package engine

// Board holds the live pieces of a game plus the side to move. Captured
// pieces are removed from the collection outright, so iteration only ever
// sees pieces still on the board.
//
// A Board is not safe for concurrent use; the owning game serializes access.
type Board struct {
	pieces []*Piece
	toMove Color
}

// NewBoard returns a board with the standard starting position.
func NewBoard() *Board {
	b, err := ParseFEN(StartingFEN)
	if err != nil {
		panic("engine: starting position failed to parse: " + err.Error())
	}
	return b
}

func (b *Board) SideToMove() Color {
	return b.toMove
}

// Pieces returns the live pieces. The slice is owned by the board; callers
// iterate it but must not add or remove entries.
func (b *Board) Pieces() []*Piece {
	return b.pieces
}

// PieceAt returns the piece occupying sq, or nil.
func (b *Board) PieceAt(sq Square) *Piece {
	for _, p := range b.pieces {
		if p.Square == sq {
			return p
		}
	}
	return nil
}

func (b *Board) IsEmpty(sq Square) bool {
	return b.PieceAt(sq) == nil
}

// KingSquare returns the square of the given side's king. The second return
// is false only for positions that violate the one-king invariant.
func (b *Board) KingSquare(c Color) (Square, bool) {
	for _, p := range b.pieces {
		if p.Kind == King && p.Color == c {
			return p.Square, true
		}
	}
	return Square{}, false
}

// AddPiece and RemovePiece are invoked only by the move executor, the
// position parser and the legality simulation.

func (b *Board) AddPiece(p *Piece) {
	b.pieces = append(b.pieces, p)
}

func (b *Board) RemovePiece(p *Piece) {
	for i, q := range b.pieces {
		if q == p {
			b.pieces = append(b.pieces[:i], b.pieces[i+1:]...)
			return
		}
	}
}

func (b *Board) FlipSideToMove() {
	b.toMove = b.toMove.Opponent()
}
