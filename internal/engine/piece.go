package engine

import "fmt"

// Color identifies a side, used both for piece ownership and side to move.
type Color uint8

const (
	Black Color = iota
	White
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceKind is a closed enumeration of the six piece kinds. Move generation
// dispatches on it in movegen.go.
type PieceKind uint8

const (
	Pawn PieceKind = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "unknown"
}

// Square is a (file, rank) coordinate. Rank 0 is the black back rank, rank 7
// the white one, matching the order ranks appear in a FEN string. Generated
// candidate squares may fall outside the board; InBounds is the filter.
type Square struct {
	File int
	Rank int
}

func (s Square) InBounds() bool {
	return s.File >= 0 && s.File <= 7 && s.Rank >= 0 && s.Rank <= 7
}

func (s Square) String() string {
	return fmt.Sprintf("%c%d", 'a'+s.File, 8-s.Rank)
}

// Piece is the identity-bearing entity on a board. Pieces are owned by their
// Board; other packages hold them only to name a square or read attributes.
type Piece struct {
	Color  Color
	Kind   PieceKind
	Square Square

	// CanCastle is meaningful for kings and rooks. It starts from the
	// castling-rights token of the position and is lost permanently the
	// first time the piece moves.
	CanCastle bool

	// JustDoubleMoved marks a pawn that advanced two ranks on the previous
	// half-move, making it capturable en passant for exactly one ply.
	JustDoubleMoved bool
}
