package engine

// Direction and offset tables shared by move generation and attack probing.
var (
	orthogonalDirs = []Square{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonalDirs   = []Square{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	kingOffsets    = []Square{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	knightOffsets  = []Square{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
)

// pawnDir is the rank direction a pawn of the given color advances in.
// White sits on rank 7 and pushes toward rank 0.
func pawnDir(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

func pawnStartRank(c Color) int {
	if c == White {
		return 6
	}
	return 1
}

// enPassantRank is the rank a pawn must stand on to capture en passant.
func enPassantRank(c Color) int {
	if c == White {
		return 3
	}
	return 4
}

// pseudoMoves produces a piece's candidate destinations ignoring whether the
// mover's own king would be left in check. Offset-generated squares may lie
// off the board; the rules layer bounds-filters. Ray casts include the first
// occupied square of either color, leaving the capture-vs-blocked distinction
// to the own-color filter.
func pseudoMoves(p *Piece, b *Board) []Square {
	switch p.Kind {
	case Pawn:
		return pawnMoves(p, b)
	case Knight:
		return offsetSquares(p.Square, knightOffsets)
	case Bishop:
		return raySquares(p.Square, b, diagonalDirs)
	case Rook:
		return raySquares(p.Square, b, orthogonalDirs)
	case Queen:
		return append(raySquares(p.Square, b, orthogonalDirs), raySquares(p.Square, b, diagonalDirs)...)
	case King:
		return offsetSquares(p.Square, kingOffsets)
	}
	return nil
}

// attackSquares produces the squares a piece threatens. Identical to
// pseudoMoves for every kind except the pawn, whose forward pushes do not
// threaten anything.
func attackSquares(p *Piece, b *Board) []Square {
	if p.Kind == Pawn {
		dir := pawnDir(p.Color)
		return []Square{
			{p.Square.File - 1, p.Square.Rank + dir},
			{p.Square.File + 1, p.Square.Rank + dir},
		}
	}
	return pseudoMoves(p, b)
}

func offsetSquares(from Square, offsets []Square) []Square {
	squares := make([]Square, 0, len(offsets))
	for _, off := range offsets {
		squares = append(squares, Square{from.File + off.File, from.Rank + off.Rank})
	}
	return squares
}

func raySquares(from Square, b *Board, dirs []Square) []Square {
	var squares []Square
	for _, dir := range dirs {
		target := Square{from.File + dir.File, from.Rank + dir.Rank}
		for target.InBounds() {
			squares = append(squares, target)
			if !b.IsEmpty(target) {
				break
			}
			target = Square{target.File + dir.File, target.Rank + dir.Rank}
		}
	}
	return squares
}

func pawnMoves(p *Piece, b *Board) []Square {
	var moves []Square
	dir := pawnDir(p.Color)

	one := Square{p.Square.File, p.Square.Rank + dir}
	if b.IsEmpty(one) {
		moves = append(moves, one)
		two := Square{p.Square.File, p.Square.Rank + 2*dir}
		if p.Square.Rank == pawnStartRank(p.Color) && b.IsEmpty(two) {
			moves = append(moves, two)
		}
	}

	for _, df := range []int{-1, 1} {
		diag := Square{p.Square.File + df, p.Square.Rank + dir}
		if victim := b.PieceAt(diag); victim != nil && victim.Color != p.Color {
			moves = append(moves, diag)
		} else if ep, ok := enPassantSquare(p, b); ok && diag == ep {
			moves = append(moves, diag)
		}
	}
	return moves
}

// enPassantSquare reports the square p may capture to en passant: the square
// diagonally ahead of p on the file of an adjacent enemy pawn that advanced
// two ranks last ply.
func enPassantSquare(p *Piece, b *Board) (Square, bool) {
	if p.Kind != Pawn || p.Square.Rank != enPassantRank(p.Color) {
		return Square{}, false
	}
	for _, df := range []int{-1, 1} {
		beside := b.PieceAt(Square{p.Square.File + df, p.Square.Rank})
		if beside != nil && beside.Kind == Pawn && beside.Color != p.Color && beside.JustDoubleMoved {
			return Square{p.Square.File + df, p.Square.Rank + pawnDir(p.Color)}, true
		}
	}
	return Square{}, false
}
