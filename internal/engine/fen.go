package engine

import (
	"fmt"
	"strings"
)

// StartingFEN describes the standard initial position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN builds a board from a FEN-style position description: piece
// placement, side to move and castling rights. The en passant target and
// move counters are accepted but ignored, and may be omitted entirely.
// Malformed input is rejected with a descriptive error rather than skipped.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return nil, fmt.Errorf("fen %q: need at least piece placement and side to move", fen)
	}
	placement, side := fields[0], fields[1]
	castling := "-"
	if len(fields) >= 3 {
		castling = fields[2]
	}

	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("fen %q: placement has %d ranks, want 8", fen, len(ranks))
	}

	b := &Board{}
	for rank, row := range ranks {
		file := 0
		for _, ch := range row {
			switch {
			case ch >= '1' && ch <= '8':
				file += int(ch - '0')
			default:
				kind, ok := kindFromLetter(ch)
				if !ok {
					return nil, fmt.Errorf("fen %q: unexpected character %q in placement", fen, ch)
				}
				if file > 7 {
					return nil, fmt.Errorf("fen %q: rank %d overflows the board", fen, 8-rank)
				}
				color := Black
				if ch >= 'A' && ch <= 'Z' {
					color = White
				}
				b.AddPiece(&Piece{Color: color, Kind: kind, Square: Square{file, rank}})
				file++
			}
		}
		if file != 8 {
			return nil, fmt.Errorf("fen %q: rank %d describes %d files, want 8", fen, 8-rank, file)
		}
	}

	for _, c := range []Color{White, Black} {
		if err := exactlyOneKing(b, c); err != nil {
			return nil, fmt.Errorf("fen %q: %w", fen, err)
		}
	}

	switch side {
	case "w":
		b.toMove = White
	case "b":
		b.toMove = Black
	default:
		return nil, fmt.Errorf("fen %q: side to move is %q, want \"w\" or \"b\"", fen, side)
	}

	if castling != "-" {
		for _, ch := range castling {
			rookSq, kingColor, ok := castlingRight(ch)
			if !ok {
				return nil, fmt.Errorf("fen %q: unexpected character %q in castling rights", fen, ch)
			}
			if rook := b.PieceAt(rookSq); rook != nil && rook.Kind == Rook && rook.Color == kingColor {
				rook.CanCastle = true
			}
			for _, p := range b.pieces {
				if p.Kind == King && p.Color == kingColor {
					p.CanCastle = true
				}
			}
		}
	}

	return b, nil
}

func kindFromLetter(ch rune) (PieceKind, bool) {
	switch ch {
	case 'p', 'P':
		return Pawn, true
	case 'n', 'N':
		return Knight, true
	case 'b', 'B':
		return Bishop, true
	case 'r', 'R':
		return Rook, true
	case 'q', 'Q':
		return Queen, true
	case 'k', 'K':
		return King, true
	}
	return 0, false
}

// castlingRight maps a rights letter to the corner square of the rook it
// refers to and the color it belongs to.
func castlingRight(ch rune) (Square, Color, bool) {
	switch ch {
	case 'K':
		return Square{7, 7}, White, true
	case 'Q':
		return Square{0, 7}, White, true
	case 'k':
		return Square{7, 0}, Black, true
	case 'q':
		return Square{0, 0}, Black, true
	}
	return Square{}, 0, false
}

func exactlyOneKing(b *Board, c Color) error {
	n := 0
	for _, p := range b.pieces {
		if p.Kind == King && p.Color == c {
			n++
		}
	}
	if n != 1 {
		return fmt.Errorf("%d %s kings, want exactly 1", n, c)
	}
	return nil
}

func letterForPiece(p *Piece) byte {
	var ch byte
	switch p.Kind {
	case Pawn:
		ch = 'p'
	case Knight:
		ch = 'n'
	case Bishop:
		ch = 'b'
	case Rook:
		ch = 'r'
	case Queen:
		ch = 'q'
	case King:
		ch = 'k'
	}
	if p.Color == White {
		ch -= 'a' - 'A'
	}
	return ch
}

// String renders the position back out as FEN placement, side to move and
// castling rights, for logs and test failure messages.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 0; rank < 8; rank++ {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.PieceAt(Square{file, rank})
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(letterForPiece(p))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank != 7 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.toMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	rights := ""
	for _, ch := range "KQkq" {
		sq, color, _ := castlingRight(ch)
		rook := b.PieceAt(sq)
		if rook != nil && rook.Kind == Rook && rook.Color == color && rook.CanCastle {
			rights += string(ch)
		}
	}
	if rights == "" {
		rights = "-"
	}
	sb.WriteString(rights)

	return sb.String()
}
