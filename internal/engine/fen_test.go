package engine

import (
	"strings"
	"testing"
)

func mustParse(t *testing.T, fen string) *Board {
	t.Helper()
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q) failed: %v", fen, err)
	}
	return b
}

func TestParseStartingPosition(t *testing.T) {
	b := mustParse(t, StartingFEN)

	if got := len(b.Pieces()); got != 32 {
		t.Errorf("piece count = %d, want 32", got)
	}
	if b.SideToMove() != White {
		t.Errorf("side to move = %v, want white", b.SideToMove())
	}

	whiteKing, ok := b.KingSquare(White)
	if !ok || whiteKing != (Square{4, 7}) {
		t.Errorf("white king at %v, want e1", whiteKing)
	}
	blackKing, ok := b.KingSquare(Black)
	if !ok || blackKing != (Square{4, 0}) {
		t.Errorf("black king at %v, want e8", blackKing)
	}

	for _, sq := range []Square{{0, 0}, {7, 0}, {0, 7}, {7, 7}} {
		rook := b.PieceAt(sq)
		if rook == nil || rook.Kind != Rook {
			t.Fatalf("no rook at %v", sq)
		}
		if !rook.CanCastle {
			t.Errorf("rook at %v lost castling rights during parse", sq)
		}
	}

	if got, want := b.String(), "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq"; got != want {
		t.Errorf("round trip = %q, want %q", got, want)
	}
}

// The position parser accepts descriptions without en passant and move
// counter fields.
func TestParsePartialDescription(t *testing.T) {
	b := mustParse(t, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - -")

	if got := len(b.Pieces()); got != 10 {
		t.Errorf("piece count = %d, want 10", got)
	}
	if b.SideToMove() != White {
		t.Errorf("side to move = %v, want white", b.SideToMove())
	}
	king := b.PieceAt(Square{0, 3})
	if king == nil || king.Kind != King || king.Color != White {
		t.Fatalf("expected white king on a5, got %v", king)
	}
	for _, p := range b.Pieces() {
		if p.CanCastle {
			t.Errorf("%v %v at %v has castling rights in a position with none", p.Color, p.Kind, p.Square)
		}
	}
}

func TestParseCastlingRights(t *testing.T) {
	b := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w Kq - 0 1")

	tests := []struct {
		sq   Square
		want bool
	}{
		{Square{7, 7}, true},  // h1 rook, K
		{Square{0, 7}, false}, // a1 rook
		{Square{0, 0}, true},  // a8 rook, q
		{Square{7, 0}, false}, // h8 rook
	}
	for _, tt := range tests {
		rook := b.PieceAt(tt.sq)
		if rook == nil {
			t.Fatalf("no rook at %v", tt.sq)
		}
		if rook.CanCastle != tt.want {
			t.Errorf("rook at %v: CanCastle = %v, want %v", tt.sq, rook.CanCastle, tt.want)
		}
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"placement only", "8/8/8/8/8/8/8/8"},
		{"seven ranks", "8/8/8/8/8/8/8 w - -"},
		{"unknown piece letter", "4k3/8/8/8/3x4/8/8/4K3 w - -"},
		{"rank too long", "4k3/8/8/8/ppppppppp/8/8/4K3 w - -"},
		{"rank too short", "4k3/8/8/8/7/8/8/4K3 w - -"},
		{"bad side to move", "4k3/8/8/8/8/8/8/4K3 x - -"},
		{"bad castling letter", "4k3/8/8/8/8/8/8/4K3 w X -"},
		{"no white king", "4k3/8/8/8/8/8/8/8 w - -"},
		{"two black kings", "3kk3/8/8/8/8/8/8/4K3 w - -"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFEN(tt.fen); err == nil {
				t.Errorf("ParseFEN(%q) succeeded, want error", tt.fen)
			}
		})
	}
}

func TestStringReportsSideAndRights(t *testing.T) {
	b := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1")
	got := b.String()
	if !strings.HasSuffix(got, " b KQkq") {
		t.Errorf("String() = %q, want side b and full castling rights", got)
	}
}
