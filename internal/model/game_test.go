package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var sortPositions = cmpopts.SortSlices(func(a, b Position) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
})

func TestAddPlayerSeatsWhiteThenBlack(t *testing.T) {
	g := NewGame("test")

	color, err := g.AddPlayer("alice")
	if err != nil || color != PlayerColorWhite {
		t.Fatalf("first seat = %v, %v; want white", color, err)
	}
	color, err = g.AddPlayer("bob")
	if err != nil || color != PlayerColorBlack {
		t.Fatalf("second seat = %v, %v; want black", color, err)
	}
	if _, err := g.AddPlayer("carol"); err == nil {
		t.Errorf("third player seated in a two-player game")
	}

	if !g.IsPlayerInGame("alice") || !g.IsPlayerInGame("bob") {
		t.Errorf("seated players not recognized")
	}
	if g.IsPlayerInGame("carol") {
		t.Errorf("unseated player recognized")
	}
	if g.CanSpectate() {
		t.Errorf("full game still open for a seat")
	}
}

func TestMakeMoveValidation(t *testing.T) {
	tests := []struct {
		name string
		move WSMove
	}{
		{"out of bounds", WSMove{From: Position{X: -1, Y: 0}, To: Position{X: 0, Y: 0}}},
		{"empty from square", WSMove{From: Position{X: 4, Y: 4}, To: Position{X: 4, Y: 3}}},
		{"not your turn", WSMove{From: Position{X: 4, Y: 1}, To: Position{X: 4, Y: 3}}},
		{"illegal destination", WSMove{From: Position{X: 4, Y: 6}, To: Position{X: 4, Y: 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGame("test")
			if err := g.MakeMove(tt.move); err == nil {
				t.Errorf("move %+v accepted, want rejection", tt.move)
			}
			if got := g.GetState().ToMove; got != "white" {
				t.Errorf("rejected move flipped the turn to %s", got)
			}
		})
	}
}

func TestMakeMoveUpdatesState(t *testing.T) {
	g := NewGame("test")

	move := WSMove{From: Position{X: 4, Y: 6}, To: Position{X: 4, Y: 4}}
	if err := g.MakeMove(move); err != nil {
		t.Fatalf("e4 rejected: %v", err)
	}

	state := g.GetState()
	if state.ToMove != "black" {
		t.Errorf("toMove = %s, want black", state.ToMove)
	}
	if state.Board[4][4] == nil || state.Board[4][4].Type != Pawn {
		t.Errorf("e4 square = %+v, want the advanced pawn", state.Board[4][4])
	}
	if state.Board[6][4] != nil {
		t.Errorf("e2 square still occupied after the move")
	}
	if len(state.MoveHistory) != 1 {
		t.Fatalf("history length = %d, want 1", len(state.MoveHistory))
	}
	want := SimpleMove{From: move.From, To: move.To}
	if diff := cmp.Diff(want, state.MoveHistory[0]); diff != "" {
		t.Errorf("history entry mismatch (-want +got):\n%s", diff)
	}
	if state.LastMove == nil || *state.LastMove != want {
		t.Errorf("lastMove = %+v, want %+v", state.LastMove, want)
	}
}

func TestCapturedPiecesTracked(t *testing.T) {
	g, err := NewGameFromFEN("test", "4k3/8/8/3r4/8/8/3R4/4K3 w - -")
	if err != nil {
		t.Fatalf("NewGameFromFEN: %v", err)
	}

	if err := g.MakeMove(WSMove{From: Position{X: 3, Y: 6}, To: Position{X: 3, Y: 3}}); err != nil {
		t.Fatalf("rook capture rejected: %v", err)
	}

	state := g.GetState()
	if len(state.CapturedPieces.Black) != 1 || state.CapturedPieces.Black[0].Type != Rook {
		t.Errorf("captured black pieces = %+v, want the d5 rook", state.CapturedPieces.Black)
	}
	if len(state.CapturedPieces.White) != 0 {
		t.Errorf("captured white pieces = %+v, want none", state.CapturedPieces.White)
	}
	if state.Material != 5 {
		t.Errorf("material = %d, want +5 after winning a rook", state.Material)
	}
}

func TestCheckmateResolvesGame(t *testing.T) {
	g := NewGame("test")
	moves := []WSMove{
		{From: Position{X: 5, Y: 6}, To: Position{X: 5, Y: 5}}, // f3
		{From: Position{X: 4, Y: 1}, To: Position{X: 4, Y: 3}}, // e5
		{From: Position{X: 6, Y: 6}, To: Position{X: 6, Y: 4}}, // g4
		{From: Position{X: 3, Y: 0}, To: Position{X: 7, Y: 4}}, // Qh4#
	}
	for _, mv := range moves {
		if err := g.MakeMove(mv); err != nil {
			t.Fatalf("move %+v rejected: %v", mv, err)
		}
	}

	state := g.GetState()
	if state.Resolve == nil || *state.Resolve != "checkmate" {
		t.Fatalf("resolve = %v, want checkmate", state.Resolve)
	}
	if state.Winner == nil || *state.Winner != "black" {
		t.Errorf("winner = %v, want black", state.Winner)
	}
	if !state.IsCheck {
		t.Errorf("final position not flagged as check")
	}

	err := g.MakeMove(WSMove{From: Position{X: 4, Y: 6}, To: Position{X: 4, Y: 5}})
	if err == nil {
		t.Errorf("move accepted after the game ended")
	}
}

func TestLegalMovesQuery(t *testing.T) {
	g := NewGame("test")

	got := g.LegalMoves(Position{X: 1, Y: 7})
	want := []Position{{X: 0, Y: 5}, {X: 2, Y: 5}}
	if diff := cmp.Diff(want, got, sortPositions); diff != "" {
		t.Errorf("b1 knight moves mismatch (-want +got):\n%s", diff)
	}

	if moves := g.LegalMoves(Position{X: 4, Y: 4}); len(moves) != 0 {
		t.Errorf("empty square has moves: %v", moves)
	}
	if moves := g.LegalMoves(Position{X: 9, Y: 9}); len(moves) != 0 {
		t.Errorf("off-board square has moves: %v", moves)
	}
	// The opponent's pieces are not the side to move.
	if moves := g.LegalMoves(Position{X: 1, Y: 0}); len(moves) != 0 {
		t.Errorf("black knight has moves on white's turn: %v", moves)
	}
}

func TestNewGameFromFENRejectsBadInput(t *testing.T) {
	if _, err := NewGameFromFEN("test", "this is not a position"); err == nil {
		t.Errorf("malformed position accepted")
	}
}
