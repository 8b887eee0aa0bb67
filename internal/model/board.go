package model

import (
	"github.com/dhowell/chess-backend/internal/engine"
)

// PieceType is the client-facing name of a piece kind.
type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

var pieceTypes = map[engine.PieceKind]PieceType{
	engine.King:   King,
	engine.Queen:  Queen,
	engine.Rook:   Rook,
	engine.Bishop: Bishop,
	engine.Knight: Knight,
	engine.Pawn:   Pawn,
}

// Position is a board coordinate as the client sees it: x is the file, y the
// rank, y=0 being black's back rank.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func positionOf(sq engine.Square) Position {
	return Position{X: sq.File, Y: sq.Rank}
}

func (p Position) square() engine.Square {
	return engine.Square{File: p.X, Rank: p.Y}
}

// Piece is the client-facing view of a piece.
type Piece struct {
	Type     PieceType `json:"type"`
	Color    string    `json:"color"`
	Position Position  `json:"position"`
}

func clientPiece(p *engine.Piece) *Piece {
	return &Piece{
		Type:     pieceTypes[p.Kind],
		Color:    p.Color.String(),
		Position: positionOf(p.Square),
	}
}

// boardGrid lays the engine's piece collection out as the 8x8 grid the
// client renders, indexed [y][x].
func boardGrid(b *engine.Board) [][]*Piece {
	grid := make([][]*Piece, 8)
	for y := range grid {
		grid[y] = make([]*Piece, 8)
	}
	for _, p := range b.Pieces() {
		grid[p.Square.Rank][p.Square.File] = clientPiece(p)
	}
	return grid
}
