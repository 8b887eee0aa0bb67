package model

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/dhowell/chess-backend/internal/engine"
	"github.com/dhowell/chess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

// GameConnections tracks the websocket connections observing one game.
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

// Game owns a single game: the rules engine board, the seats, the history
// and the observers. All board access is serialized through its mutex; the
// engine itself assumes exactly that.
type Game struct {
	ID          string
	mu          sync.Mutex
	board       *engine.Board
	moveHistory []SimpleMove
	captured    CapturedPieces
	lastMove    *SimpleMove
	resolve     *string
	winner      *string
	players     struct {
		white ClientPlayer
		black ClientPlayer
	}
	connections *GameConnections
}

// GameState is the snapshot broadcast to clients after every change.
type GameState struct {
	Board          [][]*Piece     `json:"board"`
	ToMove         string         `json:"toMove"`
	MoveHistory    []SimpleMove   `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	IsCheck        bool           `json:"isCheck"`
	Material       int            `json:"material"`
	Resolve        *string        `json:"resolve"`
	Winner         *string        `json:"winner"`
	LastMove       *SimpleMove    `json:"lastMove"`
	Players        struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
}

type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

// NewGame creates a game from the standard starting position.
func NewGame(id string) *Game {
	return &Game{
		ID:          id,
		board:       engine.NewBoard(),
		moveHistory: make([]SimpleMove, 0),
		captured:    newCapturedPieces(),
		connections: NewGameConnections(),
	}
}

// NewGameFromFEN creates a game starting from a custom position description.
func NewGameFromFEN(id, fen string) (*Game, error) {
	board, err := engine.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	g := NewGame(id)
	g.board = board
	return g, nil
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]Piece, 0),
		Black: make([]Piece, 0),
	}
}

func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.players.white.ID == "" {
		g.players.white = ClientPlayer{ID: playerID, Color: "white"}
		return PlayerColorWhite, nil
	}
	if g.players.black.ID == "" {
		g.players.black = ClientPlayer{ID: playerID, Color: "black"}
		return PlayerColorBlack, nil
	}
	return "", errors.New("game is full")
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshotState()
}

// snapshotState builds the client view. Callers hold g.mu.
func (g *Game) snapshotState() GameState {
	state := GameState{
		Board:          boardGrid(g.board),
		ToMove:         g.board.SideToMove().String(),
		MoveHistory:    append([]SimpleMove(nil), g.moveHistory...),
		CapturedPieces: g.captured,
		IsCheck:        engine.IsKingInCheck(g.board.SideToMove(), g.board),
		Material:       engine.MaterialBalance(g.board),
		Resolve:        g.resolve,
		Winner:         g.winner,
		LastMove:       g.lastMove,
	}
	state.Players.White = g.players.white
	state.Players.Black = g.players.black
	return state
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	if g.players.white.ID != "" && g.players.white.ID == playerID {
		return true
	}
	if g.players.black.ID != "" && g.players.black.ID == playerID {
		return true
	}
	return false
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.players.white.ID == "" || g.players.black.ID == ""
}

// LegalMoves returns the destinations of the piece on the given square, used
// by clients to highlight reachable squares. An empty square or a piece of
// the side not to move yields an empty list.
func (g *Game) LegalMoves(pos Position) []Position {
	g.mu.Lock()
	defer g.mu.Unlock()

	destinations := make([]Position, 0)
	if !pos.square().InBounds() || g.resolve != nil {
		return destinations
	}
	piece := g.board.PieceAt(pos.square())
	for _, sq := range engine.LegalMoves(piece, g.board) {
		destinations = append(destinations, positionOf(sq))
	}
	return destinations
}

// MakeMove validates and executes a client move command. Rejections come
// back as errors; the board is untouched by a rejected attempt.
func (g *Game) MakeMove(move WSMove) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.resolve != nil {
		return errors.New("game is over")
	}
	if !move.From.square().InBounds() || !move.To.square().InBounds() {
		return errors.New("invalid move, out of bounds")
	}

	piece := g.board.PieceAt(move.From.square())
	if piece == nil {
		return errors.New("no piece at from square")
	}
	if piece.Color != g.board.SideToMove() {
		return errors.New("not your turn")
	}

	legal := engine.LegalMoves(piece, g.board)
	outcome, ok := engine.MovePiece(g.board, piece, move.To.square(), legal)
	if !ok {
		return errors.New("invalid move, not legal")
	}

	if outcome.Captured != nil {
		taken := *clientPiece(outcome.Captured)
		if outcome.Captured.Color == engine.White {
			g.captured.White = append(g.captured.White, taken)
		} else {
			g.captured.Black = append(g.captured.Black, taken)
		}
	}

	committed := SimpleMove{From: move.From, To: move.To}
	g.moveHistory = append(g.moveHistory, committed)
	g.lastMove = &committed

	if outcome.Checkmate {
		resolve := "checkmate"
		winner := outcome.Winner.String()
		g.resolve = &resolve
		g.winner = &winner
	}

	go g.broadcastState()

	return nil
}

func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.mu.Lock()
	isAuthorized := g.isPlayerInGame(playerID) || g.canSpectate()
	g.mu.Unlock()

	if !isAuthorized {
		return errors.New("not authorized to join this game")
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the healthy connection and reject the new one.
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	go g.broadcastState()
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	delete(g.connections.connections, playerID)
}

func (g *Game) broadcastState() {
	state := g.GetState()

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("game %s: failed to marshal state: %v", g.ID, err)
		return
	}

	for playerID, conn := range g.connections.connections {
		err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		})
		if err != nil {
			log.Printf("game %s: failed to send state to player %s: %v", g.ID, playerID, err)
			delete(g.connections.connections, playerID)
		}
	}
}
