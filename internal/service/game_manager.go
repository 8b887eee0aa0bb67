package service

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/dhowell/chess-backend/internal/model"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// GameManager owns every live game plus the matchmaking queue.
type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan string
	mu               sync.RWMutex
}

func NewGameManager() *GameManager {
	gm := &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
	}

	go gm.processMatchmaking()

	return gm
}

// CreateGame registers a new game. An empty fen means the standard starting
// position.
func (gm *GameManager) CreateGame(gameID, fen string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return errors.New("game already exists")
	}

	if fen == "" {
		gm.games[gameID] = model.NewGame(gameID)
		return nil
	}
	game, err := model.NewGameFromFEN(gameID, fen)
	if err != nil {
		return err
	}
	gm.games[gameID] = game
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, errors.New("game not found")
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.PlayerColor, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	return gm.queue.AddPlayer(model.Player{ID: playerID})
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

// GetLegalMoves answers the client highlight query for the piece standing on
// the given square.
func (gm *GameManager) GetLegalMoves(gameID string, pos model.Position) ([]model.Position, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalMoves(pos), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.WSMove) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	if !game.IsPlayerInGame(playerID) {
		return errors.New("player not in game")
	}
	return game.MakeMove(move)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID)
}

func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	// Replace any stale channel left by a dropped connection.
	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}

	gm.matchingChannels[playerID] = ch
	return nil
}

func (gm *GameManager) UnregisterMatchmakingChannel(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	// The channel's creator is responsible for closing it.
	delete(gm.matchingChannels, playerID)
}

// processMatchmaking pairs the two longest-waiting players into a fresh game
// and notifies both through their matchmaking channels.
func (gm *GameManager) processMatchmaking() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		for gm.queue.Size() >= 2 {
			player1, player2 := gm.queue.GetNextPair()

			gameID := uuid.New().String()
			game := model.NewGame(gameID)

			p1Color, err := game.AddPlayer(player1.ID)
			if err != nil {
				log.Printf("matchmaking: seating player %s failed: %v", player1.ID, err)
				continue
			}
			p2Color, err := game.AddPlayer(player2.ID)
			if err != nil {
				log.Printf("matchmaking: seating player %s failed: %v", player2.ID, err)
				continue
			}

			gm.mu.Lock()
			gm.games[gameID] = game

			notify := func(playerID string, event model.MatchFoundEvent) {
				ch, ok := gm.matchingChannels[playerID]
				if !ok {
					log.Printf("matchmaking: no channel for player %s", playerID)
					return
				}
				payload, err := json.Marshal(event)
				if err != nil {
					log.Printf("matchmaking: marshal event: %v", err)
					return
				}
				select {
				case ch <- string(payload):
					delete(gm.matchingChannels, playerID)
					close(ch)
				default:
					log.Printf("matchmaking: player %s not listening", playerID)
				}
			}
			notify(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color})
			notify(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: p2Color})
			gm.mu.Unlock()
		}
	}
}
