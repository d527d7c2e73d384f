// service/game_manager.go
package service

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/benbeisheim/kingcapture-backend/internal/model"
	"github.com/benbeisheim/kingcapture-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrInvalidDepth = errors.New("invalid search depth")
)

// Settings are the defaults and limits applied to new games.
type Settings struct {
	DefaultDepth int
	MaxDepth     int
	MaxPlies     int
}

type GameManager struct {
	games    map[string]*model.Game
	settings Settings
	mu       sync.RWMutex
}

func NewGameManager(settings Settings) *GameManager {
	if settings.DefaultDepth <= 0 {
		settings.DefaultDepth = model.DefaultSearchDepth
	}
	if settings.MaxDepth < settings.DefaultDepth {
		settings.MaxDepth = settings.DefaultDepth
	}
	return &GameManager{
		games:    make(map[string]*model.Game),
		settings: settings,
	}
}

// CreateGame starts a new game for owner. A depth of zero picks the default.
func (gm *GameManager) CreateGame(owner string, color model.Color, depth int) (*model.Game, error) {
	if depth == 0 {
		depth = gm.settings.DefaultDepth
	}
	if depth < 1 || depth > gm.settings.MaxDepth {
		return nil, fmt.Errorf("%w: %d (allowed 1..%d)", ErrInvalidDepth, depth, gm.settings.MaxDepth)
	}

	gameID := uuid.New().String()
	game, err := model.NewGame(gameID, owner, color, depth, gm.settings.MaxPlies)
	if err != nil {
		return nil, err
	}

	gm.mu.Lock()
	gm.games[gameID] = game
	gm.mu.Unlock()
	log.Printf("created game %s: player %s as %s, depth %d", gameID, owner, color, depth)
	return game, nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return game, nil
}

func (gm *GameManager) GetGameState(gameID string) (model.ClientState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.ClientState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) Actions(gameID, piece string) ([]model.Position, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.Actions(piece)
}

func (gm *GameManager) Moves(gameID string) (map[string][]model.Position, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.Moves(), nil
}

func (gm *GameManager) Hint(gameID string) (model.Hint, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.Hint{}, err
	}
	return game.Hint()
}

func (gm *GameManager) Render(gameID string) (string, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.Render(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.MoveRequest) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.MakeMove(playerID, move)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn *websocket.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}

func (gm *GameManager) Send(gameID string, conn *websocket.Conn, msg ws.Message) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Send(conn, msg)
}
