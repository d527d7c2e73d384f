package service

import (
	"fmt"

	"github.com/benbeisheim/kingcapture-backend/internal/model"
	"github.com/benbeisheim/kingcapture-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// CreateGame parses the requested side and starts a game against the computer.
func (gs *GameService) CreateGame(playerID, color string, depth int) (model.ClientState, error) {
	side, err := model.ParseColor(color)
	if err != nil {
		return model.ClientState{}, err
	}

	game, err := gs.gameManager.CreateGame(playerID, side, depth)
	if err != nil {
		return model.ClientState{}, fmt.Errorf("failed to create game: %w", err)
	}

	return game.GetState(), nil
}

func (gs *GameService) GetGameState(gameID string) (model.ClientState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) Actions(gameID, piece string) ([]model.Position, error) {
	return gs.gameManager.Actions(gameID, piece)
}

func (gs *GameService) Moves(gameID string) (map[string][]model.Position, error) {
	return gs.gameManager.Moves(gameID)
}

func (gs *GameService) Hint(gameID string) (model.Hint, error) {
	return gs.gameManager.Hint(gameID)
}

func (gs *GameService) Render(gameID string) (string, error) {
	return gs.gameManager.Render(gameID)
}

// HandleMove commits the player's move and returns the state after the
// computer's reply.
func (gs *GameService) HandleMove(gameID string, playerID string, move model.MoveRequest) (model.ClientState, error) {
	if err := gs.gameManager.MakeMove(gameID, playerID, move); err != nil {
		return model.ClientState{}, err
	}

	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn *websocket.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

func (gs *GameService) Send(gameID string, conn *websocket.Conn, msg ws.Message) error {
	return gs.gameManager.Send(gameID, conn, msg)
}
