package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/benbeisheim/kingcapture-backend/internal/middleware"
	"github.com/benbeisheim/kingcapture-backend/internal/model"
	"github.com/benbeisheim/kingcapture-backend/internal/service"
	"github.com/benbeisheim/kingcapture-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals(middleware.LocalWSGameID).(string)
	playerID, _ := c.Locals(middleware.LocalWSPlayerID).(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Printf("Failed to register connection: %v", err)
		c.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()),
		)
		c.Close()
		return
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("read error: %v", err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("parse error: %v", err)
			continue
		}

		reply, err := wsc.handleMessage(gameID, playerID, msg)
		if err != nil {
			log.Printf("handle error: %v", err)
			errMsg, _ := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
			reply = &errMsg
		}
		if reply == nil {
			continue
		}
		if err := wsc.gameService.Send(gameID, c, *reply); err != nil {
			log.Printf("write error: %v", err)
			break
		}
	}

	wsc.gameService.UnregisterConnection(gameID, playerID, c)
}

// handleMessage returns the direct reply to msg, if any. Moves are answered
// by the state broadcast instead.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) (*ws.Message, error) {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.MoveRequest
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return nil, err
		}
		_, err := wsc.gameService.HandleMove(gameID, playerID, move)
		return nil, err

	case ws.MessageTypeActions:
		var req ws.ActionsRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return nil, err
		}
		actions, err := wsc.gameService.Actions(gameID, req.Piece)
		if err != nil {
			return nil, err
		}
		reply, err := ws.NewMessage(ws.MessageTypeActions, map[string]any{
			"piece":   req.Piece,
			"actions": actions,
		})
		return &reply, err

	case ws.MessageTypeHint:
		hint, err := wsc.gameService.Hint(gameID)
		if err != nil {
			return nil, err
		}
		reply, err := ws.NewMessage(ws.MessageTypeHint, hint)
		return &reply, err

	default:
		return nil, fmt.Errorf("unknown message type: %s", msg.Type)
	}
}
