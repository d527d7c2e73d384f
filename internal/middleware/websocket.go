package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/websocket/v2"
)

// Locals keys carried from the upgrade request into the websocket handler.
const (
	LocalWSGameID   = "wsGameID"
	LocalWSPlayerID = "wsPlayerID"
)

// WebSocketUpgrade rejects plain HTTP requests to a game socket and carries
// the game and player IDs across the upgrade. Must run after EnsurePlayerID.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		gameID := c.Params("gameId")
		if gameID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}
		playerID := PlayerID(c)
		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player ID is required",
			})
		}

		// both become connection registry keys for the life of the socket
		c.Locals(LocalWSGameID, utils.CopyString(gameID))
		c.Locals(LocalWSPlayerID, playerID)
		return c.Next()
	}
}
