package controller

import (
	"log"

	"github.com/benbeisheim/kingcapture-backend/internal/middleware"
	"github.com/benbeisheim/kingcapture-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mounts the REST and WebSocket endpoints on app.
func RegisterRoutes(app *fiber.App, gameService *service.GameService, origins []string) {
	gameController := NewGameController(gameService)
	wsController := NewWebSocketController(gameService)

	app.Use("/ws", middleware.EnsurePlayerID())
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(), websocket.New(func(c *websocket.Conn) {
		log.Printf("WebSocket connection established for game: %s", c.Params("gameId"))
		wsController.HandleConnection(c)
	}, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         origins,
	}))

	api := app.Group("/api", middleware.EnsurePlayerID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/board", gameController.GetBoard)
	gameRoutes.Get("/:gameId/actions/:piece", gameController.GetActions)
	gameRoutes.Get("/:gameId/moves", gameController.GetMoves)
	gameRoutes.Get("/:gameId/hint", gameController.GetHint)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)
}
