package controller

import (
	"errors"

	"github.com/benbeisheim/kingcapture-backend/internal/middleware"
	"github.com/benbeisheim/kingcapture-backend/internal/model"
	"github.com/benbeisheim/kingcapture-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	Color string `json:"color"`
	Depth int    `json:"depth"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	playerID := middleware.PlayerID(c)

	var req createGameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	state, err := gc.gameService.CreateGame(playerID, req.Color, req.Depth)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": state.ID,
		"state":   state,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	state, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) GetBoard(c *fiber.Ctx) error {
	board, err := gc.gameService.Render(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.SendString(board)
}

func (gc *GameController) GetActions(c *fiber.Ctx) error {
	piece := c.Params("piece")
	actions, err := gc.gameService.Actions(c.Params("gameId"), piece)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"piece":   piece,
		"actions": actions,
	})
}

func (gc *GameController) GetMoves(c *fiber.Ctx) error {
	moves, err := gc.gameService.Moves(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(moves)
}

func (gc *GameController) GetHint(c *fiber.Ctx) error {
	hint, err := gc.gameService.Hint(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(hint)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	playerID := middleware.PlayerID(c)

	var move model.MoveRequest
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	state, err := gc.gameService.HandleMove(c.Params("gameId"), playerID, move)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(state)
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound), errors.Is(err, model.ErrUnknownPiece):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrNotPlayer):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrNotYourTurn), errors.Is(err, model.ErrGameOver):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrInvalidMove), errors.Is(err, model.ErrInvalidColor), errors.Is(err, service.ErrInvalidDepth):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}
