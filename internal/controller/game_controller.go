package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/quanvenc/BlindChess-Z/internal/model"
	"github.com/quanvenc/BlindChess-Z/internal/service"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

func (gc *GameController) RegisterPlayer(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.RegisterPlayer(playerID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message":   "registered",
		"gameId":    gc.gameService.GameID(),
		"playerId":  playerID,
		"color":     color.Index(),
		"colorName": color.String(),
	})
}

type initializeBoardRequest struct {
	Board model.Grid `json:"board"`
}

func (gc *GameController) InitializeBoard(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	var req initializeBoardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := gc.gameService.InitializeBoard(playerID, req.Board); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "board initialized",
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	var claim model.MoveClaim
	if err := c.BodyParser(&claim); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := gc.gameService.HandleMove(playerID, claim); err != nil {
		return fail(c, err)
	}

	resp := fiber.Map{
		"message":  "move applied",
		"gameOver": false,
	}
	if winner, ok := gc.gameService.GetWinner(); ok {
		resp["gameOver"] = true
		resp["winner"] = winner.View()
	}
	return c.JSON(resp)
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	return c.JSON(gc.gameService.GetGameState())
}

func (gc *GameController) GetCurrentTurn(c *fiber.Ctx) error {
	player, ok := gc.gameService.GetCurrentTurn()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "nobody holds the turn",
		})
	}
	return c.JSON(player.View())
}

func (gc *GameController) GetGameOver(c *fiber.Ctx) error {
	resp := fiber.Map{
		"gameOver": gc.gameService.IsGameOver(),
	}
	if winner, ok := gc.gameService.GetWinner(); ok {
		resp["winner"] = winner.View()
	}
	return c.JSON(resp)
}

// fail maps an engine refusal onto a status and a stable machine code.
func fail(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrAlreadyRegistered):
		return fiber.StatusConflict, "alreadyRegistered"
	case errors.Is(err, model.ErrGameFull):
		return fiber.StatusConflict, "gameFull"
	case errors.Is(err, model.ErrNotAuthorized):
		return fiber.StatusForbidden, "notAuthorized"
	case errors.Is(err, model.ErrAlreadyActive):
		return fiber.StatusConflict, "alreadyActive"
	case errors.Is(err, model.ErrGameNotActive):
		return fiber.StatusConflict, "gameNotActive"
	case errors.Is(err, model.ErrUnknownPlayer):
		return fiber.StatusForbidden, "unknownPlayer"
	case errors.Is(err, model.ErrTurnViolation):
		return fiber.StatusConflict, "turnViolation"
	case errors.Is(err, model.ErrDeadPiece):
		return fiber.StatusUnprocessableEntity, "deadPiece"
	case errors.Is(err, model.ErrWrongColorPiece):
		return fiber.StatusUnprocessableEntity, "wrongColorPiece"
	case errors.Is(err, model.ErrClaimMismatch):
		return fiber.StatusUnprocessableEntity, "claimMismatch"
	case errors.Is(err, model.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity, "illegalMove"
	default:
		return fiber.StatusInternalServerError, "internal"
	}
}
