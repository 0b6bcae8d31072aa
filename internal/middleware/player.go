package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

// EnsurePlayerID resolves the caller's identity for the request. The ID is
// taken from the X-Player-ID header, then the playerId query parameter; a
// caller presenting neither is minted a fresh one. Whatever ID is resolved
// is echoed back in the response header so clients can keep using it.
// Header and query values point into fasthttp's request buffer, which is
// recycled after the handler returns; the ID outlives the request (player
// roster, connection registry), so it must be copied out.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("playerID") != nil {
			return c.Next()
		}

		playerID := utils.CopyString(c.Get("X-Player-ID"))
		if playerID == "" {
			playerID = utils.CopyString(c.Query("playerId"))
		}
		if playerID == "" {
			playerID = uuid.New().String()
		}

		c.Locals("playerID", playerID)
		c.Set("X-Player-ID", playerID)
		return c.Next()
	}
}
