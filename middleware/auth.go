package middleware

import (
	"github.com/gofiber/fiber/v2"

	"transcriptly/api-gateway/utils"
)

// Authenticator resolves the identity of the caller for one request.
type Authenticator interface {
	Authenticate(c *fiber.Ctx) (string, error)
}

// Static authenticates every request as one fixed user. It stands in until a
// credential-backed implementation exists; handlers never see the difference.
type Static struct {
	UserID string
}

func (s Static) Authenticate(_ *fiber.Ctx) (string, error) {
	return s.UserID, nil
}

const userIDKey = "user_id"

// Authenticate resolves the caller identity and stores it in locals for
// handlers to read through UserID.
func Authenticate(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.Authenticate(c)
		if err != nil {
			return utils.RespondWithError(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// UserID returns the authenticated user id stored by Authenticate.
func UserID(c *fiber.Ctx) string {
	userID, _ := c.Locals(userIDKey).(string)
	return userID
}
