package jwt

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const localUserID = "userId"

// bearerToken accepts both "Bearer <token>" and a bare "<token>".
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if scheme, rest, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(rest)
	}
	return header
}

func (v *Verifier) authenticate(c *fiber.Ctx) error {
	tokenStr := bearerToken(c.Get(fiber.HeaderAuthorization))
	if tokenStr == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "empty token")
	}
	id, _, err := v.Parse(tokenStr)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}
	c.Locals(localUserID, id)
	return nil
}

// Required rejects requests without a valid token.
func (v *Verifier) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing Authorization header")
		}
		if err := v.authenticate(c); err != nil {
			return err
		}
		return c.Next()
	}
}

// Optional attaches the user when a token is sent and lets anonymous requests
// through. A token that is present but invalid is still rejected.
func (v *Verifier) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			return c.Next()
		}
		if err := v.authenticate(c); err != nil {
			return err
		}
		return c.Next()
	}
}

// UserID returns the authenticated user, or uuid.Nil for anonymous requests.
func UserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(localUserID).(uuid.UUID)
	return id
}
