package middleware

import (
	"errors"
	"log"

	"marketplace/internal/models"
	"marketplace/internal/services"

	"github.com/gofiber/fiber/v2"
)

const userLocalKey = "user"

// Guard builds a handler that only lets through authenticated users whose
// token role is one of roles. No roles means any authenticated user.
type Guard func(roles ...models.Role) fiber.Handler

// NewGuard returns a Guard backed by authService.
func NewGuard(authService *services.AuthService) Guard {
	return func(roles ...models.Role) fiber.Handler {
		allowed := models.RolesOf(roles...)
		return func(c *fiber.Ctx) error {
			user, err := authService.Authenticate(c.UserContext(), c.Get(fiber.HeaderAuthorization), allowed)
			if err != nil {
				status, message := authError(err)
				if status == fiber.StatusInternalServerError {
					log.Printf("Authorization failed for %s %s: %v", c.Method(), c.Path(), err)
				}
				return c.Status(status).JSON(fiber.Map{
					"message": message,
				})
			}

			// Store the resolved user for subsequent handlers
			c.Locals(userLocalKey, user)
			return c.Next()
		}
	}
}

// CurrentUser returns the user stored by a Guard, or nil on unguarded routes.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalKey).(*models.User)
	return user
}

// authError maps an authorization failure to a status and a message that
// does not carry token parsing details.
func authError(err error) (int, string) {
	for _, known := range []struct {
		err    error
		status int
	}{
		{services.ErrMissingCredential, fiber.StatusUnauthorized},
		{services.ErrExpiredCredential, fiber.StatusUnauthorized},
		{services.ErrMalformedCredential, fiber.StatusUnauthorized},
		{services.ErrUnknownUser, fiber.StatusNotFound},
		{services.ErrForbidden, fiber.StatusForbidden},
	} {
		if errors.Is(err, known.err) {
			return known.status, known.err.Error()
		}
	}
	return fiber.StatusInternalServerError, "Internal server error"
}
