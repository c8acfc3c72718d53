package handlers

import (
	"errors"
	"fmt"
	"log"

	"marketplace/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{services.ErrInvalidCredentials, fiber.StatusUnauthorized},
	{services.ErrUnknownUser, fiber.StatusNotFound},
	{services.ErrForbidden, fiber.StatusForbidden},
	{services.ErrUsernameTaken, fiber.StatusConflict},
	{services.ErrEmailTaken, fiber.StatusConflict},
	{services.ErrEmptyCart, fiber.StatusBadRequest},
	{services.ErrStoreUnavailable, fiber.StatusNotFound},
	{services.ErrProductUnavailable, fiber.StatusBadRequest},
	{services.ErrInvalidStatus, fiber.StatusBadRequest},
	{services.ErrInvalidDeliveryMethod, fiber.StatusBadRequest},
	{services.ErrIllegalTransition, fiber.StatusConflict},
	{services.ErrTransitionConflict, fiber.StatusConflict},
	{services.ErrNotFound, fiber.StatusNotFound},
	{services.ErrStoreNotCreated, fiber.StatusNotFound},
	{services.ErrInvalidInput, fiber.StatusBadRequest},
	{services.ErrInvalidRating, fiber.StatusBadRequest},
}

// respondError writes the status and message matching err. Unknown errors
// are logged and reported as 500 without details.
func respondError(c *fiber.Ctx, err error, action string) error {
	for _, known := range errorStatuses {
		if errors.Is(err, known.err) {
			return c.Status(known.status).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
	}
	log.Printf("Error %s: %v", action, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": fmt.Sprintf("Could not %s", action),
	})
}

// parseBody decodes and validates the request body into req. It writes the
// 400 response itself and reports whether the handler may continue.
func parseBody(c *fiber.Ctx, validate *validator.Validate, req interface{}) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		log.Printf("Error parsing request body for %s: %v", c.Path(), err)
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"error":   err.Error(),
			})
		}
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}
	return true, nil
}
