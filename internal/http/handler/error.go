package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ticketportal/internal/service"
)

// writeOutcome maps pipeline errors onto the portal's responses: validation
// failures become a 400 with the reason as plain text (the user can correct
// and resubmit), everything else becomes a 500 whose text includes the
// backend status and raw body for operator diagnosis. These are the only two
// error statuses the pipeline produces.
func writeOutcome(c *fiber.Ctx, err error) error {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).SendString(ve.Reason)
	}
	return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
}

// ErrorHandler returns a Fiber global error handler for errors escaping the
// route handlers (404s, method mismatches, panics recovered by fiber).
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "internal server error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
			message = fiberErr.Message
		}
		return c.Status(status).SendString(message)
	}
}
