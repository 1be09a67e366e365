package handler

import (
	"github.com/gofiber/fiber/v2"

	"ticketportal/internal/service"
	"ticketportal/internal/view"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Handlers stay
// thin: form parsing and outcome mapping here, everything else in the service.
func RegisterRoutes(app *fiber.App, svc service.SubmissionService, rend view.Renderer) {
	app.Get("/healthz", LivenessProbe())

	app.Get("/", LandingPage(rend))

	app.Get("/forms/av-support", AVSupportForm(rend))
	app.Post("/forms/av-support", SubmitAVSupportForm(svc, rend))

	app.Get("/forms/digital-signage", DigitalSignageForm(rend))
	app.Post("/forms/digital-signage", SubmitDigitalSignageForm(svc, rend))
}

// LivenessProbe is a simple liveness check; the service holds no local state,
// so being up is being healthy.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

func LandingPage(rend view.Renderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return rend.Landing(c)
	}
}

func AVSupportForm(rend view.Renderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return rend.AVSupportForm(c)
	}
}

func DigitalSignageForm(rend view.Renderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return rend.DigitalSignageForm(c)
	}
}
