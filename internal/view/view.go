package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer abstracts page rendering so the HTTP layer can be tested with a
// fake instead of parsing HTML.
type Renderer interface {
	Landing(c *fiber.Ctx) error
	AVSupportForm(c *fiber.Ctx) error
	DigitalSignageForm(c *fiber.Ctx) error
	Success(c *fiber.Ctx, ticketID int64) error
}

// HTML renders the embedded templates. Templates are parsed once at startup;
// rendering shares no mutable state and is safe for concurrent requests.
type HTML struct {
	tpl     *template.Template
	siteKey string
}

// NewHTML parses the embedded templates. siteKey is the reCAPTCHA site key
// injected into the form pages.
func NewHTML(siteKey string) (*HTML, error) {
	tpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &HTML{tpl: tpl, siteKey: siteKey}, nil
}

func (h *HTML) render(c *fiber.Ctx, name string, data any) error {
	var buf bytes.Buffer
	if err := h.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return c.Type("html").Send(buf.Bytes())
}

func (h *HTML) Landing(c *fiber.Ctx) error {
	return h.render(c, "landing.html", nil)
}

func (h *HTML) AVSupportForm(c *fiber.Ctx) error {
	return h.render(c, "av_form.html", fiber.Map{"SiteKey": h.siteKey})
}

func (h *HTML) DigitalSignageForm(c *fiber.Ctx) error {
	return h.render(c, "digital_signage_form.html", fiber.Map{"SiteKey": h.siteKey})
}

func (h *HTML) Success(c *fiber.Ctx, ticketID int64) error {
	return h.render(c, "success.html", fiber.Map{"RequestID": ticketID})
}
