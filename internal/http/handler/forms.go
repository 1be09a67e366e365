package handler

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"ticketportal/internal/model"
	"ticketportal/internal/service"
	"ticketportal/internal/view"
)

// recaptchaField is the form field name Google's widget posts the token under.
const recaptchaField = "g-recaptcha-response"

// SubmitAVSupportForm handles the AV support form post (no file upload).
func SubmitAVSupportForm(svc service.SubmissionService, rend view.Renderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sub := &model.AVSupportSubmission{
			Name:           formValue(c, "name"),
			Email:          formValue(c, "email"),
			Subject:        formValue(c, "subject"),
			Description:    formValue(c, "description"),
			Building:       formValue(c, "building"),
			Room:           formValue(c, "room"),
			DateNeeded:     formValue(c, "date_needed"),
			RecaptchaToken: c.FormValue(recaptchaField),
		}

		receipt, err := svc.SubmitAVSupport(c.UserContext(), sub)
		if err != nil {
			return writeOutcome(c, err)
		}
		return rend.Success(c, receipt.TicketID)
	}
}

// SubmitDigitalSignageForm handles the digital signage form post. The uploaded
// file's bytes are read exactly once into an owned buffer; the same buffer
// feeds content sniffing and the backend upload.
func SubmitDigitalSignageForm(svc service.SubmissionService, rend view.Renderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sub := &model.SignageSubmission{
			Name:           formValue(c, "name"),
			Email:          formValue(c, "email"),
			Department:     formValue(c, "department"),
			StartDate:      formValue(c, "start_date"),
			EndDate:        formValue(c, "end_date"),
			Notes:          formValue(c, "notes"),
			RecaptchaToken: c.FormValue(recaptchaField),
		}

		if fh, err := c.FormFile("signage_file"); err == nil && fh != nil && fh.Filename != "" {
			f, err := fh.Open()
			if err != nil {
				return c.Status(fiber.StatusBadRequest).SendString("Cannot open uploaded file.")
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return c.Status(fiber.StatusBadRequest).SendString("Cannot read uploaded file.")
			}
			sub.File = &model.CandidateFile{Filename: fh.Filename, Data: data}
		}

		receipt, err := svc.SubmitDigitalSignage(c.UserContext(), sub)
		if err != nil {
			return writeOutcome(c, err)
		}
		return rend.Success(c, receipt.TicketID)
	}
}

func formValue(c *fiber.Ctx, key string) string {
	return strings.TrimSpace(c.FormValue(key))
}
