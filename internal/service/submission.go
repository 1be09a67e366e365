package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ticketportal/internal/filecheck"
	"ticketportal/internal/model"
	"ticketportal/internal/recaptcha"
	"ticketportal/internal/zendesk"
)

// Machine-readable tags identifying which portal form produced a ticket.
const (
	TagAVSupport      = "portal_demo_av"
	TagDigitalSignage = "portal_digital_signage"
)

// ValidationError is a caller-correctable rejection: a missing field, a
// failed bot challenge, or a refused file. Handlers map it to HTTP 400 with
// the reason as the body. It is always raised before any network call, so a
// rejected submission never creates backend resources.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Receipt is the result of a successfully submitted ticket.
type Receipt struct {
	TicketID int64 `json:"ticket_id"`
}

// SubmissionService defines the portal's form-intake use cases. Each call
// runs the full pipeline for one submission: verify, validate, optionally
// upload, compose, create. The pipeline is stateless; concurrent submissions
// share nothing but the injected collaborators.
type SubmissionService interface {
	// SubmitAVSupport handles the AV support form (no file upload).
	SubmitAVSupport(ctx context.Context, sub *model.AVSupportSubmission) (*Receipt, error)

	// SubmitDigitalSignage handles the digital signage form. The attached
	// media file is content-sniffed, uploaded, and referenced by token in the
	// created ticket.
	SubmitDigitalSignage(ctx context.Context, sub *model.SignageSubmission) (*Receipt, error)
}

type submissionService struct {
	tickets  zendesk.API
	verifier recaptcha.Verifier
	log      *zap.Logger
}

// NewSubmissionService constructs a new SubmissionService.
func NewSubmissionService(tickets zendesk.API, verifier recaptcha.Verifier, log *zap.Logger) SubmissionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &submissionService{tickets: tickets, verifier: verifier, log: log}
}

func (s *submissionService) SubmitAVSupport(ctx context.Context, sub *model.AVSupportSubmission) (*Receipt, error) {
	if err := s.verifyHuman(ctx, sub.RecaptchaToken); err != nil {
		return nil, err
	}
	if sub.Name == "" || sub.Email == "" || sub.Subject == "" || sub.Description == "" {
		return nil, &ValidationError{Reason: "Missing required fields (name, email, subject, description)."}
	}

	payload := &zendesk.Request{
		Subject:   sub.Subject,
		Comment:   zendesk.Comment{Body: composeAVSupportBody(sub)},
		Requester: zendesk.Requester{Name: sub.Name, Email: sub.Email},
		Tags:      []string{TagAVSupport},
	}
	return s.createTicket(ctx, payload)
}

func (s *submissionService) SubmitDigitalSignage(ctx context.Context, sub *model.SignageSubmission) (*Receipt, error) {
	if err := s.verifyHuman(ctx, sub.RecaptchaToken); err != nil {
		return nil, err
	}
	if sub.Name == "" || sub.Email == "" || sub.Department == "" {
		return nil, &ValidationError{Reason: "Missing required fields (name, email, department/club)."}
	}
	if sub.File == nil || sub.File.Filename == "" || len(sub.File.Data) == 0 {
		return nil, &ValidationError{Reason: "Missing required file upload (.png, .jpg/.jpeg, .mp4)."}
	}

	mime, err := filecheck.CheckUpload(sub.File.Filename, sub.File.Data)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}
	sub.File.SniffedType = mime

	s.log.Debug("upload gate passed",
		zap.String("filename", sub.File.Filename),
		zap.String("extension", filecheck.Extension(sub.File.Filename)),
		zap.String("sniffed_type", mime),
		zap.Int("size", len(sub.File.Data)),
	)

	// The ticket must never reference an upload that was not acknowledged, so
	// any failure here halts the pipeline before the create call.
	token, err := s.tickets.UploadFile(ctx, sub.File.Filename, sub.File.Data, mime)
	if err != nil {
		return nil, fmt.Errorf("upload attachment: %w", err)
	}

	payload := &zendesk.Request{
		Subject: "Digital Signage Request - " + sub.Department,
		Comment: zendesk.Comment{
			Body:    composeSignageBody(sub),
			Uploads: []string{token},
		},
		Requester: zendesk.Requester{Name: sub.Name, Email: sub.Email},
		Tags:      []string{TagDigitalSignage},
	}
	return s.createTicket(ctx, payload)
}

// verifyHuman runs the bot challenge before any field processing. A verifier
// error counts as a failed challenge: the user resubmits, we never guess in
// the submission's favor.
func (s *submissionService) verifyHuman(ctx context.Context, token string) error {
	ok, err := s.verifier.Verify(ctx, token)
	if err != nil {
		s.log.Warn("recaptcha verification errored", zap.Error(err))
		ok = false
	}
	if !ok {
		return &ValidationError{Reason: "reCAPTCHA verification failed. Please try again."}
	}
	return nil
}

func (s *submissionService) createTicket(ctx context.Context, payload *zendesk.Request) (*Receipt, error) {
	id, err := s.tickets.CreateRequest(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	s.log.Info("ticket created",
		zap.Int64("ticket_id", id),
		zap.Strings("tags", payload.Tags),
	)
	return &Receipt{TicketID: id}, nil
}
