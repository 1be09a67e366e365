package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ticketportal/internal/model"
	recaptchaMocks "ticketportal/internal/recaptcha/mocks"
	"ticketportal/internal/zendesk"
	zendeskMocks "ticketportal/internal/zendesk/mocks"
)

var (
	pngBytes  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 'I', 'H', 'D', 'R'}
	webpBytes = append([]byte("RIFF"), append([]byte{0x24, 0x00, 0x00, 0x00}, []byte("WEBPVP8 ")...)...)
)

func humanVerifier(m *recaptchaMocks.MockVerifier) {
	m.On("Verify", mock.Anything, mock.Anything).Return(true, nil)
}

func validAVSubmission() *model.AVSupportSubmission {
	return &model.AVSupportSubmission{
		Name:           "Sam Doe",
		Email:          "sam@example.com",
		Subject:        "Projector broken",
		Description:    "The projector in the lecture hall smokes on startup.",
		Building:       "Main Hall",
		Room:           "204",
		DateNeeded:     "2026-09-01",
		RecaptchaToken: "tok",
	}
}

func validSignageSubmission() *model.SignageSubmission {
	return &model.SignageSubmission{
		Name:           "Sam Doe",
		Email:          "sam@example.com",
		Department:     "Robotics Club",
		Notes:          "Please run on the lobby screens.",
		RecaptchaToken: "tok",
		File:           &model.CandidateFile{Filename: "poster.png", Data: pngBytes},
	}
}

func TestSubmitAVSupport(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path creates one ticket and no upload", func(t *testing.T) {
		mTickets := new(zendeskMocks.MockAPI)
		mVerifier := new(recaptchaMocks.MockVerifier)
		humanVerifier(mVerifier)

		mTickets.On("CreateRequest", ctx, mock.MatchedBy(func(r *zendesk.Request) bool {
			return r.Subject == "Projector broken" &&
				r.Requester.Email == "sam@example.com" &&
				len(r.Comment.Uploads) == 0 &&
				len(r.Tags) == 1 && r.Tags[0] == TagAVSupport &&
				strings.Contains(r.Comment.Body, "smokes on startup") &&
				strings.Contains(r.Comment.Body, "Location: Main Hall 204")
		})).Return(int64(101), nil).Once()

		svc := NewSubmissionService(mTickets, mVerifier, nil)
		receipt, err := svc.SubmitAVSupport(ctx, validAVSubmission())

		require.NoError(t, err)
		assert.Equal(t, int64(101), receipt.TicketID)
		mTickets.AssertExpectations(t)
		mTickets.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("failed bot challenge halts before field checks", func(t *testing.T) {
		mTickets := new(zendeskMocks.MockAPI)
		mVerifier := new(recaptchaMocks.MockVerifier)
		mVerifier.On("Verify", mock.Anything, mock.Anything).Return(false, nil)

		svc := NewSubmissionService(mTickets, mVerifier, nil)
		_, err := svc.SubmitAVSupport(ctx, validAVSubmission())

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Reason, "reCAPTCHA")
		mTickets.AssertNotCalled(t, "CreateRequest", mock.Anything, mock.Anything)
	})

	t.Run("verifier error counts as failed challenge", func(t *testing.T) {
		mTickets := new(zendeskMocks.MockAPI)
		mVerifier := new(recaptchaMocks.MockVerifier)
		mVerifier.On("Verify", mock.Anything, mock.Anything).Return(false, errors.New("siteverify unreachable"))

		svc := NewSubmissionService(mTickets, mVerifier, nil)
		_, err := svc.SubmitAVSupport(ctx, validAVSubmission())

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		mTickets.AssertNotCalled(t, "CreateRequest", mock.Anything, mock.Anything)
	})

	t.Run("missing required field rejects without network calls", func(t *testing.T) {
		mTickets := new(zendeskMocks.MockAPI)
		mVerifier := new(recaptchaMocks.MockVerifier)
		humanVerifier(mVerifier)

		sub := validAVSubmission()
		sub.Description = ""

		svc := NewSubmissionService(mTickets, mVerifier, nil)
		_, err := svc.SubmitAVSupport(ctx, sub)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Reason, "required fields")
		mTickets.AssertNotCalled(t, "CreateRequest", mock.Anything, mock.Anything)
	})

	t.Run("backend failure surfaces status and body", func(t *testing.T) {
		mTickets := new(zendeskMocks.MockAPI)
		mVerifier := new(recaptchaMocks.MockVerifier)
		humanVerifier(mVerifier)

		mTickets.On("CreateRequest", ctx, mock.Anything).
			Return(int64(0), &zendesk.APIError{Op: "requests", StatusCode: http.StatusBadGateway, Body: "upstream down"}).Once()

		svc := NewSubmissionService(mTickets, mVerifier, nil)
		_, err := svc.SubmitAVSupport(ctx, validAVSubmission())

		var apiErr *zendesk.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	})
}

func TestSubmitDigitalSignage(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path uploads then creates with token attached", func(t *testing.T) {
		mTickets := new(zendeskMocks.MockAPI)
		mVerifier := new(recaptchaMocks.MockVerifier)
		humanVerifier(mVerifier)

		mTickets.On("UploadFile", ctx, "poster.png", pngBytes, "image/png").
			Return("tok-123", nil).Once()
		mTickets.On("CreateRequest", ctx, mock.MatchedBy(func(r *zendesk.Request) bool {
			return r.Subject == "Digital Signage Request - Robotics Club" &&
				len(r.Comment.Uploads) == 1 && r.Comment.Uploads[0] == "tok-123" &&
				len(r.Tags) == 1 && r.Tags[0] == TagDigitalSignage &&
				strings.Contains(r.Comment.Body, "Start Date: Run immediately (blank)") &&
				strings.Contains(r.Comment.Body, "Additional Notes: Please run on the lobby screens.") &&
				!strings.Contains(r.Comment.Body, "tok-123")
		})).Return(int64(202), nil).Once()

		svc := NewSubmissionService(mTickets, mVerifier, nil)
		sub := validSignageSubmission()
		receipt, err := svc.SubmitDigitalSignage(ctx, sub)

		require.NoError(t, err)
		assert.Equal(t, int64(202), receipt.TicketID)
		assert.Equal(t, "image/png", sub.File.SniffedType)
		mTickets.AssertExpectations(t)
	})

	t.Run("missing file rejects without network calls", func(t *testing.T) {
		mTickets := new(zendeskMocks.MockAPI)
		mVerifier := new(recaptchaMocks.MockVerifier)
		humanVerifier(mVerifier)

		sub := validSignageSubmission()
		sub.File = nil

		svc := NewSubmissionService(mTickets, mVerifier, nil)
		_, err := svc.SubmitDigitalSignage(ctx, sub)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Reason, "file upload")
		mTickets.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mTickets.AssertNotCalled(t, "CreateRequest", mock.Anything, mock.Anything)
	})

	t.Run("disguised file rejects with real type and zero network calls", func(t *testing.T) {
		mTickets := new(zendeskMocks.MockAPI)
		mVerifier := new(recaptchaMocks.MockVerifier)
		humanVerifier(mVerifier)

		sub := validSignageSubmission()
		sub.File = &model.CandidateFile{Filename: "export.jpg", Data: webpBytes}

		svc := NewSubmissionService(mTickets, mVerifier, nil)
		_, err := svc.SubmitDigitalSignage(ctx, sub)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Reason, "image/webp")
		mTickets.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mTickets.AssertNotCalled(t, "CreateRequest", mock.Anything, mock.Anything)
	})

	t.Run("upload failure halts before ticket creation", func(t *testing.T) {
		mTickets := new(zendeskMocks.MockAPI)
		mVerifier := new(recaptchaMocks.MockVerifier)
		humanVerifier(mVerifier)

		mTickets.On("UploadFile", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return("", &zendesk.APIError{Op: "upload", StatusCode: http.StatusServiceUnavailable, Body: "maintenance"}).Once()

		svc := NewSubmissionService(mTickets, mVerifier, nil)
		_, err := svc.SubmitDigitalSignage(ctx, validSignageSubmission())

		var apiErr *zendesk.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
		mTickets.AssertNotCalled(t, "CreateRequest", mock.Anything, mock.Anything)
	})

	t.Run("missing upload token halts before ticket creation", func(t *testing.T) {
		mTickets := new(zendeskMocks.MockAPI)
		mVerifier := new(recaptchaMocks.MockVerifier)
		humanVerifier(mVerifier)

		mTickets.On("UploadFile", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return("", zendesk.ErrNoUploadToken).Once()

		svc := NewSubmissionService(mTickets, mVerifier, nil)
		_, err := svc.SubmitDigitalSignage(ctx, validSignageSubmission())

		require.ErrorIs(t, err, zendesk.ErrNoUploadToken)
		mTickets.AssertNotCalled(t, "CreateRequest", mock.Anything, mock.Anything)
	})

	t.Run("ticket creation 422 surfaces the backend body", func(t *testing.T) {
		mTickets := new(zendeskMocks.MockAPI)
		mVerifier := new(recaptchaMocks.MockVerifier)
		humanVerifier(mVerifier)

		mTickets.On("UploadFile", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return("tok-123", nil).Once()
		mTickets.On("CreateRequest", ctx, mock.Anything).
			Return(int64(0), &zendesk.APIError{Op: "requests", StatusCode: http.StatusUnprocessableEntity, Body: `{"error":"RecordInvalid"}`}).Once()

		svc := NewSubmissionService(mTickets, mVerifier, nil)
		_, err := svc.SubmitDigitalSignage(ctx, validSignageSubmission())

		var apiErr *zendesk.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
		assert.Contains(t, apiErr.Body, "RecordInvalid")
		mTickets.AssertExpectations(t)
	})
}

func TestComposeBodies(t *testing.T) {
	t.Run("av support body embeds all fields", func(t *testing.T) {
		body := composeAVSupportBody(validAVSubmission())
		assert.True(t, strings.HasPrefix(body, "The projector in the lecture hall smokes on startup."))
		assert.Contains(t, body, "Portal Form: AV Support")
		assert.Contains(t, body, "Location: Main Hall 204")
		assert.Contains(t, body, "Date Needed: 2026-09-01")
		assert.Contains(t, body, "Requester: Sam Doe (sam@example.com)")
		assert.Contains(t, body, "Tag: portal_demo_av")
	})

	t.Run("signage body uses fallbacks for blank optionals", func(t *testing.T) {
		sub := validSignageSubmission()
		sub.Notes = ""
		body := composeSignageBody(sub)
		assert.Contains(t, body, "Start Date: Run immediately (blank)")
		assert.Contains(t, body, "End Date: Take down day after event (blank)")
		assert.Contains(t, body, "Additional Notes: (none)")
		assert.Contains(t, body, "Tag: portal_digital_signage")
	})

	t.Run("composition is deterministic", func(t *testing.T) {
		sub := validSignageSubmission()
		assert.Equal(t, composeSignageBody(sub), composeSignageBody(sub))
	})
}
