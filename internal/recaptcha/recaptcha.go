package recaptcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ticketportal/internal/config"
)

// Verifier decides whether a submission came from a human. It runs before any
// form field is processed; a false answer rejects the submission outright.
type Verifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

const defaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// Google verifies challenge tokens against the reCAPTCHA siteverify endpoint.
type Google struct {
	secret    string
	verifyURL string
	client    *http.Client
}

func NewGoogle(cfg config.RecaptchaConfig) *Google {
	verifyURL := cfg.VerifyURL
	if verifyURL == "" {
		verifyURL = defaultVerifyURL
	}
	return &Google{
		secret:    cfg.SecretKey,
		verifyURL: verifyURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// siteverifyResponse mirrors Google's verification response body.
type siteverifyResponse struct {
	Success    bool     `json:"success"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

func (g *Google) Verify(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	form := url.Values{
		"secret":   {g.secret},
		"response": {token},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("build siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("siteverify: %w", err)
	}
	defer resp.Body.Close()

	var sv siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&sv); err != nil {
		return false, fmt.Errorf("decode siteverify response: %w", err)
	}
	return sv.Success, nil
}

// Disabled accepts every submission. For local development and tests only.
type Disabled struct{}

func (Disabled) Verify(context.Context, string) (bool, error) {
	return true, nil
}
