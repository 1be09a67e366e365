package zendesk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"ticketportal/internal/config"
)

// API is the ticketing backend surface the submission pipeline depends on.
// The concrete client talks to Zendesk; tests substitute a mock.
type API interface {
	// UploadFile transmits raw verified bytes and exchanges them for a
	// single-use upload token.
	UploadFile(ctx context.Context, filename string, data []byte, contentType string) (string, error)

	// CreateRequest creates a ticket and returns its id.
	CreateRequest(ctx context.Context, r *Request) (int64, error)
}

// APIError is a non-2xx backend response. It carries the status code and raw
// response body for operator diagnosis.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("zendesk %s error %d: %s", e.Op, e.StatusCode, e.Body)
}

// ErrNoUploadToken means the upload call succeeded but the response carried no
// token. The pipeline cannot attach the file without one, so this is treated
// as an upstream failure, not a success.
var ErrNoUploadToken = errors.New("upload succeeded but no upload token was returned by Zendesk")

// Client is the Zendesk REST client. It is stateless apart from credentials
// and safe for concurrent use; uploads get a longer timeout than ticket
// creation, reflecting payload size.
type Client struct {
	baseURL  string
	email    string
	apiToken string
	uploads  *http.Client
	requests *http.Client
}

// NewClient builds a client from configuration. The base URL is derived from
// the subdomain unless cfg.BaseURL overrides it.
func NewClient(cfg config.ZendeskConfig) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.zendesk.com/api/v2", cfg.Subdomain)
	}
	transport := otelhttp.NewTransport(http.DefaultTransport)
	return &Client{
		baseURL:  base,
		email:    cfg.Email,
		apiToken: cfg.APIToken,
		uploads: &http.Client{
			Timeout:   time.Duration(cfg.UploadTimeoutSec) * time.Second,
			Transport: transport,
		},
		requests: &http.Client{
			Timeout:   time.Duration(cfg.RequestTimeoutSec) * time.Second,
			Transport: transport,
		},
	}
}

// UploadFile sends the file bytes as the literal request body (not multipart)
// with the sniffed MIME type as Content-Type and the sanitized filename as a
// query parameter, matching the Zendesk uploads API contract.
func (c *Client) UploadFile(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	endpoint := fmt.Sprintf("%s/uploads.json?filename=%s", c.baseURL, url.QueryEscape(SanitizeFilename(filename)))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	c.authorize(req)

	resp, err := c.uploads.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read upload response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &APIError{Op: "upload", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var ur uploadResponse
	if err := json.Unmarshal(body, &ur); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if ur.Upload.Token == "" {
		return "", ErrNoUploadToken
	}
	return ur.Upload.Token, nil
}

// CreateRequest posts the composed ticket payload and returns the created
// request id. The call is attempted exactly once; failed submissions are
// surfaced to the user rather than retried.
func (c *Client) CreateRequest(ctx context.Context, r *Request) (int64, error) {
	payload, err := json.Marshal(requestEnvelope{Request: r})
	if err != nil {
		return 0, fmt.Errorf("marshal ticket payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/requests.json", bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("build ticket request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.requests.Do(req)
	if err != nil {
		return 0, fmt.Errorf("create ticket: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read ticket response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, &APIError{Op: "requests", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var cr requestCreatedResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return 0, fmt.Errorf("decode ticket response: %w", err)
	}
	return cr.Request.ID, nil
}

// authorize sets Zendesk API token auth: basic auth with "email/token" as the
// username and the API token as the password.
func (c *Client) authorize(req *http.Request) {
	req.SetBasicAuth(c.email+"/token", c.apiToken)
}
