package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ayanpandit/PrepTera/internal/model/catalog"
	"github.com/ayanpandit/PrepTera/internal/model/interview"
)

// APIError is a non-2xx reply from the backend.
type APIError struct {
	Status  int
	Message string
	Details string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Details)
	}
	return e.Message
}

// Unwrap maps well-known backend messages back to their sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.Message {
	case "Invalid or expired session":
		return interview.ErrSessionNotFound
	case "Interview already complete. Please call /feedback.":
		return interview.ErrSessionComplete
	default:
		return nil
	}
}

// Client talks to the interview backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for baseURL. A nil httpClient uses a 90 second timeout,
// enough for a feedback generation round trip.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 90 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Start calls POST /start.
func (c *Client) Start(ctx context.Context, req interview.StartRequest) (interview.StartResponse, error) {
	var resp interview.StartResponse
	err := c.do(ctx, http.MethodPost, "/start", req, &resp)
	return resp, err
}

// Answer calls POST /answer.
func (c *Client) Answer(ctx context.Context, req interview.AnswerRequest) (interview.AnswerResponse, error) {
	var resp interview.AnswerResponse
	err := c.do(ctx, http.MethodPost, "/answer", req, &resp)
	return resp, err
}

// Feedback calls POST /feedback.
func (c *Client) Feedback(ctx context.Context, sessionID string) (interview.FeedbackResponse, error) {
	var resp interview.FeedbackResponse
	err := c.do(ctx, http.MethodPost, "/feedback", interview.FeedbackRequest{SessionID: sessionID}, &resp)
	return resp, err
}

// Catalog fetches the setup options.
func (c *Client) Catalog(ctx context.Context) (catalog.Catalog, error) {
	var resp catalog.Catalog
	err := c.do(ctx, http.MethodGet, "/catalog", nil, &resp)
	return resp, err
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error marshaling request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to server, please check if the backend is running: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Error   string `json:"error"`
			Details string `json:"details"`
		}
		if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
			apiErr.Message, apiErr.Details = payload.Error, payload.Details
		} else {
			apiErr.Message = strings.TrimSpace(string(data))
			if apiErr.Message == "" {
				apiErr.Message = http.StatusText(resp.StatusCode)
			}
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("error unmarshaling response: %w", err)
	}
	return nil
}
