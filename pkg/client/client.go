package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Question is a catalog entry as returned by the question service.
// The id, competency and create_at fields are service-assigned.
type Question struct {
	ID              string `json:"id"`
	QuestionText    string `json:"question_text"`
	Category        string `json:"category"`
	Competency      string `json:"competency,omitempty"`
	Difficulty      string `json:"difficulty"`
	ReferenceAnswer string `json:"reference_answer,omitempty"`
	CreateAt        string `json:"create_at,omitempty"`
}

// Draft holds the user-editable fields for creating a question.
type Draft struct {
	QuestionText    string `json:"question_text"`
	Category        string `json:"category"`
	Difficulty      string `json:"difficulty"`
	ReferenceAnswer string `json:"reference_answer,omitempty"`
}

// Update holds the fields of a partial update. Nil fields are left out of
// the request body and remain unchanged on the server.
type Update struct {
	QuestionText    *string `json:"question_text,omitempty"`
	Category        *string `json:"category,omitempty"`
	Difficulty      *string `json:"difficulty,omitempty"`
	ReferenceAnswer *string `json:"reference_answer,omitempty"`
}

// SignupResult is the confirmation payload of a successful signup.
type SignupResult struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

// Client is a Go SDK for the question-catalog API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a new question-catalog client. The client holds no
// authorization state: the token is supplied per call by the identity
// collaborator and passed through verbatim.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ListQuestions retrieves the full question catalog. The token is optional;
// when empty no Authorization header is attached.
func (c *Client) ListQuestions(ctx context.Context, token string) ([]Question, error) {
	status, body, err := c.doRequest(ctx, http.MethodGet, "/questions", token, nil)
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, &StatusError{Op: "fetch questions", Status: status, Body: string(body)}
	}

	var questions []Question
	if err := json.Unmarshal(body, &questions); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}
	return questions, nil
}

// GetQuestion retrieves a single question by id. The token is optional.
func (c *Client) GetQuestion(ctx context.Context, id, token string) (*Question, error) {
	status, body, err := c.doRequest(ctx, http.MethodGet, "/questions/"+url.PathEscape(id), token, nil)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusNotFound:
		return nil, ErrNotFound
	case !success(status):
		return nil, &StatusError{Op: "fetch question", Status: status, Body: string(body)}
	}

	var question Question
	if err := json.Unmarshal(body, &question); err != nil {
		return nil, fmt.Errorf("failed to decode question: %w", err)
	}
	return &question, nil
}

// CreateQuestion creates a new question and returns the persisted record.
// A non-empty token is required; without one no request is issued.
func (c *Client) CreateQuestion(ctx context.Context, draft Draft, token string) (*Question, error) {
	if token == "" {
		return nil, ErrTokenUnavailable
	}

	payload, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal question: %w", err)
	}

	status, body, err := c.doRequest(ctx, http.MethodPost, "/questions", token, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusForbidden:
		return nil, ErrForbidden
	case !success(status):
		return nil, &StatusError{Op: "create question", Status: status, Body: string(body)}
	}

	var question Question
	if err := json.Unmarshal(body, &question); err != nil {
		return nil, fmt.Errorf("failed to decode question: %w", err)
	}
	return &question, nil
}

// UpdateQuestion updates the provided fields of an existing question and
// returns the updated record. A non-empty token is required; without one no
// request is issued.
func (c *Client) UpdateQuestion(ctx context.Context, id string, update Update, token string) (*Question, error) {
	if token == "" {
		return nil, ErrTokenUnavailable
	}

	payload, err := json.Marshal(update)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal update: %w", err)
	}

	status, body, err := c.doRequest(ctx, http.MethodPut, "/questions/"+url.PathEscape(id), token, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusForbidden:
		return nil, ErrForbidden
	case status == http.StatusNotFound:
		return nil, ErrNotFound
	case !success(status):
		return nil, &StatusError{Op: "update question", Status: status, Body: string(body)}
	}

	var question Question
	if err := json.Unmarshal(body, &question); err != nil {
		return nil, fmt.Errorf("failed to decode question: %w", err)
	}
	return &question, nil
}

// DeleteQuestion removes a question by id. A non-empty token is required;
// without one no request is issued.
func (c *Client) DeleteQuestion(ctx context.Context, id, token string) error {
	if token == "" {
		return ErrTokenUnavailable
	}

	status, body, err := c.doRequest(ctx, http.MethodDelete, "/questions/"+url.PathEscape(id), token, nil)
	if err != nil {
		return err
	}
	switch {
	case status == http.StatusForbidden:
		return ErrForbidden
	case status == http.StatusNotFound:
		return ErrNotFound
	case !success(status):
		return &StatusError{Op: "delete question", Status: status, Body: string(body)}
	}
	return nil
}

// Signup registers a new user by email. The endpoint is unauthenticated.
// On failure the server-supplied error message is surfaced when present.
func (c *Client) Signup(ctx context.Context, email string) (*SignupResult, error) {
	payload, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal signup request: %w", err)
	}

	status, body, err := c.doRequest(ctx, http.MethodPost, "/signup", "", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	if !success(status) {
		var serverErr struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &serverErr); err == nil && serverErr.Error != "" {
			return nil, fmt.Errorf("%s", serverErr.Error)
		}
		return nil, fmt.Errorf("signup failed")
	}

	var result SignupResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode signup response: %w", err)
	}
	return &result, nil
}

// doRequest performs an HTTP request and returns the status code and raw
// body. The token, when non-empty, is attached verbatim as the Authorization
// header; the client never constructs or parses credentials.
func (c *Client) doRequest(ctx context.Context, method, path, token string, body io.Reader) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, respBody, nil
}

func success(status int) bool {
	return status >= 200 && status < 300
}
