package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is the Fixora API client. It is safe for concurrent use once the
// token is set.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// WithToken starts the client with an existing access token.
func WithToken(token string) Option {
	return func(client *Client) {
		client.token = token
	}
}

// NewClient creates a new API client for baseURL (e.g. "https://fixora.example.edu").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("api error: status=%d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error: status=%d type=%s %s", e.StatusCode, e.Type, e.Message)
}

// Login exchanges credentials for a token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}

	var session Session
	if err := c.doRequest(ctx, http.MethodPost, "/auth/login", body, &session); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	c.token = session.AccessToken
	return &session, nil
}

// Register signs a student up and keeps the returned token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	var session Session
	if err := c.doRequest(ctx, http.MethodPost, "/auth/register", req, &session); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	c.token = session.AccessToken
	return &session, nil
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.doRequest(ctx, http.MethodGet, "/users/me", nil, &u); err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	return &u, nil
}

// ListComplaints returns one feed tab. An empty tab means submitted.
func (c *Client) ListComplaints(ctx context.Context, tab string) (*Feed, error) {
	path := "/complaints"
	if tab != "" {
		path += "?tab=" + url.QueryEscape(tab)
	}

	var feed Feed
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &feed); err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	return &feed, nil
}

func (c *Client) GetComplaint(ctx context.Context, id string) (*Complaint, error) {
	var out Complaint
	if err := c.doRequest(ctx, http.MethodGet, complaintPath(id, ""), nil, &out); err != nil {
		return nil, fmt.Errorf("get complaint: %w", err)
	}
	return &out, nil
}

// CreateComplaint submits a complaint without a photo.
func (c *Client) CreateComplaint(ctx context.Context, req NewComplaint) (*Complaint, error) {
	var out Complaint
	if err := c.doRequest(ctx, http.MethodPost, "/complaints", req, &out); err != nil {
		return nil, fmt.Errorf("create complaint: %w", err)
	}
	return &out, nil
}

func (c *Client) EditComplaint(ctx context.Context, id string, patch ComplaintPatch) (*Complaint, error) {
	var out Complaint
	if err := c.doRequest(ctx, http.MethodPatch, complaintPath(id, ""), patch, &out); err != nil {
		return nil, fmt.Errorf("edit complaint: %w", err)
	}
	return &out, nil
}

func (c *Client) DeleteComplaint(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, complaintPath(id, ""), nil, nil); err != nil {
		return fmt.Errorf("delete complaint: %w", err)
	}
	return nil
}

// Approve moves a submitted complaint to approved. Wardens only.
func (c *Client) Approve(ctx context.Context, id string) (*Complaint, error) {
	var out Complaint
	if err := c.doRequest(ctx, http.MethodPost, complaintPath(id, "approve"), nil, &out); err != nil {
		return nil, fmt.Errorf("approve complaint: %w", err)
	}
	return &out, nil
}

// MarkFixed moves an approved complaint to fixed.
func (c *Client) MarkFixed(ctx context.Context, id string) (*Complaint, error) {
	var out Complaint
	if err := c.doRequest(ctx, http.MethodPost, complaintPath(id, "fix"), nil, &out); err != nil {
		return nil, fmt.Errorf("mark complaint fixed: %w", err)
	}
	return &out, nil
}

// Vote casts up or down. Repeating the current direction withdraws it.
func (c *Client) Vote(ctx context.Context, id, direction string) (*VoteResult, error) {
	body := map[string]string{"direction": direction}

	var out VoteResult
	if err := c.doRequest(ctx, http.MethodPost, complaintPath(id, "vote"), body, &out); err != nil {
		return nil, fmt.Errorf("vote: %w", err)
	}
	return &out, nil
}

func complaintPath(id, action string) string {
	p := "/complaints/" + url.PathEscape(id)
	if action != "" {
		p += "/" + action
	}
	return p
}

// doRequest performs an HTTP request and decodes the response.
func (c *Client) doRequest(ctx context.Context, method, path string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var apiResp apiResponse
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &apiResp); err != nil && resp.StatusCode < 300 {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
		if apiResp.Error != nil {
			apiErr.Type = apiResp.Error.Type
			apiErr.Message = apiResp.Error.Message
		}
		return apiErr
	}

	if result == nil || apiResp.Data == nil {
		return nil
	}

	// Re-marshal and unmarshal to convert Data to the target type
	dataBytes, err := json.Marshal(apiResp.Data)
	if err != nil {
		return fmt.Errorf("marshal data: %w", err)
	}

	if err := json.Unmarshal(dataBytes, result); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}

	return nil
}
