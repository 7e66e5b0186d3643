// Package client posts wizard answers to a running submission endpoint.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-leadform/pkg/contract"
	"github.com/goliatone/go-leadform/pkg/submission"
	"github.com/goliatone/go-leadform/pkg/wizard"
)

const maxResponseBytes = 16 << 10

// ResponseError reports a rejected submission.
type ResponseError struct {
	Status  int
	Message string
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("client: submission rejected with status %d", e.Status)
	}
	return fmt.Sprintf("client: submission rejected with status %d: %s", e.Status, e.Message)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default client, which times out after 30s.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// Client submits answers over HTTP. It implements wizard.Submitter.
type Client struct {
	endpoint string
	http     *http.Client
}

var _ wizard.Submitter = (*Client)(nil)

// New returns a client for the server at baseURL. A bare origin gets the
// default submission path appended.
func New(baseURL string, options ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("client: parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("client: endpoint %q must be http or https", baseURL)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = contract.SubmitPath
	}

	c := &Client{
		endpoint: u.String(),
		http:     &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Endpoint reports the URL submissions are posted to.
func (c *Client) Endpoint() string { return c.endpoint }

// Submit posts answers. A non-2xx status or success=false is returned as a
// *ResponseError.
func (c *Client) Submit(ctx context.Context, answers wizard.AnswerSet) error {
	_, err := c.Post(ctx, submission.FromAnswers(answers))
	return err
}

// Post sends p and decodes the result.
func (c *Client) Post(ctx context.Context, p submission.Payload) (submission.Result, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return submission.Result{}, fmt.Errorf("client: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return submission.Result{}, fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return submission.Result{}, fmt.Errorf("client: post: %w", err)
	}
	defer resp.Body.Close()

	var result submission.Result
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&result)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result, &ResponseError{Status: resp.StatusCode, Message: result.Message}
	}
	if decodeErr != nil {
		return result, fmt.Errorf("client: decode response: %w", decodeErr)
	}
	if !result.Success {
		return result, &ResponseError{Status: resp.StatusCode, Message: result.Message}
	}
	return result, nil
}

// IsRejected reports whether err came from the server refusing a submission.
func IsRejected(err error) bool {
	var respErr *ResponseError
	return errors.As(err, &respErr)
}
