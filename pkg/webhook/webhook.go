// Package webhook posts deployment trend reports to HTTP endpoints.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jamus9/KSA-Version-History/pkg/output"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 10 * time.Second

// EventReport is the event name of a trend report payload.
const EventReport = "deploytrend.report"

// maxResponseBody bounds how much of a webhook response is read.
const maxResponseBody = 1024 * 1024

// Client sends trend reports to webhook endpoints.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new webhook client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{},
		userAgent:  "deploytrend-webhook",
	}
}

// SendOptions configures a webhook request.
type SendOptions struct {
	URL     string
	Token   string        // Bearer token (optional)
	Timeout time.Duration // Request timeout (uses DefaultTimeout if zero)
}

// Payload is the JSON body posted to a webhook.
// Text is a one-line summary that chat integrations can show as-is.
type Payload struct {
	Event  string         `json:"event"`
	Text   string         `json:"text"`
	Report *output.Report `json:"report"`
}

// NewPayload wraps a report for delivery.
func NewPayload(report *output.Report) *Payload {
	return &Payload{
		Event:  EventReport,
		Text:   summaryText(report),
		Report: report,
	}
}

func summaryText(report *output.Report) string {
	s := report.Summary
	if s.Deployments == 0 {
		return "No deployments found"
	}

	text := fmt.Sprintf("%d deployments", s.Deployments)
	if report.HasTrend() {
		text += fmt.Sprintf(", %.2f deploys/day", report.Trend.Slope)
	}
	return text + ", latest " + s.Last.Format(output.DisplayLayout)
}

// Response contains the result of a webhook request.
type Response struct {
	StatusCode int
	Body       string
	Duration   time.Duration
	Error      error
}

// Success returns true if the webhook was sent successfully (2xx status).
func (r *Response) Success() bool {
	return r.Error == nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Send posts a trend report to a webhook endpoint.
// Failures are reported in the Response rather than returned.
func (c *Client) Send(ctx context.Context, report *output.Report, opts SendOptions) *Response {
	start := time.Now()
	resp := &Response{}
	fail := func(err error) *Response {
		resp.Error = err
		resp.Duration = time.Since(start)
		return resp
	}

	payload, err := json.Marshal(NewPayload(report))
	if err != nil {
		return fail(fmt.Errorf("failed to marshal report: %w", err))
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, opts.URL, bytes.NewReader(payload))
	if err != nil {
		return fail(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(fmt.Errorf("request failed: %w", err))
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBody))
	if err != nil {
		return fail(fmt.Errorf("failed to read response: %w", err))
	}

	resp.StatusCode = httpResp.StatusCode
	resp.Body = string(body)
	resp.Duration = time.Since(start)

	if resp.StatusCode >= 400 {
		resp.Error = fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return resp
}
