// Package api talks to the reconciliation backend: URL construction for its
// query endpoints and a thin HTTP client with a uniform error taxonomy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/diffrun/recon/internal/model"
)

// Client issues requests against the reconciliation backend. Deadlines are
// the caller's responsibility via ctx; the embedded http.Client carries no
// timeout of its own so a single armed context governs the whole call.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for the given base URL. A trailing slash is
// stripped so endpoint paths concatenate cleanly.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// BaseURL returns the resolved backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// RunAgent posts a natural-language message to the agent endpoint and
// returns the raw response body. The shape of the body varies with which
// tool path fired upstream, so no decoding happens here; the agent package
// normalizes it.
func (c *Client) RunAgent(ctx context.Context, message string) (json.RawMessage, error) {
	const verb = "Agent"

	reqBody, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal agent request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+string(EndpointAgentRun), bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, wrapSendError(verb, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errorFromResponse(verb, resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapSendError(verb, err)
	}

	slog.Debug("agent response received", "bytes", len(body))
	return json.RawMessage(body), nil
}

// Reconcile runs a direct reconciliation query and decodes the canonical
// result payload.
func (c *Client) Reconcile(ctx context.Context, q model.ReconcileQuery) (*model.ReconcileResult, error) {
	const verb = "Reconcile"

	u := BuildURL(c.baseURL, q, EndpointReconcile)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	slog.Debug("requesting reconciliation", "url", u)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, wrapSendError(verb, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errorFromResponse(verb, resp)
	}

	var result model.ReconcileResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &TransportError{Verb: verb, Message: fmt.Sprintf("%s response was not valid JSON: %v", verb, err), Status: resp.StatusCode}
	}

	return &result, nil
}

// DownloadPaymentsCSV streams the raw payments CSV export into w and returns
// the number of bytes written. The payload is treated as an opaque artifact,
// never parsed.
func (c *Client) DownloadPaymentsCSV(ctx context.Context, q model.ReconcileQuery, w io.Writer) (int64, error) {
	const verb = "Export"

	u := BuildURL(c.baseURL, q, EndpointPaymentsCSV)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	slog.Debug("requesting payments CSV", "url", u)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, wrapSendError(verb, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, errorFromResponse(verb, resp)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, wrapSendError(verb, err)
	}
	return n, nil
}
