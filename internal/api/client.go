// Package api implements the remote backend: the same per-entity
// operation set as the local repositories, issued as JSON calls against
// the ReefLog service. The client injects the persisted bearer
// credential, turns 401 into a global session expiry, and hands
// undeliverable mutations to the offline queue.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/reeflog/reeflog/internal/backend"
	"github.com/reeflog/reeflog/internal/queue"
	"github.com/reeflog/reeflog/internal/tokenstore"
)

const (
	basePath       = "/api/v1"
	defaultTimeout = 30 * time.Second
)

// RequestQueue is where undeliverable mutating requests go. Implemented
// by the offline queue store.
type RequestQueue interface {
	Enqueue(ctx context.Context, req queue.Request) error
}

// Client talks to the ReefLog service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     *tokenstore.Store
	queue      RequestQueue

	mu            sync.Mutex
	onAuthExpired func()
}

// NewClient creates an API client. q may be nil, in which case
// connectivity failures surface as plain errors instead of deferrals.
func NewClient(baseURL string, timeout time.Duration, tokens *tokenstore.Store, q RequestQueue) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		queue:      q,
	}
}

// SetAuthExpiredHandler registers the hook run after a 401 clears the
// session (typically: route the UI back to the login screen).
func (c *Client) SetAuthExpiredHandler(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onAuthExpired = fn
}

// do issues one JSON API call. Mutating calls that fail at the
// transport level (no HTTP response at all) are captured into the
// offline queue and reported as backend.ErrDeferred; every other
// failure maps onto the shared error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	target := c.baseURL + basePath + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// Absence of a token is not an error here; the service rejects
	// unauthenticated calls itself.
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No response at all. Reads and auth calls fail outright;
		// mutations are deferred to the queue.
		if isMutating(method) && !isAuthPath(path) && c.queue != nil {
			headers := map[string]string{}
			for k := range req.Header {
				headers[k] = req.Header.Get(k)
			}
			qreq := queue.Request{
				ID:         uuid.NewString(),
				URL:        target,
				Method:     method,
				Headers:    headers,
				Body:       payload,
				EnqueuedAt: time.Now().UTC(),
			}
			if qerr := c.queue.Enqueue(ctx, qreq); qerr != nil {
				return fmt.Errorf("request failed and could not be queued: %w", qerr)
			}
			return backend.ErrDeferred
		}
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return c.decodeResponse(resp, out)
}

func (c *Client) decodeResponse(resp *http.Response, out any) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.expireSession()
		return backend.ErrAuthExpired

	case resp.StatusCode == http.StatusNotFound:
		return backend.ErrNotFound

	case resp.StatusCode >= 400:
		data, _ := io.ReadAll(resp.Body)
		return &backend.RemoteError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// expireSession clears the persisted credential and notifies the UI.
// It runs before any queue logic and regardless of which entity
// triggered the 401.
func (c *Client) expireSession() {
	c.tokens.Clear()

	c.mu.Lock()
	fn := c.onAuthExpired
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// getBlob fetches binary content and wraps it in a releasable handle.
func (c *Client) getBlob(ctx context.Context, path string) (*backend.Blob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+basePath+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.expireSession()
		return nil, backend.ErrAuthExpired
	case resp.StatusCode == http.StatusNotFound:
		return nil, backend.ErrNotFound
	case resp.StatusCode >= 400:
		data, _ := io.ReadAll(resp.Body)
		return nil, &backend.RemoteError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}
	return backend.NewBlob(resp.Header.Get("Content-Type"), data), nil
}

// Replay reissues a captured request exactly as enqueued, classifying
// the outcome for the drainer.
func (c *Client) Replay(ctx context.Context, req queue.Request) queue.ReplayResult {
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		// Corrupt entry; treat as rejected so it is dead-lettered, not
		// retried forever.
		return queue.ReplayResult{Outcome: queue.OutcomeRejected, Response: err.Error()}
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return queue.ReplayResult{Outcome: queue.OutcomeConnectivity}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.expireSession()
		return queue.ReplayResult{Outcome: queue.OutcomeAuthExpired, StatusCode: resp.StatusCode}

	case resp.StatusCode >= 400:
		data, _ := io.ReadAll(resp.Body)
		return queue.ReplayResult{
			Outcome:    queue.OutcomeRejected,
			StatusCode: resp.StatusCode,
			Response:   string(data),
		}
	}

	io.Copy(io.Discard, resp.Body)
	return queue.ReplayResult{Outcome: queue.OutcomeDelivered, StatusCode: resp.StatusCode}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func isAuthPath(path string) bool {
	return strings.HasPrefix(path, "/auth/")
}

// listQuery turns a list filter into query-string parameters.
func listQuery(f backend.ListFilter) url.Values {
	q := url.Values{}
	if f.TankID != "" {
		q.Set("tank_id", f.TankID)
	}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Lab != "" {
		q.Set("lab", f.Lab)
	}
	if f.From != nil {
		q.Set("from", f.From.Format(time.RFC3339))
	}
	if f.To != nil {
		q.Set("to", f.To.Format(time.RFC3339))
	}
	if f.IncludeArchived {
		q.Set("include_archived", "true")
	}
	return q
}
