package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeflog/reeflog/internal/backend"
	"github.com/reeflog/reeflog/internal/queue"
	"github.com/reeflog/reeflog/internal/tokenstore"
)

func newTestTokens(t *testing.T, token string) *tokenstore.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session")
	if token != "" {
		require.NoError(t, os.WriteFile(path, []byte(token), 0o600))
	}
	tokens, err := tokenstore.New(path)
	require.NoError(t, err)
	return tokens
}

// memQueue captures enqueued requests in memory.
type memQueue struct {
	requests []queue.Request
}

func (q *memQueue) Enqueue(_ context.Context, req queue.Request) error {
	q.requests = append(q.requests, req)
	return nil
}

func TestClientDo(t *testing.T) {
	ctx := context.Background()

	t.Run("injects the bearer token and decodes the response", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			assert.Equal(t, "/api/v1/tanks/abc", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]string{"id": "abc", "name": "Reef 450"})
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second, newTestTokens(t, "tok-123"), nil)

		var out struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}
		require.NoError(t, client.do(ctx, http.MethodGet, "/tanks/abc", nil, nil, &out))
		assert.Equal(t, "Bearer tok-123", gotAuth)
		assert.Equal(t, "Reef 450", out.Name)
	})

	t.Run("maps 404 to ErrNotFound and other errors to RemoteError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/v1/tanks/missing":
				w.WriteHeader(http.StatusNotFound)
			default:
				w.WriteHeader(http.StatusUnprocessableEntity)
				io.WriteString(w, `{"detail":"name required"}`)
			}
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second, newTestTokens(t, "tok"), nil)

		err := client.do(ctx, http.MethodGet, "/tanks/missing", nil, nil, nil)
		assert.ErrorIs(t, err, backend.ErrNotFound)

		err = client.do(ctx, http.MethodPost, "/tanks", nil, map[string]string{}, nil)
		var rerr *backend.RemoteError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, http.StatusUnprocessableEntity, rerr.StatusCode)
		assert.Contains(t, rerr.Body, "name required")
	})

	t.Run("401 clears the session exactly once and is never queued", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		tokens := newTestTokens(t, "stale-token")
		q := &memQueue{}
		client := NewClient(server.URL, time.Second, tokens, q)

		expiredCalls := 0
		client.SetAuthExpiredHandler(func() { expiredCalls++ })

		err := client.do(ctx, http.MethodPost, "/notes", nil, map[string]string{"content": "x"}, nil)
		assert.ErrorIs(t, err, backend.ErrAuthExpired)
		assert.Equal(t, 1, expiredCalls)
		assert.Empty(t, tokens.Token())
		// The service responded; this is a rejection, not connectivity.
		assert.Empty(t, q.requests)
	})
}

func TestClientOfflineDeferral(t *testing.T) {
	ctx := context.Background()

	// A closed server gives a real connection-refused address.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := server.URL
	server.Close()

	t.Run("mutations queue and return ErrDeferred", func(t *testing.T) {
		q := &memQueue{}
		client := NewClient(deadURL, time.Second, newTestTokens(t, "tok"), q)

		err := client.do(ctx, http.MethodPost, "/tanks", nil, map[string]string{"name": "Reef"}, nil)
		assert.ErrorIs(t, err, backend.ErrDeferred)
		assert.True(t, backend.IsDeferred(err))

		require.Len(t, q.requests, 1)
		req := q.requests[0]
		assert.NotEmpty(t, req.ID)
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, deadURL+"/api/v1/tanks", req.URL)
		assert.Equal(t, "Bearer tok", req.Headers["Authorization"])
		assert.JSONEq(t, `{"name":"Reef"}`, string(req.Body))
	})

	t.Run("reads fail plainly", func(t *testing.T) {
		q := &memQueue{}
		client := NewClient(deadURL, time.Second, newTestTokens(t, "tok"), q)

		err := client.do(ctx, http.MethodGet, "/tanks", nil, nil, nil)
		require.Error(t, err)
		assert.False(t, backend.IsDeferred(err))
		assert.Empty(t, q.requests)
	})

	t.Run("auth calls fail plainly", func(t *testing.T) {
		q := &memQueue{}
		client := NewClient(deadURL, time.Second, newTestTokens(t, ""), q)

		err := client.Login(ctx, "reef@example.com", "hunter2")
		require.Error(t, err)
		assert.False(t, backend.IsDeferred(err))
		assert.Empty(t, q.requests)
	})

	t.Run("without a queue mutations fail plainly", func(t *testing.T) {
		client := NewClient(deadURL, time.Second, newTestTokens(t, "tok"), nil)

		err := client.do(ctx, http.MethodPost, "/tanks", nil, map[string]string{"name": "Reef"}, nil)
		require.Error(t, err)
		assert.False(t, backend.IsDeferred(err))
	})
}

func TestClientReplay(t *testing.T) {
	ctx := context.Background()

	captured := queue.Request{
		ID:      "req-1",
		Method:  http.MethodPost,
		Headers: map[string]string{"Content-Type": "application/json", "Authorization": "Bearer captured-token"},
		Body:    []byte(`{"name":"Frag tank"}`),
	}

	t.Run("reissues the captured request verbatim", func(t *testing.T) {
		var gotAuth, gotBody string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			body, _ := io.ReadAll(r.Body)
			gotBody = string(body)
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second, newTestTokens(t, "current-token"), nil)

		req := captured
		req.URL = server.URL + "/api/v1/tanks"
		result := client.Replay(ctx, req)

		assert.Equal(t, queue.OutcomeDelivered, result.Outcome)
		// Replay uses the credential captured at enqueue time, not the
		// current one.
		assert.Equal(t, "Bearer captured-token", gotAuth)
		assert.JSONEq(t, `{"name":"Frag tank"}`, gotBody)
	})

	t.Run("classifies outcomes by status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/reject":
				w.WriteHeader(http.StatusConflict)
				io.WriteString(w, "duplicate")
			case "/expired":
				w.WriteHeader(http.StatusUnauthorized)
			default:
				w.WriteHeader(http.StatusOK)
			}
		}))
		defer server.Close()

		tokens := newTestTokens(t, "tok")
		client := NewClient(server.URL, time.Second, tokens, nil)

		req := captured
		req.URL = server.URL + "/reject"
		result := client.Replay(ctx, req)
		assert.Equal(t, queue.OutcomeRejected, result.Outcome)
		assert.Equal(t, http.StatusConflict, result.StatusCode)
		assert.Contains(t, result.Response, "duplicate")

		req.URL = server.URL + "/expired"
		result = client.Replay(ctx, req)
		assert.Equal(t, queue.OutcomeAuthExpired, result.Outcome)
		assert.Empty(t, tokens.Token())
	})

	t.Run("unreachable service is a connectivity outcome", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		deadURL := server.URL
		server.Close()

		client := NewClient(deadURL, time.Second, newTestTokens(t, "tok"), nil)

		req := captured
		req.URL = deadURL + "/api/v1/tanks"
		result := client.Replay(ctx, req)
		assert.Equal(t, queue.OutcomeConnectivity, result.Outcome)
	})
}

func TestClientAuth(t *testing.T) {
	ctx := context.Background()

	t.Run("Login persists the issued token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/v1/auth/login", r.URL.Path)
			var creds map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			assert.Equal(t, "reef@example.com", creds["email"])
			json.NewEncoder(w).Encode(loginResponse{AccessToken: "fresh-token", TokenType: "bearer"})
		}))
		defer server.Close()

		tokens := newTestTokens(t, "")
		client := NewClient(server.URL, time.Second, tokens, nil)

		require.NoError(t, client.Login(ctx, "reef@example.com", "hunter2"))
		assert.Equal(t, "fresh-token", tokens.Token())
	})

	t.Run("Logout clears the token even when the service is down", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		deadURL := server.URL
		server.Close()

		tokens := newTestTokens(t, "tok")
		client := NewClient(deadURL, time.Second, tokens, nil)

		err := client.Logout(ctx)
		require.Error(t, err)
		assert.Empty(t, tokens.Token())
	})
}
