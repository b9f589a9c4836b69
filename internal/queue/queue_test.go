package queue

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()
	// Subtest names contain slashes, which are not valid in a file name.
	path := "./test_" + strings.ReplaceAll(t.Name(), "/", "_") + "-queue.db"
	store, err := NewStore(path)
	require.NoError(t, err)

	cleanup := func() {
		store.Close()
		os.Remove(path)
		os.Remove(path + "-wal")
		os.Remove(path + "-shm")
	}
	return store, cleanup
}

func newRequest(id, method, url string) Request {
	return Request{
		ID:         id,
		URL:        url,
		Method:     method,
		Headers:    map[string]string{"Content-Type": "application/json", "Authorization": "Bearer tok"},
		Body:       []byte(`{"name":"Reef 450"}`),
		EnqueuedAt: time.Now().UTC(),
	}
}

func TestStore(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("Enqueue preserves order across entities", func(t *testing.T) {
		require.NoError(t, store.Enqueue(ctx, newRequest("a", "POST", "http://api/tanks")))
		require.NoError(t, store.Enqueue(ctx, newRequest("b", "PATCH", "http://api/livestock/1")))
		require.NoError(t, store.Enqueue(ctx, newRequest("c", "DELETE", "http://api/notes/2")))

		entries, err := store.Pending(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "a", entries[0].Request.ID)
		assert.Equal(t, "b", entries[1].Request.ID)
		assert.Equal(t, "c", entries[2].Request.ID)

		n, err := store.Len(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("entries survive reopening the store", func(t *testing.T) {
		path := "./test_reopen-queue.db"
		defer func() {
			os.Remove(path)
			os.Remove(path + "-wal")
			os.Remove(path + "-shm")
		}()

		first, err := NewStore(path)
		require.NoError(t, err)
		require.NoError(t, first.Enqueue(ctx, newRequest("persisted", "POST", "http://api/tanks")))
		require.NoError(t, first.Close())

		second, err := NewStore(path)
		require.NoError(t, err)
		defer second.Close()

		entries, err := second.Pending(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "persisted", entries[0].Request.ID)
		assert.Equal(t, "Bearer tok", entries[0].Request.Headers["Authorization"])
		assert.JSONEq(t, `{"name":"Reef 450"}`, string(entries[0].Request.Body))
	})
}

// replayScript maps request IDs to scripted outcomes and records the
// order in which requests were reissued.
type replayScript struct {
	outcomes map[string]ReplayResult
	replayed []string
}

func (s *replayScript) Replay(_ context.Context, req Request) ReplayResult {
	s.replayed = append(s.replayed, req.ID)
	if r, ok := s.outcomes[req.ID]; ok {
		return r
	}
	return ReplayResult{Outcome: OutcomeDelivered, StatusCode: 200}
}

func TestDrainer(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers in order and empties the queue", func(t *testing.T) {
		store, cleanup := setupTestStore(t)
		defer cleanup()

		for _, id := range []string{"one", "two", "three"} {
			require.NoError(t, store.Enqueue(ctx, newRequest(id, "POST", "http://api/tanks")))
		}

		script := &replayScript{}
		drainer := NewDrainer(store, script)
		require.NoError(t, drainer.Drain(ctx))

		assert.Equal(t, []string{"one", "two", "three"}, script.replayed)
		n, err := store.Len(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("connectivity failure stops the drain in place", func(t *testing.T) {
		store, cleanup := setupTestStore(t)
		defer cleanup()

		for _, id := range []string{"one", "two", "three"} {
			require.NoError(t, store.Enqueue(ctx, newRequest(id, "POST", "http://api/tanks")))
		}

		script := &replayScript{outcomes: map[string]ReplayResult{
			"two": {Outcome: OutcomeConnectivity},
		}}
		drainer := NewDrainer(store, script)
		require.NoError(t, drainer.Drain(ctx))

		// "three" was never attempted; "two" stays at the head.
		assert.Equal(t, []string{"one", "two"}, script.replayed)
		entries, err := store.Pending(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "two", entries[0].Request.ID)
		assert.Equal(t, "three", entries[1].Request.ID)
	})

	t.Run("rejected requests dead-letter after one attempt", func(t *testing.T) {
		store, cleanup := setupTestStore(t)
		defer cleanup()

		for _, id := range []string{"good", "poison", "after"} {
			require.NoError(t, store.Enqueue(ctx, newRequest(id, "POST", "http://api/tanks")))
		}

		script := &replayScript{outcomes: map[string]ReplayResult{
			"poison": {Outcome: OutcomeRejected, StatusCode: 422, Response: `{"detail":"bad payload"}`},
		}}
		drainer := NewDrainer(store, script)
		require.NoError(t, drainer.Drain(ctx))

		// The poison request does not block the ones behind it.
		assert.Equal(t, []string{"good", "poison", "after"}, script.replayed)
		n, err := store.Len(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)

		failed, err := store.Failed(ctx)
		require.NoError(t, err)
		require.Len(t, failed, 1)
		assert.Equal(t, "poison", failed[0].Request.ID)
		assert.Equal(t, 422, failed[0].StatusCode)
		assert.Contains(t, failed[0].Response, "bad payload")

		// A second drain must not retry the dead-lettered request.
		script.replayed = nil
		require.NoError(t, drainer.Drain(ctx))
		assert.Empty(t, script.replayed)

		require.NoError(t, store.PurgeFailed(ctx))
		failed, err = store.Failed(ctx)
		require.NoError(t, err)
		assert.Empty(t, failed)
	})

	t.Run("auth expiry stops the drain without dead-lettering", func(t *testing.T) {
		store, cleanup := setupTestStore(t)
		defer cleanup()

		for _, id := range []string{"one", "two"} {
			require.NoError(t, store.Enqueue(ctx, newRequest(id, "POST", "http://api/tanks")))
		}

		script := &replayScript{outcomes: map[string]ReplayResult{
			"one": {Outcome: OutcomeAuthExpired, StatusCode: 401},
		}}
		drainer := NewDrainer(store, script)
		require.NoError(t, drainer.Drain(ctx))

		assert.Equal(t, []string{"one"}, script.replayed)
		n, err := store.Len(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})
}
