package queue

import (
	"context"
	"log"
	"sync"
)

// Outcome classifies one replay attempt.
type Outcome int

const (
	// OutcomeDelivered: the service accepted the request.
	OutcomeDelivered Outcome = iota
	// OutcomeConnectivity: no response at all; try again later.
	OutcomeConnectivity
	// OutcomeAuthExpired: the service returned 401; the session has
	// been cleared and replay cannot continue.
	OutcomeAuthExpired
	// OutcomeRejected: the service returned an error status; the
	// request is poison and must not be retried.
	OutcomeRejected
)

// ReplayResult is the classified outcome of reissuing one request.
type ReplayResult struct {
	Outcome    Outcome
	StatusCode int
	Response   string
}

// Transport reissues a captured request against the remote service.
// Implemented by the API client.
type Transport interface {
	Replay(ctx context.Context, req Request) ReplayResult
}

// Drainer replays queued requests strictly in enqueue order. Order is
// global across entities: a later request may depend on an earlier one
// (create-then-update of the same record), so a connectivity failure
// stops the whole drain rather than skipping ahead.
type Drainer struct {
	store     *Store
	transport Transport

	mu sync.Mutex
}

func NewDrainer(store *Store, transport Transport) *Drainer {
	return &Drainer{store: store, transport: transport}
}

// Drain replays pending requests until the queue is empty or a
// connectivity failure stops it. Concurrent calls coalesce: a drain
// already in progress makes later calls return immediately.
func (d *Drainer) Drain(ctx context.Context) error {
	if !d.mu.TryLock() {
		return nil
	}
	defer d.mu.Unlock()

	entries, err := d.store.Pending(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	log.Printf("Offline queue: replaying %d request(s)", len(entries))

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		result := d.transport.Replay(ctx, e.Request)
		switch result.Outcome {
		case OutcomeDelivered:
			if err := d.store.remove(ctx, e.Position); err != nil {
				return err
			}

		case OutcomeConnectivity:
			log.Printf("Offline queue: still offline, %s %s deferred again", e.Request.Method, e.Request.URL)
			return nil

		case OutcomeAuthExpired:
			log.Printf("Offline queue: session expired, stopping replay")
			return nil

		case OutcomeRejected:
			// One attempt only: keep it for inspection, never retry.
			log.Printf("Offline queue: %s %s rejected with HTTP %d, moved to failed requests",
				e.Request.Method, e.Request.URL, result.StatusCode)
			if err := d.store.markFailed(ctx, e, result.StatusCode, result.Response); err != nil {
				return err
			}
		}
	}
	return nil
}
