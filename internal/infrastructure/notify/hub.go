package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/cricket-scorer/internal/domain/match"
	"github.com/riskibarqy/cricket-scorer/internal/platform/logging"
)

const defaultHubWorkers = 64

// Handler receives a committed change. It runs on the hub worker pool.
type Handler func(ctx context.Context, change match.Change)

// Hub is the in-process onMatchChanged registry. Subscribing to "" receives
// changes for every match.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[uint64]Handler
	nextID uint64
	pool   *ants.Pool
	logger *logging.Logger
}

func NewHub(workers int, logger *logging.Logger) (*Hub, error) {
	if workers <= 0 {
		workers = defaultHubWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	pool, err := ants.NewPool(workers, ants.WithNonblocking(true), ants.WithPanicHandler(func(v any) {
		logger.Error("match change handler panicked", "panic", fmt.Sprint(v))
	}))
	if err != nil {
		return nil, fmt.Errorf("create notify worker pool: %w", err)
	}

	return &Hub{
		subs:   make(map[string]map[uint64]Handler),
		pool:   pool,
		logger: logger.Named("notify"),
	}, nil
}

// Subscribe registers fn for matchID and returns the function that removes it.
func (h *Hub) Subscribe(matchID string, fn Handler) func() {
	if fn == nil {
		return func() {}
	}

	h.mu.Lock()
	h.nextID++
	id := h.nextID
	if h.subs[matchID] == nil {
		h.subs[matchID] = make(map[uint64]Handler)
	}
	h.subs[matchID][id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[matchID], id)
			if len(h.subs[matchID]) == 0 {
				delete(h.subs, matchID)
			}
			h.mu.Unlock()
		})
	}
}

// Subscribers counts handlers registered for matchID.
func (h *Hub) Subscribers(matchID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[matchID])
}

// NotifyMatchChanged hands the change to every matching handler without blocking.
// Handlers that cannot be scheduled are reported in the returned error.
func (h *Hub) NotifyMatchChanged(ctx context.Context, change match.Change) error {
	h.mu.RLock()
	handlers := make([]Handler, 0, len(h.subs[change.MatchID])+len(h.subs[""]))
	for _, fn := range h.subs[change.MatchID] {
		handlers = append(handlers, fn)
	}
	if change.MatchID != "" {
		for _, fn := range h.subs[""] {
			handlers = append(handlers, fn)
		}
	}
	h.mu.RUnlock()

	detached := context.WithoutCancel(ctx)
	var errs []error
	for _, fn := range handlers {
		if err := h.pool.Submit(func() { fn(detached, change) }); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("dispatch %d of %d handlers for match %s: %w", len(errs), len(handlers), change.MatchID, errors.Join(errs...))
	}
	return nil
}

func (h *Hub) Close() {
	h.pool.Release()
}
