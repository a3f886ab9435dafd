// Package feed maintains the single most recent sensor reading,
// updated by push notifications from the store with a periodic
// re-query as fallback.
package feed

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Thoxh/smart-biodigester-dashboard/internal/domain"
)

// Store is the query side of the external sensor store.
type Store interface {
	Latest(ctx context.Context) (*domain.SensorReading, error)
}

// Notifier delivers newly inserted readings as they occur.
type Notifier interface {
	Notifications() <-chan domain.SensorReading
}

// Feed holds at most one reading, replaced wholesale on each update.
type Feed struct {
	store    Store
	notifier Notifier
	interval time.Duration

	mu      sync.RWMutex
	current *domain.SensorReading
	ready   bool
	subs    map[string]chan domain.SensorReading
}

func New(store Store, notifier Notifier, interval time.Duration) *Feed {
	return &Feed{
		store:    store,
		notifier: notifier,
		interval: interval,
		subs:     make(map[string]chan domain.SensorReading),
	}
}

// Run blocks until ctx is canceled: one initial query, then push
// notifications and the poll ticker race to keep the reading current.
// Both triggers stop deterministically on cancel.
func (f *Feed) Run(ctx context.Context) {
	f.refresh(ctx)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case r, ok := <-f.notifier.Notifications():
			if !ok {
				return
			}
			f.apply(r)
		case <-ticker.C:
			f.refresh(ctx)
		}
	}
}

// Current returns the held reading and whether the initial query has
// resolved. A nil reading with ready=true means the store is empty.
func (f *Feed) Current() (*domain.SensorReading, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current, f.ready
}

// Subscribe registers a channel receiving every accepted update. Slow
// consumers miss updates rather than blocking the feed.
func (f *Feed) Subscribe() (string, <-chan domain.SensorReading) {
	ch := make(chan domain.SensorReading, 8)
	id := uuid.NewString()
	f.mu.Lock()
	f.subs[id] = ch
	f.mu.Unlock()
	return id, ch
}

func (f *Feed) Unsubscribe(id string) {
	f.mu.Lock()
	if ch, ok := f.subs[id]; ok {
		delete(f.subs, id)
		close(ch)
	}
	f.mu.Unlock()
}

// refresh re-queries the latest reading. Failures keep the previous
// reading in place, stale but available.
func (f *Feed) refresh(ctx context.Context) {
	r, err := f.store.Latest(ctx)
	if err != nil {
		log.Error().Err(err).Msg("latest reading query failed")
		return
	}
	f.mu.Lock()
	f.ready = true
	f.mu.Unlock()
	if r != nil {
		f.apply(*r)
	}
}

// apply replaces the held reading unless the update is older than or
// as old as what is already held, guarding against out-of-order and
// duplicate pushes. Returns whether the update was accepted.
func (f *Feed) apply(r domain.SensorReading) bool {
	f.mu.Lock()
	if f.current != nil && !r.CreatedAt.After(f.current.CreatedAt) {
		f.mu.Unlock()
		return false
	}
	f.current = &r
	f.ready = true
	subs := make([]chan domain.SensorReading, 0, len(f.subs))
	for _, ch := range f.subs {
		subs = append(subs, ch)
	}
	f.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- r:
		default:
		}
	}
	return true
}
