// Package history manages the working set of readings for the
// currently selected chart window.
package history

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Thoxh/smart-biodigester-dashboard/internal/chart"
	"github.com/Thoxh/smart-biodigester-dashboard/internal/domain"
)

// Querier is the bounded-window query side of the sensor store.
type Querier interface {
	Since(ctx context.Context, t time.Time) ([]domain.SensorReading, error)
}

// Service holds one window's worth of readings. Selecting a window
// triggers exactly one fetch that replaces the whole set; responses
// for a window that is no longer selected are discarded.
type Service struct {
	q   Querier
	now func() time.Time

	mu       sync.Mutex
	gen      uint64
	window   chart.Window
	readings []domain.SensorReading
}

func New(q Querier) *Service {
	return &Service{q: q, now: time.Now, window: chart.Window1d}
}

// SetWindow selects a window and fetches its readings. A failed fetch
// keeps the previous working set; a late response that lost the race
// to a newer selection is dropped.
func (s *Service) SetWindow(ctx context.Context, w chart.Window) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.window = w
	s.mu.Unlock()

	since := s.now().Add(-w.Duration())
	rows, err := s.q.Since(ctx, since)
	if err != nil {
		log.Error().Err(err).Str("window", string(w)).Msg("window query failed")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		// A newer selection already replaced this fetch.
		return nil
	}
	s.readings = rows
	return nil
}

// Snapshot returns the selected window and its working set.
func (s *Service) Snapshot() (chart.Window, []domain.SensorReading) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.SensorReading, len(s.readings))
	copy(out, s.readings)
	return s.window, out
}
