package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Thoxh/smart-biodigester-dashboard/internal/chart"
	"github.com/Thoxh/smart-biodigester-dashboard/internal/domain"
)

type fakeQuerier struct {
	fn func(ctx context.Context, t time.Time) ([]domain.SensorReading, error)
}

func (q *fakeQuerier) Since(ctx context.Context, t time.Time) ([]domain.SensorReading, error) {
	return q.fn(ctx, t)
}

func readings(n int) []domain.SensorReading {
	out := make([]domain.SensorReading, n)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := range out {
		out[i] = domain.SensorReading{ID: int64(i), CreatedAt: base.Add(time.Duration(i) * time.Minute)}
	}
	return out
}

func TestSetWindowReplacesWorkingSet(t *testing.T) {
	var gotSince time.Time
	q := &fakeQuerier{fn: func(ctx context.Context, since time.Time) ([]domain.SensorReading, error) {
		gotSince = since
		return readings(5), nil
	}}
	s := New(q)
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	if err := s.SetWindow(context.Background(), chart.Window12h); err != nil {
		t.Fatalf("SetWindow: %v", err)
	}
	if want := now.Add(-12 * time.Hour); !gotSince.Equal(want) {
		t.Fatalf("lower bound %v, want %v", gotSince, want)
	}

	w, rows := s.Snapshot()
	if w != chart.Window12h || len(rows) != 5 {
		t.Fatalf("snapshot %s/%d, want 12h/5", w, len(rows))
	}
}

func TestLateResponseForOldWindowDiscarded(t *testing.T) {
	release := make(chan struct{})
	q := &fakeQuerier{fn: func(ctx context.Context, since time.Time) ([]domain.SensorReading, error) {
		// The first fetch (1d) stalls until after the second (1w)
		// completes; its late response must not win.
		if since.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)) {
			<-release
			return readings(3), nil
		}
		return readings(50), nil
	}}
	s := New(q)
	s.now = func() time.Time { return time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC) }

	slowDone := make(chan error)
	go func() { slowDone <- s.SetWindow(context.Background(), chart.Window1d) }()

	// Make sure the slow fetch registered its generation first.
	time.Sleep(20 * time.Millisecond)

	if err := s.SetWindow(context.Background(), chart.Window1w); err != nil {
		t.Fatalf("SetWindow(1w): %v", err)
	}
	close(release)
	if err := <-slowDone; err != nil {
		t.Fatalf("SetWindow(1d): %v", err)
	}

	w, rows := s.Snapshot()
	if w != chart.Window1w {
		t.Fatalf("selected window is %s, want 1w", w)
	}
	if len(rows) != 50 {
		t.Fatalf("late 1d response overwrote the 1w working set: %d rows", len(rows))
	}
}

func TestFailedFetchKeepsPreviousSet(t *testing.T) {
	healthy := true
	q := &fakeQuerier{fn: func(ctx context.Context, since time.Time) ([]domain.SensorReading, error) {
		if !healthy {
			return nil, errors.New("backend down")
		}
		return readings(7), nil
	}}
	s := New(q)

	if err := s.SetWindow(context.Background(), chart.Window1d); err != nil {
		t.Fatalf("SetWindow: %v", err)
	}

	healthy = false
	if err := s.SetWindow(context.Background(), chart.Window1w); err == nil {
		t.Fatal("expected an error from the failed fetch")
	}

	_, rows := s.Snapshot()
	if len(rows) != 7 {
		t.Fatalf("failed fetch must keep the previous working set, got %d rows", len(rows))
	}
}
