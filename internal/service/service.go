package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Thoxh/smart-biodigester-dashboard/internal/alarm"
	"github.com/Thoxh/smart-biodigester-dashboard/internal/chart"
	"github.com/Thoxh/smart-biodigester-dashboard/internal/config"
	"github.com/Thoxh/smart-biodigester-dashboard/internal/domain"
	"github.com/Thoxh/smart-biodigester-dashboard/internal/repository"
)

type Services struct {
	Repos  *repository.Repos
	Ranges alarm.Ranges
	Charts []chart.Def
}

func New(db *sqlx.DB) *Services {
	ranges := alarm.Ranges{
		Temperature: alarm.Range{Min: config.TempAlarmMin(), Max: config.TempAlarmMax()},
		PH:          alarm.Range{Min: config.PHAlarmMin(), Max: config.PHAlarmMax()},
	}
	return &Services{
		Repos:  repository.New(db),
		Ranges: ranges,
		Charts: chart.Definitions(ranges),
	}
}

// LatestAssessed fetches the most recent reading together with its
// alarm assessment. The reading is nil when the store is empty.
func (s *Services) LatestAssessed(ctx context.Context) (*domain.SensorReading, alarm.Assessment, error) {
	r, err := s.Repos.Latest(ctx)
	if err != nil {
		return nil, alarm.Assessment{}, err
	}
	return r, alarm.Evaluate(r, s.Ranges), nil
}

// WindowSeries fetches one window of readings and transforms them into
// the full chart set.
func (s *Services) WindowSeries(ctx context.Context, w chart.Window) ([]chart.Data, error) {
	rows, err := s.Repos.Since(ctx, time.Now().Add(-w.Duration()))
	if err != nil {
		return nil, err
	}
	return chart.BuildAll(rows, w, s.Charts), nil
}
