package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/Thoxh/smart-biodigester-dashboard/internal/domain"
)

// Listener subscribes to Postgres insert notifications on the sensor
// table. The schema installs a trigger that emits every inserted row
// as row_to_json on the notify channel, so the payload has the same
// shape as a query row.
type Listener struct {
	dsn     string
	channel string
	out     chan domain.SensorReading
}

func NewListener(dsn, channel string) *Listener {
	return &Listener{
		dsn:     dsn,
		channel: channel,
		out:     make(chan domain.SensorReading, 16),
	}
}

// Notifications delivers newly inserted readings as they occur.
func (l *Listener) Notifications() <-chan domain.SensorReading {
	return l.out
}

// Run blocks until ctx is canceled, reconnecting with a short delay
// whenever the connection drops. Losing notifications here is not
// fatal: the feed's poll fallback catches up on the next tick.
func (l *Listener) Run(ctx context.Context) error {
	for {
		if err := l.listen(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Error().Err(err).Str("channel", l.channel).Msg("listener dropped, reconnecting")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(3 * time.Second):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.dsn)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return err
	}
	log.Info().Str("channel", l.channel).Msg("listening for sensor inserts")

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		var r domain.SensorReading
		if err := json.Unmarshal([]byte(n.Payload), &r); err != nil {
			// Oversized or malformed payloads are skipped; the poll
			// fallback picks the row up shortly after.
			log.Warn().Err(err).Msg("unparseable notification payload")
			continue
		}
		select {
		case l.out <- r:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
