package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Thoxh/smart-biodigester-dashboard/internal/domain"
)

const readingColumns = `id, created_at, ph_value, ph_voltage, temp_1, temp_2,
	ambient_temp, humidity, pressure, gas_resistance,
	methane_ppm, methane_percentage, sensor_temp, raw_data, errors`

type Repos struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repos { return &Repos{db: db} }

// Latest returns the single most recent reading, or (nil, nil) when
// the table is empty.
func (r *Repos) Latest(ctx context.Context) (*domain.SensorReading, error) {
	var out domain.SensorReading
	err := r.db.GetContext(ctx, &out,
		`SELECT `+readingColumns+` FROM sensor_data ORDER BY created_at DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Since returns all readings at or after the given time, ascending by
// timestamp as the chart pipeline requires.
func (r *Repos) Since(ctx context.Context, t time.Time) ([]domain.SensorReading, error) {
	var out []domain.SensorReading
	err := r.db.SelectContext(ctx, &out,
		`SELECT `+readingColumns+` FROM sensor_data WHERE created_at >= $1 ORDER BY created_at ASC`, t)
	return out, err
}

// Insert stores one reading. Only the simulator writes; the dashboard
// itself never ingests.
func (r *Repos) Insert(ctx context.Context, rd *domain.SensorReading) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sensor_data (created_at, ph_value, ph_voltage, temp_1, temp_2,
			ambient_temp, humidity, pressure, gas_resistance,
			methane_ppm, methane_percentage, sensor_temp, raw_data, errors)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		rd.CreatedAt, rd.PHValue, rd.PHVoltage, rd.Temp1, rd.Temp2,
		rd.AmbientTemp, rd.Humidity, rd.Pressure, rd.GasResistance,
		rd.MethanePPM, rd.MethanePercent, rd.SensorTemp, rd.RawData, rd.Errors)
	return err
}
