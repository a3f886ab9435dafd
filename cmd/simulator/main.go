package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Thoxh/smart-biodigester-dashboard/internal/config"
	"github.com/Thoxh/smart-biodigester-dashboard/internal/database"
	"github.com/Thoxh/smart-biodigester-dashboard/internal/domain"
	"github.com/Thoxh/smart-biodigester-dashboard/internal/repository"
)

// Inserts synthetic readings so the dashboard, including the insert
// trigger's notify path, can be exercised without hardware.
func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer db.Close()

	repos := repository.New(db)
	ctx := context.Background()

	for i := 0; i < 200; i++ {
		r := synthetic()
		if err := repos.Insert(ctx, r); err != nil {
			log.Error().Err(err).Msg("insert failed")
		}
		time.Sleep(2 * time.Second)
	}
	log.Info().Msg("simulation done")
}

func synthetic() *domain.SensorReading {
	r := &domain.SensorReading{
		CreatedAt:      time.Now().UTC(),
		Temp1:          domain.Float(34 + rand.Float64()*4),
		Temp2:          domain.Float(33 + rand.Float64()*4),
		PHValue:        domain.Float(6.5 + rand.Float64()),
		PHVoltage:      domain.Float(1.8 + rand.Float64()*0.4),
		AmbientTemp:    domain.Float(18 + rand.Float64()*8),
		Humidity:       domain.Float(40 + rand.Float64()*30),
		Pressure:       domain.Float(990 + rand.Float64()*30),
		GasResistance:  domain.Float(50000 + rand.Float64()*20000),
		MethanePPM:     domain.Float(800 + rand.Float64()*600),
		MethanePercent: domain.Float(45 + rand.Float64()*15),
		SensorTemp:     domain.Float(30 + rand.Float64()*5),
		RawData:        domain.StringList{"mq4 warmup ok", "bme680 cycle complete"},
		Errors:         domain.StringList{},
	}

	// Sensors drop out now and then; leave holes so the gap handling
	// stays honest.
	if rand.Intn(10) == 0 {
		r.PHValue, r.PHVoltage = nil, nil
	}
	if rand.Intn(12) == 0 {
		r.Temp2 = nil
	}
	if rand.Intn(15) == 0 {
		r.Errors = domain.StringList{"DS18B20: CRC mismatch on bus 2"}
	}
	return r
}
