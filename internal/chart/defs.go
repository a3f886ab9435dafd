package chart

import (
	"github.com/Thoxh/smart-biodigester-dashboard/internal/alarm"
	"github.com/Thoxh/smart-biodigester-dashboard/internal/domain"
)

// Definitions builds the chart set for the historical view. The tank
// temperature and acidity charts use fixed domains so their alarm-zone
// bands stay calibrated no matter what the data does; everything else
// auto-scales.
func Definitions(ranges alarm.Ranges) []Def {
	return []Def{
		{
			Name:  "tank-temperature",
			Title: "Tank Temperature",
			Unit:  "°C",
			Fields: []Field{
				{Key: "temp_1", Label: "Sensor 1", Color: "#ef4444", Extract: func(r *domain.SensorReading) *float64 { return r.Temp1 }},
				{Key: "temp_2", Label: "Sensor 2", Color: "#f97316", Extract: func(r *domain.SensorReading) *float64 { return r.Temp2 }},
			},
			Fixed: &Domain{Min: 0, Max: 80},
			Zones: alarm.TemperatureZones(ranges.Temperature),
		},
		{
			Name:  "acidity",
			Title: "Acidity (pH)",
			Unit:  "pH",
			Fields: []Field{
				{Key: "ph_value", Label: "pH", Color: "#8b5cf6", Extract: func(r *domain.SensorReading) *float64 { return r.PHValue }},
			},
			Fixed: &Domain{Min: 0, Max: 14},
			Zones: alarm.PHZones(ranges.PH),
		},
		{
			Name:  "methane",
			Title: "Methane",
			Unit:  "ppm / %",
			Fields: []Field{
				{Key: "methane_ppm", Label: "CH4 ppm", Color: "#0ea5e9", Extract: func(r *domain.SensorReading) *float64 { return r.MethanePPM }},
				{Key: "methane_percentage", Label: "CH4 %", Color: "#22c55e", Extract: func(r *domain.SensorReading) *float64 { return r.MethanePercent }},
			},
		},
		{
			Name:  "climate",
			Title: "Ambient Climate",
			Unit:  "°C / %RH",
			Fields: []Field{
				{Key: "ambient_temp", Label: "Ambient °C", Color: "#eab308", Extract: func(r *domain.SensorReading) *float64 { return r.AmbientTemp }},
				{Key: "humidity", Label: "Humidity %", Color: "#06b6d4", Extract: func(r *domain.SensorReading) *float64 { return r.Humidity }},
			},
		},
		{
			Name:  "pressure",
			Title: "Air Pressure",
			Unit:  "hPa",
			Fields: []Field{
				{Key: "pressure", Label: "Pressure", Color: "#64748b", Extract: func(r *domain.SensorReading) *float64 { return r.Pressure }},
			},
		},
		{
			Name:  "air-quality",
			Title: "Gas Resistance",
			Unit:  "Ω",
			Fields: []Field{
				{Key: "gas_resistance", Label: "Resistance", Color: "#84cc16", Extract: func(r *domain.SensorReading) *float64 { return r.GasResistance }},
			},
		},
	}
}
