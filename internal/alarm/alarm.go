// Package alarm classifies sensor readings against configured safe
// ranges and derives the dashboard's critical state.
package alarm

import (
	"math"

	"github.com/Thoxh/smart-biodigester-dashboard/internal/domain"
)

// Status is the classification of a single metric value.
type Status string

const (
	StatusUnknown  Status = "unknown"
	StatusSafe     Status = "safe"
	StatusCritical Status = "critical"
)

// Range is the inclusive [Min, Max] band inside which a metric is safe.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Ranges maps metric names to their safe bands. Built from config at
// startup rather than hardcoded so deployments can tune them.
type Ranges struct {
	Temperature Range
	PH          Range
}

// Classify maps a value and its safe range to a status. Absent values
// and NaN are unknown; Min and Max are both inside the safe band.
func Classify(v *float64, r Range) Status {
	if v == nil || math.IsNaN(*v) {
		return StatusUnknown
	}
	if *v >= r.Min && *v <= r.Max {
		return StatusSafe
	}
	return StatusCritical
}

// Assessment holds the per-metric classifications the dashboard tracks
// and the aggregate critical flag.
type Assessment struct {
	Temp1 Status `json:"temp_1"`
	Temp2 Status `json:"temp_2"`
	PH    Status `json:"ph"`

	// Critical is true when any tracked metric is critical. Unknown
	// metrics never raise it and never clear it.
	Critical bool `json:"critical"`
}

// Evaluate classifies the three tracked metrics of a reading. A nil
// reading assesses everything as unknown.
func Evaluate(r *domain.SensorReading, ranges Ranges) Assessment {
	a := Assessment{
		Temp1: StatusUnknown,
		Temp2: StatusUnknown,
		PH:    StatusUnknown,
	}
	if r != nil {
		a.Temp1 = Classify(r.Temp1, ranges.Temperature)
		a.Temp2 = Classify(r.Temp2, ranges.Temperature)
		a.PH = Classify(r.PHValue, ranges.PH)
	}
	a.Critical = a.Temp1 == StatusCritical || a.Temp2 == StatusCritical || a.PH == StatusCritical
	return a
}

// Zone is a labeled sub-band of a chart's value axis, drawn as a
// colored background so a line's position reads at a glance. Zones are
// contiguous: each covers [Min, Max) and together they span the
// chart's fixed domain.
type Zone struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Color string  `json:"color"`
}

// TemperatureZones bands the fixed [0,80] temperature axis around the
// configured safe range.
func TemperatureZones(r Range) []Zone {
	return []Zone{
		{Label: "too cold", Min: 0, Max: r.Min, Color: "#3b82f680"},
		{Label: "optimal", Min: r.Min, Max: r.Max, Color: "#22c55e80"},
		{Label: "too hot", Min: r.Max, Max: 80, Color: "#ef444480"},
	}
}

// PHZones bands the fixed [0,14] acidity axis around the configured
// safe range.
func PHZones(r Range) []Zone {
	return []Zone{
		{Label: "too acidic", Min: 0, Max: r.Min, Color: "#f9731680"},
		{Label: "optimal", Min: r.Min, Max: r.Max, Color: "#22c55e80"},
		{Label: "too alkaline", Min: r.Max, Max: 14, Color: "#a855f780"},
	}
}
