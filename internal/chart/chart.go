// Package chart turns raw sensor readings into render-ready series:
// fixed-stride downsampling for long windows, per-chart field
// filtering, and fixed or adaptive vertical-axis domains.
package chart

import (
	"math"
	"time"

	"github.com/Thoxh/smart-biodigester-dashboard/internal/alarm"
	"github.com/Thoxh/smart-biodigester-dashboard/internal/domain"
)

// Field binds one plotted line to a reading channel.
type Field struct {
	Key     string
	Label   string
	Color   string
	Extract func(*domain.SensorReading) *float64
}

// Domain is a vertical-axis range.
type Domain struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Def describes one chart: which channels it plots and how its axis
// is scaled. A nil Fixed domain means the axis adapts to the data.
type Def struct {
	Name   string
	Title  string
	Unit   string
	Fields []Field
	Fixed  *Domain
	Zones  []alarm.Zone
}

// Dataset is one plotted line. A nil value marks a gap the renderer
// must not interpolate across.
type Dataset struct {
	Key    string     `json:"key"`
	Label  string     `json:"label"`
	Color  string     `json:"color"`
	Values []*float64 `json:"values"`
}

// Data is a fully transformed chart ready for the renderer.
type Data struct {
	Name       string       `json:"name"`
	Title      string       `json:"title"`
	Unit       string       `json:"unit"`
	Labels     []string     `json:"labels"`
	Timestamps []string     `json:"timestamps"`
	Datasets   []Dataset    `json:"datasets"`
	Domain     Domain       `json:"domain"`
	Zones      []alarm.Zone `json:"zones,omitempty"`
	TickCount  int          `json:"tick_count"`
	Precision  int          `json:"precision"`
}

// Downsample thins readings by positional stride for the long windows
// (every 10th point, starting at index 0) and returns short windows
// untouched. Input must already be in ascending timestamp order.
func Downsample(readings []domain.SensorReading, w Window) []domain.SensorReading {
	step := w.stride()
	if step <= 1 || len(readings) == 0 {
		return readings
	}
	out := make([]domain.SensorReading, 0, (len(readings)+step-1)/step)
	for i := 0; i < len(readings); i += step {
		out = append(out, readings[i])
	}
	return out
}

// BuildSeries transforms readings for one chart. Points where every
// tracked field is absent are dropped; individual absent fields stay
// as gaps in their dataset.
func BuildSeries(readings []domain.SensorReading, w Window, def Def) Data {
	sampled := Downsample(readings, w)
	layout := w.labelFormat()

	d := Data{
		Name:  def.Name,
		Title: def.Title,
		Unit:  def.Unit,
		Zones: def.Zones,
	}
	values := make([][]*float64, len(def.Fields))

	for _, r := range sampled {
		if !plottable(&r, def.Fields) {
			continue
		}
		d.Labels = append(d.Labels, r.CreatedAt.Format(layout))
		d.Timestamps = append(d.Timestamps, r.CreatedAt.Format(time.RFC3339))
		for i, f := range def.Fields {
			values[i] = append(values[i], sanitize(f.Extract(&r)))
		}
	}

	for i, f := range def.Fields {
		d.Datasets = append(d.Datasets, Dataset{
			Key:    f.Key,
			Label:  f.Label,
			Color:  f.Color,
			Values: values[i],
		})
	}

	if def.Fixed != nil {
		d.Domain = *def.Fixed
	} else {
		d.Domain = AutoScale(collect(values), w)
	}
	d.TickCount, d.Precision = w.TickHints(len(d.Labels))
	return d
}

// BuildAll transforms readings for every chart definition.
func BuildAll(readings []domain.SensorReading, w Window, defs []Def) []Data {
	out := make([]Data, 0, len(defs))
	for _, def := range defs {
		out = append(out, BuildSeries(readings, w, def))
	}
	return out
}

// AutoScale computes an adaptive axis domain: the data range expanded
// by the window's padding fraction (never less than 0.1 units). For
// the two shortest windows the domain is additionally re-centered on
// the data midpoint and widened to a minimum span so small real
// fluctuations stay legible instead of rendering flat.
func AutoScale(values []float64, w Window) Domain {
	if len(values) == 0 {
		return Domain{Min: 0, Max: 1}
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	raw := max - min
	pad := raw * w.padFraction()
	if pad < 0.1 {
		pad = 0.1
	}
	dom := Domain{Min: min - pad, Max: max + pad}

	if w == Window1h || w == Window12h {
		minSpan := 2.0
		if raw >= 1 {
			minSpan = raw * 1.5
		}
		if dom.Max-dom.Min < minSpan {
			mid := (min + max) / 2
			dom = Domain{Min: mid - minSpan/2, Max: mid + minSpan/2}
		}
	}
	return dom
}

func plottable(r *domain.SensorReading, fields []Field) bool {
	for _, f := range fields {
		if v := f.Extract(r); v != nil && !math.IsNaN(*v) {
			return true
		}
	}
	return false
}

func sanitize(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) {
		return nil
	}
	return v
}

func collect(values [][]*float64) []float64 {
	var out []float64
	for _, vs := range values {
		for _, v := range vs {
			if v != nil {
				out = append(out, *v)
			}
		}
	}
	return out
}
