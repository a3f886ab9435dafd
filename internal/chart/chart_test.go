package chart

import (
	"math"
	"testing"
	"time"

	"github.com/Thoxh/smart-biodigester-dashboard/internal/domain"
)

func ascendingReadings(n int, start time.Time) []domain.SensorReading {
	out := make([]domain.SensorReading, n)
	for i := range out {
		out[i] = domain.SensorReading{
			ID:        int64(i),
			CreatedAt: start.Add(time.Duration(i) * time.Minute),
			Temp1:     domain.Float(30 + float64(i%10)),
		}
	}
	return out
}

func TestDownsampleStride(t *testing.T) {
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	readings := ascendingReadings(100, start)

	for _, w := range []Window{Window1w, Window1m} {
		got := Downsample(readings, w)
		if len(got) != 10 {
			t.Fatalf("%s: expected 10 points, got %d", w, len(got))
		}
		for i, r := range got {
			if r.ID != int64(i*10) {
				t.Fatalf("%s: point %d should be source index %d, got %d", w, i, i*10, r.ID)
			}
		}
	}

	for _, w := range []Window{Window1h, Window12h, Window1d} {
		got := Downsample(readings, w)
		if len(got) != 100 {
			t.Fatalf("%s: short windows must keep full resolution, got %d points", w, len(got))
		}
	}
}

func TestFixedDomainNeverRecomputed(t *testing.T) {
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	readings := []domain.SensorReading{
		{CreatedAt: start, Temp1: domain.Float(-200)},
		{CreatedAt: start.Add(time.Minute), Temp1: domain.Float(500)},
	}
	def := Def{
		Name:   "tank-temperature",
		Fields: []Field{{Key: "temp_1", Extract: func(r *domain.SensorReading) *float64 { return r.Temp1 }}},
		Fixed:  &Domain{Min: 0, Max: 80},
	}
	d := BuildSeries(readings, Window1d, def)
	if d.Domain.Min != 0 || d.Domain.Max != 80 {
		t.Fatalf("fixed domain must not adapt to data: %+v", d.Domain)
	}
}

func TestAutoScaleMinimumSpanShortWindow(t *testing.T) {
	values := []float64{20, 20.5, 21.3, 22}
	dom := AutoScale(values, Window1h)

	mid := (dom.Min + dom.Max) / 2
	if math.Abs(mid-21) > 1e-9 {
		t.Fatalf("domain must be centered on the data midpoint 21, got %f (%+v)", mid, dom)
	}
	if span := dom.Max - dom.Min; span < 2 {
		t.Fatalf("span must be at least 2, got %f", span)
	}
}

func TestAutoScaleFlatDataGetsFixedSpan(t *testing.T) {
	dom := AutoScale([]float64{37, 37, 37}, Window12h)
	if span := dom.Max - dom.Min; math.Abs(span-2) > 1e-9 {
		t.Fatalf("flat data on a short window gets the 2-unit span, got %f", span)
	}
	if mid := (dom.Min + dom.Max) / 2; math.Abs(mid-37) > 1e-9 {
		t.Fatalf("expected center 37, got %f", mid)
	}
}

func TestAutoScalePaddingFloor(t *testing.T) {
	dom := AutoScale([]float64{5, 5.01}, Window1d)
	if dom.Min > 5-0.1+1e-9 || dom.Max < 5.01+0.1-1e-9 {
		t.Fatalf("padding floor of 0.1 units not applied: %+v", dom)
	}
}

func TestAutoScaleLongWindowPadding(t *testing.T) {
	dom := AutoScale([]float64{10, 20}, Window1m)
	// 25% of the 10-unit range on each side.
	if math.Abs(dom.Min-7.5) > 1e-9 || math.Abs(dom.Max-22.5) > 1e-9 {
		t.Fatalf("expected [7.5, 22.5], got %+v", dom)
	}
}

func TestBuildSeriesExcludesAllAbsentPoints(t *testing.T) {
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	nan := math.NaN()
	readings := []domain.SensorReading{
		{CreatedAt: start, Temp1: domain.Float(34), Temp2: nil},
		{CreatedAt: start.Add(time.Minute)}, // nothing plottable
		{CreatedAt: start.Add(2 * time.Minute), Temp1: &nan, Temp2: nil},
		{CreatedAt: start.Add(3 * time.Minute), Temp1: nil, Temp2: domain.Float(35)},
	}
	def := Def{
		Name: "tank-temperature",
		Fields: []Field{
			{Key: "temp_1", Extract: func(r *domain.SensorReading) *float64 { return r.Temp1 }},
			{Key: "temp_2", Extract: func(r *domain.SensorReading) *float64 { return r.Temp2 }},
		},
	}
	d := BuildSeries(readings, Window1h, def)
	if len(d.Labels) != 2 {
		t.Fatalf("expected 2 plottable points, got %d", len(d.Labels))
	}
	// The absent temp_2 on the first kept point must stay a gap.
	if d.Datasets[1].Values[0] != nil {
		t.Fatalf("absent field must remain nil, got %v", *d.Datasets[1].Values[0])
	}
	if d.Datasets[0].Values[1] != nil {
		t.Fatalf("NaN must not leak into a dataset")
	}
	if *d.Datasets[0].Values[0] != 34 || *d.Datasets[1].Values[1] != 35 {
		t.Fatalf("present values mangled: %+v", d.Datasets)
	}
}

func TestLabelFormats(t *testing.T) {
	ts := time.Date(2026, 3, 7, 14, 5, 0, 0, time.UTC)
	readings := []domain.SensorReading{{CreatedAt: ts, Temp1: domain.Float(34)}}
	def := Def{Fields: []Field{{Key: "temp_1", Extract: func(r *domain.SensorReading) *float64 { return r.Temp1 }}}}

	cases := []struct {
		w    Window
		want string
	}{
		{Window1h, "14:05"},
		{Window12h, "14:05"},
		{Window1d, "03/07 14:05"},
		{Window1w, "03/07"},
		{Window1m, "03/07"},
	}
	for _, tc := range cases {
		d := BuildSeries(readings, tc.w, def)
		if d.Labels[0] != tc.want {
			t.Errorf("%s: label %q, want %q", tc.w, d.Labels[0], tc.want)
		}
		if d.Timestamps[0] != ts.Format(time.RFC3339) {
			t.Errorf("%s: full timestamp must be preserved, got %q", tc.w, d.Timestamps[0])
		}
	}
}

func TestTickHintsMonotonic(t *testing.T) {
	prevCount, prevPrec := math.MaxInt, math.MaxInt
	for _, w := range Windows() {
		count, prec := w.TickHints(1000)
		if count > prevCount || prec > prevPrec {
			t.Fatalf("tick density and precision must not grow with window size (%s: %d/%d)", w, count, prec)
		}
		prevCount, prevPrec = count, prec
	}
	if count, _ := Window1h.TickHints(3); count != 3 {
		t.Fatalf("tick count must not exceed point count, got %d", count)
	}
}

func TestParseWindow(t *testing.T) {
	if _, err := ParseWindow("2h"); err == nil {
		t.Fatal("unknown window must be rejected")
	}
	w, err := ParseWindow("1w")
	if err != nil || w != Window1w {
		t.Fatalf("got %v, %v", w, err)
	}
	if Window1m.Hours() != 720 {
		t.Fatalf("a month is 30 days, got %d hours", Window1m.Hours())
	}
}
