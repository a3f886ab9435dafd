package alarm

import (
	"math"
	"testing"

	"github.com/Thoxh/smart-biodigester-dashboard/internal/domain"
)

var tempRange = Range{Min: 30, Max: 40}

func TestClassify(t *testing.T) {
	nan := math.NaN()
	cases := []struct {
		name string
		v    *float64
		want Status
	}{
		{"nil is unknown", nil, StatusUnknown},
		{"nan is unknown", &nan, StatusUnknown},
		{"below min", domain.Float(29.9), StatusCritical},
		{"at min", domain.Float(30), StatusSafe},
		{"inside", domain.Float(35), StatusSafe},
		{"at max", domain.Float(40), StatusSafe},
		{"above max", domain.Float(40.1), StatusCritical},
	}
	for _, tc := range cases {
		if got := Classify(tc.v, tempRange); got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestEvaluateBanner(t *testing.T) {
	ranges := Ranges{Temperature: tempRange, PH: Range{Min: 6, Max: 8}}

	allSafe := &domain.SensorReading{
		Temp1:   domain.Float(35),
		Temp2:   domain.Float(36),
		PHValue: domain.Float(7),
	}
	if a := Evaluate(allSafe, ranges); a.Critical {
		t.Fatalf("all safe must not raise the banner: %+v", a)
	}

	oneCritical := &domain.SensorReading{
		Temp1:   domain.Float(41),
		Temp2:   domain.Float(36),
		PHValue: domain.Float(7),
	}
	if a := Evaluate(oneCritical, ranges); !a.Critical {
		t.Fatalf("one critical metric must raise the banner: %+v", a)
	}

	allUnknown := &domain.SensorReading{}
	if a := Evaluate(allUnknown, ranges); a.Critical {
		t.Fatalf("unknown metrics must not raise the banner: %+v", a)
	}
	if a := Evaluate(allUnknown, ranges); a.Temp1 != StatusUnknown || a.Temp2 != StatusUnknown || a.PH != StatusUnknown {
		t.Fatalf("absent fields must classify unknown: %+v", a)
	}

	criticalAndUnknown := &domain.SensorReading{PHValue: domain.Float(5.5)}
	if a := Evaluate(criticalAndUnknown, ranges); !a.Critical {
		t.Fatalf("unknown metrics must not suppress the banner: %+v", a)
	}

	if a := Evaluate(nil, ranges); a.Critical || a.PH != StatusUnknown {
		t.Fatalf("nil reading must assess unknown without banner: %+v", a)
	}
}

func TestZonesCoverFixedDomain(t *testing.T) {
	zones := TemperatureZones(tempRange)
	if zones[0].Min != 0 || zones[len(zones)-1].Max != 80 {
		t.Fatalf("temperature zones must span [0,80]: %+v", zones)
	}
	for i := 1; i < len(zones); i++ {
		if zones[i].Min != zones[i-1].Max {
			t.Errorf("zones must be contiguous: %+v then %+v", zones[i-1], zones[i])
		}
	}

	ph := PHZones(Range{Min: 6, Max: 8})
	if ph[0].Min != 0 || ph[len(ph)-1].Max != 14 {
		t.Fatalf("pH zones must span [0,14]: %+v", ph)
	}
}
