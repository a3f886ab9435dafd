package server

import (
	"net/http"
	"time"

	"github.com/Thoxh/smart-biodigester-dashboard/internal/alarm"
	"github.com/Thoxh/smart-biodigester-dashboard/internal/domain"
)

// metricView is one display cell on the current-reading view.
type metricView struct {
	Key    string
	Label  string
	Value  string
	Status alarm.Status
}

type metricGroup struct {
	Title   string
	Metrics []metricView
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	reading, ready := s.feed.Current()
	assessment := alarm.Evaluate(reading, s.svcs.Ranges)

	data := map[string]any{
		"Title":    "Biodigester",
		"Loading":  !ready,
		"NoData":   ready && reading == nil,
		"Critical": assessment.Critical,
	}

	if reading != nil {
		data["Timestamp"] = reading.CreatedAt.Local().Format(time.RFC1123)
		data["Groups"] = []metricGroup{
			{
				Title: "Tank",
				Metrics: []metricView{
					{Key: "temp_1", Label: "Temperature 1", Value: domain.FormatUnit(reading.Temp1, "°C"), Status: assessment.Temp1},
					{Key: "temp_2", Label: "Temperature 2", Value: domain.FormatUnit(reading.Temp2, "°C"), Status: assessment.Temp2},
				},
			},
			{
				Title: "Acidity",
				Metrics: []metricView{
					{Key: "ph_value", Label: "pH", Value: domain.FormatValue(reading.PHValue), Status: assessment.PH},
					{Key: "ph_voltage", Label: "Probe Voltage", Value: domain.FormatUnit(reading.PHVoltage, "V"), Status: alarm.StatusUnknown},
				},
			},
			{
				Title: "Methane",
				Metrics: []metricView{
					{Key: "methane_ppm", Label: "Concentration", Value: domain.FormatUnit(reading.MethanePPM, "ppm"), Status: alarm.StatusUnknown},
					{Key: "methane_percentage", Label: "Share", Value: domain.FormatUnit(reading.MethanePercent, "%"), Status: alarm.StatusUnknown},
					{Key: "sensor_temp", Label: "Sensor Temp", Value: domain.FormatUnit(reading.SensorTemp, "°C"), Status: alarm.StatusUnknown},
				},
			},
			{
				Title: "Environment",
				Metrics: []metricView{
					{Key: "ambient_temp", Label: "Ambient Temp", Value: domain.FormatUnit(reading.AmbientTemp, "°C"), Status: alarm.StatusUnknown},
					{Key: "humidity", Label: "Humidity", Value: domain.FormatUnit(reading.Humidity, "%"), Status: alarm.StatusUnknown},
					{Key: "pressure", Label: "Pressure", Value: domain.FormatUnit(reading.Pressure, "hPa"), Status: alarm.StatusUnknown},
					{Key: "gas_resistance", Label: "Gas Resistance", Value: domain.FormatUnit(reading.GasResistance, "Ω"), Status: alarm.StatusUnknown},
				},
			},
		}
		// Absent and explicitly empty both render as "no data"; order
		// is preserved otherwise.
		data["Diagnostics"] = []string(reading.RawData)
		data["Faults"] = []string(reading.Errors)
	}

	s.render(w, "dashboard.html", data)
}
