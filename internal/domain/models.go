package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// SensorReading is one timestamped snapshot of all sensor channels.
// Every channel is optional: a nil pointer means the sensor did not
// report, which is distinct from a reported zero.
type SensorReading struct {
	ID        int64     `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	PHValue   *float64 `db:"ph_value" json:"ph_value"`
	PHVoltage *float64 `db:"ph_voltage" json:"ph_voltage"`

	Temp1 *float64 `db:"temp_1" json:"temp_1"`
	Temp2 *float64 `db:"temp_2" json:"temp_2"`

	AmbientTemp   *float64 `db:"ambient_temp" json:"ambient_temp"`
	Humidity      *float64 `db:"humidity" json:"humidity"`
	Pressure      *float64 `db:"pressure" json:"pressure"`
	GasResistance *float64 `db:"gas_resistance" json:"gas_resistance"`

	MethanePPM     *float64 `db:"methane_ppm" json:"methane_ppm"`
	MethanePercent *float64 `db:"methane_percentage" json:"methane_percentage"`
	SensorTemp     *float64 `db:"sensor_temp" json:"sensor_temp"`

	RawData StringList `db:"raw_data" json:"raw_data"`
	Errors  StringList `db:"errors" json:"errors"`
}

// StringList is an ordered list of strings stored as JSONB. A NULL
// column scans to a nil list; an explicit empty array scans to an
// empty, non-nil list.
type StringList []string

func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
	out := StringList{}
	if err := json.Unmarshal(b, &out); err != nil {
		return fmt.Errorf("decode string list: %w", err)
	}
	*l = out
	return nil
}

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal([]string(l))
}

// NoValue is rendered wherever a sensor channel is absent.
const NoValue = "--"

// FormatValue renders a channel value with two decimals, or the
// NoValue placeholder when the value is absent or not a number.
func FormatValue(v *float64) string {
	if v == nil || math.IsNaN(*v) {
		return NoValue
	}
	return fmt.Sprintf("%.2f", *v)
}

// FormatUnit is FormatValue with a unit suffix; the unit is dropped
// for absent values.
func FormatUnit(v *float64, unit string) string {
	if v == nil || math.IsNaN(*v) {
		return NoValue
	}
	return fmt.Sprintf("%.2f %s", *v, unit)
}

// Float returns a pointer to v, for building readings in code.
func Float(v float64) *float64 { return &v }
