package chart

import (
	"fmt"
	"time"
)

// Window is a relative time span bounding a historical query.
type Window string

const (
	Window1h  Window = "1h"
	Window12h Window = "12h"
	Window1d  Window = "1d"
	Window1w  Window = "1w"
	Window1m  Window = "1m"
)

// Windows lists the supported windows in ascending span order.
func Windows() []Window {
	return []Window{Window1h, Window12h, Window1d, Window1w, Window1m}
}

// ParseWindow validates a window token from a query parameter.
func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case Window1h, Window12h, Window1d, Window1w, Window1m:
		return Window(s), nil
	}
	return "", fmt.Errorf("unknown window %q", s)
}

// Hours returns the window span in hours; a month counts as 30 days.
func (w Window) Hours() int {
	switch w {
	case Window1h:
		return 1
	case Window12h:
		return 12
	case Window1d:
		return 24
	case Window1w:
		return 7 * 24
	case Window1m:
		return 30 * 24
	}
	return 24
}

func (w Window) Duration() time.Duration {
	return time.Duration(w.Hours()) * time.Hour
}

// Label is the human name shown on the window selector.
func (w Window) Label() string {
	switch w {
	case Window1h:
		return "1 hour"
	case Window12h:
		return "12 hours"
	case Window1d:
		return "1 day"
	case Window1w:
		return "1 week"
	case Window1m:
		return "1 month"
	}
	return string(w)
}

// stride is the positional decimation step. Only the two long windows
// are thinned; shorter windows render at full resolution.
func (w Window) stride() int {
	switch w {
	case Window1w, Window1m:
		return 10
	}
	return 1
}

// padFraction is the auto-scale padding applied around the data range.
func (w Window) padFraction() float64 {
	switch w {
	case Window1h:
		return 0.05
	case Window12h:
		return 0.08
	case Window1d:
		return 0.12
	case Window1w:
		return 0.20
	case Window1m:
		return 0.25
	}
	return 0.12
}

// labelFormat is the time layout for axis labels. Short windows show
// time of day, the day window adds the date, long windows show the
// date only. The full timestamp is kept on every point regardless.
func (w Window) labelFormat() string {
	switch w {
	case Window1h, Window12h:
		return "15:04"
	case Window1d:
		return "01/02 15:04"
	}
	return "01/02"
}

// TickHints returns the suggested axis tick count and numeric label
// precision for a window holding n points. Short windows get denser,
// finer ticks.
func (w Window) TickHints(n int) (count, precision int) {
	switch w {
	case Window1h:
		count, precision = 12, 2
	case Window12h:
		count, precision = 10, 2
	case Window1d:
		count, precision = 8, 1
	case Window1w:
		count, precision = 7, 1
	default:
		count, precision = 6, 0
	}
	if n > 0 && n < count {
		count = n
	}
	return count, precision
}
