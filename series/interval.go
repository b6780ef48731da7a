package series

import (
	"iter"
	"time"
)

// YearLength is the fixed year used to express interval lengths and record
// spans in years. It is not calendar aware.
const YearLength = time.Duration(365.25 * 24 * float64(time.Hour))

// Interval is a maximal run of consecutive present values.
type Interval struct {
	Start time.Time
	End   time.Time
	Years float64
}

func newInterval(start, end time.Time) Interval {
	return Interval{Start: start, End: end, Years: Years(start, end)}
}

// Years returns the length of [start, end] in fixed-length years.
func Years(start, end time.Time) float64 {
	return float64(end.Sub(start)) / float64(YearLength)
}

// Intervals yields the runs of present values of s in increasing date order.
// A run is broken whenever two present values are more than one index step
// apart. A series with a single present value yields one zero-length interval.
func Intervals(s Series) iter.Seq[Interval] {
	return func(yield func(Interval) bool) {
		start := -1
		for i, v := range s.Values {
			switch {
			case v != nil && start < 0:
				start = i
			case v == nil && start >= 0:
				if !yield(newInterval(s.Date(start), s.Date(i-1))) {
					return
				}
				start = -1
			}
		}
		if start >= 0 {
			yield(newInterval(s.Date(start), s.Date(len(s.Values)-1)))
		}
	}
}

// ScanIntervals collects Intervals(s).
func ScanIntervals(s Series) []Interval {
	var out []Interval
	for interval := range Intervals(s) {
		out = append(out, interval)
	}
	return out
}
