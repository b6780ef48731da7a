package series

import (
	"math"
	"time"
)

// NaN marks an absent value in test fixtures
var nan = math.NaN()

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time {
	return &t
}

func values(vs ...float64) []*float64 {
	out := make([]*float64, len(vs))
	for i, v := range vs {
		if !math.IsNaN(v) {
			out[i] = Float(v)
		}
	}
	return out
}

func daily(start time.Time, vs ...float64) Series {
	return Series{Freq: Daily, Start: start, Values: values(vs...)}
}

// Daily series on [start, end] where absent(d) decides which days have no value
func dailyRange(start, end time.Time, absent func(time.Time) bool) Series {
	s := Series{Freq: Daily, Start: start}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if absent != nil && absent(d) {
			s.Values = append(s.Values, nil)
			continue
		}
		s.Values = append(s.Values, Float(1))
	}
	return s
}

// Full month block where every day holds value, except the listed absent days
func block(station string, month time.Time, quality Quality, value float64, absentDays ...int) RawBlock {
	b := RawBlock{StationID: station, Kind: Flow, MonthStart: month, Quality: quality}
	for day := 1; day <= DaysIn(month); day++ {
		v := value
		for _, a := range absentDays {
			if a == day {
				v = nan
			}
		}
		b.Values = append(b.Values, values(v)...)
	}
	return b
}

func panelOf(series map[string]Series, order ...string) Panel {
	canon := make([]Canonical, 0, len(order))
	for _, id := range order {
		canon = append(canon, Canonical{StationID: id, Kind: Flow, Series: series[id]})
	}
	return Assemble(Flow, canon)
}

func presentDates(s Series) map[time.Time]bool {
	out := make(map[time.Time]bool)
	for i, v := range s.Values {
		if v != nil {
			out[s.Date(i)] = true
		}
	}
	return out
}
