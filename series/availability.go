package series

import (
	"cmp"
	"slices"
)

// MaxMissingDaysPerMonth is the number of absent days from which a month is
// shown as unavailable in monthly availability.
const MaxMissingDaysPerMonth = 7

// StationInterval is an availability interval of one station.
type StationInterval struct {
	StationID string
	Interval
}

// Availability lists the runs of available data of every station in the panel.
// In daily mode a day is available when it has a value. In monthly mode a
// month is available when fewer than MaxMissingDaysPerMonth of its indexed
// days are absent, and runs are broken by unavailable months. Stations with
// fewer than two available days (or months) are skipped.
func Availability(panel Panel, monthly bool) []StationInterval {
	var out []StationInterval
	for _, id := range panel.Stations() {
		s, _ := panel.Series(id)
		if monthly {
			s = monthlyAvailability(s)
		}
		if s.Present() < 2 {
			continue
		}
		for interval := range Intervals(s) {
			out = append(out, StationInterval{StationID: id, Interval: interval})
		}
	}
	return out
}

// Monthly series holding the number of present days of every available month
func monthlyAvailability(daily Series) Series {
	if daily.Len() == 0 {
		return Series{Freq: Monthly}
	}

	first := MonthStart(daily.Start)
	out := Series{Freq: Monthly, Start: first, Values: make([]*float64, Monthly.steps(first, MonthStart(daily.End()))+1)}

	missing := make([]int, out.Len())
	present := make([]int, out.Len())
	for i, v := range daily.Values {
		m := Monthly.steps(first, daily.Date(i))
		if v == nil {
			missing[m]++
		} else {
			present[m]++
		}
	}

	for m := range out.Values {
		if missing[m] < MaxMissingDaysPerMonth {
			out.Values[m] = Float(float64(present[m]))
		}
	}
	return out
}

// CurvePoint is a point of a duration curve: Value is equalled or exceeded
// Exceedance percent of the time.
type CurvePoint struct {
	Exceedance float64
	Value      float64
}

// DurationCurve sorts the present values of s in decreasing order and assigns
// the i-th value (1-based) an exceedance of 100*i/n.
func DurationCurve(s Series) []CurvePoint {
	values := make([]float64, 0, s.Present())
	for _, v := range s.Values {
		if v != nil {
			values = append(values, *v)
		}
	}

	slices.SortFunc(values, func(a, b float64) int {
		return cmp.Compare(b, a)
	})

	n := float64(len(values))
	out := make([]CurvePoint, len(values))
	for i, v := range values {
		out[i] = CurvePoint{Exceedance: 100 * float64(i+1) / n, Value: v}
	}
	return out
}
