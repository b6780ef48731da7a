package series

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Method is the aggregation applied to the days of a month.
type Method int

const (
	Sum Method = iota + 1
	Mean
)

var ErrInvalidMethod = errors.New("invalid aggregation method")

func (m Method) String() string {
	switch m {
	case Sum:
		return "sum"
	case Mean:
		return "mean"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sum":
		return Sum, nil
	case "mean":
		return Mean, nil
	}
	return 0, fmt.Errorf("%w: %q, choices are 'sum', 'mean'", ErrInvalidMethod, s)
}

func (m *Method) UnmarshalText(b []byte) error {
	method, err := ParseMethod(string(b))
	if err != nil {
		return err
	}
	*m = method
	return nil
}

// MonthlyPanel holds one monthly series per station. Each series has its own
// index, running from its first to its last complete month.
type MonthlyPanel struct {
	stations []string
	columns  map[string]Series
}

func (p MonthlyPanel) Stations() []string {
	return slices.Clone(p.stations)
}

func (p MonthlyPanel) Series(stationID string) (Series, bool) {
	s, ok := p.columns[stationID]
	return s, ok
}

func (p MonthlyPanel) Empty() bool {
	return len(p.stations) == 0
}

// Aggregate converts every daily series of the panel to monthly values.
// A month with any absent day, including days outside the daily index, is
// absent in the result. Stations left without a complete month are dropped.
func Aggregate(panel Panel, method Method) (MonthlyPanel, error) {
	if method != Sum && method != Mean {
		return MonthlyPanel{}, fmt.Errorf("%w: %v", ErrInvalidMethod, method)
	}

	out := MonthlyPanel{columns: make(map[string]Series)}
	for _, id := range panel.Stations() {
		daily, _ := panel.Series(id)
		monthly := ToMonthly(daily, method)
		if monthly.Len() == 0 {
			continue
		}
		out.stations = append(out.stations, id)
		out.columns[id] = monthly
	}
	return out, nil
}

// ToMonthly aggregates a daily series month by month. The result is trimmed
// to its first and last complete months; incomplete months in between are absent.
func ToMonthly(daily Series, method Method) Series {
	if daily.Len() == 0 {
		return Series{Freq: Monthly}
	}

	first := MonthStart(daily.Start)
	n := Monthly.steps(first, MonthStart(daily.End())) + 1

	values := make([]*float64, n)
	for m := range values {
		month := Monthly.add(first, m)
		days := DaysIn(month)

		i, _ := daily.Index(month)
		if i < 0 || i+days > daily.Len() {
			continue
		}

		var total float64
		complete := true
		for _, v := range daily.Values[i : i+days] {
			if v == nil {
				complete = false
				break
			}
			total += *v
		}
		if !complete {
			continue
		}

		if method == Mean {
			total /= float64(days)
		}
		values[m] = Float(total)
	}

	return Series{Freq: Monthly, Start: first, Values: values}.Trim()
}
