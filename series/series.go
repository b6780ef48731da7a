package series

import (
	"time"
)

// Frequency is the step between two consecutive entries of a Series index.
type Frequency int

const (
	Daily Frequency = iota
	Monthly
)

func (f Frequency) String() string {
	if f == Monthly {
		return "monthly"
	}
	return "daily"
}

func (f Frequency) add(t time.Time, n int) time.Time {
	if f == Monthly {
		return t.AddDate(0, n, 0)
	}
	return t.AddDate(0, 0, n)
}

// Number of steps from a to b, negative if b is before a
func (f Frequency) steps(a, b time.Time) int {
	if f == Monthly {
		return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	}
	return int(b.Sub(a) / (24 * time.Hour))
}

// Truncates t to the index granularity of the frequency (UTC midnight, or
// UTC midnight of the first day of the month)
func (f Frequency) floor(t time.Time) time.Time {
	t = t.UTC()
	if f == Monthly {
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Day returns the UTC calendar date of t at midnight.
func Day(t time.Time) time.Time {
	return Daily.floor(t)
}

// MonthStart returns the first day of the month containing t.
func MonthStart(t time.Time) time.Time {
	return Monthly.floor(t)
}

// DaysIn returns the number of days of the month containing t.
func DaysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Series is a regularly spaced sequence of optional values.
// The index is contiguous: entry i is dated Freq steps after Start, and absent
// values are represented by nil rather than omitted.
type Series struct {
	Freq   Frequency
	Start  time.Time
	Values []*float64
}

func (s Series) Len() int {
	return len(s.Values)
}

func (s Series) Date(i int) time.Time {
	return s.Freq.add(s.Start, i)
}

// End returns the date of the last index entry, or the zero time for an empty series.
func (s Series) End() time.Time {
	if len(s.Values) == 0 {
		return time.Time{}
	}
	return s.Date(len(s.Values) - 1)
}

// Index returns the position of date in the series index.
func (s Series) Index(date time.Time) (int, bool) {
	if len(s.Values) == 0 {
		return 0, false
	}
	i := s.Freq.steps(s.Start, s.Freq.floor(date))
	return i, i >= 0 && i < len(s.Values)
}

// At returns the value at date, nil if absent or outside the index.
func (s Series) At(date time.Time) *float64 {
	i, ok := s.Index(date)
	if !ok {
		return nil
	}
	return s.Values[i]
}

// Present returns the number of non-absent values.
func (s Series) Present() int {
	var n int
	for _, v := range s.Values {
		if v != nil {
			n++
		}
	}
	return n
}

func (s Series) Missing() int {
	return len(s.Values) - s.Present()
}

func (s Series) FirstPresent() (time.Time, bool) {
	for i, v := range s.Values {
		if v != nil {
			return s.Date(i), true
		}
	}
	return time.Time{}, false
}

func (s Series) LastPresent() (time.Time, bool) {
	for i := len(s.Values) - 1; i >= 0; i-- {
		if s.Values[i] != nil {
			return s.Date(i), true
		}
	}
	return time.Time{}, false
}

// Reindex returns a copy of the series on the closed range [start, end].
// Dates outside the original index are absent. An end before start gives an
// empty series anchored at start.
func (s Series) Reindex(start, end time.Time) Series {
	start, end = s.Freq.floor(start), s.Freq.floor(end)
	out := Series{Freq: s.Freq, Start: start}

	n := s.Freq.steps(start, end) + 1
	if n <= 0 {
		return out
	}

	out.Values = make([]*float64, n)
	if len(s.Values) == 0 {
		return out
	}

	offset := s.Freq.steps(start, s.Start)
	for i := range out.Values {
		j := i - offset
		if j >= 0 && j < len(s.Values) {
			out.Values[i] = s.Values[j]
		}
	}
	return out
}

// Clip restricts the index to the closed range [from, to]; a nil bound leaves
// that side unclipped. The result never extends beyond the original index.
func (s Series) Clip(from, to *time.Time) Series {
	if len(s.Values) == 0 {
		return s
	}

	start, end := s.Start, s.End()
	if from != nil && s.Freq.floor(*from).After(start) {
		start = s.Freq.floor(*from)
	}
	if to != nil && s.Freq.floor(*to).Before(end) {
		end = s.Freq.floor(*to)
	}
	return s.Reindex(start, end)
}

// Trim drops the absent values at both edges of the series.
func (s Series) Trim() Series {
	first, ok := s.FirstPresent()
	if !ok {
		return Series{Freq: s.Freq, Start: s.Start}
	}
	last, _ := s.LastPresent()
	return s.Reindex(first, last)
}

// Float is a convenience used to build present values.
func Float(v float64) *float64 {
	return &v
}
