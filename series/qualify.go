package series

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rickb777/period"
)

var ErrInvalidQualifyOptions = errors.New("invalid qualification options")

// QualifyOptions holds the station qualification parameters.
type QualifyOptions struct {
	// Minimum record length, in years, both for the first-to-last span and for
	// the continuous run or completeness window.
	MinYears int
	// Maximum percentage (0-100) of absent days allowed inside a window of MinYears.
	MaxMissingPct float64
	// Optional inclusive bounds applied to every series before the analysis.
	Start *time.Time
	End   *time.Time
	// When searching for a completeness window, ignore the first run of the
	// series. This reproduces the historical behaviour of the filter.
	SkipFirstInterval bool
}

func (o *QualifyOptions) Validate() error {
	if math.IsNaN(o.MaxMissingPct) || o.MaxMissingPct < 0 || o.MaxMissingPct > 100 {
		return fmt.Errorf("%w: missing percentage %v must be between 0 and 100", ErrInvalidQualifyOptions, o.MaxMissingPct)
	}
	if o.Start != nil && o.End != nil && o.Start.After(*o.End) {
		return fmt.Errorf("%w: start date %s is after end date %s",
			ErrInvalidQualifyOptions, o.Start.Format(time.DateOnly), o.End.Format(time.DateOnly))
	}
	return nil
}

// Reason explains a qualification decision.
type Reason string

const (
	ReasonNoData     Reason = "no data in range"
	ReasonShortSpan  Reason = "record span too short"
	ReasonContinuous Reason = "continuous run"
	ReasonWindow     Reason = "complete window"
	ReasonIncomplete Reason = "no complete window"
)

// Decision is the qualification outcome of one station.
type Decision struct {
	StationID  string
	Qualified  bool
	Reason     Reason
	SpanYears  float64
	Window     time.Time // start of the accepted window, when Reason is ReasonWindow
	MissingPct float64   // missing percentage of the accepted window
}

// Qualify keeps the stations of the panel that have either an uninterrupted
// run of at least MinYears, or a window of MinYears calendar years starting at
// a run boundary whose share of absent days is at most MaxMissingPct.
// Stations whose first-to-last present span is shorter than MinYears are
// dropped beforehand. When Start or End is set, the returned panel is clipped.
func Qualify(panel Panel, opts QualifyOptions) (Panel, []Decision, error) {
	if err := opts.Validate(); err != nil {
		return Panel{}, nil, err
	}

	if opts.Start != nil || opts.End != nil {
		panel = panel.Clip(opts.Start, opts.End)
	}

	var window period.Period
	if opts.MinYears > 0 {
		var err error
		if window, err = period.Parse(fmt.Sprintf("P%dY", opts.MinYears)); err != nil {
			return Panel{}, nil, fmt.Errorf("%w: %w", ErrInvalidQualifyOptions, err)
		}
	}

	stations := panel.Stations()
	decisions := make([]Decision, 0, len(stations))
	keep := make([]string, 0, len(stations))
	for _, id := range stations {
		s, _ := panel.Series(id)
		decision := qualifyStation(s, opts, window)
		decision.StationID = id

		decisions = append(decisions, decision)
		if decision.Qualified {
			keep = append(keep, id)
		}
	}

	return panel.Select(keep), decisions, nil
}

func qualifyStation(s Series, opts QualifyOptions, window period.Period) Decision {
	first, ok := s.FirstPresent()
	if !ok {
		return Decision{Reason: ReasonNoData}
	}
	last, _ := s.LastPresent()

	minYears := float64(opts.MinYears)
	span := Years(first, last)
	if span < minYears {
		return Decision{Reason: ReasonShortSpan, SpanYears: span}
	}

	intervals := ScanIntervals(s)
	for _, interval := range intervals {
		if interval.Years >= minYears {
			return Decision{Qualified: true, Reason: ReasonContinuous, SpanYears: span}
		}
	}

	candidates := intervals
	if opts.SkipFirstInterval {
		candidates = intervals[min(1, len(intervals)):]
	}

	for _, interval := range candidates {
		end, _ := window.AddTo(interval.Start)
		// Candidates are sorted, so no later window fits either
		if end.After(last) {
			break
		}

		missing, total := countMissing(s, interval.Start, end)
		if total == 0 {
			continue
		}
		if float64(missing)/float64(total) <= opts.MaxMissingPct/100 {
			return Decision{
				Qualified:  true,
				Reason:     ReasonWindow,
				SpanYears:  span,
				Window:     interval.Start,
				MissingPct: 100 * float64(missing) / float64(total),
			}
		}
	}

	return Decision{Reason: ReasonIncomplete, SpanYears: span}
}

// Counts absent values in the half-open window [from, to)
func countMissing(s Series, from, to time.Time) (missing, total int) {
	i, _ := s.Index(from)
	j, _ := s.Index(to)
	i, j = max(i, 0), min(j, s.Len())
	for _, v := range s.Values[i:max(i, j)] {
		if v == nil {
			missing++
		}
	}
	return missing, max(j-i, 0)
}
