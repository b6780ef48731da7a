package series

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind is the observed quantity of a series.
type Kind int

const (
	Precipitation Kind = iota + 1
	Stage
	Flow
)

var ErrInvalidKind = errors.New("invalid data kind")

func (k Kind) String() string {
	switch k {
	case Precipitation:
		return "prec"
	case Stage:
		return "stage"
	case Flow:
		return "flow"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind accepts "prec"/"precipitation", "stage" and "flow".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prec", "precipitation":
		return Precipitation, nil
	case "stage":
		return Stage, nil
	case "flow":
		return Flow, nil
	}
	return 0, fmt.Errorf("%w: %q, choices are 'prec', 'stage', 'flow'", ErrInvalidKind, s)
}

// UnmarshalText lets Kind be used directly as a command line argument.
func (k *Kind) UnmarshalText(b []byte) error {
	kind, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// Quality is the provider-assigned consistency level of an observation.
type Quality int

const (
	Provisional Quality = 1
	Consistent  Quality = 2
)

func (q Quality) String() string {
	switch q {
	case Provisional:
		return "provisional"
	case Consistent:
		return "consistent"
	default:
		return fmt.Sprintf("quality(%d)", int(q))
	}
}

// ErrMalformedBlock is returned by RawBlock.Validate when the block shape does
// not match its month.
var ErrMalformedBlock = errors.New("malformed raw block")

// RawBlock is one month of daily observations for one station, as submitted
// by the provider. Several blocks may exist for the same month (resubmissions).
type RawBlock struct {
	StationID  string
	Kind       Kind
	MonthStart time.Time
	Quality    Quality
	Values     []*float64 // one entry per day of the month, nil when absent
}

func (b *RawBlock) LogStr() string {
	return fmt.Sprintf("[%s - %s - %s]: ", b.StationID, b.Kind, b.MonthStart.Format("2006-01"))
}

// Validate checks the block against the ingestion contract.
func (b *RawBlock) Validate() error {
	if b.StationID == "" {
		return fmt.Errorf("%w: empty station id", ErrMalformedBlock)
	}
	if !b.MonthStart.Equal(MonthStart(b.MonthStart)) {
		return fmt.Errorf("%w: %s month start %v is not the first day of a month", ErrMalformedBlock, b.StationID, b.MonthStart)
	}
	if b.Quality != Provisional && b.Quality != Consistent {
		return fmt.Errorf("%w: %s unknown quality level %d", ErrMalformedBlock, b.StationID, int(b.Quality))
	}
	if days := DaysIn(b.MonthStart); len(b.Values) != days {
		return fmt.Errorf(
			"%w: %s has %d daily values for %s, expected %d",
			ErrMalformedBlock, b.StationID, len(b.Values), b.MonthStart.Format("2006-01"), days,
		)
	}
	return nil
}
