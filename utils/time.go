package utils

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock resolves the "now" timestamp, tests can swap it for a fake one
var Clock clockwork.Clock = clockwork.NewRealClock()

// Date-only timestamp used for CLI flags
type Timestamp struct {
	t time.Time
}

func (ts *Timestamp) UnmarshalText(b []byte) error {
	// Hack for open ended `--to` flag
	if string(b) == "now" {
		now := Clock.Now().UTC()
		ts.t = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	}

	t, err := time.Parse(time.DateOnly, string(b))
	if err != nil {
		return fmt.Errorf("Only the date-only format (\"YYYY-MM-DD\") is allowed. Got %s", b)
	}
	ts.t = t
	return nil
}

// Returns nil if the timestamp was not set
func (ts *Timestamp) Inner() *time.Time {
	if ts == nil {
		return nil
	}
	return &ts.t
}

type TimeSpan struct {
	From *time.Time
	To   *time.Time
}

func (t *TimeSpan) Validate() error {
	if t.From != nil && t.To != nil && t.From.After(*t.To) {
		return fmt.Errorf("--from (%s) must not be after --to (%s)", t.From.Format(time.DateOnly), t.To.Format(time.DateOnly))
	}
	return nil
}
