package series

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Policy decides how observations of the same date are resolved.
type Policy int

const (
	// KeepLatest keeps, for every date, the observation with the highest
	// quality level and, among equal levels, the one submitted last.
	KeepLatest Policy = iota
	// ConsistentOnly discards every observation that is not Consistent,
	// then applies the KeepLatest rule to what is left.
	ConsistentOnly
)

var ErrInvalidPolicy = errors.New("invalid quality policy")

func (p Policy) String() string {
	if p == ConsistentOnly {
		return "consistent"
	}
	return "latest"
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "latest":
		return KeepLatest, nil
	case "consistent":
		return ConsistentOnly, nil
	}
	return 0, fmt.Errorf("%w: %q, choices are 'latest', 'consistent'", ErrInvalidPolicy, s)
}

func (p *Policy) UnmarshalText(b []byte) error {
	policy, err := ParsePolicy(string(b))
	if err != nil {
		return err
	}
	*p = policy
	return nil
}

// Observation is a single daily value expanded from a RawBlock.
type Observation struct {
	Date    time.Time
	Quality Quality
	Value   *float64
}

// Canonical is the deduplicated daily series of one station.
type Canonical struct {
	StationID string
	Kind      Kind
	Series
}

func (c *Canonical) LogStr() string {
	return fmt.Sprintf("[%s - %s]: ", c.StationID, c.Kind)
}

// Expand flattens blocks into daily observations, preserving submission order.
func Expand(blocks []RawBlock) []Observation {
	var size int
	for i := range blocks {
		size += len(blocks[i].Values)
	}

	obs := make([]Observation, 0, size)
	for _, block := range blocks {
		for day, value := range block.Values {
			obs = append(obs, Observation{
				Date:    block.MonthStart.AddDate(0, 0, day),
				Quality: block.Quality,
				Value:   value,
			})
		}
	}
	return obs
}

// Resolve returns at most one observation per date, sorted by date.
// Observations are stably sorted by (date, quality) and the last one of every
// date is kept, so the highest quality wins and ties go to the latest
// submission.
func Resolve(obs []Observation, policy Policy) []Observation {
	if policy == ConsistentOnly {
		obs = slices.DeleteFunc(slices.Clone(obs), func(o Observation) bool {
			return o.Quality != Consistent
		})
	} else {
		obs = slices.Clone(obs)
	}

	slices.SortStableFunc(obs, func(a, b Observation) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Quality, b.Quality)
	})

	out := obs[:0]
	for i, o := range obs {
		if i+1 < len(obs) && obs[i+1].Date.Equal(o.Date) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// Merge builds the canonical daily series of a station from all its blocks.
// The index runs from the first to the last resolved date, other days are
// absent. It returns false when no observation survives the policy.
//
// Blocks must satisfy RawBlock.Validate and belong to stationID; Merge panics
// otherwise since the caller broke the ingestion contract.
func Merge(stationID string, kind Kind, blocks []RawBlock, policy Policy) (Canonical, bool) {
	for i := range blocks {
		if err := blocks[i].Validate(); err != nil {
			panic(err.Error())
		}
		if blocks[i].StationID != stationID {
			panic(fmt.Sprintf("block for station %s passed to merge of station %s", blocks[i].StationID, stationID))
		}
	}

	resolved := Resolve(Expand(blocks), policy)
	if len(resolved) == 0 {
		return Canonical{}, false
	}

	start := resolved[0].Date
	end := resolved[len(resolved)-1].Date
	s := Series{Freq: Daily, Start: start, Values: make([]*float64, Daily.steps(start, end)+1)}
	for _, o := range resolved {
		s.Values[Daily.steps(start, o.Date)] = o.Value
	}

	return Canonical{StationID: stationID, Kind: kind, Series: s}, true
}

// Group holds all the blocks of one station.
type Group struct {
	StationID string
	Kind      Kind
	Blocks    []RawBlock
}

// MergeAll merges every group on a pool of at most workers goroutines.
// Results keep the order of groups; groups without surviving observations are
// left out. onDone, if not nil, is called concurrently after each merge with
// its outcome and duration.
func MergeAll(ctx context.Context, groups []Group, policy Policy, workers int, onDone func(Group, bool, time.Duration)) ([]Canonical, error) {
	results := make([]Canonical, len(groups))
	ok := make([]bool, len(groups))

	eg, egCtx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}

	for i, group := range groups {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			start := time.Now()
			results[i], ok[i] = Merge(group.StationID, group.Kind, group.Blocks, policy)
			if onDone != nil {
				onDone(group, ok[i], time.Since(start))
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := make([]Canonical, 0, len(groups))
	for i := range results {
		if ok[i] {
			out = append(out, results[i])
		}
	}
	return out, nil
}
