package series

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const station = "00010000"

func TestMergeQualityPrecedence(t *testing.T) {
	jan := date(2020, 1, 1)
	provisional := block(station, jan, Provisional, 0)
	provisional.Values[14] = Float(10.0)
	consistent := block(station, jan, Consistent, 0)
	consistent.Values[14] = Float(12.5)

	cases := []struct {
		name   string
		blocks []RawBlock
	}{
		{"consistent submitted last", []RawBlock{provisional, consistent}},
		{"consistent submitted first", []RawBlock{consistent, provisional}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			merged, ok := Merge(station, Flow, c.blocks, KeepLatest)
			require.True(t, ok)
			assert.Equal(t, 12.5, *merged.At(date(2020, 1, 15)))
		})
	}
}

func TestMergeLatestResubmissionWins(t *testing.T) {
	jan := date(2020, 1, 1)
	first := block(station, jan, Provisional, 1)
	second := block(station, jan, Provisional, 2, 20)

	merged, ok := Merge(station, Flow, []RawBlock{first, second}, KeepLatest)
	require.True(t, ok)

	assert.Equal(t, 2.0, *merged.At(date(2020, 1, 1)))
	// The latest submission is kept even where its value is absent
	assert.Nil(t, merged.At(date(2020, 1, 20)))
}

func TestMergeFillsMissingMonths(t *testing.T) {
	blocks := []RawBlock{
		block(station, date(2020, 3, 1), Provisional, 3),
		block(station, date(2020, 1, 1), Provisional, 1),
	}

	merged, ok := Merge(station, Stage, blocks, KeepLatest)
	require.True(t, ok)

	assert.Equal(t, station, merged.StationID)
	assert.Equal(t, Stage, merged.Kind)
	assert.Equal(t, date(2020, 1, 1), merged.Start)
	assert.Equal(t, date(2020, 3, 31), merged.End())
	assert.Equal(t, 31+29+31, merged.Len())
	assert.Equal(t, 31+31, merged.Present())
	assert.Nil(t, merged.At(date(2020, 2, 10)))
}

func TestMergeConsistentOnly(t *testing.T) {
	blocks := []RawBlock{
		block(station, date(2020, 1, 1), Provisional, 1),
		block(station, date(2020, 2, 1), Consistent, 2, 3),
		block(station, date(2020, 3, 1), Provisional, 3),
	}

	merged, ok := Merge(station, Flow, blocks, ConsistentOnly)
	require.True(t, ok)

	assert.Equal(t, date(2020, 2, 1), merged.Start)
	assert.Equal(t, date(2020, 2, 29), merged.End())
	assert.Equal(t, 28, merged.Present())
	assert.Nil(t, merged.At(date(2020, 2, 3)))

	t.Run("no consistent data", func(t *testing.T) {
		_, ok := Merge(station, Flow, blocks[:1], ConsistentOnly)
		assert.False(t, ok)
	})

	t.Run("no blocks", func(t *testing.T) {
		_, ok := Merge(station, Flow, nil, KeepLatest)
		assert.False(t, ok)
	})
}

func TestMergeStrictIsSubset(t *testing.T) {
	blocks := []RawBlock{
		block(station, date(2019, 12, 1), Consistent, 1, 1, 2),
		block(station, date(2020, 1, 1), Provisional, 2),
		block(station, date(2020, 1, 1), Consistent, 3, 5, 6, 7),
		block(station, date(2020, 2, 1), Provisional, 4, 9),
		block(station, date(2020, 4, 1), Consistent, 5),
	}

	latest, ok := Merge(station, Flow, blocks, KeepLatest)
	require.True(t, ok)
	strict, ok := Merge(station, Flow, blocks, ConsistentOnly)
	require.True(t, ok)

	all := presentDates(latest.Series)
	for d := range presentDates(strict.Series) {
		assert.True(t, all[d], "strict date %s missing from non-strict merge", d)
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	blocks := []RawBlock{
		block(station, date(2020, 1, 1), Provisional, 1, 4),
		block(station, date(2020, 1, 1), Consistent, 2, 8),
		block(station, date(2020, 3, 1), Provisional, 3),
	}

	first, ok := Merge(station, Flow, blocks, KeepLatest)
	require.True(t, ok)
	second, ok := Merge(station, Flow, blocks, KeepLatest)
	require.True(t, ok)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("merge is not idempotent (-first +second):\n%s", diff)
	}
}

func TestMergePanicsOnMalformedBlock(t *testing.T) {
	malformed := RawBlock{StationID: station, Kind: Flow, MonthStart: date(2020, 1, 1), Quality: Consistent, Values: values(1, 2)}
	assert.Panics(t, func() { Merge(station, Flow, []RawBlock{malformed}, KeepLatest) })

	other := block("00020000", date(2020, 1, 1), Consistent, 1)
	assert.Panics(t, func() { Merge(station, Flow, []RawBlock{other}, KeepLatest) })
}

func TestResolve(t *testing.T) {
	d := date(2020, 5, 1)
	obs := []Observation{
		{Date: d.AddDate(0, 0, 1), Quality: Provisional, Value: Float(1)},
		{Date: d, Quality: Consistent, Value: Float(2)},
		{Date: d, Quality: Provisional, Value: Float(3)},
		{Date: d, Quality: Consistent, Value: Float(4)},
	}

	resolved := Resolve(obs, KeepLatest)
	require.Len(t, resolved, 2)
	assert.Equal(t, d, resolved[0].Date)
	assert.Equal(t, 4.0, *resolved[0].Value)
	assert.Equal(t, 1.0, *resolved[1].Value)

	strict := Resolve(obs, ConsistentOnly)
	require.Len(t, strict, 1)
	assert.Equal(t, 4.0, *strict[0].Value)

	// The input is left untouched
	assert.Equal(t, 1.0, *obs[0].Value)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("consistent")
	require.NoError(t, err)
	assert.Equal(t, ConsistentOnly, p)

	p, err = ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, KeepLatest, p)

	_, err = ParsePolicy("newest")
	assert.ErrorIs(t, err, ErrInvalidPolicy)
}

func TestMergeAll(t *testing.T) {
	defer goleak.VerifyNone(t)

	groups := []Group{
		{StationID: "00000003", Kind: Flow, Blocks: []RawBlock{block("00000003", date(2020, 1, 1), Consistent, 3)}},
		{StationID: "00000001", Kind: Flow, Blocks: []RawBlock{block("00000001", date(2020, 1, 1), Provisional, 1)}},
		{StationID: "00000002", Kind: Flow, Blocks: []RawBlock{block("00000002", date(2021, 6, 1), Consistent, 2)}},
	}

	var done atomic.Int32
	merged, err := MergeAll(context.Background(), groups, ConsistentOnly, 2, func(Group, bool, time.Duration) {
		done.Add(1)
	})
	require.NoError(t, err)

	assert.EqualValues(t, 3, done.Load())
	require.Len(t, merged, 2)
	assert.Equal(t, "00000003", merged[0].StationID)
	assert.Equal(t, "00000002", merged[1].StationID)
}

func TestMergeAllCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	groups := []Group{{StationID: station, Kind: Flow, Blocks: []RawBlock{block(station, date(2020, 1, 1), Consistent, 1)}}}
	_, err := MergeAll(ctx, groups, KeepLatest, 1, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
