package dump

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hydrobr/series"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, retries int) (*Client, *clockwork.FakeClock) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	clock := clockwork.NewFakeClock()
	client := NewClient(server.URL, retries)
	client.Clock = clock
	return client, clock
}

func TestFetchStationRequest(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/HidroSerieHistorica", r.URL.Path)
		assert.Equal(t, "00010000", r.URL.Query().Get("codEstacao"))
		assert.Equal(t, "2", r.URL.Query().Get("tipoDados"))
		assert.True(t, r.URL.Query().Has("nivelConsistencia"))
		w.Write([]byte(response(serie("10000", 1, "2020-04-01", "Chuva", allDays(30, "0.2")))))
	}, 3)

	result, err := client.FetchStation(context.Background(), "00010000", series.Precipitation)
	require.NoError(t, err)
	require.Len(t, result.Blocks, 1)
	assert.Equal(t, 0.2, *result.Blocks[0].Values[0])
}

func TestFetchStationRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client, clock := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(response(serie("10000", 2, "2020-04-01", "Vazao", allDays(30, "5")))))
	}, 3)

	type outcome struct {
		result Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := client.FetchStation(context.Background(), "00010000", series.Flow)
		done <- outcome{result, err}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(initialBackoff)

	select {
	case out := <-done:
		require.NoError(t, out.err)
		assert.Len(t, out.result.Blocks, 1)
	case <-ctx.Done():
		t.Fatal("fetch did not complete after the backoff elapsed")
	}
	assert.EqualValues(t, 2, calls.Load())
}

func TestFetchStationDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}, 3)

	_, err := client.FetchStation(context.Background(), "00010000", series.Flow)
	assert.Error(t, err)
	assert.EqualValues(t, 1, calls.Load())
}

func TestFetchStationGivesUp(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, 1)

	_, err := client.FetchStation(context.Background(), "00010000", series.Flow)
	assert.Error(t, err)
	assert.EqualValues(t, 1, calls.Load())
}

func TestFetchStationCancelledDuringBackoff(t *testing.T) {
	client, clock := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, 5)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := client.FetchStation(ctx, "00010000", series.Flow)
		done <- err
	}()

	wait, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	require.NoError(t, clock.BlockUntilContext(wait, 1))
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-wait.Done():
		t.Fatal("fetch ignored the cancellation")
	}
}

func TestNextBackoff(t *testing.T) {
	backoff := initialBackoff
	var seen []time.Duration
	for range 7 {
		seen = append(seen, backoff)
		backoff = nextBackoff(backoff, maxBackoff)
	}

	expected := []time.Duration{
		200 * time.Millisecond, 400 * time.Millisecond, 800 * time.Millisecond,
		1600 * time.Millisecond, 3200 * time.Millisecond, 5 * time.Second, 5 * time.Second,
	}
	assert.Equal(t, expected, seen)
}
