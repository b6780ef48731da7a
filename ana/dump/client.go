package dump

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"hydrobr/ana/db"
	"hydrobr/series"
)

const (
	requestTimeout = 120 * time.Second
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

type Client struct {
	BaseURL string
	// Maximum number of attempts per station
	Retries int
	HTTP    *http.Client
	Clock   clockwork.Clock
}

func NewClient(baseURL string, retries int) *Client {
	return &Client{
		BaseURL: baseURL,
		Retries: retries,
		HTTP:    &http.Client{Timeout: requestTimeout},
		Clock:   clockwork.NewRealClock(),
	}
}

// Error that is not worth retrying
type permanentError struct {
	err error
}

func (e *permanentError) Error() string {
	return e.err.Error()
}

func (e *permanentError) Unwrap() error {
	return e.err
}

type Result struct {
	Blocks    []series.RawBlock
	Malformed int
}

// Fetches the whole history of the station. Network errors and 5xx responses
// are retried with exponential backoff.
func (c *Client) FetchStation(ctx context.Context, station string, kind series.Kind) (Result, error) {
	logStr := fmt.Sprintf("[%s - %s]: ", station, kind)

	backoff := initialBackoff
	var err error
	for attempt := 1; ; attempt++ {
		var result Result
		result, err = c.fetch(ctx, station, kind, logStr)
		if err == nil {
			return result, nil
		}

		var permanent *permanentError
		if errors.As(err, &permanent) || attempt >= c.Retries {
			break
		}
		if !sleepWithContext(ctx, c.Clock, backoff) {
			return Result{}, ctx.Err()
		}
		backoff = nextBackoff(backoff, maxBackoff)
	}
	return Result{}, fmt.Errorf("%sfetching %s data failed: %w", logStr, kind, err)
}

func (c *Client) fetch(ctx context.Context, station string, kind series.Kind, logStr string) (Result, error) {
	params := url.Values{}
	params.Set("codEstacao", station)
	params.Set("dataInicio", "")
	params.Set("dataFim", "")
	params.Set("tipoDados", strconv.Itoa(db.DataType(kind)))
	params.Set("nivelConsistencia", "")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/HidroSerieHistorica?"+params.Encode(), nil)
	if err != nil {
		return Result{}, &permanentError{err}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return Result{}, fmt.Errorf("server returned %s", resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return Result{}, &permanentError{fmt.Errorf("server returned %s", resp.Status)}
	}

	blocks, malformed, err := ParseResponse(resp.Body, kind, logStr)
	if err != nil {
		return Result{}, &permanentError{err}
	}
	return Result{Blocks: blocks, Malformed: malformed}, nil
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, clock clockwork.Clock, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
