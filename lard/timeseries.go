package lard

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Struct that mimics `labels.hydro` table structure
type Label struct {
	StationID string
	Kind      string
}

// Returns the ID of the timeseries with the given label, creating it (and its
// label) if needed. The timeseries spans [from, to].
func GetTimeseriesID(ctx context.Context, label Label, from, to time.Time, pool *pgxpool.Pool) (tsid int32, err error) {
	err = pool.QueryRow(ctx,
		`SELECT timeseries FROM labels.hydro
            WHERE station_id = $1
            AND kind = $2`,
		label.StationID, label.Kind,
	).Scan(&tsid)
	if err == nil {
		_, err = pool.Exec(ctx,
			`UPDATE public.timeseries
                SET fromtime = LEAST(fromtime, $2), totime = GREATEST(totime, $3)
                WHERE id = $1`,
			tsid, from, to,
		)
		return tsid, err
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return tsid, err
	}

	transaction, err := pool.Begin(ctx)
	if err != nil {
		return tsid, err
	}
	defer transaction.Rollback(ctx)

	err = transaction.QueryRow(ctx,
		`INSERT INTO public.timeseries (fromtime, totime) VALUES ($1, $2) RETURNING id`,
		from, to,
	).Scan(&tsid)
	if err != nil {
		return tsid, err
	}

	_, err = transaction.Exec(ctx,
		`INSERT INTO labels.hydro (timeseries, station_id, kind) VALUES ($1, $2, $3)`,
		tsid, label.StationID, label.Kind,
	)
	if err != nil {
		return tsid, err
	}

	err = transaction.Commit(ctx)
	return tsid, err
}
