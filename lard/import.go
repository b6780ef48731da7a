package lard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DataInserter interface {
	InsertData(i int) ([]any, error)
	Len() int
}

func InsertData(ctx context.Context, ts DataInserter, pool *pgxpool.Pool, logStr string) (int64, error) {
	size := ts.Len()
	count, err := pool.CopyFrom(
		ctx,
		pgx.Identifier{"public", "data"},
		[]string{"timeseries", "obstime", "obsvalue", "qc_usable"},
		pgx.CopyFromSlice(size, ts.InsertData),
	)
	if err != nil {
		return count, err
	}

	logStr += fmt.Sprintf("%v/%v data rows inserted", count, size)
	if int(count) != size {
		slog.Warn(logStr)
	} else {
		slog.Info(logStr)
	}
	return count, nil
}
