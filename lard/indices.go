package lard

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

const dropIndices = `
DROP INDEX IF EXISTS public.data_timeseries_index;
DROP INDEX IF EXISTS public.data_obstime_index;`

const createIndices = `
CREATE INDEX IF NOT EXISTS data_timeseries_index ON public.data USING HASH (timeseries);
CREATE INDEX IF NOT EXISTS data_obstime_index ON public.data (obstime);`

func DropIndices(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Dropping table indices...")
	if _, err := pool.Exec(ctx, dropIndices); err != nil {
		return err
	}
	slog.Info("Finished dropping indices!")
	return nil
}

func CreateIndices(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Recreating table indices...")
	if _, err := pool.Exec(ctx, createIndices); err != nil {
		return err
	}
	slog.Info("Finished creating indices!")
	return nil
}
