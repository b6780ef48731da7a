package port

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"hydrobr/ana/db"
	"hydrobr/lard"
	"hydrobr/metrics"
	"hydrobr/utils"
)

type Config struct {
	db.BaseConfig
	Reindex bool `help:"Drop PG indices before insertion. Might improve performance"`
}

func (Config) Description() string {
	return `Merge dumped ANA stations and import the canonical series into LARD.
The following environment variable needs to be set:
	- "LARD_CONN_STRING"`
}

func (config *Config) Execute() {
	if err := config.NormalizeStations(); err != nil {
		fmt.Println(err)
		return
	}

	if config.LogFile != "" {
		closer, err := utils.SetLogFile(config.LogFile)
		if err != nil {
			fmt.Println(err)
			return
		}
		defer closer()
	}

	ctx := context.Background()
	m := metrics.NewMetrics()

	panel, err := LoadPanel(ctx, &config.BaseConfig, m)
	if err != nil {
		slog.Error(err.Error())
		return
	}

	pool, err := pgxpool.New(ctx, os.Getenv(lard.LARD_ENV_VAR))
	if err != nil {
		slog.Error(fmt.Sprint("Could not connect to LARD:", err))
		return
	}
	defer pool.Close()

	if config.Reindex {
		if err := lard.DropIndices(ctx, pool); err != nil {
			slog.Error(err.Error())
			return
		}
	}

	// Recreate indices even in case the import panics
	defer func() {
		r := recover()
		if config.Reindex {
			if err := lard.CreateIndices(ctx, pool); err != nil {
				slog.Error(err.Error())
			}
		}

		if r != nil {
			panic(r)
		}
	}()

	rows, err := ImportPanel(ctx, panel, pool)
	if err != nil {
		slog.Error(err.Error())
	}

	outputStr := fmt.Sprintf("%v: %v total rows inserted", config.KindPath(), rows)
	slog.Info(outputStr)
	fmt.Println(outputStr)

	if err := m.WriteTextfile(config.MetricsFile); err != nil {
		slog.Error(err.Error())
	}
}
