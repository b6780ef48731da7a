package index

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"hydrobr/lard"
)

type Config struct {
	Action string `arg:"positional,required" help:"Valid choices: [\"drop\", \"create\"]"`
}

func (Config) Description() string {
	return `Drop or recreate the indices of the LARD data table.
Requires the "LARD_CONN_STRING" environment variable.`
}

func (config *Config) Execute() {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, os.Getenv(lard.LARD_ENV_VAR))
	if err != nil {
		slog.Error(fmt.Sprint("Could not connect to LARD:", err))
		return
	}
	defer pool.Close()

	switch config.Action {
	case "drop":
		err = lard.DropIndices(ctx, pool)
	case "create":
		err = lard.CreateIndices(ctx, pool)
	default:
		err = fmt.Errorf("Invalid argument '%s'", config.Action)
	}
	if err != nil {
		slog.Error(err.Error())
	}
}
