package dump

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"hydrobr/ana/db"
	"hydrobr/metrics"
	"hydrobr/utils"
)

type Config struct {
	db.BaseConfig
	Conns     int  `arg:"-n" default:"4" help:"Max number of concurrent requests to the ANA service"`
	Retries   int  `default:"3" help:"Max number of attempts per station"`
	Overwrite bool `help:"Overwrite already dumped stations"`
}

func (Config) Description() string {
	return `Dump the daily history of ANA stations to CSV.
The service address can be overridden with the "ANA_BASE_URL" environment variable.`
}

func (config *Config) Execute() {
	if len(config.Stations) == 0 {
		fmt.Println("Error: at least one station must be passed with --stations")
		return
	}
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

	baseURL := os.Getenv(db.BASE_URL_ENV_VAR)
	if baseURL == "" {
		baseURL = db.DEFAULT_BASE_URL
	}

	m := metrics.NewMetrics()
	client := NewClient(baseURL, config.Retries)
	if err := DumpStations(context.Background(), client, config, m); err != nil {
		slog.Error(err.Error())
		return
	}

	if err := m.WriteTextfile(config.MetricsFile); err != nil {
		slog.Error(err.Error())
	}
}
