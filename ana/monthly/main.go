package monthly

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"

	"hydrobr/ana/db"
	"hydrobr/ana/filter"
	port "hydrobr/ana/import"
	"hydrobr/metrics"
	"hydrobr/series"
	"hydrobr/utils"
)

type Config struct {
	db.BaseConfig
	filter.QualifyFlags
	Qualify bool          `help:"Only aggregate the stations passing the qualification filter"`
	Method  series.Method `default:"sum" help:"Aggregation of the days of a month. Choices: ['sum', 'mean']"`
	Out     string        `arg:"-o" default:"./monthly.csv" help:"CSV file the monthly series are written to"`
}

func (Config) Description() string {
	return `Aggregate the daily series of the dumped stations into monthly values.
A month with any missing day is left empty.`
}

type MonthlyRow struct {
	Station string `csv:"station"`
	Month   string `csv:"month"`
	Value   string `csv:"value"` // empty for incomplete months
}

func (config *Config) Execute() {
	if err := config.NormalizeStations(); err != nil {
		fmt.Println(err)
		return
	}

	opts := config.Options(config.TimeSpan())
	if config.Qualify {
		if err := opts.Validate(); err != nil {
			fmt.Println(err)
			return
		}
	}

	if config.LogFile != "" {
		closer, err := utils.SetLogFile(config.LogFile)
		if err != nil {
			fmt.Println(err)
			return
		}
		defer closer()
	}

	m := metrics.NewMetrics()
	panel, err := port.LoadPanel(context.Background(), &config.BaseConfig, m)
	if err != nil {
		slog.Error(err.Error())
		return
	}

	if config.Qualify {
		if panel, err = filter.QualifyPanel(panel, opts, m); err != nil {
			slog.Error(err.Error())
			return
		}
	}

	monthly, err := series.Aggregate(panel, config.Method)
	if err != nil {
		slog.Error(err.Error())
		return
	}

	if err := WriteMonthlyCSV(config.Out, monthly); err != nil {
		slog.Error(err.Error())
		return
	}
	fmt.Printf("%d stations aggregated to %q\n", len(monthly.Stations()), config.Out)

	if err := m.WriteTextfile(config.MetricsFile); err != nil {
		slog.Error(err.Error())
	}
}

func ToRows(panel series.MonthlyPanel) []*MonthlyRow {
	var rows []*MonthlyRow
	for _, station := range panel.Stations() {
		s, _ := panel.Series(station)
		for i, v := range s.Values {
			row := &MonthlyRow{Station: station, Month: s.Date(i).Format(time.DateOnly)}
			if v != nil {
				row.Value = strconv.FormatFloat(*v, 'f', -1, 64)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func WriteMonthlyCSV(filename string, panel series.MonthlyPanel) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return gocsv.MarshalFile(ToRows(panel), file)
}
