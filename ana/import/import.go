package port

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"hydrobr/lard"
	"hydrobr/series"
	"hydrobr/utils"
)

// Inserts the present values of every panel station into its LARD timeseries.
// A station that fails is logged and skipped, the import goes on with the others.
func ImportPanel(ctx context.Context, panel series.Panel, pool *pgxpool.Pool) (int64, error) {
	stations := panel.Stations()
	bar := utils.NewBar(len(stations), "importing")
	bar.RenderBlank()

	var rowsInserted int64
	for _, station := range stations {
		bar.Add(1)
		if err := ctx.Err(); err != nil {
			return rowsInserted, err
		}

		s, _ := panel.Series(station)
		logStr := fmt.Sprintf("[%s - %s]: ", station, panel.Kind)

		// Absent edges are not part of the timeseries span
		s = s.Trim()
		if s.Len() == 0 {
			continue
		}

		label := lard.Label{StationID: station, Kind: panel.Kind.String()}
		tsid, err := lard.GetTimeseriesID(ctx, label, s.Start, s.End(), pool)
		if err != nil {
			slog.Error(logStr + err.Error())
			continue
		}

		count, err := lard.InsertData(ctx, lard.NewDataRows(tsid, s), pool, logStr)
		if err != nil {
			slog.Error(logStr + err.Error())
			continue
		}
		rowsInserted += count
	}

	return rowsInserted, nil
}
