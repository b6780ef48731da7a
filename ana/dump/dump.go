package dump

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"hydrobr/ana/db"
	"hydrobr/metrics"
	"hydrobr/utils"
)

// Fetches every configured station on a pool of `config.Conns` connections and
// writes one CSV dump per station. A station that cannot be fetched is logged
// and skipped.
func DumpStations(ctx context.Context, client *Client, config *Config, m *metrics.Metrics) error {
	if err := os.MkdirAll(config.KindPath(), os.ModePerm); err != nil {
		return err
	}

	bar := utils.NewBar(len(config.Stations), config.Kind.String())
	bar.RenderBlank()

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(config.Conns, 1))

	for _, station := range config.Stations {
		group.Go(func() error {
			defer bar.Add(1)

			logStr := fmt.Sprintf("[%s - %s]: ", station, config.Kind)
			filename := db.DumpPath(config.Path, config.Kind, station)
			if _, err := os.Stat(filename); err == nil && !config.Overwrite {
				slog.Info(logStr + "already dumped, skipping")
				return nil
			}

			result, err := client.FetchStation(groupCtx, station, config.Kind)
			if err != nil {
				if groupCtx.Err() != nil {
					return groupCtx.Err()
				}
				slog.Error(err.Error())
				return nil
			}

			m.BlocksRead.Add(float64(len(result.Blocks)))
			m.BlocksMalformed.Add(float64(result.Malformed))

			if len(result.Blocks) == 0 {
				slog.Warn(logStr + "no data returned")
				return nil
			}

			if err := db.WriteBlockCSV(filename, result.Blocks); err != nil {
				slog.Error(logStr + err.Error())
				return nil
			}

			slog.Info(fmt.Sprintf("%sdumped %d blocks to '%s'", logStr, len(result.Blocks), filename))
			return nil
		})
	}

	return group.Wait()
}
