package port

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hydrobr/ana/db"
	"hydrobr/metrics"
	"hydrobr/series"
	"hydrobr/utils"
)

// Reads the dumps of the given kind, one group per station. Malformed blocks
// are dropped with a warning. When stations is not empty, only those are read.
func LoadBlocks(path string, kind series.Kind, stations []string, m *metrics.Metrics) ([]series.Group, error) {
	dir := db.KindPath(path, kind)
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var groups []series.Group
	for _, file := range files {
		station, ok := strings.CutSuffix(file.Name(), ".csv")
		if !ok || file.IsDir() || !utils.IsEmptyOrContains(stations, station) {
			continue
		}

		logStr := fmt.Sprintf("[%s - %s]: ", station, kind)
		blocks, err := db.ReadBlockCSV(filepath.Join(dir, file.Name()))
		if err != nil {
			slog.Error(logStr + err.Error())
			continue
		}

		group := series.Group{StationID: station, Kind: kind, Blocks: make([]series.RawBlock, 0, len(blocks))}
		for _, block := range blocks {
			m.BlocksRead.Inc()

			if err := block.Validate(); err != nil {
				m.BlocksMalformed.Inc()
				slog.Warn(logStr + err.Error())
				continue
			}
			if block.StationID != station || block.Kind != kind {
				m.BlocksMalformed.Inc()
				slog.Warn(block.LogStr() + "block found in the dump of " + station + ", skipping")
				continue
			}
			group.Blocks = append(group.Blocks, block)
		}
		groups = append(groups, group)
	}

	return groups, nil
}

// Loads the dumps of the configured stations, merges them on a pool of
// `config.Workers` goroutines and aligns the canonical series on one index.
func LoadPanel(ctx context.Context, config *db.BaseConfig, m *metrics.Metrics) (series.Panel, error) {
	groups, err := LoadBlocks(config.Path, config.Kind, config.Stations, m)
	if err != nil {
		return series.Panel{}, err
	}
	if len(groups) == 0 {
		return series.Panel{}, errors.New("no dumped station found in " + config.KindPath())
	}

	bar := utils.NewBar(len(groups), "merging")
	bar.RenderBlank()

	merged, err := series.MergeAll(ctx, groups, config.Policy, config.Workers, func(group series.Group, ok bool, elapsed time.Duration) {
		defer bar.Add(1)

		m.MergeDuration.Observe(elapsed.Seconds())
		logStr := fmt.Sprintf("[%s - %s]: ", group.StationID, group.Kind)
		if !ok {
			m.StationsEmpty.Inc()
			slog.Info(logStr + "no observation left after merging, skipping")
			return
		}
		m.StationsMerged.Inc()
		slog.Info(logStr + "merged successfully")
	})
	if err != nil {
		return series.Panel{}, err
	}

	return series.Assemble(config.Kind, merged), nil
}
