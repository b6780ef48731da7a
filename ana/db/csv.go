package db

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"

	"hydrobr/series"
)

// One day of a dumped block. Rows of the same block share `seq`, which also
// keeps the order in which the service returned the blocks.
type BlockRow struct {
	Seq     int    `csv:"seq"`
	Station string `csv:"station"`
	Kind    string `csv:"kind"`
	Month   string `csv:"month"`
	Quality int    `csv:"quality"`
	Day     int    `csv:"day"`
	Value   string `csv:"value"` // empty when absent
}

func BlocksToRows(blocks []series.RawBlock) []*BlockRow {
	var rows []*BlockRow
	for seq, block := range blocks {
		for i, v := range block.Values {
			row := &BlockRow{
				Seq:     seq,
				Station: block.StationID,
				Kind:    block.Kind.String(),
				Month:   block.MonthStart.Format(time.DateOnly),
				Quality: int(block.Quality),
				Day:     i + 1,
			}
			if v != nil {
				row.Value = strconv.FormatFloat(*v, 'f', -1, 64)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// Regroups rows into blocks, in order of first appearance of their `seq`.
// Blocks are not validated: a day outside its month leaves the block without
// values so that validation rejects it.
func RowsToBlocks(rows []*BlockRow) ([]series.RawBlock, error) {
	var blocks []series.RawBlock
	index := make(map[int]int)
	broken := make(map[int]bool)

	for _, row := range rows {
		i, ok := index[row.Seq]
		if !ok {
			kind, err := series.ParseKind(row.Kind)
			if err != nil {
				return nil, err
			}
			month, err := time.Parse(time.DateOnly, row.Month)
			if err != nil {
				return nil, fmt.Errorf("block %d: %w", row.Seq, err)
			}

			i = len(blocks)
			index[row.Seq] = i
			blocks = append(blocks, series.RawBlock{
				StationID:  row.Station,
				Kind:       kind,
				MonthStart: month,
				Quality:    series.Quality(row.Quality),
				Values:     make([]*float64, series.DaysIn(month)),
			})
		}

		if row.Day < 1 || row.Day > len(blocks[i].Values) {
			broken[i] = true
			continue
		}
		if row.Value == "" {
			continue
		}

		v, err := strconv.ParseFloat(row.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("block %d, day %d: %w", row.Seq, row.Day, err)
		}
		blocks[i].Values[row.Day-1] = &v
	}

	for i := range broken {
		blocks[i].Values = nil
	}
	return blocks, nil
}

func WriteBlockCSV(filename string, blocks []series.RawBlock) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return gocsv.MarshalFile(BlocksToRows(blocks), file)
}

func ReadBlockCSV(filename string) ([]series.RawBlock, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var rows []*BlockRow
	if err = gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, err
	}
	return RowsToBlocks(rows)
}
