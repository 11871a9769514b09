// Package backtesting adapts on-disk historical data into the loader
// interfaces internal/timeline consumes.
package backtesting

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/Bl8k38500/liquirium/internal/eval"
	"github.com/Bl8k38500/liquirium/internal/exchanges"
	"github.com/Bl8k38500/liquirium/internal/timeline"
	"github.com/shopspring/decimal"
)

// CSVCandleLoader implements timeline.CandleHistoryLoader by reading OHLCV
// rows from a local CSV file. Expected columns: timestamp,open,high,low,close,volume.
type CSVCandleLoader struct {
	path         string
	market       exchanges.Market
	candleLength time.Duration
}

// NewCSVCandleLoader builds a loader for market's candleLength candles,
// backed by the CSV file at path.
func NewCSVCandleLoader(path string, market exchanges.Market, candleLength time.Duration) *CSVCandleLoader {
	return &CSVCandleLoader{path: path, market: market, candleLength: candleLength}
}

// Load reads every candle with startTime in [start, end) from the CSV file,
// contiguous and ordered, satisfying timeline.CandleHistoryLoader.
func (l *CSVCandleLoader) Load(ctx context.Context, start, end time.Time) (timeline.CandleHistorySegment, error) {
	candles, err := l.readAll()
	if err != nil {
		return timeline.CandleHistorySegment{}, err
	}

	sort.Slice(candles, func(i, j int) bool { return candles[i].StartTime.Before(candles[j].StartTime) })

	var windowed []exchanges.Candle
	for _, c := range candles {
		if c.StartTime.Before(start) || !c.StartTime.Before(end) {
			continue
		}
		windowed = append(windowed, c)
	}
	return eval.NewSequence(windowed...), nil
}

func (l *CSVCandleLoader) readAll() ([]exchanges.Candle, error) {
	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("backtesting: open %s: %w", l.path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("backtesting: read header of %s: %w", l.path, err)
	}

	var candles []exchanges.Candle
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("backtesting: read record from %s: %w", l.path, err)
		}
		if len(record) < 6 {
			continue
		}
		candle, err := l.parseRecord(record)
		if err != nil {
			continue
		}
		candles = append(candles, candle)
	}
	return candles, nil
}

func (l *CSVCandleLoader) parseRecord(record []string) (exchanges.Candle, error) {
	startTime, err := parseTimestamp(record[0])
	if err != nil {
		return exchanges.Candle{}, err
	}
	open, err := decimal.NewFromString(record[1])
	if err != nil {
		return exchanges.Candle{}, fmt.Errorf("invalid open: %w", err)
	}
	high, err := decimal.NewFromString(record[2])
	if err != nil {
		return exchanges.Candle{}, fmt.Errorf("invalid high: %w", err)
	}
	low, err := decimal.NewFromString(record[3])
	if err != nil {
		return exchanges.Candle{}, fmt.Errorf("invalid low: %w", err)
	}
	closePrice, err := decimal.NewFromString(record[4])
	if err != nil {
		return exchanges.Candle{}, fmt.Errorf("invalid close: %w", err)
	}
	volume, err := decimal.NewFromString(record[5])
	if err != nil {
		return exchanges.Candle{}, fmt.Errorf("invalid volume: %w", err)
	}

	return exchanges.Candle{
		StartTime:   startTime,
		Open:        open,
		High:        high,
		Low:         low,
		Close:       closePrice,
		QuoteVolume: volume,
		Length:      l.candleLength,
	}, nil
}

// parseTimestamp accepts Unix seconds/milliseconds, RFC3339, or a handful of
// common date layouts.
func parseTimestamp(s string) (time.Time, error) {
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil {
		if ts > 10000000000 {
			return time.UnixMilli(ts).UTC(), nil
		}
		return time.Unix(ts, 0).UTC(), nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	formats := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse timestamp: %s", s)
}
