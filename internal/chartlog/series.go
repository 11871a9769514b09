// Package chartlog aggregates candles to a coarser interval and snapshots a
// configured set of named evals at each aggregated boundary, building an
// in-memory per-market timeseries (spec §4.F).
package chartlog

import (
	"time"

	"github.com/Bl8k38500/liquirium/internal/eval"
	"github.com/Bl8k38500/liquirium/internal/exchanges"
	"github.com/shopspring/decimal"
)

// SeriesConfig describes what one market's chart log aggregates.
type SeriesConfig struct {
	Market exchanges.Market

	// CoarserLength is the aggregated candle length; it must be a multiple
	// of the bot's basic candle length (e.g. 6x or 48x).
	CoarserLength time.Duration

	// CandleStartEvals are read at the aggregated candle's open.
	CandleStartEvals map[string]eval.Eval

	// CandleEndEvals are read at the aggregated candle's close.
	CandleEndEvals map[string]eval.Eval
}

// Snapshot is one aggregated candle boundary's reading.
type Snapshot struct {
	OpenTime  time.Time
	CloseTime time.Time

	StartValues map[string]any
	EndValues   map[string]any

	// CloseVolatility is the standard deviation of the basic candles'
	// close prices within the aggregated window.
	CloseVolatility decimal.Decimal
}

// Series is the ordered timeseries accumulated for one market.
type Series struct {
	Market    exchanges.Market
	Snapshots []Snapshot
}
