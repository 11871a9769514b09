package simulation

import (
	"time"

	"github.com/Bl8k38500/liquirium/internal/chartlog"
	"github.com/Bl8k38500/liquirium/internal/eval"
	"github.com/Bl8k38500/liquirium/internal/exchanges"
)

// Bot is the external collaborator the environment drives each tick: it
// supplies the eval tree that turns context state into order operations,
// the markets it trades, and the chart logging configuration (spec §6).
type Bot interface {
	// Eval is evaluated once per tick; it must resolve to a []Operation
	// (nil or empty is a valid "do nothing this tick" result).
	Eval() eval.Eval

	// Markets lists every market the bot trades; the environment opens one
	// Marketplace per entry.
	Markets() []exchanges.Market

	// BasicCandleLength is the candle length the bot's strategy reasons
	// over and the unit chartlog aggregation is expressed in multiples of.
	BasicCandleLength() time.Duration

	// ChartDataSeriesConfigs describes what the environment's chartlog
	// Logger should aggregate and snapshot.
	ChartDataSeriesConfigs() []chartlog.SeriesConfig
}
