package main

import (
	"time"

	"github.com/Bl8k38500/liquirium/internal/chartlog"
	"github.com/Bl8k38500/liquirium/internal/eval"
	"github.com/Bl8k38500/liquirium/internal/exchanges"
	"github.com/Bl8k38500/liquirium/internal/market"
	"github.com/Bl8k38500/liquirium/internal/simulation"
	"github.com/shopspring/decimal"
)

// thresholdBot is a minimal reference implementation of simulation.Bot: it
// places a limit buy a fixed offset below the last candle close whenever no
// buy order is open. It never cancels or replaces a resting order, however
// far the close moves away from it. It exists to drive cmd/backtest end to
// end; the strategy library itself is an external concern.
type thresholdBot struct {
	market       exchanges.Market
	candleLength time.Duration
	start        time.Time
	offset       decimal.Decimal
}

// newThresholdBot builds a bot watching market's candleLength candles from
// start, the same start the simulation's CandleHistoryInput is bound at, so
// the bot's eval tree reads the same context key the replay loop writes.
func newThresholdBot(m exchanges.Market, candleLength time.Duration, start time.Time, offset decimal.Decimal) *thresholdBot {
	return &thresholdBot{market: m, candleLength: candleLength, start: start, offset: offset}
}

func (b *thresholdBot) Markets() []exchanges.Market      { return []exchanges.Market{b.market} }
func (b *thresholdBot) BasicCandleLength() time.Duration { return b.candleLength }

func (b *thresholdBot) ChartDataSeriesConfigs() []chartlog.SeriesConfig {
	lastClose := b.lastCloseEval()
	return []chartlog.SeriesConfig{
		{
			Market:        b.market,
			CoarserLength: b.candleLength,
			CandleEndEvals: map[string]eval.Eval{
				"lastClose": lastClose,
			},
		},
	}
}

func (b *thresholdBot) lastCloseEval() eval.Eval {
	candleInput := eval.CandleHistoryInput{Market: b.market, CandleLength: b.candleLength, Start: b.start}
	return eval.Derive1("lastClose", eval.InputRef(candleInput), func(candles eval.Sequence[exchanges.Candle]) (decimal.Decimal, error) {
		if candles.Len() == 0 {
			return decimal.Zero, nil
		}
		return candles.At(candles.Len() - 1).Close, nil
	})
}

// Eval builds the operation-producing eval tree: one PlaceOrder at offset
// below the last close whenever no buy order is currently open, at any
// price.
func (b *thresholdBot) Eval() eval.Eval {
	openOrders := eval.InputRef(eval.SimulatedOpenOrdersInput{Market: b.market})
	return eval.Derive2("thresholdBot.ops", b.lastCloseEval(), openOrders, func(lastClose decimal.Decimal, open []exchanges.Order) ([]simulation.Operation, error) {
		if lastClose.IsZero() {
			return nil, nil
		}
		target := lastClose.Mul(decimal.NewFromInt(1).Sub(b.offset))

		for _, o := range open {
			if o.IsBuy() {
				return nil, nil
			}
		}

		return []simulation.Operation{
			simulation.PlaceOrder{
				Market: b.market,
				Spec: market.Spec{
					Price:    target,
					Quantity: decimal.NewFromFloat(0.01),
				},
			},
		}, nil
	})
}
