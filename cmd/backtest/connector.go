package main

import (
	"context"
	"time"

	"github.com/Bl8k38500/liquirium/internal/backtesting"
	"github.com/Bl8k38500/liquirium/internal/eval"
	"github.com/Bl8k38500/liquirium/internal/exchanges"
	"github.com/Bl8k38500/liquirium/internal/timeline"
)

// csvConnector is a timeline.ExchangeConnector backed entirely by a local
// CSV candle file (spec §1's "historical market data" source). It never
// has own-trade history to offer at replay start; every trade the bot
// sees originates from marketplace matching during the replay itself.
type csvConnector struct {
	exchangeID string
	candlePath string
}

func (c csvConnector) ExchangeID() string { return c.exchangeID }

func (c csvConnector) CandleHistoryLoader(market exchanges.Market, candleLength time.Duration) timeline.CandleHistoryLoader {
	return backtesting.NewCSVCandleLoader(c.candlePath, market, candleLength)
}

func (c csvConnector) TradeHistoryLoader(market exchanges.Market) timeline.TradeHistoryLoader {
	return emptyTradeLoader{}
}

type emptyTradeLoader struct{}

func (emptyTradeLoader) LoadHistory(ctx context.Context, start time.Time, maybeEnd *time.Time) (timeline.TradeHistorySegment, error) {
	return eval.NewSequence[exchanges.Trade](), nil
}
