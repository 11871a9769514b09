package chartlog

import (
	"testing"
	"time"

	"github.com/Bl8k38500/liquirium/internal/eval"
	"github.com/Bl8k38500/liquirium/internal/exchanges"
	"github.com/shopspring/decimal"
)

func TestLogger_AggregatesAtBoundary(t *testing.T) {
	market := exchanges.Market{ExchangeID: "sim", TradingPair: "BTC-USD"}
	priceInput := eval.CandleHistoryInput{Market: market, CandleLength: time.Minute}
	lastClose := eval.Derive1("last-close", eval.InputRef(priceInput), func(candles eval.Sequence[exchanges.Candle]) (decimal.Decimal, error) {
		if candles.Len() == 0 {
			return decimal.Zero, nil
		}
		return candles.At(candles.Len() - 1).Close, nil
	})

	logger, err := New(time.Minute, []SeriesConfig{{
		Market:           market,
		CoarserLength:    3 * time.Minute,
		CandleEndEvals:   map[string]eval.Eval{"close": lastClose},
		CandleStartEvals: map[string]eval.Eval{"close": lastClose},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := eval.New()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var candles []exchanges.Candle
	for i := 0; i < 3; i++ {
		c := exchanges.Candle{
			StartTime: base.Add(time.Duration(i) * time.Minute),
			Close:     decimal.NewFromInt(int64(100 + i)),
			Length:    time.Minute,
		}
		candles = append(candles, c)
		ctx = ctx.UpdateInput(priceInput, eval.NewSequence(candles...))

		if err := logger.Observe(market, c, ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	series := logger.Series(market)
	if len(series.Snapshots) != 1 {
		t.Fatalf("expected 1 snapshot after 3 basic candles, got %d", len(series.Snapshots))
	}
	snap := series.Snapshots[0]
	if snap.EndValues["close"].(decimal.Decimal).Cmp(decimal.NewFromInt(102)) != 0 {
		t.Fatalf("expected end close 102, got %v", snap.EndValues["close"])
	}
	// closes were 100, 101, 102: stddev = sqrt(2/3) ≈ 0.8165
	if snap.CloseVolatility.IsZero() {
		t.Fatal("expected non-zero CloseVolatility over varying closes")
	}
	want := decimal.NewFromFloat(0.8164966).Round(5)
	if snap.CloseVolatility.Round(5).Cmp(want) != 0 {
		t.Fatalf("expected CloseVolatility ~%v, got %v", want, snap.CloseVolatility)
	}
}

func TestLogger_CloseVolatilityZeroForConstantCloses(t *testing.T) {
	market := exchanges.Market{ExchangeID: "sim", TradingPair: "BTC-USD"}
	priceInput := eval.CandleHistoryInput{Market: market, CandleLength: time.Minute}

	logger, err := New(time.Minute, []SeriesConfig{{
		Market:        market,
		CoarserLength: 2 * time.Minute,
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := eval.New()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var candles []exchanges.Candle
	for i := 0; i < 2; i++ {
		c := exchanges.Candle{
			StartTime: base.Add(time.Duration(i) * time.Minute),
			Close:     decimal.NewFromInt(100),
			Length:    time.Minute,
		}
		candles = append(candles, c)
		ctx = ctx.UpdateInput(priceInput, eval.NewSequence(candles...))
		if err := logger.Observe(market, c, ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	snap := logger.Series(market).Snapshots[0]
	if !snap.CloseVolatility.IsZero() {
		t.Fatalf("expected zero CloseVolatility for constant closes, got %v", snap.CloseVolatility)
	}
}
