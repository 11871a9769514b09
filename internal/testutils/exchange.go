// Package testutils provides shared utilities for testing.
package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/Bl8k38500/liquirium/internal/eval"
	"github.com/Bl8k38500/liquirium/internal/exchanges"
	"github.com/Bl8k38500/liquirium/internal/timeline"
	"github.com/shopspring/decimal"
)

// AssertEqual is a helper function for asserting equality in tests.
func AssertEqual(t *testing.T, expected, actual any, message string) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s: expected %v, got %v", message, expected, actual)
	}
}

// AssertTrue is a helper function for asserting boolean true.
func AssertTrue(t *testing.T, condition bool, message string) {
	t.Helper()
	if !condition {
		t.Errorf("%s: expected true, got false", message)
	}
}

// AssertFalse is a helper function for asserting boolean false.
func AssertFalse(t *testing.T, condition bool, message string) {
	t.Helper()
	if condition {
		t.Errorf("%s: expected false, got true", message)
	}
}

// AssertNil is a helper function for asserting nil values.
func AssertNil(t *testing.T, value any, message string) {
	t.Helper()
	if value != nil {
		t.Errorf("%s: expected nil, got %v", message, value)
	}
}

// AssertNotNil is a helper function for asserting non-nil values.
func AssertNotNil(t *testing.T, value any, message string) {
	t.Helper()
	if value == nil {
		t.Errorf("%s: expected non-nil value, got nil", message)
	}
}

// AssertNoError is a helper function for asserting no error.
func AssertNoError(t *testing.T, err error, message string) {
	t.Helper()
	if err != nil {
		t.Errorf("%s: unexpected error: %v", message, err)
	}
}

// AssertError is a helper function for asserting an error.
func AssertError(t *testing.T, err error, message string) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: expected error, got nil", message)
	}
}

// CreateTestContext creates a context for testing with timeout.
func CreateTestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// SampleMarket is the market fixtures below are denominated in.
func SampleMarket() exchanges.Market {
	return exchanges.Market{ExchangeID: "sim", TradingPair: "BTC-USD"}
}

// SampleCandles returns a trending, one-minute-candle fixture starting at
// start, for tests that need a CandleHistoryLoader-shaped dataset.
func SampleCandles(start time.Time, n int) []exchanges.Candle {
	candles := make([]exchanges.Candle, n)
	for i := 0; i < n; i++ {
		price := 50000 + float64(i)*100
		candles[i] = exchanges.Candle{
			StartTime:   start.Add(time.Duration(i) * time.Minute),
			Open:        decimal.NewFromFloat(price - 50),
			High:        decimal.NewFromFloat(price + 100),
			Low:         decimal.NewFromFloat(price - 100),
			Close:       decimal.NewFromFloat(price),
			QuoteVolume: decimal.NewFromFloat(100 + float64(i)),
			Length:      time.Minute,
		}
	}
	return candles
}

// StaticCandleLoader implements timeline.CandleHistoryLoader over a fixed
// in-memory slice, filtering to the requested [start, end) window.
type StaticCandleLoader struct {
	Candles []exchanges.Candle
}

func (l StaticCandleLoader) Load(ctx context.Context, start, end time.Time) (timeline.CandleHistorySegment, error) {
	var windowed []exchanges.Candle
	for _, c := range l.Candles {
		if !c.StartTime.Before(start) && c.StartTime.Before(end) {
			windowed = append(windowed, c)
		}
	}
	return eval.NewSequence(windowed...), nil
}

// StaticTradeLoader implements timeline.TradeHistoryLoader over a fixed
// in-memory slice.
type StaticTradeLoader struct {
	Trades []exchanges.Trade
}

func (l StaticTradeLoader) LoadHistory(ctx context.Context, start time.Time, maybeEnd *time.Time) (timeline.TradeHistorySegment, error) {
	var windowed []exchanges.Trade
	for _, tr := range l.Trades {
		if tr.Time.Before(start) {
			continue
		}
		if maybeEnd != nil && !tr.Time.Before(*maybeEnd) {
			continue
		}
		windowed = append(windowed, tr)
	}
	return eval.NewSequence(windowed...), nil
}
