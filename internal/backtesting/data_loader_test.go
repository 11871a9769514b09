package backtesting

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Bl8k38500/liquirium/internal/exchanges"
)

func TestCSVCandleLoader_Load(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "candles-*.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	_, _ = f.WriteString("timestamp,open,high,low,close,volume\n")
	_, _ = f.WriteString("2026-01-01T00:00:00Z,100,101,99,100.5,1000\n")
	_, _ = f.WriteString("2026-01-01T00:01:00Z,100.5,102,100,101,1100\n")
	_, _ = f.WriteString("2026-01-01T00:02:00Z,101,103,100.5,102,1200\n")

	market := exchanges.Market{ExchangeID: "sim", TradingPair: "BTC-USD"}
	loader := NewCSVCandleLoader(f.Name(), market, time.Minute)

	seg, err := loader.Load(context.Background(), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 1, 1, 0, 2, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seg.Len() != 2 {
		t.Fatalf("expected 2 candles in [start, end), got %d", seg.Len())
	}
	if !seg.At(0).StartTime.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected first candle start: %v", seg.At(0).StartTime)
	}
}
