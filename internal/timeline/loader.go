package timeline

import (
	"context"
	"fmt"
	"time"

	"github.com/Bl8k38500/liquirium/internal/eval"
	"github.com/Bl8k38500/liquirium/internal/exchanges"
)

// CandleHistorySegment is the incremental, append-only candle sequence a
// CandleHistoryLoader grows over time.
type CandleHistorySegment = eval.Sequence[exchanges.Candle]

// TradeHistorySegment is the incremental, append-only own-trade sequence a
// TradeHistoryLoader grows over time.
type TradeHistorySegment = eval.Sequence[exchanges.Trade]

// CandleHistoryLoader returns all candles with startTime in [start, end),
// contiguous, aligned, and ordered (spec §6).
type CandleHistoryLoader interface {
	Load(ctx context.Context, start, end time.Time) (CandleHistorySegment, error)
}

// TradeHistoryLoader returns trades with time >= start and, if maybeEnd is
// non-nil, time < *maybeEnd.
type TradeHistoryLoader interface {
	LoadHistory(ctx context.Context, start time.Time, maybeEnd *time.Time) (TradeHistorySegment, error)
}

// ExchangeConnector is the minimal surface the core needs from a live or
// historical exchange integration: enough to obtain loaders. Everything
// else — REST/WebSocket transport, credentials — is an external concern.
type ExchangeConnector interface {
	ExchangeID() string
	CandleHistoryLoader(market exchanges.Market, candleLength time.Duration) CandleHistoryLoader
	TradeHistoryLoader(market exchanges.Market) TradeHistoryLoader
}

// ExchangeConnectorProvider resolves an exchange id to a connector. An
// unknown exchange id is a fatal configuration error (spec §6).
type ExchangeConnectorProvider func(exchangeID string) (ExchangeConnector, error)

// UnsupportedExchangeError is the error an ExchangeConnectorProvider
// returns for an exchange id it does not recognize. Nothing in this
// repository constructs it; Run takes a connector directly and does not
// check its exchange id.
type UnsupportedExchangeError struct {
	ExchangeID string
}

func (e *UnsupportedExchangeError) Error() string {
	return fmt.Sprintf("timeline: unsupported exchange %q", e.ExchangeID)
}

// LoaderTimeout is returned when a loader does not produce within the
// simulation's configured loader timeout.
type LoaderTimeout struct {
	Input   eval.Input
	Timeout time.Duration
}

func (e *LoaderTimeout) Error() string {
	return fmt.Sprintf("timeline: loader for %q timed out after %s", e.Input.Key(), e.Timeout)
}

// LoaderIoFailure wraps an error a loader returned while fetching history.
type LoaderIoFailure struct {
	Input eval.Input
	Err   error
}

func (e *LoaderIoFailure) Error() string {
	return fmt.Sprintf("timeline: loader for %q failed: %v", e.Input.Key(), e.Err)
}

func (e *LoaderIoFailure) Unwrap() error { return e.Err }

// loadWithTimeout runs load with a bounded timeout, translating context
// deadline exceeded into LoaderTimeout and any other error into
// LoaderIoFailure.
func loadWithTimeout[T any](ctx context.Context, in eval.Input, timeout time.Duration, load func(context.Context) (T, error)) (T, error) {
	var zero T
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)
	go func() {
		v, err := load(cctx)
		done <- result{value: v, err: err}
	}()

	select {
	case <-cctx.Done():
		return zero, &LoaderTimeout{Input: in, Timeout: timeout}
	case r := <-done:
		if r.err != nil {
			if cctx.Err() != nil {
				return zero, &LoaderTimeout{Input: in, Timeout: timeout}
			}
			return zero, &LoaderIoFailure{Input: in, Err: r.err}
		}
		return r.value, nil
	}
}
