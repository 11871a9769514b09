package timeline

import (
	"context"
	"time"

	"github.com/Bl8k38500/liquirium/internal/eval"
	"github.com/Bl8k38500/liquirium/internal/exchanges"
)

// TimeProvider emits one event at every multiple of resolution within
// [start, end].
type TimeProvider struct {
	input eval.TimeInput
	next  time.Time
	end   time.Time
}

// NewTimeProvider builds a Provider for a TimeInput ticking at resolution.
func NewTimeProvider(input eval.TimeInput, start, end time.Time) *TimeProvider {
	first := start.Truncate(input.Resolution)
	if first.Before(start) {
		first = first.Add(input.Resolution)
	}
	return &TimeProvider{input: input, next: first, end: end}
}

func (p *TimeProvider) Input() eval.Input { return p.input }

func (p *TimeProvider) Next() (time.Time, any, bool, error) {
	if p.next.After(p.end) {
		return time.Time{}, nil, false, nil
	}
	t := p.next
	p.next = p.next.Add(p.input.Resolution)
	return t, t, true, nil
}

// candleHistoryProvider replays a loaded CandleHistorySegment one close
// event at a time, growing the bound value with each event.
type candleHistoryProvider struct {
	input   eval.CandleHistoryInput
	candles []exchanges.Candle
	idx     int
}

// LoadCandleHistoryProvider eagerly loads candles for input's market with
// start times in [input.Start, end) (bounded by timeout) and returns a Provider that
// replays them as growing-segment close events.
func LoadCandleHistoryProvider(ctx context.Context, input eval.CandleHistoryInput, loader CandleHistoryLoader, end time.Time, timeout time.Duration) (Provider, error) {
	seg, err := loadWithTimeout(ctx, input, timeout, func(cctx context.Context) (CandleHistorySegment, error) {
		return loader.Load(cctx, input.Start, end)
	})
	if err != nil {
		return nil, err
	}
	return &candleHistoryProvider{input: input, candles: seg.All()}, nil
}

func (p *candleHistoryProvider) Input() eval.Input { return p.input }

func (p *candleHistoryProvider) Next() (time.Time, any, bool, error) {
	if p.idx >= len(p.candles) {
		return time.Time{}, nil, false, nil
	}
	p.idx++
	value := eval.NewSequence(p.candles[:p.idx]...)
	return p.candles[p.idx-1].EndTime(), value, true, nil
}

// tradeHistoryProvider replays a loaded TradeHistorySegment one trade at a
// time, growing the bound value with each event.
type tradeHistoryProvider struct {
	input  eval.TradeHistoryInput
	trades []exchanges.Trade
	idx    int
}

// LoadTradeHistoryProvider eagerly loads trades for input's market from
// input.Start up to but excluding end (bounded by timeout) and returns a Provider that
// replays them as growing-segment events.
func LoadTradeHistoryProvider(ctx context.Context, input eval.TradeHistoryInput, loader TradeHistoryLoader, end time.Time, timeout time.Duration) (Provider, error) {
	seg, err := loadWithTimeout(ctx, input, timeout, func(cctx context.Context) (TradeHistorySegment, error) {
		return loader.LoadHistory(cctx, input.Start, &end)
	})
	if err != nil {
		return nil, err
	}
	return &tradeHistoryProvider{input: input, trades: seg.All()}, nil
}

func (p *tradeHistoryProvider) Input() eval.Input { return p.input }

func (p *tradeHistoryProvider) Next() (time.Time, any, bool, error) {
	if p.idx >= len(p.trades) {
		return time.Time{}, nil, false, nil
	}
	p.idx++
	value := eval.NewSequence(p.trades[:p.idx]...)
	return p.trades[p.idx-1].Time, value, true, nil
}

// StaticProvider replays a fixed, pre-ordered set of (time, value) events
// for an Input, without a loader. The simulation environment does not use
// it: inputs the marketplace produces during the replay, such as
// SimulatedOpenOrdersInput, are bound to the context directly.
type StaticProvider struct {
	input  eval.Input
	events []TimedValue
	idx    int
}

// TimedValue is one (time, value) pair fed to a StaticProvider.
type TimedValue struct {
	Time  time.Time
	Value any
}

// NewStaticProvider builds a Provider that replays events in order.
// Callers must supply events already sorted by time.
func NewStaticProvider(input eval.Input, events []TimedValue) *StaticProvider {
	return &StaticProvider{input: input, events: events}
}

func (p *StaticProvider) Input() eval.Input { return p.input }

func (p *StaticProvider) Next() (time.Time, any, bool, error) {
	if p.idx >= len(p.events) {
		return time.Time{}, nil, false, nil
	}
	ev := p.events[p.idx]
	p.idx++
	return ev.Time, ev.Value, true, nil
}
