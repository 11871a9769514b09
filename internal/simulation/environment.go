// Package simulation drives the replay loop: it owns the evaluation
// context and one marketplace per market, applies the merged timed update
// stream, and dispatches the bot's order operations each tick (spec §4.C).
package simulation

import (
	"fmt"
	"time"

	"github.com/Bl8k38500/liquirium/internal/chartlog"
	"github.com/Bl8k38500/liquirium/internal/eval"
	"github.com/Bl8k38500/liquirium/internal/exchanges"
	loggerpkg "github.com/Bl8k38500/liquirium/internal/logger"
	"github.com/Bl8k38500/liquirium/internal/market"
	"github.com/Bl8k38500/liquirium/internal/metrics"
	"github.com/Bl8k38500/liquirium/internal/timeline"
	"github.com/Bl8k38500/liquirium/internal/tracking"
)

// Environment owns the context and a mapping from market to marketplace. It
// consumes one timeline.Event per Advance call, in the tick order spec §5
// requires: input update, marketplace matching, bot re-evaluation,
// operation dispatch, logger snapshot.
type Environment struct {
	ctx    *eval.Context
	events []timeline.Event
	idx    int

	marketplaces map[string]*market.Marketplace
	bot          Bot
	logger       *chartlog.Logger
	log          *loggerpkg.Logger

	lastEventTime time.Time

	orderSnapshots   map[string]eval.Sequence[tracking.Event] // market key -> growing tracking history
	tradeHistory     map[string]eval.Sequence[exchanges.Trade]
	tradeHistoryKeys map[string]eval.TradeHistoryInput // market key -> the exact Input instance bound at tradeHistoryStart
}

// New builds an Environment from a merged event stream, one Marketplace per
// bot market, and the bot's chart logging configuration. tradeHistoryStart
// must match the Start every TradeHistoryInput the bot's eval tree depends
// on was built with, so marketplace fills land on the same context key.
func New(events []timeline.Event, marketplaces map[string]*market.Marketplace, bot Bot, tradeHistoryStart time.Time) (*Environment, error) {
	logger, err := chartlog.New(bot.BasicCandleLength(), bot.ChartDataSeriesConfigs())
	if err != nil {
		return nil, fmt.Errorf("simulation: %w", err)
	}

	tradeHistoryKeys := make(map[string]eval.TradeHistoryInput, len(marketplaces))
	for key, mp := range marketplaces {
		tradeHistoryKeys[key] = eval.TradeHistoryInput{Market: mp.Market(), Start: tradeHistoryStart}
	}

	return &Environment{
		ctx:              eval.New(),
		events:           events,
		marketplaces:     marketplaces,
		bot:              bot,
		logger:           logger,
		log:              loggerpkg.Component("simulation"),
		orderSnapshots:   make(map[string]eval.Sequence[tracking.Event]),
		tradeHistory:     make(map[string]eval.Sequence[exchanges.Trade]),
		tradeHistoryKeys: tradeHistoryKeys,
	}, nil
}

// Evaluate evaluates e through the owned context.
func (e *Environment) Evaluate(ev eval.Eval) (any, error) {
	return e.ctx.Evaluate(ev)
}

// LastEventTime returns the timestamp of the most recently consumed event.
func (e *Environment) LastEventTime() time.Time { return e.lastEventTime }

// Artifact returns the chart data artifact accumulated so far.
func (e *Environment) Artifact() chartlog.Artifact {
	return e.logger.Snapshot()
}

// Advance consumes the next timed event, applies it to the context, runs
// marketplace matching for the market it updates, re-evaluates the bot, and
// dispatches any resulting operations. It returns false once the event
// stream is exhausted.
func (e *Environment) Advance() (bool, error) {
	if e.idx >= len(e.events) {
		return false, nil
	}
	event := e.events[e.idx]
	e.idx++
	e.lastEventTime = event.Time
	metrics.IncTick()

	e.ctx = e.ctx.UpdateInput(event.Input, event.Value)

	var observed *exchanges.Candle
	var observedMarket exchanges.Market
	if candleInput, ok := event.Input.(eval.CandleHistoryInput); ok {
		if candle, matched := e.matchCandle(candleInput.Market, event); matched {
			observed, observedMarket = &candle, candleInput.Market
		}
	}

	ops, err := e.Evaluate(e.bot.Eval())
	if err != nil {
		return false, fmt.Errorf("simulation: bot evaluation: %w", err)
	}
	if err := e.dispatch(ops, event); err != nil {
		return false, err
	}

	if observed != nil {
		if err := e.logger.Observe(observedMarket, *observed, e.ctx); err != nil {
			return false, err
		}
	}

	return true, nil
}

func (e *Environment) matchCandle(m exchanges.Market, event timeline.Event) (exchanges.Candle, bool) {
	mp, ok := e.marketplaces[m.Key()]
	if !ok {
		return exchanges.Candle{}, false
	}
	seq, ok := event.Value.(eval.Sequence[exchanges.Candle])
	if !ok || seq.Len() == 0 {
		return exchanges.Candle{}, false
	}
	candle := seq.At(seq.Len() - 1)

	trades, trackingEvents := mp.ProcessCandle(candle)
	e.appendTrades(m, trades)
	e.appendTracking(m, trackingEvents)
	e.syncOpenOrders(m, mp)

	return candle, true
}

// dispatch applies the bot's requested operations to their marketplaces.
// InvalidOrder and unknown-order cancel requests are rejected per order,
// not fatal to the simulation (spec §7).
func (e *Environment) dispatch(value any, event timeline.Event) error {
	ops, _ := value.([]Operation)
	for _, op := range ops {
		switch o := op.(type) {
		case PlaceOrder:
			mp, ok := e.marketplaces[o.Market.Key()]
			if !ok {
				continue
			}
			_, trackingEvents, err := mp.PlaceOrder(o.Spec, event.Time)
			if err != nil {
				e.log.WithError(err).Error("place order rejected", "market", o.Market.Key())
				continue
			}
			e.appendTracking(o.Market, trackingEvents)
			e.syncOpenOrders(o.Market, mp)
		case CancelOrder:
			mp, ok := e.marketplaces[o.Market.Key()]
			if !ok {
				continue
			}
			trackingEvents, err := mp.CancelOrder(o.OrderID, event.Time, o.AbsoluteRest)
			if err != nil {
				e.log.WithError(err).Error("cancel order rejected", "market", o.Market.Key(), "order_id", o.OrderID)
				continue
			}
			e.appendTracking(o.Market, trackingEvents)
			e.syncOpenOrders(o.Market, mp)
		}
	}
	return nil
}

func (e *Environment) appendTrades(m exchanges.Market, trades []exchanges.Trade) {
	if len(trades) == 0 {
		return
	}
	metrics.AddTrades(m.Key(), len(trades))
	key := m.Key()
	seq := e.tradeHistory[key].Append(trades...)
	e.tradeHistory[key] = seq
	e.ctx = e.ctx.UpdateInput(e.tradeHistoryKeys[key], seq)
}

func (e *Environment) appendTracking(m exchanges.Market, events []tracking.Event) {
	if len(events) == 0 {
		return
	}
	key := m.Key()
	seq := e.orderSnapshots[key].Append(events...)
	e.orderSnapshots[key] = seq
	e.ctx = e.ctx.UpdateInput(eval.OrderSnapshotHistoryInput{Market: m}, seq)
}

func (e *Environment) syncOpenOrders(m exchanges.Market, mp *market.Marketplace) {
	e.ctx = e.ctx.UpdateInput(eval.SimulatedOpenOrdersInput{Market: m}, mp.OpenOrders())
}
