// Package eval implements the memoized dataflow graph that the simulation
// environment evaluates once per tick: inputs are externally bound values,
// evals are pure computations over inputs and other evals.
package eval

import (
	"fmt"
	"time"

	"github.com/Bl8k38500/liquirium/internal/exchanges"
)

// Input identifies an external data source the context can be bound to.
// Every Input variant must produce a stable Key so the context can use it
// as a map key and the timeline package can order same-time events by it.
type Input interface {
	// Key returns a string that is unique and stable for this input's kind
	// and parameters. Two inputs with equal Key are considered the same
	// binding.
	Key() string

	// kind returns the ordering class used to break same-time ties in the
	// timed update stream (spec §4.B). Lower sorts first.
	kind() int
}

const (
	kindTime = iota
	kindCandleHistory
	kindTradeHistory
	kindSimulatedOpenOrders
	kindOrderSnapshotHistory
	kindCompletedOperationRequests
)

// TimeInput reports the current simulated time rounded down to Resolution.
type TimeInput struct {
	Resolution time.Duration
}

func (i TimeInput) Key() string { return fmt.Sprintf("time:%s", i.Resolution) }
func (i TimeInput) kind() int   { return kindTime }

// CandleHistoryInput is the append-only candle sequence for a market at a
// given candle length, starting from Start.
type CandleHistoryInput struct {
	Market       exchanges.Market
	CandleLength time.Duration
	Start        time.Time
}

func (i CandleHistoryInput) Key() string {
	return fmt.Sprintf("candles:%s:%s:%s", i.Market.Key(), i.CandleLength, i.Start.UTC().Format(time.RFC3339Nano))
}
func (i CandleHistoryInput) kind() int { return kindCandleHistory }

// TradeHistoryInput is the append-only own-trade sequence for a market,
// starting from Start.
type TradeHistoryInput struct {
	Market exchanges.Market
	Start  time.Time
}

func (i TradeHistoryInput) Key() string {
	return fmt.Sprintf("trades:%s:%s", i.Market.Key(), i.Start.UTC().Format(time.RFC3339Nano))
}
func (i TradeHistoryInput) kind() int { return kindTradeHistory }

// SimulatedOpenOrdersInput is the set of currently open simulated orders for
// a market. Bound exclusively by the market's marketplace.
type SimulatedOpenOrdersInput struct {
	Market exchanges.Market
}

func (i SimulatedOpenOrdersInput) Key() string { return fmt.Sprintf("open-orders:%s", i.Market.Key()) }
func (i SimulatedOpenOrdersInput) kind() int    { return kindSimulatedOpenOrders }

// OrderSnapshotHistoryInput is the history of observed-order snapshots for a
// market.
type OrderSnapshotHistoryInput struct {
	Market exchanges.Market
}

func (i OrderSnapshotHistoryInput) Key() string {
	return fmt.Sprintf("order-snapshots:%s", i.Market.Key())
}
func (i OrderSnapshotHistoryInput) kind() int { return kindOrderSnapshotHistory }

// CompletedOperationRequestsInSession is the ordered sequence of completed
// operation requests for the whole session. It has no parameters, so it is
// a singleton input.
type CompletedOperationRequestsInSession struct{}

func (CompletedOperationRequestsInSession) Key() string { return "completed-operation-requests" }
func (CompletedOperationRequestsInSession) kind() int   { return kindCompletedOperationRequests }

// InputOrder reports the deterministic (kind, key) ordering spec §4.B
// requires for same-time events.
func InputOrder(i Input) (int, string) { return i.kind(), i.Key() }
