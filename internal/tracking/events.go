// Package tracking reconciles the events a marketplace and an exchange
// observation feed emit for a single order id into a consistency-checked
// state: which facts about the order agree, which are still unsettled, and
// which are outright impossible (spec §4.E).
package tracking

import (
	"time"

	"github.com/Bl8k38500/liquirium/internal/exchanges"
	"github.com/shopspring/decimal"
)

// Event is one fact observed about an order, in the order it was recorded.
type Event interface {
	// Time is the event's simulated timestamp.
	Time() time.Time
	event()
}

// Creation records that the marketplace accepted and opened an order.
type Creation struct {
	At    time.Time
	Order exchanges.Order
}

func (e Creation) Time() time.Time { return e.At }
func (Creation) event()            {}

// Cancel records that an order left the book by cancellation rather than a
// fill. AbsoluteRest, if non-nil, is the exchange's reported remaining
// quantity at the moment of cancellation.
type Cancel struct {
	At           time.Time
	OrderID      string
	AbsoluteRest *decimal.Decimal
}

func (e Cancel) Time() time.Time { return e.At }
func (Cancel) event()            {}

// NewTrade records an own-trade attributed to the order.
type NewTrade struct {
	Trade exchanges.Trade
}

func (e NewTrade) Time() time.Time { return e.Trade.Time }
func (NewTrade) event()            {}

// ObservationChange records a snapshot of the order as seen from an exchange
// feed. Order is nil when the order is no longer observed.
type ObservationChange struct {
	At    time.Time
	Order *exchanges.Order
}

func (e ObservationChange) Time() time.Time { return e.At }
func (ObservationChange) event()            {}
