package simulation

import (
	"github.com/Bl8k38500/liquirium/internal/exchanges"
	"github.com/Bl8k38500/liquirium/internal/market"
	"github.com/shopspring/decimal"
)

// Operation is one order-book action a Bot's eval tree requests for the
// current tick.
type Operation interface {
	operation()
}

// PlaceOrder requests a new resting order on Market.
type PlaceOrder struct {
	Market exchanges.Market
	Spec   market.Spec
}

func (PlaceOrder) operation() {}

// CancelOrder requests that an existing order be removed from the book.
// AbsoluteRest, when known, is forwarded to the tracking Cancel event.
type CancelOrder struct {
	Market       exchanges.Market
	OrderID      string
	AbsoluteRest *decimal.Decimal
}

func (CancelOrder) operation() {}
