package exchanges

import "github.com/shopspring/decimal"

// Order is a resting limit order on a marketplace. Quantity is signed:
// positive for a buy, negative for a sell. FilledQuantity accumulates in
// the same sign as FullQuantity as trades execute against it.
type Order struct {
	ID             string
	Market         Market
	FullQuantity   decimal.Decimal
	Price          decimal.Decimal
	FilledQuantity decimal.Decimal
}

// OpenQuantity is the signed quantity still resting on the book.
func (o Order) OpenQuantity() decimal.Decimal {
	return o.FullQuantity.Sub(o.FilledQuantity)
}

// IsBuy reports whether the order increases a position when filled.
func (o Order) IsBuy() bool { return o.FullQuantity.IsPositive() }

// ResetQuantity returns a copy of o with FilledQuantity cleared, used by
// order tracking to rebuild an order's fill state from its trade total.
func (o Order) ResetQuantity() Order {
	o.FilledQuantity = decimal.Zero
	return o
}

// ReduceQuantity returns a copy of o with delta added to FilledQuantity.
// delta carries the same sign as FullQuantity.
func (o Order) ReduceQuantity(delta decimal.Decimal) Order {
	o.FilledQuantity = o.FilledQuantity.Add(delta)
	return o
}
