package market

import "github.com/shopspring/decimal"

// Spec is a request to place an order: the caller-intended price and
// quantity, before marketplace quantization. Quantity is signed: positive
// for a buy, negative for a sell.
type Spec struct {
	Price    decimal.Decimal
	Quantity decimal.Decimal
}
