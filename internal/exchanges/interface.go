// Package exchanges holds the vocabulary shared with external exchange
// connectors: markets, order constraints, candles and trades as they cross
// the boundary from a live or historical data source into the simulation
// core. Connector implementations (REST/WebSocket clients, credential
// handling) are outside this package's scope; it only defines the shapes
// the core consumes.
package exchanges

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Market identifies a tradable pair on an exchange.
type Market struct {
	ExchangeID  string
	TradingPair string
}

// Key returns a stable identifier suitable for use as a map key.
func (m Market) Key() string { return m.ExchangeID + ":" + m.TradingPair }

func (m Market) String() string { return m.Key() }

// PrecisionKind selects how an OrderConstraints precision is expressed.
type PrecisionKind int

const (
	// DigitsAfterSeparator rounds to a fixed number of decimal places.
	DigitsAfterSeparator PrecisionKind = iota
	// SignificantDigits rounds to a fixed number of significant digits.
	SignificantDigits
	// MultipleOfStep rounds down to the nearest multiple of Step.
	MultipleOfStep
)

// Precision describes one quantization rule for a price or quantity field.
type Precision struct {
	Kind   PrecisionKind
	Digits int32           // used by DigitsAfterSeparator and SignificantDigits
	Step   decimal.Decimal // used by MultipleOfStep
}

// DigitsPrecision builds a DigitsAfterSeparator precision.
func DigitsPrecision(digits int32) Precision {
	return Precision{Kind: DigitsAfterSeparator, Digits: digits}
}

// SignificantDigitsPrecision builds a SignificantDigits precision.
func SignificantDigitsPrecision(digits int32) Precision {
	return Precision{Kind: SignificantDigits, Digits: digits}
}

// StepPrecision builds a MultipleOfStep precision.
func StepPrecision(step decimal.Decimal) Precision {
	return Precision{Kind: MultipleOfStep, Step: step}
}

// OrderConstraints describes the quantization rules a marketplace applies
// to order price and quantity.
type OrderConstraints struct {
	PricePrecision    Precision
	QuantityPrecision Precision
}

// Candle is an OHLC bar over Length, starting at StartTime.
type Candle struct {
	StartTime   time.Time
	Open        decimal.Decimal
	High        decimal.Decimal
	Low         decimal.Decimal
	Close       decimal.Decimal
	QuoteVolume decimal.Decimal
	Length      time.Duration
}

// EndTime is the candle's close time, StartTime + Length.
func (c Candle) EndTime() time.Time { return c.StartTime.Add(c.Length) }

// Trade is a single executed fill. Quantity is signed: positive for a buy,
// negative for a sell.
type Trade struct {
	ID       string
	Time     time.Time
	Market   Market
	Price    decimal.Decimal
	Quantity decimal.Decimal
	Fees     decimal.Decimal
	OrderID  string // empty when the trade is not attributable to an order
}

func (t Trade) String() string {
	return fmt.Sprintf("Trade{%s %s qty=%s @%s}", t.ID, t.Market, t.Quantity, t.Price)
}

// IsBuy reports whether the trade increased a position (positive quantity).
func (t Trade) IsBuy() bool { return t.Quantity.IsPositive() }
