// Package market implements the candle-simulator marketplace: a per-market
// simulated order book that matches resting limit orders against OHLC
// candles (spec §4.D).
package market

import (
	"sort"
	"time"

	"github.com/Bl8k38500/liquirium/internal/exchanges"
	"github.com/Bl8k38500/liquirium/internal/tracking"
	"github.com/Bl8k38500/liquirium/pkg/utils"
	"github.com/shopspring/decimal"
)

// Marketplace is the simulated order book and matcher for one market.
type Marketplace struct {
	market           exchanges.Market
	constraints      exchanges.OrderConstraints
	feeLevel         decimal.Decimal
	volumeReduction  decimal.Decimal
	openOrders       map[string]exchanges.Order
	nextOrderCounter uint64
	nextTradeCounter uint64
}

// New builds a Marketplace for market. feeLevel is the fraction applied to
// every fill as a quote-denominated fee. volumeReduction caps the fraction
// of a candle's quote volume consumable per candle and must be in (0, 1].
func New(market exchanges.Market, constraints exchanges.OrderConstraints, feeLevel, volumeReduction decimal.Decimal) *Marketplace {
	return &Marketplace{
		market:          market,
		constraints:     constraints,
		feeLevel:        feeLevel,
		volumeReduction: volumeReduction,
		openOrders:      make(map[string]exchanges.Order),
	}
}

// Market returns the market this Marketplace trades.
func (m *Marketplace) Market() exchanges.Market { return m.market }

// OpenOrders returns the currently resting orders, ordered by id for
// deterministic iteration.
func (m *Marketplace) OpenOrders() []exchanges.Order {
	orders := make([]exchanges.Order, 0, len(m.openOrders))
	for _, o := range m.openOrders {
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders
}

// PlaceOrder quantizes spec's price and quantity to the market's
// constraints, rejects the request with InvalidOrder if the quantized
// quantity is zero or the quantized price is not positive, and otherwise
// opens the order and reports the tracking events a consumer should fold
// into the order's state.
func (m *Marketplace) PlaceOrder(spec Spec, now time.Time) (exchanges.Order, []tracking.Event, error) {
	price := exchanges.Quantize(spec.Price, m.constraints.PricePrecision)
	quantity := exchanges.Quantize(spec.Quantity, m.constraints.QuantityPrecision)

	if quantity.IsZero() {
		return exchanges.Order{}, nil, &InvalidOrder{Op: OperationPlaceOrder, Reason: "quantity rounds to zero"}
	}
	if price.IsNegative() || price.IsZero() {
		return exchanges.Order{}, nil, &InvalidOrder{Op: OperationPlaceOrder, Reason: "price must be positive"}
	}

	m.nextOrderCounter++
	order := exchanges.Order{
		ID:           idSeed(m.market, "order", m.nextOrderCounter),
		Market:       m.market,
		FullQuantity: quantity,
		Price:        price,
	}
	m.openOrders[order.ID] = order

	events := []tracking.Event{
		tracking.Creation{At: now, Order: order},
		tracking.ObservationChange{At: now, Order: &order},
	}
	return order, events, nil
}

// CancelOrder removes orderID from the book and reports the tracking
// events a consumer should fold into the order's state. absoluteRest, if
// non-nil, is forwarded to the Cancel event as the exchange-reported
// remaining quantity.
func (m *Marketplace) CancelOrder(orderID string, now time.Time, absoluteRest *decimal.Decimal) ([]tracking.Event, error) {
	if _, ok := m.openOrders[orderID]; !ok {
		return nil, ErrOrderNotFound
	}
	delete(m.openOrders, orderID)

	return []tracking.Event{
		tracking.Cancel{At: now, OrderID: orderID, AbsoluteRest: absoluteRest},
		tracking.ObservationChange{At: now, Order: nil},
	}, nil
}

// ProcessCandle attempts to match every open order against candle and
// returns the trades it produced along with the tracking events a consumer
// should fold into each affected order's state, in deterministic
// ascending-order-id scan order.
func (m *Marketplace) ProcessCandle(candle exchanges.Candle) ([]exchanges.Trade, []tracking.Event) {
	budget := candle.QuoteVolume.Mul(m.volumeReduction)
	closeTime := candle.EndTime()

	var trades []exchanges.Trade
	var events []tracking.Event

	for _, order := range m.OpenOrders() {
		if budget.LessThanOrEqual(decimal.Zero) {
			break
		}

		if !matches(order, candle) {
			continue
		}

		maxAffordable := budget.Div(order.Price)
		fillQuantity := utils.MinDecimal(order.OpenQuantity().Abs(), maxAffordable)
		fillQuantity = exchanges.Quantize(fillQuantity, m.constraints.QuantityPrecision)
		if fillQuantity.LessThanOrEqual(decimal.Zero) {
			continue
		}

		signedFill := fillQuantity
		if !order.IsBuy() {
			signedFill = fillQuantity.Neg()
		}

		m.nextTradeCounter++
		quoteCost := fillQuantity.Mul(order.Price)
		fee := quoteCost.Abs().Mul(m.feeLevel)

		trade := exchanges.Trade{
			ID:       idSeed(m.market, "trade", m.nextTradeCounter),
			Time:     closeTime,
			Market:   m.market,
			Price:    order.Price,
			Quantity: signedFill,
			Fees:     fee,
			OrderID:  order.ID,
		}
		trades = append(trades, trade)
		events = append(events, tracking.NewTrade{Trade: trade})

		budget = utils.ClampDecimal(budget.Sub(quoteCost.Abs()), decimal.Zero, budget)

		updated := order.ReduceQuantity(signedFill)
		if updated.OpenQuantity().IsZero() {
			delete(m.openOrders, order.ID)
			events = append(events, tracking.ObservationChange{At: closeTime, Order: nil})
		} else {
			m.openOrders[order.ID] = updated
			events = append(events, tracking.ObservationChange{At: closeTime, Order: &updated})
		}
	}

	return trades, events
}

// matches reports whether order is in range to fill against candle: buy
// orders fill when the candle's low reaches down to the order price, sell
// orders fill when the candle's high reaches up to it.
func matches(order exchanges.Order, candle exchanges.Candle) bool {
	if order.IsBuy() {
		return candle.Low.LessThanOrEqual(order.Price)
	}
	return candle.High.GreaterThanOrEqual(order.Price)
}
