package tracking

import (
	"time"

	"github.com/Bl8k38500/liquirium/internal/exchanges"
	"github.com/shopspring/decimal"
)

// State is the full derived picture of one order id, computed from the
// ordered sequence of events recorded for it.
type State struct {
	OrderID string

	// OrderWithFullQuantity is the first present observation, or else the
	// order carried by the Creation event.
	OrderWithFullQuantity *exchanges.Order

	// TotalTradeQuantity is the signed sum of every own-trade quantity
	// recorded for the order.
	TotalTradeQuantity decimal.Decimal

	// ReportingState is present only while the order is currently observed
	// and not canceled; see Derive for the exact condition.
	ReportingState *exchanges.Order

	// ErrorState is the first consistency-rule violation, if any.
	ErrorState error

	// SyncReasons explains why the state is not yet settled; always empty
	// when ErrorState is non-nil.
	SyncReasons []SyncReason
}

// Derive computes a State from a single order id's ordered event history.
// events must be sorted by occurrence (the order a simulation tick recorded
// them), which for a single order id is always time-ordered.
func Derive(orderID string, events []Event) State {
	var (
		creations    []Creation
		cancels      []Cancel
		trades       []NewTrade
		observations []ObservationChange
	)
	for _, ev := range events {
		switch e := ev.(type) {
		case Creation:
			creations = append(creations, e)
		case Cancel:
			cancels = append(cancels, e)
		case NewTrade:
			trades = append(trades, e)
		case ObservationChange:
			observations = append(observations, e)
		}
	}

	s := State{OrderID: orderID}
	s.OrderWithFullQuantity = firstFullQuantitySource(creations, observations)
	s.TotalTradeQuantity = totalTradeQuantity(trades)

	if err := checkConsistency(creations, cancels, trades, observations, s.TotalTradeQuantity); err != nil {
		s.ErrorState = err
		return s
	}

	s.ReportingState = reportingState(observations, cancels, s.TotalTradeQuantity)
	s.SyncReasons = deriveSyncReasons(creations, cancels, trades, observations, s.TotalTradeQuantity)
	return s
}

func firstFullQuantitySource(creations []Creation, observations []ObservationChange) *exchanges.Order {
	for _, o := range observations {
		if o.Order != nil {
			order := *o.Order
			return &order
		}
	}
	if len(creations) > 0 {
		order := creations[0].Order
		return &order
	}
	return nil
}

func totalTradeQuantity(trades []NewTrade) decimal.Decimal {
	total := decimal.Zero
	for _, t := range trades {
		total = total.Add(t.Trade.Quantity)
	}
	return total
}

func lastObservation(observations []ObservationChange) (ObservationChange, bool) {
	if len(observations) == 0 {
		return ObservationChange{}, false
	}
	return observations[len(observations)-1], true
}

func lastTradeEvent(trades []NewTrade) (NewTrade, bool) {
	if len(trades) == 0 {
		return NewTrade{}, false
	}
	return trades[len(trades)-1], true
}

func lastEventTime(creations []Creation, cancels []Cancel, trades []NewTrade, observations []ObservationChange) time.Time {
	var latest time.Time
	consider := func(t time.Time) {
		if t.After(latest) {
			latest = t
		}
	}
	for _, c := range creations {
		consider(c.At)
	}
	for _, c := range cancels {
		consider(c.At)
	}
	for _, t := range trades {
		consider(t.Trade.Time)
	}
	for _, o := range observations {
		consider(o.At)
	}
	return latest
}

// reportingState implements spec §4.E's reportingState derivation: present
// if currently observed and not canceled; equals
// lastObserved.resetQuantity.reduceQuantity(totalTradeQuantity) provided
// |totalTradeQuantity| <= |lastObserved.fullQuantity|.
func reportingState(observations []ObservationChange, cancels []Cancel, totalTradeQuantity decimal.Decimal) *exchanges.Order {
	last, ok := lastObservation(observations)
	if !ok || last.Order == nil || len(cancels) > 0 {
		return nil
	}
	if totalTradeQuantity.Abs().GreaterThan(last.Order.FullQuantity.Abs()) {
		return nil
	}
	order := last.Order.ResetQuantity().ReduceQuantity(totalTradeQuantity)
	return &order
}
