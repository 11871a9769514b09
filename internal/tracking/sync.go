package tracking

import (
	"time"

	"github.com/shopspring/decimal"
)

// deriveSyncReasons implements spec §4.E's sync-reason derivation. Called
// only once the consistency rules have all passed.
func deriveSyncReasons(creations []Creation, cancels []Cancel, trades []NewTrade, observations []ObservationChange, totalTradeQuantity decimal.Decimal) []SyncReason {
	var reasons []SyncReason

	if len(observations) == 0 {
		if len(trades) > 0 && len(cancels) == 0 {
			last, _ := lastTradeEvent(trades)
			reasons = append(reasons, UnknownWhyOrderIsGone{Since: last.Trade.Time})
		}
	} else if since, delta, ok := impliedUnmaterializedTrade(cancels, observations, totalTradeQuantity); ok {
		reasons = append(reasons, ExpectingTrades{Since: since, ExpectedQuantity: delta})
	}

	last, hasObservation := lastObservation(observations)
	currentlyObserved := hasObservation && last.Order != nil
	hasCancel := len(cancels) > 0

	switch {
	case currentlyObserved && totalTradeQuantity.Abs().GreaterThan(last.Order.FilledQuantity.Abs()):
		if trade, ok := lastTradeEvent(trades); ok {
			expected := last.Order.ResetQuantity().ReduceQuantity(totalTradeQuantity)
			reasons = append(reasons, ExpectingObservationChange{Since: trade.Trade.Time, ExpectedOrder: &expected})
		}
	case currentlyObserved && hasCancel:
		reasons = append(reasons, ExpectingObservationChange{Since: cancels[0].At, ExpectedOrder: nil})
	}

	if !currentlyObserved && !hasCancel {
		source := firstFullQuantitySource(creations, observations)
		fullyTraded := source != nil && totalTradeQuantity.Abs().GreaterThanOrEqual(source.FullQuantity.Abs())
		if source != nil && !fullyTraded {
			reasons = append(reasons, UnknownWhyOrderIsGone{Since: lastEventTime(creations, cancels, trades, observations)})
		}
	}

	if hasCancel && cancels[0].AbsoluteRest == nil {
		reasons = append(reasons, UnknownIfMoreTradesBeforeCancel{Since: cancels[0].At})
	}

	return reasons
}

// impliedUnmaterializedTrade picks the later of the cancel-rest-implied and
// last-observation-implied trade quantities, per spec §4.E's tie-break
// rules, and reports whether its magnitude exceeds totalTradeQuantity.
func impliedUnmaterializedTrade(cancels []Cancel, observations []ObservationChange, totalTradeQuantity decimal.Decimal) (time.Time, decimal.Decimal, bool) {
	type candidate struct {
		at     time.Time
		signed decimal.Decimal
		ok     bool
	}

	var fromCancel, fromObservation candidate
	if len(cancels) > 0 && cancels[0].AbsoluteRest != nil {
		// Remaining quantity the exchange reports at cancel time is implied
		// to have been filled if it doesn't show up as open quantity.
		fromCancel = candidate{at: cancels[0].At, signed: *cancels[0].AbsoluteRest, ok: true}
	}
	if last, ok := lastObservation(observations); ok && last.Order != nil {
		fromObservation = candidate{at: last.At, signed: last.Order.FilledQuantity, ok: true}
	}

	var chosen candidate
	switch {
	case fromCancel.ok && !fromObservation.ok:
		chosen = fromCancel
	case !fromCancel.ok && fromObservation.ok:
		chosen = fromObservation
	case fromCancel.ok && fromObservation.ok:
		ca, oa := fromCancel.signed.Abs(), fromObservation.signed.Abs()
		switch {
		case ca.Equal(oa):
			if fromCancel.at.Before(fromObservation.at) || fromCancel.at.Equal(fromObservation.at) {
				chosen = fromCancel
			} else {
				chosen = fromObservation
			}
		case ca.GreaterThan(oa):
			chosen = fromCancel
		default:
			if fromObservation.at.After(fromCancel.at) {
				chosen = fromObservation
			} else {
				chosen = fromCancel
			}
		}
	default:
		return time.Time{}, decimal.Zero, false
	}

	if chosen.signed.Abs().LessThanOrEqual(totalTradeQuantity.Abs()) {
		return time.Time{}, decimal.Zero, false
	}
	return chosen.at, chosen.signed.Sub(totalTradeQuantity), true
}
