package tracking

import (
	"github.com/shopspring/decimal"
)

// checkConsistency runs the five consistency rules in spec order and
// returns the first violation, or nil if all hold.
func checkConsistency(creations []Creation, cancels []Cancel, trades []NewTrade, observations []ObservationChange, totalTradeQuantity decimal.Decimal) error {
	if err := checkConsistentFullQuantityInObservations(observations); err != nil {
		return err
	}
	if err := checkCreationMatchesObservations(creations, observations); err != nil {
		return err
	}
	if err := checkCancelsAreConsistentWithOtherEvents(creations, cancels, observations); err != nil {
		return err
	}
	if err := checkOrderDoesNotReappear(observations); err != nil {
		return err
	}
	if err := checkOrderIsNotOverfilled(creations, cancels, observations, trades, totalTradeQuantity); err != nil {
		return err
	}
	return nil
}

func presentObservations(observations []ObservationChange) []ObservationChange {
	var present []ObservationChange
	for _, o := range observations {
		if o.Order != nil {
			present = append(present, o)
		}
	}
	return present
}

func checkConsistentFullQuantityInObservations(observations []ObservationChange) error {
	present := presentObservations(observations)
	for i := 0; i < len(present); i++ {
		for j := i + 1; j < len(present); j++ {
			oi, oj := present[i], present[j]
			if !oi.Order.FullQuantity.Equal(oj.Order.FullQuantity) {
				return &InconsistentEvents{Reason: "full quantity changed between observations", A: oi, B: oj}
			}
			if oi.Order.OpenQuantity().Abs().LessThan(oj.Order.OpenQuantity().Abs()) {
				return &InconsistentEvents{Reason: "open quantity increased between observations", A: oi, B: oj}
			}
		}
	}
	return nil
}

func checkCreationMatchesObservations(creations []Creation, observations []ObservationChange) error {
	if len(creations) > 1 {
		return &InconsistentEvents{Reason: "more than one creation", A: creations[0], B: creations[1]}
	}
	if len(creations) == 0 {
		return nil
	}
	present := presentObservations(observations)
	if len(present) == 0 {
		return nil
	}
	creation, first := creations[0], present[0]
	if !creation.Order.FullQuantity.Equal(first.Order.FullQuantity) {
		return &InconsistentEvents{Reason: "creation full quantity disagrees with observation", A: creation, B: first}
	}
	return nil
}

func checkCancelsAreConsistentWithOtherEvents(creations []Creation, cancels []Cancel, observations []ObservationChange) error {
	if len(cancels) > 1 {
		return &InconsistentEvents{Reason: "more than one cancel", A: cancels[0], B: cancels[1]}
	}
	if len(cancels) == 0 || cancels[0].AbsoluteRest == nil {
		return nil
	}
	cancel := cancels[0]
	r := *cancel.AbsoluteRest
	for _, c := range creations {
		if c.Order.FullQuantity.Abs().LessThan(r) {
			return &InconsistentEvents{Reason: "cancel rest exceeds creation full quantity", A: c, B: cancel}
		}
	}
	for _, o := range presentObservations(observations) {
		if o.Order.FullQuantity.Abs().LessThan(r) {
			return &InconsistentEvents{Reason: "cancel rest exceeds observed full quantity", A: o, B: cancel}
		}
	}
	return nil
}

func checkOrderDoesNotReappear(observations []ObservationChange) error {
	seenAbsentAfterPresent := false
	seenPresent := false
	for _, o := range observations {
		present := o.Order != nil
		if !present && seenPresent {
			seenAbsentAfterPresent = true
			continue
		}
		if present && seenAbsentAfterPresent {
			return &ReappearingOrderInconsistency{Reappearance: o}
		}
		if present {
			seenPresent = true
		}
	}
	return nil
}

func checkOrderIsNotOverfilled(creations []Creation, cancels []Cancel, observations []ObservationChange, trades []NewTrade, totalTradeQuantity decimal.Decimal) error {
	source := firstFullQuantitySource(creations, observations)
	if source == nil {
		return nil
	}
	maxFill := source.FullQuantity.Abs()
	if len(cancels) > 0 && cancels[0].AbsoluteRest != nil {
		maxFill = maxFill.Sub(*cancels[0].AbsoluteRest)
	}
	if totalTradeQuantity.Abs().GreaterThan(maxFill) {
		var lastTrade Event
		if last, ok := lastTradeEvent(trades); ok {
			lastTrade = last
		}
		return &Overfill{LastTrade: lastTrade, Total: totalTradeQuantity.Abs(), Max: maxFill}
	}
	return nil
}
