package tracking

import (
	"fmt"
	"time"

	"github.com/Bl8k38500/liquirium/internal/exchanges"
	"github.com/shopspring/decimal"
)

// InconsistentEvents reports two observations (or a creation and an
// observation, or a cancel and a prior event) whose quantities cannot both
// be true of the same order.
type InconsistentEvents struct {
	Reason string
	A, B   Event
}

func (e *InconsistentEvents) Error() string {
	return fmt.Sprintf("tracking: inconsistent events (%s): %v, %v", e.Reason, e.A, e.B)
}

// ReappearingOrderInconsistency reports an order observed present again
// after having already transitioned from present to absent.
type ReappearingOrderInconsistency struct {
	Reappearance ObservationChange
}

func (e *ReappearingOrderInconsistency) Error() string {
	return fmt.Sprintf("tracking: order reappeared at %s", e.Reappearance.At)
}

// Overfill reports that the signed sum of own-trade quantities exceeds the
// maximum the order's full quantity (adjusted for any cancel rest) allows.
type Overfill struct {
	LastTrade Event
	Total     decimal.Decimal
	Max       decimal.Decimal
}

func (e *Overfill) Error() string {
	return fmt.Sprintf("tracking: overfill: total=%s max=%s", e.Total, e.Max)
}

// SyncReason explains why an order's state is not yet settled, as opposed
// to an error: none of these indicate an impossible reality, only that more
// events are expected.
type SyncReason interface {
	syncReason()
}

// UnknownWhyOrderIsGone marks an order that stopped being observed (or was
// never observed) without a cancel event to explain why.
type UnknownWhyOrderIsGone struct {
	Since time.Time
}

func (UnknownWhyOrderIsGone) syncReason() {}

// ExpectingTrades marks an order for which the observation/cancel history
// implies more own-trade quantity than has been recorded yet.
type ExpectingTrades struct {
	Since           time.Time
	ExpectedQuantity decimal.Decimal
}

func (ExpectingTrades) syncReason() {}

// ExpectingObservationChange marks an order whose own-trade history implies
// an exchange observation (or its removal) that has not arrived yet.
type ExpectingObservationChange struct {
	Since         time.Time
	ExpectedOrder *exchanges.Order
}

func (ExpectingObservationChange) syncReason() {}

// UnknownIfMoreTradesBeforeCancel marks an order cancelled without a
// reported absolute rest quantity, so trades racing the cancel cannot yet
// be ruled out.
type UnknownIfMoreTradesBeforeCancel struct {
	Since time.Time
}

func (UnknownIfMoreTradesBeforeCancel) syncReason() {}
