package simulation

import (
	"time"

	"github.com/Bl8k38500/liquirium/internal/exchanges"
	"github.com/shopspring/decimal"
)

// Config enumerates everything an Environment needs to run a replay,
// matching spec §6's configuration list.
type Config struct {
	SimulationStart time.Time
	SimulationEnd   time.Time

	Market           exchanges.Market
	TotalValue       decimal.Decimal
	OrderConstraints exchanges.OrderConstraints
	FeeLevel         decimal.Decimal
	VolumeReduction  decimal.Decimal

	LoaderTimeout  time.Duration
	CacheDirectory string
}
