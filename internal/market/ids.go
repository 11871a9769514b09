package market

import (
	"fmt"
	"strings"

	"github.com/Bl8k38500/liquirium/internal/exchanges"
	"github.com/google/uuid"
)

// idNamespace roots every order and trade id this package assigns. It has
// no meaning beyond separating this package's ids from any other uuid v5
// namespace in use.
var idNamespace = uuid.MustParse("2c6b9a2a-7f2e-4f8b-9b0a-6d7f1a0c9e11")

// idSeed deterministically derives a monotonic counter's string id from
// the market it belongs to, a per-kind tag, and the counter value, so that
// replaying the same sequence of operations always assigns the same ids
// (spec §4.D, invariant 4).
func idSeed(m exchanges.Market, kind string, n uint64) string {
	base, quote := splitPair(m.TradingPair)
	name := fmt.Sprintf("%s:%s:%s:%s:%d", m.ExchangeID, base, quote, kind, n)
	return uuid.NewSHA1(idNamespace, []byte(name)).String()
}

func splitPair(pair string) (base, quote string) {
	if i := strings.IndexByte(pair, '-'); i >= 0 {
		return pair[:i], pair[i+1:]
	}
	return pair, ""
}
