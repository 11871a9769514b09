package chartlog

import (
	"fmt"
	"time"

	"github.com/Bl8k38500/liquirium/internal/eval"
	"github.com/Bl8k38500/liquirium/internal/exchanges"
	"github.com/Bl8k38500/liquirium/pkg/utils"
	"github.com/shopspring/decimal"
)

// closeVolatilityPrecision bounds the standard-deviation snapshot to a
// sane number of decimal places regardless of the market's own price
// precision, which Logger has no visibility into.
const closeVolatilityPrecision = 8

// aggregationState tracks one market's progress toward its next aggregated
// candle boundary.
type aggregationState struct {
	config              SeriesConfig
	candlesPerAggregate int
	seenInWindow        int
	windowOpen          time.Time
	pendingStart        map[string]any
	closes              []decimal.Decimal
	series              *Series
}

// Logger drives §4.F's candle aggregation and eval snapshotting for every
// configured market.
type Logger struct {
	states map[string]*aggregationState
}

// New builds a Logger from one SeriesConfig per market. basicCandleLength
// is the bot's underlying candle length; every config's CoarserLength must
// be a positive integer multiple of it.
func New(basicCandleLength time.Duration, configs []SeriesConfig) (*Logger, error) {
	l := &Logger{states: make(map[string]*aggregationState, len(configs))}
	for _, cfg := range configs {
		if cfg.CoarserLength <= 0 || cfg.CoarserLength%basicCandleLength != 0 {
			return nil, fmt.Errorf("chartlog: market %s: coarser length %s is not a multiple of basic candle length %s", cfg.Market, cfg.CoarserLength, basicCandleLength)
		}
		l.states[cfg.Market.Key()] = &aggregationState{
			config:              cfg,
			candlesPerAggregate: int(cfg.CoarserLength / basicCandleLength),
			series:              &Series{Market: cfg.Market},
		}
	}
	return l, nil
}

// Observe folds one closed basic candle for market into the aggregation,
// evaluating CandleStartEvals against ctx when a new aggregated window
// opens and CandleEndEvals when it completes.
func (l *Logger) Observe(market exchanges.Market, candle exchanges.Candle, ctx *eval.Context) error {
	state, ok := l.states[market.Key()]
	if !ok {
		return nil
	}

	if state.seenInWindow == 0 {
		state.windowOpen = candle.StartTime
		values, err := evaluateAll(ctx, state.config.CandleStartEvals)
		if err != nil {
			return err
		}
		state.pendingStart = values
	}
	state.seenInWindow++
	state.closes = append(state.closes, candle.Close)

	if state.seenInWindow < state.candlesPerAggregate {
		return nil
	}

	endValues, err := evaluateAll(ctx, state.config.CandleEndEvals)
	if err != nil {
		return err
	}

	volatility := utils.RoundDecimal(utils.StandardDeviation(state.closes), closeVolatilityPrecision)

	state.series.Snapshots = append(state.series.Snapshots, Snapshot{
		OpenTime:        state.windowOpen,
		CloseTime:       candle.EndTime(),
		StartValues:     state.pendingStart,
		EndValues:       endValues,
		CloseVolatility: volatility,
	})
	state.seenInWindow = 0
	state.pendingStart = nil
	state.closes = nil
	return nil
}

// Series returns the accumulated timeseries for market, or nil if market
// was not configured.
func (l *Logger) Series(market exchanges.Market) *Series {
	state, ok := l.states[market.Key()]
	if !ok {
		return nil
	}
	return state.series
}

// Artifact is the final in-memory chart data artifact, keyed by market, the
// environment may hand off for downstream serialization (spec §6 produced
// interfaces).
type Artifact struct {
	Series map[string]*Series
}

// Snapshot returns the artifact as it stands; safe to call mid-replay.
func (l *Logger) Snapshot() Artifact {
	out := make(map[string]*Series, len(l.states))
	for key, state := range l.states {
		out[key] = state.series
	}
	return Artifact{Series: out}
}

func evaluateAll(ctx *eval.Context, evals map[string]eval.Eval) (map[string]any, error) {
	if len(evals) == 0 {
		return nil, nil
	}
	values := make(map[string]any, len(evals))
	for name, e := range evals {
		v, err := ctx.Evaluate(e)
		if err != nil {
			return nil, err
		}
		values[name] = v
	}
	return values, nil
}
