package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/Bl8k38500/liquirium/internal/chartlog"
	"github.com/Bl8k38500/liquirium/internal/eval"
	"github.com/Bl8k38500/liquirium/internal/market"
	"github.com/Bl8k38500/liquirium/internal/timeline"
)

// Run loads history for every market bot trades through connector, merges
// it with a simulated clock into one timed update stream, and drives the
// replay to completion, returning the resulting chart data artifact.
// onTick, if non-nil, is called after every consumed event with its
// timestamp, for callers that want to report replay progress.
func Run(ctx context.Context, cfg Config, bot Bot, connector timeline.ExchangeConnector, onTick func(time.Time)) (chartlog.Artifact, error) {
	candleLength := bot.BasicCandleLength()

	var providers []timeline.Provider
	marketplaces := make(map[string]*market.Marketplace)

	for _, m := range bot.Markets() {
		candleLoader := connector.CandleHistoryLoader(m, candleLength)
		tradeLoader := connector.TradeHistoryLoader(m)

		candleInput := eval.CandleHistoryInput{Market: m, CandleLength: candleLength, Start: cfg.SimulationStart}
		candleProvider, err := timeline.LoadCandleHistoryProvider(ctx, candleInput, candleLoader, cfg.SimulationEnd, cfg.LoaderTimeout)
		if err != nil {
			return chartlog.Artifact{}, fmt.Errorf("simulation: loading candles for %s: %w", m, err)
		}

		tradeInput := eval.TradeHistoryInput{Market: m, Start: cfg.SimulationStart}
		tradeProvider, err := timeline.LoadTradeHistoryProvider(ctx, tradeInput, tradeLoader, cfg.SimulationEnd, cfg.LoaderTimeout)
		if err != nil {
			return chartlog.Artifact{}, fmt.Errorf("simulation: loading trades for %s: %w", m, err)
		}

		providers = append(providers, candleProvider, tradeProvider)
		marketplaces[m.Key()] = market.New(m, cfg.OrderConstraints, cfg.FeeLevel, cfg.VolumeReduction)
	}

	providers = append(providers, timeline.NewTimeProvider(eval.TimeInput{Resolution: candleLength}, cfg.SimulationStart, cfg.SimulationEnd))

	events, err := timeline.Merge(providers)
	if err != nil {
		return chartlog.Artifact{}, fmt.Errorf("simulation: merging timeline: %w", err)
	}

	env, err := New(events, marketplaces, bot, cfg.SimulationStart)
	if err != nil {
		return chartlog.Artifact{}, err
	}

	for {
		ok, err := env.Advance()
		if err != nil {
			return env.Artifact(), err
		}
		if !ok {
			break
		}
		if onTick != nil {
			onTick(env.LastEventTime())
		}
	}

	return env.Artifact(), nil
}
