// Command backtest replays historical candle data through the simulation
// core and reports the resulting chart data (spec §1, §6).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Bl8k38500/liquirium/internal/backtesting"
	"github.com/Bl8k38500/liquirium/internal/chartlog"
	"github.com/Bl8k38500/liquirium/internal/config"
	"github.com/Bl8k38500/liquirium/internal/logger"
	"github.com/Bl8k38500/liquirium/internal/metrics"
	"github.com/Bl8k38500/liquirium/internal/simulation"
	"github.com/Bl8k38500/liquirium/internal/timeline"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

func main() {
	os.Exit(run())
}

// Exit codes: 0 completed; 1 configuration error; 2 loader/replay failure.
func run() int {
	candlePath := flag.String("data", "", "path to a CSV of OHLCV candles (required)")
	candleLength := flag.Duration("candle-length", time.Minute, "candle length in the CSV")
	offset := flag.String("offset", "0.005", "fractional offset below last close for the demo bot's resting buy")
	quiet := flag.Bool("quiet", false, "skip the interactive progress view, print the report directly")
	metricsAddr := flag.String("metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090)")
	flag.Parse()

	log := logger.Component("backtest")

	if *candlePath == "" {
		fmt.Fprintln(os.Stderr, "backtest: -data is required")
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Error("invalid configuration")
		return 1
	}

	offsetDec, err := decimal.NewFromString(*offset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "backtest: invalid -offset: %v\n", err)
		return 1
	}

	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		srv := &http.Server{Addr: *metricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("metrics server stopped")
			}
		}()
		log.Info("serving metrics", "addr", *metricsAddr)
	}

	bot := newThresholdBot(cfg.Market, *candleLength, cfg.SimulationStart, offsetDec)
	connector := csvConnector{exchangeID: cfg.Market.ExchangeID, candlePath: *candlePath}
	simCfg := simulation.Config{
		SimulationStart:  cfg.SimulationStart,
		SimulationEnd:    cfg.SimulationEnd,
		Market:           cfg.Market,
		TotalValue:       cfg.TotalValue,
		OrderConstraints: cfg.OrderConstraints,
		FeeLevel:         cfg.FeeLevel,
		VolumeReduction:  cfg.VolumeReduction,
		LoaderTimeout:    cfg.LoaderTimeout,
		CacheDirectory:   cfg.CacheDirectory,
	}

	artifact, err := runReplay(context.Background(), simCfg, bot, connector, *quiet)
	if err != nil {
		log.WithError(err).Error("replay failed")
		return 2
	}

	reporter := backtesting.NewReporter()
	fmt.Println(reporter.GenerateReport(artifact))
	return 0
}

// runReplay drives simulation.Run to completion. Unless quiet, replay
// progress is relayed through a bubbletea view driven by onTick callbacks
// arriving on events while Run executes in its own goroutine. result carries
// the final artifact and error back once the replay goroutine finishes.
func runReplay(ctx context.Context, cfg simulation.Config, bot simulation.Bot, connector timeline.ExchangeConnector, quiet bool) (chartlog.Artifact, error) {
	if quiet {
		return simulation.Run(ctx, cfg, bot, connector, nil)
	}

	events := make(chan tea.Msg)
	result := make(chan replayResult, 1)
	ticks := 0

	go func() {
		artifact, err := simulation.Run(ctx, cfg, bot, connector, func(at time.Time) {
			ticks++
			events <- tickMsg{at: at, ticks: ticks}
		})
		events <- doneMsg{err: err}
		close(events)
		result <- replayResult{artifact: artifact, err: err}
	}()

	program := tea.NewProgram(newProgressModel(cfg.SimulationStart, cfg.SimulationEnd, events))
	if _, pErr := program.Run(); pErr != nil {
		<-result // drain the replay goroutine before returning
		return chartlog.Artifact{}, fmt.Errorf("backtest: progress view: %w", pErr)
	}

	r := <-result
	return r.artifact, r.err
}

type replayResult struct {
	artifact chartlog.Artifact
	err      error
}
