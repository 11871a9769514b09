// Package metrics exposes Prometheus counters for the replay loop: how many
// ticks it has consumed, how many trades the marketplace has produced, and
// how the evaluation context's memoization cache is performing. These are
// ambient observability, not part of the simulation's own semantics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ticksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "liquirium_ticks_total",
			Help: "Timed update events consumed by the replay loop.",
		},
	)

	tradesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "liquirium_trades_total",
			Help: "Trades produced by marketplace matching, by market.",
		},
		[]string{"market"},
	)

	evalCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "liquirium_eval_cache_hits_total",
			Help: "Evaluations served from the memoized cache.",
		},
	)

	evalCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "liquirium_eval_cache_misses_total",
			Help: "Evaluations that required recomputation.",
		},
	)
)

func init() {
	prometheus.MustRegister(ticksTotal, tradesTotal, evalCacheHits, evalCacheMisses)
}

// IncTick records one consumed timed update event.
func IncTick() { ticksTotal.Inc() }

// AddTrades records n trades produced for market.
func AddTrades(market string, n int) {
	if n <= 0 {
		return
	}
	tradesTotal.WithLabelValues(market).Add(float64(n))
}

// IncCacheHit records one memoized evaluation served from cache.
func IncCacheHit() { evalCacheHits.Inc() }

// IncCacheMiss records one evaluation that required recomputation.
func IncCacheMiss() { evalCacheMisses.Inc() }

// Handler returns the Prometheus text-exposition HTTP handler for /metrics.
func Handler() http.Handler { return promhttp.Handler() }
