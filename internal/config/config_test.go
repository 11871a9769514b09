package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected config to load with defaults, got error: %v", err)
	}
	if cfg.Market.ExchangeID != "sim" {
		t.Fatalf("expected default exchange id 'sim', got %q", cfg.Market.ExchangeID)
	}
	if cfg.Market.TradingPair != "BTC-USD" {
		t.Fatalf("expected default trading pair 'BTC-USD', got %q", cfg.Market.TradingPair)
	}
	if cfg.LoaderTimeout <= 0 {
		t.Fatalf("expected a positive default loader timeout")
	}
}

func TestLoad_ReadsOverrides(t *testing.T) {
	t.Setenv("SIM_EXCHANGE_ID", "backtest-exchange")
	t.Setenv("SIM_MARKET", "ETH-USD")
	t.Setenv("SIM_START", "2026-01-01T00:00:00Z")
	t.Setenv("SIM_END", "2026-02-01T00:00:00Z")
	t.Setenv("SIM_FEE_LEVEL", "0.002")
	t.Setenv("SIM_VOLUME_REDUCTION", "0.25")
	t.Setenv("SIM_LOADER_TIMEOUT", "10s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Market.ExchangeID != "backtest-exchange" {
		t.Fatalf("expected overridden exchange id, got %q", cfg.Market.ExchangeID)
	}
	if cfg.Market.TradingPair != "ETH-USD" {
		t.Fatalf("expected overridden trading pair, got %q", cfg.Market.TradingPair)
	}
	if !cfg.SimulationStart.Before(cfg.SimulationEnd) {
		t.Fatalf("expected simulation start before end, got %v .. %v", cfg.SimulationStart, cfg.SimulationEnd)
	}
	if cfg.LoaderTimeout.String() != "10s" {
		t.Fatalf("expected 10s loader timeout, got %v", cfg.LoaderTimeout)
	}
}

func TestLoad_RejectsInvertedSimulationWindow(t *testing.T) {
	t.Setenv("SIM_START", "2026-02-01T00:00:00Z")
	t.Setenv("SIM_END", "2026-01-01T00:00:00Z")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when SIM_START is not before SIM_END")
	}
}

func TestLoad_RejectsOutOfRangeVolumeReduction(t *testing.T) {
	t.Setenv("SIM_VOLUME_REDUCTION", "1.5")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when SIM_VOLUME_REDUCTION is outside (0, 1]")
	}
}

func TestLoad_RejectsNonPositiveLoaderTimeout(t *testing.T) {
	t.Setenv("SIM_LOADER_TIMEOUT", "0s")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when SIM_LOADER_TIMEOUT is not positive")
	}
}
