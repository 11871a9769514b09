package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Bl8k38500/liquirium/internal/exchanges"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config aggregates every parameter a simulation run needs (spec §6).
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

// Load reads .env (if present) then environment variables into a Config,
// and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	market := exchanges.Market{
		ExchangeID:  getEnv("SIM_EXCHANGE_ID", "sim"),
		TradingPair: getEnv("SIM_MARKET", "BTC-USD"),
	}

	cfg := &Config{
		SimulationStart: getEnvTime("SIM_START", time.Now().Add(-30*24*time.Hour)),
		SimulationEnd:   getEnvTime("SIM_END", time.Now()),
		Market:          market,
		TotalValue:      getEnvDecimal("SIM_TOTAL_VALUE", decimal.NewFromInt(10000)),
		OrderConstraints: exchanges.OrderConstraints{
			PricePrecision:    exchanges.DigitsPrecision(int32(getEnvInt("SIM_PRICE_PRECISION", 2))),
			QuantityPrecision: exchanges.DigitsPrecision(int32(getEnvInt("SIM_QUANTITY_PRECISION", 8))),
		},
		FeeLevel:        getEnvDecimal("SIM_FEE_LEVEL", decimal.RequireFromString("0.001")),
		VolumeReduction: getEnvDecimal("SIM_VOLUME_REDUCTION", decimal.NewFromFloat(0.1)),
		LoaderTimeout:   getEnvDuration("SIM_LOADER_TIMEOUT", 30*time.Second),
		CacheDirectory:  getEnv("SIM_CACHE_DIR", ".cache"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	var problems []string

	if c.Market.ExchangeID == "" {
		problems = append(problems, "SIM_EXCHANGE_ID must not be empty")
	}
	if c.Market.TradingPair == "" {
		problems = append(problems, "SIM_MARKET must not be empty")
	}
	if !c.SimulationStart.Before(c.SimulationEnd) {
		problems = append(problems, "SIM_START must be before SIM_END")
	}
	if c.VolumeReduction.LessThanOrEqual(decimal.Zero) || c.VolumeReduction.GreaterThan(decimal.NewFromInt(1)) {
		problems = append(problems, "SIM_VOLUME_REDUCTION must be in (0, 1]")
	}
	if c.LoaderTimeout <= 0 {
		problems = append(problems, "SIM_LOADER_TIMEOUT must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if parsed, err := decimal.NewFromString(value); err == nil {
		return parsed
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if parsed, err := time.ParseDuration(value); err == nil {
		return parsed
	}
	return defaultValue
}

func getEnvTime(key string, defaultValue time.Time) time.Time {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed
	}
	return defaultValue
}
