package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pmurley/ulb-trade-eval/internal/builder"
	"github.com/pmurley/ulb-trade-eval/internal/recommend"
	"github.com/pmurley/ulb-trade-eval/internal/trade"
	"github.com/pmurley/ulb-trade-eval/internal/valuation"
)

type Config struct {
	DiscordToken  string
	CacheDuration time.Duration
	CommandPrefix string
	LogLevel      string

	// Dataset sources. The Google sheet wins when GoogleSheetsID is set.
	GoogleSheetsID string
	RankingsGID    string
	RosterGID      string
	RankingsCSV    string
	RosterCSV      string
	RankingsURL    string

	FantraxLeagueID    string
	TradeChannelName   string
	TradeWatchInterval time.Duration // Zero disables the completed trade watcher

	LeagueBudget        float64
	Model               valuation.Params
	Trade               trade.Settings
	RecommendationLimit int
}

func Load() (*Config, error) {
	cfg := &Config{
		DiscordToken:     os.Getenv("DISCORD_TOKEN"),
		CommandPrefix:    getEnvOrDefault("COMMAND_PREFIX", "!"),
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
		GoogleSheetsID:   os.Getenv("GOOGLE_SHEETS_ID"),
		RankingsGID:      getEnvOrDefault("RANKINGS_GID", "0"),
		RosterGID:        os.Getenv("ROSTER_GID"),
		RankingsCSV:      getEnvOrDefault("RANKINGS_CSV", "players_dynasty_values.csv"),
		RosterCSV:        getEnvOrDefault("ROSTER_CSV", "players_30T.csv"),
		RankingsURL:      os.Getenv("RANKINGS_URL"),
		FantraxLeagueID:  os.Getenv("FANTRAX_LEAGUE_ID"),
		TradeChannelName: getEnvOrDefault("TRADE_CHANNEL", "trades"),
	}

	minutes, err := getIntOrDefault("CACHE_DURATION_MINUTES", 5)
	if err != nil {
		return nil, err
	}
	cfg.CacheDuration = time.Duration(minutes) * time.Minute

	if minutes, err = getIntOrDefault("TRADE_WATCH_MINUTES", 2); err != nil {
		return nil, err
	}
	cfg.TradeWatchInterval = time.Duration(minutes) * time.Minute

	defaults := valuation.DefaultParams()
	floatVars := []struct {
		key    string
		def    float64
		target *float64
	}{
		{"LEAGUE_BUDGET", builder.DefaultLeagueBudget, &cfg.LeagueBudget},
		{"DISCOUNT_RATE", defaults.DiscountRate, &cfg.Model.DiscountRate},
		{"GROWTH_PRE30", defaults.GrowthPre30, &cfg.Model.GrowthPre30},
		{"GROWTH_POST30", defaults.GrowthPost30, &cfg.Model.GrowthPost30},
		{"SALARY_WEIGHT", defaults.SalaryWeight, &cfg.Model.SalaryWeight},
		{"CONTROL_WEIGHT", defaults.ControlWeight, &cfg.Model.ControlWeight},
		{"TRADE_MARGIN", trade.DefaultMargin, &cfg.Trade.Margin},
		{"MULTI_PLAYER_DISCOUNT", trade.DefaultMultiPlayerDiscount, &cfg.Trade.MultiPlayerDiscount},
	}
	for _, v := range floatVars {
		if *v.target, err = getFloatOrDefault(v.key, v.def); err != nil {
			return nil, err
		}
	}

	if cfg.RecommendationLimit, err = getIntOrDefault("RECOMMENDATION_LIMIT", recommend.DefaultLimit); err != nil {
		return nil, err
	}

	if err := cfg.Model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model defaults: %w", err)
	}
	if err := cfg.Trade.Validate(); err != nil {
		return nil, fmt.Errorf("invalid trade defaults: %w", err)
	}

	return cfg, nil
}

// ModelParams returns the configured default model parameters
func (c *Config) ModelParams() valuation.Params {
	return c.Model
}

// TradeSettings returns the configured default trade settings
func (c *Config) TradeSettings() trade.Settings {
	return c.Trade
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return f, nil
}

func getIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}
