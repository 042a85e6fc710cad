package config

import (
	"testing"
	"time"

	"github.com/pmurley/ulb-trade-eval/internal/builder"
	"github.com/pmurley/ulb-trade-eval/internal/trade"
	"github.com/pmurley/ulb-trade-eval/internal/valuation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"COMMAND_PREFIX", "LOG_LEVEL", "CACHE_DURATION_MINUTES", "LEAGUE_BUDGET",
		"DISCOUNT_RATE", "GROWTH_PRE30", "GROWTH_POST30", "SALARY_WEIGHT", "CONTROL_WEIGHT",
		"TRADE_MARGIN", "MULTI_PLAYER_DISCOUNT", "RECOMMENDATION_LIMIT", "RANKINGS_CSV", "ROSTER_CSV"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "!", cfg.CommandPrefix)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5*time.Minute, cfg.CacheDuration)
	assert.Equal(t, builder.DefaultLeagueBudget, cfg.LeagueBudget)
	assert.Equal(t, valuation.DefaultParams(), cfg.ModelParams())
	assert.Equal(t, trade.DefaultSettings(), cfg.TradeSettings())
	assert.Equal(t, 10, cfg.RecommendationLimit)
	assert.Equal(t, "players_dynasty_values.csv", cfg.RankingsCSV)
	assert.Equal(t, "players_30T.csv", cfg.RosterCSV)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DISCOUNT_RATE", "0.10")
	t.Setenv("SALARY_WEIGHT", "1")
	t.Setenv("TRADE_MARGIN", "0.1")
	t.Setenv("RECOMMENDATION_LIMIT", "3")
	t.Setenv("CACHE_DURATION_MINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.10, cfg.ModelParams().DiscountRate)
	assert.Equal(t, 1.0, cfg.ModelParams().SalaryWeight)
	assert.Equal(t, 0.1, cfg.TradeSettings().Margin)
	assert.Equal(t, 3, cfg.RecommendationLimit)
	assert.Equal(t, 15*time.Minute, cfg.CacheDuration)
}

func TestLoad_MalformedNumber(t *testing.T) {
	t.Setenv("GROWTH_PRE30", "three percent")

	_, err := Load()
	assert.ErrorContains(t, err, "GROWTH_PRE30")
}

func TestLoad_InvalidModel(t *testing.T) {
	t.Setenv("DISCOUNT_RATE", "0.03")
	t.Setenv("GROWTH_PRE30", "0.03")

	_, err := Load()
	var cfgErr *valuation.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoad_InvalidTradeSettings(t *testing.T) {
	t.Setenv("MULTI_PLAYER_DISCOUNT", "1.5")

	_, err := Load()
	var cfgErr *valuation.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
	assert.ErrorContains(t, err, "invalid trade defaults")
}

func TestLoad_TradeWatcher(t *testing.T) {
	t.Setenv("TRADE_WATCH_MINUTES", "0")
	t.Setenv("TRADE_CHANNEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Zero(t, cfg.TradeWatchInterval)
	assert.Equal(t, "trades", cfg.TradeChannelName)
}
