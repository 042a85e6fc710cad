// Package recommend ranks 1-for-1 counter-offers closest in value to an outgoing package.
package recommend

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pmurley/ulb-trade-eval/internal/models"
	"github.com/pmurley/ulb-trade-eval/internal/trade"
)

// DefaultLimit is the number of recommendations shown when the caller has no preference
const DefaultLimit = 10

// ErrInvalidLimit is returned for a limit below one
var ErrInvalidLimit = errors.New("recommendation limit must be a positive integer")

// Metric selects which value candidates are compared on
type Metric int

const (
	NetTrueValue Metric = iota
	TrueValue
)

func (m Metric) String() string {
	if m == TrueValue {
		return "True Value"
	}
	return "Net True Value"
}

// Of reads the metric from a row
func (m Metric) Of(p models.PlayerRecord) float64 {
	if m == TrueValue {
		return p.TrueValue
	}
	return p.NetTrueValue
}

// ParseMetric accepts "net", "net-true", "true" and the display names
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "")) {
	case "", "net", "nettrue", "net-true", "nettruevalue":
		return NetTrueValue, nil
	case "true", "truevalue":
		return TrueValue, nil
	}
	return NetTrueValue, fmt.Errorf("unknown ranking metric %q", s)
}

// TargetFor is the outgoing package value under m, after any package discount
func TargetFor(result trade.Result, m Metric) float64 {
	if m == TrueValue {
		return result.Send.TrueValue
	}
	return result.Send.NetTrueValue
}

// Request describes one ranking call
type Request struct {
	ExcludeStatus string   // The evaluating team's own status
	TeamFilter    string   // Only candidates from this team; empty or "All" for every team
	Positions     []string // Only candidates eligible at any of these; empty for all
	Metric        Metric
	TargetValue   float64
	Limit         int
}

// Recommendation is one ranked candidate
type Recommendation struct {
	Player      models.PlayerRecord
	Metric      Metric
	MetricValue float64
	Difference  float64 // MetricValue - TargetValue
}

// AbsDifference is the ranking key
func (r Recommendation) AbsDifference() float64 {
	return math.Abs(r.Difference)
}

// AsTrade returns the 1-for-1 trade this recommendation suggests
func (r Recommendation) AsTrade(send []models.PlayerKey) (partner string, sendKeys, receive []models.PlayerKey) {
	return r.Player.Status, send, []models.PlayerKey{r.Player.Key()}
}

// Pool applies the candidate filters of req to the table, in table order
func Pool(table *models.Table, req Request) models.PlayerList {
	preds := []models.Predicate{
		models.NotPlaceholder(),
		models.StatusNotIn(req.ExcludeStatus),
	}
	if team := strings.TrimSpace(req.TeamFilter); team != "" && !strings.EqualFold(team, "All") {
		preds = append(preds, models.StatusIs(team))
	}
	if len(req.Positions) > 0 {
		preds = append(preds, models.HasAnyPosition(req.Positions...))
	}
	return table.Players.Filter(preds...)
}

// RankCounterOffers returns at most req.Limit candidates ordered by |Difference|,
// ties kept in table order. An empty pool yields an empty result.
func RankCounterOffers(table *models.Table, req Request) ([]Recommendation, error) {
	if req.Limit < 1 {
		return nil, ErrInvalidLimit
	}

	pool := Pool(table, req)
	recs := make([]Recommendation, 0, len(pool))
	for _, p := range pool {
		v := req.Metric.Of(p)
		recs = append(recs, Recommendation{
			Player:      p,
			Metric:      req.Metric,
			MetricValue: v,
			Difference:  v - req.TargetValue,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].AbsDifference() < recs[j].AbsDifference()
	})

	if len(recs) > req.Limit {
		recs = recs[:req.Limit]
	}
	return recs, nil
}
