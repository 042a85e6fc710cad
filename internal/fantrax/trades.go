package fantrax

import (
	"sort"
	"strings"
	"time"

	fmodels "github.com/pmurley/go-fantrax/models"
	"github.com/pmurley/ulb-trade-eval/internal/models"
)

// CompletedTrade is one executed Fantrax trade, players grouped by the team that gave them up
type CompletedTrade struct {
	GroupID       string
	ProcessedDate time.Time
	Period        int
	Teams         []string // In order of first appearance
	Outgoing      map[string][]fmodels.Transaction
}

// IsTwoTeam reports whether the trade can be evaluated as a send/receive pair
func (ct CompletedTrade) IsTwoTeam() bool {
	return len(ct.Teams) == 2
}

// GroupTrades collects TRADE transactions by trade group, most recent trade first
func GroupTrades(transactions []fmodels.Transaction) []CompletedTrade {
	byGroup := make(map[string]*CompletedTrade)
	var order []string

	for _, tx := range transactions {
		if tx.Type != "TRADE" || tx.TradeGroupID == "" {
			continue
		}
		ct, exists := byGroup[tx.TradeGroupID]
		if !exists {
			ct = &CompletedTrade{
				GroupID:       tx.TradeGroupID,
				ProcessedDate: tx.ProcessedDate,
				Period:        tx.Period,
				Outgoing:      make(map[string][]fmodels.Transaction),
			}
			byGroup[tx.TradeGroupID] = ct
			order = append(order, tx.TradeGroupID)
		}
		if _, seen := ct.Outgoing[tx.FromTeamName]; !seen {
			ct.Teams = append(ct.Teams, tx.FromTeamName)
		}
		ct.Outgoing[tx.FromTeamName] = append(ct.Outgoing[tx.FromTeamName], tx)
		if tx.ProcessedDate.After(ct.ProcessedDate) {
			ct.ProcessedDate = tx.ProcessedDate
		}
	}

	trades := make([]CompletedTrade, 0, len(order))
	for _, id := range order {
		trades = append(trades, *byGroup[id])
	}
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].ProcessedDate.After(trades[j].ProcessedDate)
	})
	return trades
}

// Resolve maps the players one team gave up onto table keys. A player is matched by
// name on the receiving team, then on the sending team, then on a unique name anywhere.
func Resolve(table *models.Table, legs []fmodels.Transaction) ([]models.PlayerKey, []string) {
	var keys []models.PlayerKey
	var unresolved []string

	for _, tx := range legs {
		matches := table.Players.FindByExactName(strings.TrimSpace(tx.PlayerName))
		key, ok := pick(matches, tx.TeamName, tx.FromTeamName)
		if !ok {
			unresolved = append(unresolved, tx.PlayerName)
			continue
		}
		keys = append(keys, key)
	}
	return keys, unresolved
}

func pick(matches models.PlayerList, statuses ...string) (models.PlayerKey, bool) {
	for _, status := range statuses {
		if status == "" {
			continue
		}
		owned := matches.Filter(models.StatusIs(status))
		if len(owned) == 1 {
			return owned[0].Key(), true
		}
	}
	if len(matches) == 1 {
		return matches[0].Key(), true
	}
	return models.PlayerKey{}, false
}
