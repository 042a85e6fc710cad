package fantrax

import (
	"testing"
	"time"

	fmodels "github.com/pmurley/go-fantrax/models"
	"github.com/pmurley/ulb-trade-eval/internal/models"
	"github.com/pmurley/ulb-trade-eval/internal/testfixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tradeLeg(group, from, to, player string, when time.Time) fmodels.Transaction {
	return fmodels.Transaction{
		Type:          "TRADE",
		TradeGroupID:  group,
		FromTeamName:  from,
		TeamName:      to,
		PlayerName:    player,
		ProcessedDate: when,
		Period:        12,
	}
}

func TestGroupTrades(t *testing.T) {
	early := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	late := early.Add(48 * time.Hour)

	txs := []fmodels.Transaction{
		tradeLeg("g1", testfixtures.Sharks, testfixtures.Expos, "Alpha", early),
		{Type: "CLAIM", TeamName: testfixtures.Sharks, PlayerName: "Golf"},
		tradeLeg("g1", testfixtures.Expos, testfixtures.Sharks, "Delta", early),
		tradeLeg("g2", testfixtures.Sharks, testfixtures.Expos, "Bravo", late),
		tradeLeg("g2", testfixtures.Sharks, testfixtures.Expos, "Charlie", late),
		tradeLeg("g2", testfixtures.Expos, testfixtures.Sharks, "Echo", late),
		{Type: "TRADE", PlayerName: "no group"},
	}

	trades := GroupTrades(txs)
	require.Len(t, trades, 2)

	assert.Equal(t, "g2", trades[0].GroupID, "most recent first")
	assert.Equal(t, []string{testfixtures.Sharks, testfixtures.Expos}, trades[0].Teams)
	assert.Len(t, trades[0].Outgoing[testfixtures.Sharks], 2)
	assert.True(t, trades[0].IsTwoTeam())

	assert.Equal(t, "g1", trades[1].GroupID)
	assert.Equal(t, 12, trades[1].Period)
}

func TestResolve(t *testing.T) {
	table := testfixtures.Table(t)

	legs := []fmodels.Transaction{
		{PlayerName: "Alpha", FromTeamName: testfixtures.Sharks, TeamName: testfixtures.Expos},
		{PlayerName: " Golf ", FromTeamName: "Somebody", TeamName: "Else"},
		{PlayerName: "Nobody", FromTeamName: testfixtures.Sharks},
	}

	keys, unresolved := Resolve(table, legs)
	require.Len(t, keys, 2)
	assert.Equal(t, "Alpha", keys[0].Name)
	assert.Equal(t, testfixtures.Sharks, keys[0].Status)
	assert.Equal(t, "Golf", keys[1].Name, "unique name falls back")
	assert.Equal(t, []string{"Nobody"}, unresolved)
}

func TestResolve_AmbiguousName(t *testing.T) {
	table := testfixtures.Table(t)
	dup := table.Players[0]
	dup.Status = "Other"
	table = &models.Table{Params: table.Params, Players: append(append(models.PlayerList{}, table.Players...), dup)}

	_, unresolved := Resolve(table, []fmodels.Transaction{{PlayerName: "Alpha", FromTeamName: "Third"}})
	assert.Equal(t, []string{"Alpha"}, unresolved)

	keys, _ := Resolve(table, []fmodels.Transaction{{PlayerName: "Alpha", TeamName: "Other"}})
	require.Len(t, keys, 1)
	assert.Equal(t, "Other", keys[0].Status)
}
