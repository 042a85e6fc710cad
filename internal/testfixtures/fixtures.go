// Package testfixtures provides a small two-franchise league for tests.
//
// Sharks: Alpha, Bravo, Charlie. Expos: Delta, Echo, Foxtrot. Golf is a free agent.
// Foxtrot has no dynasty ranking.
package testfixtures

import (
	"testing"

	"github.com/pmurley/ulb-trade-eval/internal/builder"
	"github.com/pmurley/ulb-trade-eval/internal/models"
	"github.com/pmurley/ulb-trade-eval/internal/valuation"
)

const (
	Sharks = "Sharks"
	Expos  = "Expos"
)

// Rankings returns the dynasty rankings rows of the fixture league
func Rankings() []models.RankingRow {
	return []models.RankingRow{
		{Player: "Alpha", Team: "NYY", Value: 80},
		{Player: "Bravo", Team: "LAD", Value: 40},
		{Player: "Charlie", Team: "ARI", Value: 60},
		{Player: "Delta", Team: "BOS", Value: 70},
		{Player: "Echo", Team: "CHW", Value: 20},
		{Player: "Golf", Team: "TEX", Value: 30},
	}
}

// Roster returns the roster rows of the fixture league
func Roster() []models.RosterRow {
	return []models.RosterRow{
		{Player: "Alpha", Team: "NYY", Status: Sharks, Position: "SS,2B", Score: 400, Age: 26, Salary: 10, Contract: "3yr", ContractYears: 3},
		{Player: "Bravo", Team: "LAD", Status: Sharks, Position: "SP", Score: 300, Age: 31, Salary: 20, Contract: "1yr", ContractYears: 1},
		{Player: "Charlie", Team: "ARI", Status: Sharks, Position: "OF", Score: 200, Age: 24, Salary: 5, Contract: "5yr", ContractYears: 5},
		{Player: "Delta", Team: "BOS", Status: Expos, Position: "C", Score: 350, Age: 28, Salary: 15, Contract: "2yr", ContractYears: 2},
		{Player: "Echo", Team: "CHW", Status: Expos, Position: "1B,OF", Score: 250, Age: 34, Salary: 8, Contract: "4yr", ContractYears: 4},
		{Player: "Foxtrot", Team: "SEA", Status: Expos, Position: "RP", Score: 150, Age: 22, Salary: 2, Contract: "5yr", ContractYears: 5},
		{Player: "Golf", Team: "TEX", Status: "FA", Position: "SS", Score: 100, Age: 27, Salary: 1, Contract: "1yr", ContractYears: 1},
	}
}

// Table builds the fixture league under the reference parameters
func Table(t testing.TB) *models.Table {
	t.Helper()
	table, err := builder.Build(Rankings(), Roster(), valuation.DefaultParams(), builder.DefaultLeagueBudget)
	if err != nil {
		t.Fatalf("building fixture table: %v", err)
	}
	return table
}

// Key returns the composite key of the named fixture row
func Key(t testing.TB, table *models.Table, name string) models.PlayerKey {
	t.Helper()
	matches := table.Players.FindByExactName(name)
	if len(matches) != 1 {
		t.Fatalf("fixture player %q: found %d rows", name, len(matches))
	}
	return matches[0].Key()
}
