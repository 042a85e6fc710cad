package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlayers() PlayerList {
	return PlayerList{
		{Player: "Alpha", Status: "Sharks", Positions: []string{"SS", "2B"}, Contract: "3yr", Salary: 10, Age: 26, NetTrueValue: 50},
		{Player: "Bravo", Status: "Sharks", Positions: []string{"SP"}, Contract: "1yr", Salary: 20, Age: 31, NetTrueValue: 70},
		{Player: "Delta", Status: "Expos", Positions: []string{"C"}, Contract: "2yr", Salary: 15, Age: 28, NetTrueValue: 70},
		{Player: "Golf", Status: "FA", Positions: []string{"SS"}, Contract: "1yr", Salary: 1, Age: 27, NetTrueValue: 90},
		{Player: "Hotel", Status: "W <small>(Tue)</small>", Positions: []string{"OF"}, Contract: "1yr", Salary: 1, Age: 23, NetTrueValue: 5},
	}
}

func TestPlayerKeyString(t *testing.T) {
	k := PlayerKey{Name: "Alpha", Salary: 10, Status: "Sharks"}
	assert.Equal(t, "Alpha | $10 | Sharks", k.String())

	k.Salary = 2.5
	assert.Equal(t, "Alpha | $2.5 | Sharks", k.String())
}

func TestPlayerKeyIdentity(t *testing.T) {
	a := PlayerRecord{Player: "Will Smith", Salary: 4, Status: "Expos"}
	b := PlayerRecord{Player: "Will Smith", Salary: 12, Status: "Sharks"}
	assert.NotEqual(t, a.Key(), b.Key())
	assert.Equal(t, a.Key(), PlayerRecord{Player: "Will Smith", Salary: 4, Status: "Expos", Score: 99}.Key())
}

func TestParsePositions(t *testing.T) {
	assert.Equal(t, []string{"SS", "2B"}, ParsePositions("ss, 2B"))
	assert.Equal(t, []string{"UT"}, ParsePositions("UT,"))
	assert.Nil(t, ParsePositions(""))
}

func TestIsPlaceholderStatus(t *testing.T) {
	assert.True(t, IsPlaceholderStatus("FA"))
	assert.True(t, IsPlaceholderStatus("W <small>(Wed)</small>"))
	assert.False(t, IsPlaceholderStatus("Sharks"))
}

func TestFilterPredicates(t *testing.T) {
	pl := testPlayers()

	assert.Len(t, pl.Filter(StatusIs("sharks")), 2)
	assert.Len(t, pl.Filter(NotPlaceholder()), 3)
	assert.Len(t, pl.Filter(StatusNotIn("Sharks"), NotPlaceholder()), 1)

	ss := pl.Filter(HasAnyPosition("SS"))
	require.Len(t, ss, 2)
	assert.Equal(t, "Alpha", ss[0].Player)
	assert.Equal(t, "Golf", ss[1].Player)

	// Any overlap with the filter set is enough
	assert.Len(t, pl.Filter(HasAnyPosition("2B", "C")), 2)
	assert.Len(t, pl.Filter(HasAnyPosition()), len(pl))

	assert.Len(t, pl.Filter(ContractIn("1yr")), 3)
	assert.Len(t, pl.Filter(SalaryBetween(10, 15)), 2)
	assert.Len(t, pl.Filter(AgeBetween(27, 31)), 3)
	assert.Len(t, pl.Filter(NameIn("alpha", "delta")), 2)
	assert.Empty(t, pl.Filter(StatusIs("Nobody")))
}

func TestSortByNetTrueValueIsStable(t *testing.T) {
	pl := testPlayers()
	pl.SortByNetTrueValue()

	names := []string{}
	for _, p := range pl {
		names = append(names, p.Player)
	}
	assert.Equal(t, []string{"Golf", "Bravo", "Delta", "Alpha", "Hotel"}, names)
}

func TestTopDoesNotMutate(t *testing.T) {
	pl := testPlayers()
	top := pl.Top(2)
	require.Len(t, top, 2)
	assert.Equal(t, "Golf", top[0].Player)
	assert.Equal(t, "Alpha", pl[0].Player)
	assert.Len(t, pl.Top(50), len(pl))
}

func TestSearchByName(t *testing.T) {
	pl := testPlayers()
	assert.Len(t, pl.SearchByName("lph"), 1)
	assert.Len(t, pl.FindByExactName("ALPHA"), 1)
	assert.Empty(t, pl.FindByExactName("Alp"))
}

func TestTableLookupAndTeams(t *testing.T) {
	table := &Table{Players: testPlayers()}

	keys := []PlayerKey{
		{Name: "Delta", Salary: 15, Status: "Expos"},
		{Name: "Alpha", Salary: 10, Status: "Sharks"},
		{Name: "Ghost", Salary: 1, Status: "Expos"},
	}
	rows, missing := table.Lookup(keys)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alpha", rows[0].Player, "rows come back in table order")
	assert.Equal(t, []PlayerKey{{Name: "Ghost", Salary: 1, Status: "Expos"}}, missing)

	assert.Equal(t, []string{"Expos", "Sharks"}, table.Teams())
	assert.Len(t, table.Roster("Sharks"), 2)
}

func TestGetStats(t *testing.T) {
	stats := testPlayers().Filter(StatusIs("Sharks")).GetStats()
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, 30.0, stats.TotalSalary)
	assert.Equal(t, 120.0, stats.NetTrueValue)
}

func TestGroupByStatus(t *testing.T) {
	grouped := testPlayers().GroupByStatus()
	assert.Len(t, grouped, 4)
	assert.Len(t, grouped["Sharks"], 2)
	assert.Equal(t, "Delta", grouped["Expos"][0].Player)
}

func TestSortByName(t *testing.T) {
	pl := PlayerList{{Player: "Echo"}, {Player: "Alpha"}, {Player: "Delta"}}
	pl.SortByName()
	assert.Equal(t, "Alpha", pl[0].Player)
	assert.Equal(t, "Delta", pl[1].Player)
	assert.Equal(t, "Echo", pl[2].Player)
}
