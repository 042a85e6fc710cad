package models

import (
	"sort"

	"github.com/pmurley/ulb-trade-eval/internal/valuation"
)

// Table is the enriched player table built under one parameter set.
// It is never mutated after construction.
type Table struct {
	Params                 valuation.Params
	LeagueBudget           float64
	DollarsPerPoint        float64
	DynastyDollarsPerPoint float64
	Players                PlayerList
}

// Lookup returns the rows whose key is in keys, in table order, along with
// the keys that matched nothing.
func (t *Table) Lookup(keys []PlayerKey) (PlayerList, []PlayerKey) {
	wanted := make(map[PlayerKey]bool, len(keys))
	for _, k := range keys {
		wanted[k] = true
	}

	found := make(map[PlayerKey]bool, len(keys))
	var matched PlayerList
	for _, p := range t.Players {
		if wanted[p.Key()] {
			matched = append(matched, p)
			found[p.Key()] = true
		}
	}

	var missing []PlayerKey
	for _, k := range keys {
		if !found[k] {
			missing = append(missing, k)
		}
	}
	return matched, missing
}

// Teams returns the sorted distinct franchise statuses, placeholders excluded
func (t *Table) Teams() []string {
	seen := make(map[string]bool)
	var teams []string
	for _, p := range t.Players {
		if p.IsPlaceholder() || p.Status == "" || seen[p.Status] {
			continue
		}
		seen[p.Status] = true
		teams = append(teams, p.Status)
	}
	sort.Strings(teams)
	return teams
}

// Roster returns the rows owned by status
func (t *Table) Roster(status string) PlayerList {
	return t.Players.Filter(StatusIs(status))
}
