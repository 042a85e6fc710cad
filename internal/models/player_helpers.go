package models

import (
	"sort"
	"strings"
)

// PlayerList represents a slice of enriched rows with helper methods
type PlayerList []PlayerRecord

// Predicate selects rows from a PlayerList
type Predicate func(PlayerRecord) bool

// Filter returns the rows matching every predicate, in original order
func (pl PlayerList) Filter(preds ...Predicate) PlayerList {
	var filtered PlayerList
	for _, p := range pl {
		if matchesAll(p, preds) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func matchesAll(p PlayerRecord, preds []Predicate) bool {
	for _, pred := range preds {
		if pred != nil && !pred(p) {
			return false
		}
	}
	return true
}

// StatusIs matches rows owned by the given status (case-insensitive)
func StatusIs(status string) Predicate {
	status = strings.TrimSpace(status)
	return func(p PlayerRecord) bool {
		return strings.EqualFold(strings.TrimSpace(p.Status), status)
	}
}

// StatusNotIn drops rows whose status is any of statuses
func StatusNotIn(statuses ...string) Predicate {
	return func(p PlayerRecord) bool {
		for _, s := range statuses {
			if strings.EqualFold(strings.TrimSpace(p.Status), strings.TrimSpace(s)) {
				return false
			}
		}
		return true
	}
}

// NotPlaceholder drops free-agent and waiver placeholder rows
func NotPlaceholder() Predicate {
	return func(p PlayerRecord) bool {
		return !p.IsPlaceholder()
	}
}

// NameIn matches exact player names (case-insensitive)
func NameIn(names ...string) Predicate {
	return func(p PlayerRecord) bool {
		for _, n := range names {
			if strings.EqualFold(p.Player, strings.TrimSpace(n)) {
				return true
			}
		}
		return false
	}
}

// HasAnyPosition matches rows eligible at one or more of positions.
// An empty position list matches everything.
func HasAnyPosition(positions ...string) Predicate {
	return func(p PlayerRecord) bool {
		if len(positions) == 0 {
			return true
		}
		for _, pos := range positions {
			if p.HasPosition(pos) {
				return true
			}
		}
		return false
	}
}

// ContractIn matches the raw contract cell, e.g. "2yr"
func ContractIn(contracts ...string) Predicate {
	return func(p PlayerRecord) bool {
		for _, c := range contracts {
			if strings.EqualFold(p.Contract, strings.TrimSpace(c)) {
				return true
			}
		}
		return false
	}
}

// SalaryBetween matches min <= salary <= max
func SalaryBetween(min, max float64) Predicate {
	return func(p PlayerRecord) bool {
		return p.Salary >= min && p.Salary <= max
	}
}

// AgeBetween matches min <= age <= max
func AgeBetween(min, max int) Predicate {
	return func(p PlayerRecord) bool {
		return p.Age >= min && p.Age <= max
	}
}

// SearchByName returns players whose names contain the search string
func (pl PlayerList) SearchByName(search string) PlayerList {
	var matches PlayerList
	searchLower := strings.ToLower(strings.TrimSpace(search))

	for _, p := range pl {
		if strings.Contains(strings.ToLower(p.Player), searchLower) {
			matches = append(matches, p)
		}
	}
	return matches
}

// FindByExactName returns all players with an exact name match (case-insensitive)
func (pl PlayerList) FindByExactName(name string) PlayerList {
	return pl.Filter(NameIn(name))
}

// SortByNetTrueValue sorts by Net_True_Value descending, keeping ties in order
func (pl PlayerList) SortByNetTrueValue() {
	sort.SliceStable(pl, func(i, j int) bool {
		return pl[i].NetTrueValue > pl[j].NetTrueValue
	})
}

// SortByName sorts players alphabetically by name
func (pl PlayerList) SortByName() {
	sort.SliceStable(pl, func(i, j int) bool {
		return pl[i].Player < pl[j].Player
	})
}

// Top returns a sorted copy of the best n rows by Net_True_Value
func (pl PlayerList) Top(n int) PlayerList {
	sorted := make(PlayerList, len(pl))
	copy(sorted, pl)
	sorted.SortByNetTrueValue()

	if n > len(sorted) {
		n = len(sorted)
	}
	if n < 0 {
		n = 0
	}
	return sorted[:n]
}

// GroupByStatus returns a map of status to players
func (pl PlayerList) GroupByStatus() map[string]PlayerList {
	grouped := make(map[string]PlayerList)

	for _, p := range pl {
		grouped[p.Status] = append(grouped[p.Status], p)
	}
	return grouped
}

// Stats represents aggregate values for a group of players
type Stats struct {
	Count        int
	TotalSalary  float64
	TotalScore   float64
	TrueValue    float64
	NetTrueValue float64
}

// GetStats returns aggregate values for the player list
func (pl PlayerList) GetStats() Stats {
	stats := Stats{Count: len(pl)}
	for _, p := range pl {
		stats.TotalSalary += p.Salary
		stats.TotalScore += p.Score
		stats.TrueValue += p.TrueValue
		stats.NetTrueValue += p.NetTrueValue
	}
	return stats
}
