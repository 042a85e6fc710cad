package models

import (
	"fmt"
	"strconv"
	"strings"
)

// PlaceholderStatuses are roster statuses that are not real franchises.
// They stay in the table but never feed league-wide sums or trade pools.
var PlaceholderStatuses = []string{
	"FA",
	"W <small>(Wed)</small>",
	"W <small>(Tue)</small>",
}

// IsPlaceholderStatus reports whether status is a free-agent or waiver placeholder
func IsPlaceholderStatus(status string) bool {
	for _, s := range PlaceholderStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// RankingRow is one row of the dynasty rankings dataset
type RankingRow struct {
	Player string
	Team   string
	Value  float64
}

// RosterRow is one row of the roster/salary/projection dataset
type RosterRow struct {
	Player        string
	Team          string
	Status        string // Fantasy franchise, or a placeholder status
	Position      string // Comma separated eligibility, e.g. "SS,2B"
	Score         float64
	Age           int
	Salary        float64
	Contract      string // Raw contract cell, e.g. "3yr"
	ContractYears int    // Years remaining parsed from Contract
}

// PlayerKey identifies a player row. Name alone is not unique across teams.
type PlayerKey struct {
	Name   string
	Salary float64
	Status string
}

// String is the display form, "Name | $Salary | Status"
func (k PlayerKey) String() string {
	return fmt.Sprintf("%s | $%s | %s", k.Name, formatSalary(k.Salary), k.Status)
}

func formatSalary(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}

// PlayerRecord is one row of the enriched table
type PlayerRecord struct {
	// Identity
	Player        string
	Team          string
	Status        string
	Position      string
	Positions     []string
	Contract      string
	ContractYears int
	Salary        float64

	// Raw inputs
	Score           float64
	Age             int
	Value           float64 // Dynasty ranking value, 0 when unranked
	HasDynastyValue bool

	// Derived
	ScoreNPV      float64
	FairSalary    float64
	DynastySalary float64
	Control       float64
	TotalValueOld float64
	NetValueOld   float64
	TrueValue     float64
	NetTrueValue  float64
}

// Key returns the composite identity of the row
func (p PlayerRecord) Key() PlayerKey {
	return PlayerKey{Name: p.Player, Salary: p.Salary, Status: p.Status}
}

// IsPlaceholder reports whether the row belongs to a placeholder status
func (p PlayerRecord) IsPlaceholder() bool {
	return IsPlaceholderStatus(p.Status)
}

// HasPosition checks eligibility at a single position (case-insensitive)
func (p PlayerRecord) HasPosition(position string) bool {
	for _, pos := range p.Positions {
		if strings.EqualFold(pos, strings.TrimSpace(position)) {
			return true
		}
	}
	return false
}

// ParsePositions splits a comma separated eligibility list
func ParsePositions(raw string) []string {
	var positions []string
	for _, pos := range strings.Split(raw, ",") {
		pos = strings.ToUpper(strings.TrimSpace(pos))
		if pos != "" {
			positions = append(positions, pos)
		}
	}
	return positions
}
