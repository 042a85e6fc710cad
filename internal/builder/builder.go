// Package builder joins the rankings and roster datasets and derives the
// enriched player table for one set of economic assumptions.
package builder

import (
	"math"

	"github.com/pmurley/ulb-trade-eval/internal/dataset"
	"github.com/pmurley/ulb-trade-eval/internal/models"
	"github.com/pmurley/ulb-trade-eval/internal/valuation"
	"gonum.org/v1/gonum/floats"
)

// DefaultLeagueBudget is the league-wide dollars available: 30 teams at $265
const DefaultLeagueBudget float64 = 265 * 30

// ContractControlYears is the contract length that earns no control bonus
const ContractControlYears = 5

type joinKey struct {
	player string
	team   string
}

// Build derives the enriched table. It fails before producing any rows if the
// parameters are invalid or the league has no rostered score to normalize by.
func Build(rankings []models.RankingRow, roster []models.RosterRow, p valuation.Params, budget float64) (*models.Table, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(budget) || math.IsInf(budget, 0) || budget <= 0 {
		return nil, &valuation.ConfigurationError{Field: "league_budget", Value: budget, Reason: "must be a positive number"}
	}

	// First ranking wins when a (player, team) pair repeats
	dynasty := make(map[joinKey]float64, len(rankings))
	for i, r := range rankings {
		if !isFinite(r.Value) {
			return nil, &dataset.DataIntegrityError{Dataset: dataset.RankingsDataset, Row: i + 1, Player: r.Player,
				Column: "Value", Reason: "not a finite number"}
		}
		k := joinKey{player: r.Player, team: r.Team}
		if _, seen := dynasty[k]; !seen {
			dynasty[k] = r.Value
		}
	}

	var scores, values []float64
	for i, row := range roster {
		column := ""
		switch {
		case !isFinite(row.Score):
			column = "Score"
		case !isFinite(row.Salary):
			column = "Salary"
		}
		if column != "" {
			return nil, &dataset.DataIntegrityError{Dataset: dataset.RosterDataset, Row: i + 1, Player: row.Player,
				Column: column, Reason: "not a finite number"}
		}
		if models.IsPlaceholderStatus(row.Status) {
			continue
		}
		scores = append(scores, row.Score)
		values = append(values, dynasty[joinKey{player: row.Player, team: row.Team}])
	}

	totalScore := floats.Sum(scores)
	if totalScore == 0 {
		return nil, &dataset.DataIntegrityError{Dataset: dataset.RosterDataset, Column: "Score",
			Reason: "rostered players have no total score to normalize by"}
	}
	dollarsPerPoint := budget / totalScore

	dynastyDollarsPerPoint := 0.0
	if totalValue := floats.Sum(values); totalValue != 0 {
		dynastyDollarsPerPoint = budget / totalValue
	}

	players := make(models.PlayerList, 0, len(roster))
	for _, row := range roster {
		value, ranked := dynasty[joinKey{player: row.Player, team: row.Team}]
		rec, err := enrich(row, value, ranked, p, dollarsPerPoint, dynastyDollarsPerPoint)
		if err != nil {
			return nil, err
		}
		players = append(players, rec)
	}

	return &models.Table{
		Params:                 p,
		LeagueBudget:           budget,
		DollarsPerPoint:        dollarsPerPoint,
		DynastyDollarsPerPoint: dynastyDollarsPerPoint,
		Players:                players,
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func enrich(row models.RosterRow, value float64, ranked bool, p valuation.Params, dollarsPerPoint, dynastyDollarsPerPoint float64) (models.PlayerRecord, error) {
	npv, err := valuation.NPV(row.Score, row.Age, p)
	if err != nil {
		return models.PlayerRecord{}, err
	}

	rec := models.PlayerRecord{
		Player:          row.Player,
		Team:            row.Team,
		Status:          row.Status,
		Position:        row.Position,
		Positions:       models.ParsePositions(row.Position),
		Contract:        row.Contract,
		ContractYears:   row.ContractYears,
		Salary:          row.Salary,
		Score:           row.Score,
		Age:             row.Age,
		Value:           value,
		HasDynastyValue: ranked,
		ScoreNPV:        npv,
	}

	salaryCost := row.Salary * p.SalaryWeight

	rec.FairSalary = npv * dollarsPerPoint
	rec.DynastySalary = value * dynastyDollarsPerPoint
	rec.Control = float64(ContractControlYears-row.ContractYears) * p.ControlWeight
	rec.TotalValueOld = rec.FairSalary + rec.DynastySalary + rec.Control
	rec.NetValueOld = rec.TotalValueOld - salaryCost
	rec.TrueValue = row.Score + rec.DynastySalary + rec.Control
	rec.NetTrueValue = rec.TrueValue - salaryCost

	return rec, nil
}
