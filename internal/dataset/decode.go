// Package dataset decodes the two flat player tables into typed rows.
package dataset

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/pmurley/ulb-trade-eval/internal/models"
)

const (
	RankingsDataset = "rankings"
	RosterDataset   = "roster"
)

// TeamAliases maps rankings team codes onto the roster's codes
var TeamAliases = map[string]string{
	"AZ":  "ARI",
	"CWS": "CHW",
	"FA":  "(N/A)",
}

// NormalizeTeam applies TeamAliases to a rankings team code
func NormalizeTeam(team string) string {
	team = strings.TrimSpace(team)
	if alias, ok := TeamAliases[team]; ok {
		return alias
	}
	return team
}

// header indexes column names; lookups are case-insensitive
type header map[string]int

func newHeader(row []string) header {
	h := make(header, len(row))
	for i, name := range row {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := h[key]; !dup {
			h[key] = i
		}
	}
	return h
}

func (h header) index(names ...string) (int, bool) {
	for _, n := range names {
		if i, ok := h[strings.ToLower(n)]; ok {
			return i, true
		}
	}
	return 0, false
}

func (h header) require(dataset string, names ...string) (int, error) {
	i, ok := h.index(names...)
	if !ok {
		return 0, &DataIntegrityError{Dataset: dataset, Column: names[0], Reason: "required column missing"}
	}
	return i, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// DecodeRankings decodes the dynasty rankings table. The first record is the header;
// "Name" is accepted for the player column. Rank, Age and Positions are ignored.
// A blank Value cell decodes as 0.
func DecodeRankings(records [][]string) ([]models.RankingRow, error) {
	if len(records) == 0 {
		return nil, &DataIntegrityError{Dataset: RankingsDataset, Column: "Name", Reason: "no header row"}
	}
	h := newHeader(records[0])

	nameCol, err := h.require(RankingsDataset, "Name", "Player")
	if err != nil {
		return nil, err
	}
	teamCol, err := h.require(RankingsDataset, "Team")
	if err != nil {
		return nil, err
	}
	valueCol, err := h.require(RankingsDataset, "Value")
	if err != nil {
		return nil, err
	}

	rows := make([]models.RankingRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		row := models.RankingRow{
			Player: cell(rec, nameCol),
			Team:   NormalizeTeam(cell(rec, teamCol)),
		}

		if raw := cell(rec, valueCol); raw != "" {
			v, err := parseNumber(raw)
			if err != nil {
				return nil, &DataIntegrityError{Dataset: RankingsDataset, Row: i + 1, Player: row.Player,
					Column: "Value", Value: raw, Reason: err.Error()}
			}
			row.Value = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// DecodeRoster decodes the roster/salary/projection table. RkOv, Opponent and +/- are ignored.
func DecodeRoster(records [][]string) ([]models.RosterRow, error) {
	if len(records) == 0 {
		return nil, &DataIntegrityError{Dataset: RosterDataset, Column: "Player", Reason: "no header row"}
	}
	h := newHeader(records[0])

	cols := map[string]int{}
	for _, name := range []string{"Player", "Team", "Status", "Position", "Score", "Age", "Salary", "Contract"} {
		i, err := h.require(RosterDataset, name)
		if err != nil {
			return nil, err
		}
		cols[name] = i
	}

	rows := make([]models.RosterRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		rowNum := i + 1
		row := models.RosterRow{
			Player:   cell(rec, cols["Player"]),
			Team:     strings.TrimSpace(cell(rec, cols["Team"])),
			Status:   cell(rec, cols["Status"]),
			Position: cell(rec, cols["Position"]),
			Contract: cell(rec, cols["Contract"]),
		}

		fail := func(column, value, reason string) error {
			return &DataIntegrityError{Dataset: RosterDataset, Row: rowNum, Player: row.Player,
				Column: column, Value: value, Reason: reason}
		}

		raw := cell(rec, cols["Score"])
		score, err := parseNumber(raw)
		if err != nil {
			return nil, fail("Score", raw, err.Error())
		}
		row.Score = score

		raw = cell(rec, cols["Age"])
		age, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fail("Age", raw, "not an integer")
		}
		row.Age = age

		raw = cell(rec, cols["Salary"])
		salary, err := parseNumber(raw)
		if err != nil {
			return nil, fail("Salary", raw, err.Error())
		}
		row.Salary = salary

		years, err := ParseContractYears(row.Contract)
		if err != nil {
			return nil, fail("Contract", row.Contract, err.Error())
		}
		row.ContractYears = years

		rows = append(rows, row)
	}
	return rows, nil
}

var (
	errNotANumber = errors.New("not a number")
	errNotFinite  = errors.New("not a finite number")
)

// parseNumber accepts plain numbers plus "$" and thousands separators.
// NaN and the infinities are rejected.
func parseNumber(raw string) (float64, error) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "$")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	if err != nil {
		return 0, errNotANumber
	}
	return v, nil
}
