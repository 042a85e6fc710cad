// Package trade evaluates two-sided player trades against an enriched table.
package trade

import (
	"math"

	"github.com/pmurley/ulb-trade-eval/internal/models"
	"github.com/pmurley/ulb-trade-eval/internal/valuation"
	"gonum.org/v1/gonum/floats"
)

// Reference defaults for trade settings
const (
	DefaultMargin              = 0.05
	DefaultMultiPlayerDiscount = 0.15
)

// Settings holds the trade-level knobs
type Settings struct {
	Margin              float64 // Width of the even band around 0.5
	MultiPlayerDiscount float64 // Fraction knocked off a side with more than one player
}

// DefaultSettings returns the reference trade settings
func DefaultSettings() Settings {
	return Settings{Margin: DefaultMargin, MultiPlayerDiscount: DefaultMultiPlayerDiscount}
}

// Validate requires a margin in [0, 1] and a package discount in [0, 1)
func (s Settings) Validate() error {
	if math.IsNaN(s.Margin) || s.Margin < 0 || s.Margin > 1 {
		return &valuation.ConfigurationError{Field: "margin", Value: s.Margin, Reason: "must be between 0 and 1"}
	}
	if math.IsNaN(s.MultiPlayerDiscount) || s.MultiPlayerDiscount < 0 || s.MultiPlayerDiscount >= 1 {
		return &valuation.ConfigurationError{Field: "multi_player_discount", Value: s.MultiPlayerDiscount,
			Reason: "must be at least 0 and below 1"}
	}
	return nil
}

// SideTotals aggregates one side of a trade
type SideTotals struct {
	Players models.PlayerList // Matched rows in table order
	Count   int               // Players named on the side, used for the package discount

	RawNetValueOld  float64
	RawTrueValue    float64
	RawNetTrueValue float64
	Salary          float64 // Never discounted

	NetValueOld  float64
	TrueValue    float64
	NetTrueValue float64
	Discounted   bool
}

// Result is the outcome of evaluating one trade
type Result struct {
	Send    SideTotals
	Receive SideTotals

	NetValueOld  float64 // receive - send, Net_Value_Old
	NetSalary    float64 // receive - send, Salary
	NetValueTrue float64 // receive - send, Net_True_Value

	// Position is the share of discounted Net_True_Value flowing to the receiving
	// side of the sender, 0.5 being perfectly even.
	Position float64

	Unmatched []models.PlayerKey // Keys that named no row in the table
}

// ApplyPackageDiscount discounts total when the side has more than one player
func ApplyPackageDiscount(total float64, playerCount int, discountPct float64) float64 {
	if playerCount > 1 {
		return total * (1 - discountPct)
	}
	return total
}

// Evaluate sends the send keys and receives the receive keys. Either side may be empty.
func Evaluate(table *models.Table, send, receive []models.PlayerKey, discountPct float64) Result {
	var result Result
	var missing []models.PlayerKey

	result.Send, missing = side(table, send, discountPct)
	result.Unmatched = append(result.Unmatched, missing...)
	result.Receive, missing = side(table, receive, discountPct)
	result.Unmatched = append(result.Unmatched, missing...)

	result.NetValueOld = result.Receive.NetValueOld - result.Send.NetValueOld
	result.NetSalary = result.Receive.Salary - result.Send.Salary
	result.NetValueTrue = result.Receive.NetTrueValue - result.Send.NetTrueValue

	result.Position = position(result.Send.NetTrueValue, result.Receive.NetTrueValue)
	return result
}

func position(send, receive float64) float64 {
	total := send + receive
	if total == 0 {
		return 0.5
	}
	return receive / total
}

func side(table *models.Table, keys []models.PlayerKey, discountPct float64) (SideTotals, []models.PlayerKey) {
	totals := SideTotals{Count: len(keys)}
	if len(keys) == 0 {
		return totals, nil
	}

	rows, missing := table.Lookup(keys)
	totals.Players = rows

	netOld := make([]float64, 0, len(rows))
	salary := make([]float64, 0, len(rows))
	trueValue := make([]float64, 0, len(rows))
	netTrue := make([]float64, 0, len(rows))
	for _, p := range rows {
		netOld = append(netOld, p.NetValueOld)
		salary = append(salary, p.Salary)
		trueValue = append(trueValue, p.TrueValue)
		netTrue = append(netTrue, p.NetTrueValue)
	}

	totals.RawNetValueOld = floats.Sum(netOld)
	totals.Salary = floats.Sum(salary)
	totals.RawTrueValue = floats.Sum(trueValue)
	totals.RawNetTrueValue = floats.Sum(netTrue)

	totals.NetValueOld = ApplyPackageDiscount(totals.RawNetValueOld, totals.Count, discountPct)
	totals.TrueValue = ApplyPackageDiscount(totals.RawTrueValue, totals.Count, discountPct)
	totals.NetTrueValue = ApplyPackageDiscount(totals.RawNetTrueValue, totals.Count, discountPct)
	totals.Discounted = totals.Count > 1

	return totals, missing
}

// Breakdown returns every player in the trade, best Net_True_Value first
func (r Result) Breakdown() models.PlayerList {
	all := make(models.PlayerList, 0, len(r.Send.Players)+len(r.Receive.Players))
	all = append(all, r.Send.Players...)
	all = append(all, r.Receive.Players...)
	all.SortByNetTrueValue()
	return all
}

// Verdict classifies the result against a margin
func (r Result) Verdict(margin float64) Verdict {
	return Classify(r.Position, margin)
}
