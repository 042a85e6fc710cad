package valuation

import (
	"fmt"
	"math"
)

// Reference defaults for the economic assumptions
const (
	DefaultDiscountRate  = 0.13
	DefaultGrowthPre30   = 0.03
	DefaultGrowthPost30  = -0.05
	DefaultSalaryWeight  = 0.7
	DefaultControlWeight = 2.0
)

// Params holds the economic assumptions a table is built under.
// It is a comparable value and safe to use as a cache key.
type Params struct {
	DiscountRate  float64 // r
	GrowthPre30   float64 // growth per period before age 30
	GrowthPost30  float64 // growth (usually decline) per period from 30 on
	SalaryWeight  float64 // weight of current salary in the net metrics
	ControlWeight float64 // value per year of contract control below five
}

// DefaultParams returns the reference economic assumptions
func DefaultParams() Params {
	return Params{
		DiscountRate:  DefaultDiscountRate,
		GrowthPre30:   DefaultGrowthPre30,
		GrowthPost30:  DefaultGrowthPost30,
		SalaryWeight:  DefaultSalaryWeight,
		ControlWeight: DefaultControlWeight,
	}
}

// Key returns a stable string form of the tuple
func (p Params) Key() string {
	return fmt.Sprintf("r=%g|pre=%g|post=%g|sw=%g|cw=%g",
		p.DiscountRate, p.GrowthPre30, p.GrowthPost30, p.SalaryWeight, p.ControlWeight)
}

// ConfigurationError reports a parameter combination the engine cannot value under
type ConfigurationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s=%g: %s", e.Field, e.Value, e.Reason)
}

// Validate rejects parameters that make the growing annuity undefined
func (p Params) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"discount_rate", p.DiscountRate},
		{"growth_pre30", p.GrowthPre30},
		{"growth_post30", p.GrowthPost30},
		{"salary_weight", p.SalaryWeight},
		{"control_weight", p.ControlWeight},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &ConfigurationError{Field: f.name, Value: f.value, Reason: "must be a finite number"}
		}
	}

	if p.DiscountRate <= -1 {
		return &ConfigurationError{Field: "discount_rate", Value: p.DiscountRate, Reason: "must be greater than -1"}
	}
	if p.DiscountRate == p.GrowthPre30 {
		return &ConfigurationError{Field: "discount_rate", Value: p.DiscountRate, Reason: "must differ from growth_pre30"}
	}
	if p.DiscountRate == p.GrowthPost30 {
		return &ConfigurationError{Field: "discount_rate", Value: p.DiscountRate, Reason: "must differ from growth_post30"}
	}
	return nil
}
