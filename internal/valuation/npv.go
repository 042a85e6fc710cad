// Package valuation turns a per-period scoring projection into a net present value
// over the remaining projected career.
package valuation

import "math"

const (
	// CareerEndAge is the age at which a player has no remaining projected value
	CareerEndAge = 38
	// PeakAge splits the growth phase from the decline phase
	PeakAge = 30
)

// NPV values score at the given age under p.
// Ages at or past CareerEndAge are worth exactly 0.
func NPV(score float64, age int, p Params) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	return npv(score, age, p.DiscountRate, p.GrowthPre30, p.GrowthPost30), nil
}

// npv assumes r differs from both growth rates
func npv(score float64, age int, r, gPre30, gPost30 float64) float64 {
	if age >= CareerEndAge {
		return 0
	}

	if age < PeakAge {
		n1 := PeakAge - age
		grow := GrowingAnnuity(score, r, gPre30, n1)

		atPeak := score * math.Pow(1+gPre30, float64(n1))
		decline := GrowingAnnuity(atPeak, r, gPost30, CareerEndAge-PeakAge) / math.Pow(1+r, float64(n1))

		return grow + decline
	}

	return GrowingAnnuity(score, r, gPost30, CareerEndAge-age)
}

// GrowingAnnuity is the present value of n payments starting at payment and
// growing at g per period, discounted at r. r must differ from g.
func GrowingAnnuity(payment, r, g float64, n int) float64 {
	return payment * (1 - math.Pow((1+g)/(1+r), float64(n))) / (r - g)
}
