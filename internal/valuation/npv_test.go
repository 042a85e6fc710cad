package valuation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNPV_ReferenceValues(t *testing.T) {
	p := DefaultParams()

	cases := []struct {
		name  string
		score float64
		age   int
		want  float64
	}{
		{"two phase at 25", 100, 25, 633.1188332435},
		{"two phase at 29", 100, 29, 468.5158791404},
		{"decline only at 30", 100, 30, 416.9154790570},
		{"decline only at 35", 100, 35, 225.4422872873},
		{"negative score", -50, 33, -161.1174188569},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NPV(tc.score, tc.age, p)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-6)
		})
	}
}

func TestNPV_CareerCutoff(t *testing.T) {
	p := DefaultParams()
	for _, age := range []int{38, 39, 45} {
		for _, score := range []float64{-10, 0, 250} {
			got, err := NPV(score, age, p)
			require.NoError(t, err)
			assert.Equal(t, 0.0, got, "age %d score %v", age, score)
		}
	}
}

func TestNPV_TwoPhaseMatchesPiecewiseClosedForm(t *testing.T) {
	p := Params{DiscountRate: 0.10, GrowthPre30: 0.05, GrowthPost30: -0.08}
	score := 80.0

	got, err := NPV(score, 27, p)
	require.NoError(t, err)

	// Three growth years, then eight decline years discounted back three periods
	grow := 0.0
	for i := 0; i < 3; i++ {
		grow += score * pow(1.05, i) / pow(1.10, i+1)
	}
	atPeak := score * pow(1.05, 3)
	decline := 0.0
	for i := 0; i < 8; i++ {
		decline += atPeak * pow(0.92, i) / pow(1.10, i+1)
	}
	decline /= pow(1.10, 3)

	assert.InDelta(t, grow+decline, got, 1e-9)
}

func TestNPV_RejectsUndefinedAnnuity(t *testing.T) {
	cases := []Params{
		{DiscountRate: 0.03, GrowthPre30: 0.03, GrowthPost30: -0.05},
		{DiscountRate: 0.05, GrowthPre30: 0.03, GrowthPost30: 0.05},
		{DiscountRate: -1, GrowthPre30: 0.03, GrowthPost30: -0.05},
	}
	for _, p := range cases {
		_, err := NPV(100, 25, p)
		var cfgErr *ConfigurationError
		require.Error(t, err)
		assert.True(t, errors.As(err, &cfgErr), "expected ConfigurationError for %+v", p)
	}
}

func TestParamsKey(t *testing.T) {
	a := DefaultParams()
	b := DefaultParams()
	assert.Equal(t, a.Key(), b.Key())

	b.ControlWeight = 2.5
	assert.NotEqual(t, a.Key(), b.Key())
}

func pow(base float64, n int) float64 {
	out := 1.0
	for i := 0; i < n; i++ {
		out *= base
	}
	return out
}
