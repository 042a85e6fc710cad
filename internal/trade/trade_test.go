package trade

import (
	"math"
	"testing"

	"github.com/pmurley/ulb-trade-eval/internal/models"
	"github.com/pmurley/ulb-trade-eval/internal/testfixtures"
	"github.com/pmurley/ulb-trade-eval/internal/valuation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPackageDiscount(t *testing.T) {
	for _, d := range []float64{0, 0.15, 0.3, 1} {
		assert.Equal(t, 123.4, ApplyPackageDiscount(123.4, 1, d), "single player never discounted")
		assert.Equal(t, 123.4, ApplyPackageDiscount(123.4, 0, d))
	}
	assert.InDelta(t, 100*0.85, ApplyPackageDiscount(100, 2, 0.15), 1e-12)
	assert.InDelta(t, -40*0.85, ApplyPackageDiscount(-40, 3, 0.15), 1e-12)
}

func TestEvaluate_EmptySides(t *testing.T) {
	table := testfixtures.Table(t)

	result := Evaluate(table, nil, nil, 0.15)
	assert.Equal(t, 0.5, result.Position)
	assert.Zero(t, result.Send.NetTrueValue)
	assert.Zero(t, result.Receive.NetTrueValue)
	assert.Zero(t, result.Send.Salary)
	assert.Zero(t, result.NetValueOld)
	assert.Zero(t, result.NetSalary)
	assert.Zero(t, result.NetValueTrue)
	assert.Empty(t, result.Unmatched)
	assert.Equal(t, Even, result.Verdict(0.05))
}

func TestEvaluate_OneForOne(t *testing.T) {
	table := testfixtures.Table(t)
	alpha := testfixtures.Key(t, table, "Alpha")
	delta := testfixtures.Key(t, table, "Delta")

	result := Evaluate(table, []models.PlayerKey{alpha}, []models.PlayerKey{delta}, 0.15)

	assert.InDelta(t, 2752.555556, result.Send.NetTrueValue, 1e-6)
	assert.InDelta(t, 2406.611111, result.Receive.NetTrueValue, 1e-6)
	assert.InDelta(t, 0.4664728369, result.Position, 1e-9)
	assert.InDelta(t, 2406.611111-2752.555556, result.NetValueTrue, 1e-6)
	assert.InDelta(t, 5.0, result.NetSalary, 1e-12)
	assert.False(t, result.Send.Discounted)
	assert.False(t, result.Receive.Discounted)

	// Band is [0.475, 0.525]
	assert.Equal(t, FavorsPartner, result.Verdict(0.05))

	flipped := Evaluate(table, []models.PlayerKey{delta}, []models.PlayerKey{alpha}, 0.15)
	assert.Equal(t, FavorsSender, flipped.Verdict(0.05))
	assert.Equal(t, Even, result.Verdict(0.10))
}

func TestEvaluate_PositionsReflect(t *testing.T) {
	table := testfixtures.Table(t)
	x := []models.PlayerKey{testfixtures.Key(t, table, "Alpha"), testfixtures.Key(t, table, "Charlie")}
	y := []models.PlayerKey{testfixtures.Key(t, table, "Delta")}

	xy := Evaluate(table, x, y, 0.15)
	yx := Evaluate(table, y, x, 0.15)
	assert.InDelta(t, 1.0, xy.Position+yx.Position, 1e-12)
	assert.InDelta(t, -xy.NetValueTrue, yx.NetValueTrue, 1e-9)
}

func TestEvaluate_PackageDiscountSkipsSalary(t *testing.T) {
	table := testfixtures.Table(t)
	send := []models.PlayerKey{testfixtures.Key(t, table, "Alpha"), testfixtures.Key(t, table, "Bravo")}
	receive := []models.PlayerKey{testfixtures.Key(t, table, "Delta")}

	result := Evaluate(table, send, receive, 0.15)

	require.True(t, result.Send.Discounted)
	assert.InDelta(t, 3590.683333, result.Send.NetTrueValue, 1e-6)
	assert.InDelta(t, result.Send.RawNetTrueValue*0.85, result.Send.NetTrueValue, 1e-9)
	assert.InDelta(t, result.Send.RawTrueValue*0.85, result.Send.TrueValue, 1e-9)
	assert.InDelta(t, 17583.437314, result.Send.NetValueOld, 1e-6)
	assert.Equal(t, 30.0, result.Send.Salary, "salary is never discounted")
	assert.InDelta(t, 0.4012828007, result.Position, 1e-9)
	assert.InDelta(t, 10750.656682-17583.437314, result.NetValueOld, 1e-5)
	assert.Equal(t, FavorsPartner, result.Verdict(DefaultMargin))
}

func TestEvaluate_UnknownKeysAreReported(t *testing.T) {
	table := testfixtures.Table(t)
	ghost := models.PlayerKey{Name: "Ghost", Salary: 3, Status: testfixtures.Expos}

	result := Evaluate(table, []models.PlayerKey{testfixtures.Key(t, table, "Alpha")}, []models.PlayerKey{ghost}, 0.15)
	assert.Equal(t, []models.PlayerKey{ghost}, result.Unmatched)
	assert.Zero(t, result.Receive.NetTrueValue)
	assert.Equal(t, 0.0, result.Position)
}

func TestBreakdownSortsByNetTrueValue(t *testing.T) {
	table := testfixtures.Table(t)
	result := Evaluate(table,
		[]models.PlayerKey{testfixtures.Key(t, table, "Echo")},
		[]models.PlayerKey{testfixtures.Key(t, table, "Alpha"), testfixtures.Key(t, table, "Charlie")},
		0.15)

	rows := result.Breakdown()
	require.Len(t, rows, 3)
	assert.Equal(t, "Alpha", rows[0].Player)
	assert.Equal(t, "Charlie", rows[1].Player)
	assert.Equal(t, "Echo", rows[2].Player)
}

func TestClassifyBoundaries(t *testing.T) {
	assert.Equal(t, Even, Classify(0.5, 0))
	assert.Equal(t, Even, Classify(0.52, 0.05))
	assert.Equal(t, Even, Classify(0.48, 0.05))
	assert.Equal(t, FavorsSender, Classify(0.53, 0.05))
	assert.Equal(t, FavorsPartner, Classify(0.47, 0.05))
	assert.Equal(t, FavorsSender, Classify(0.5001, 0))
	assert.Equal(t, "favors partner", FavorsPartner.String())
}

func TestSettingsValidate(t *testing.T) {
	assert.NoError(t, DefaultSettings().Validate())
	assert.NoError(t, Settings{Margin: 1, MultiPlayerDiscount: 0}.Validate())

	cases := map[string]Settings{
		"negative margin":   {Margin: -0.1, MultiPlayerDiscount: 0.15},
		"margin above one":  {Margin: 1.5, MultiPlayerDiscount: 0.15},
		"NaN margin":        {Margin: math.NaN(), MultiPlayerDiscount: 0.15},
		"negative discount": {Margin: 0.05, MultiPlayerDiscount: -0.2},
		"discount of one":   {Margin: 0.05, MultiPlayerDiscount: 1},
		"NaN discount":      {Margin: 0.05, MultiPlayerDiscount: math.NaN()},
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			var cfgErr *valuation.ConfigurationError
			assert.ErrorAs(t, s.Validate(), &cfgErr)
		})
	}
}
