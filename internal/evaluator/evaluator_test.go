package evaluator

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/pmurley/ulb-trade-eval/internal/builder"
	"github.com/pmurley/ulb-trade-eval/internal/cache"
	"github.com/pmurley/ulb-trade-eval/internal/models"
	"github.com/pmurley/ulb-trade-eval/internal/testfixtures"
	"github.com/pmurley/ulb-trade-eval/internal/valuation"
	"github.com/pmurley/ulb-trade-eval/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	calls int
	err   error
}

func (f *fakeSource) LoadDatasets() ([]models.RankingRow, []models.RosterRow, error) {
	f.calls++
	if f.err != nil {
		return nil, nil, f.err
	}
	return testfixtures.Rankings(), testfixtures.Roster(), nil
}

type fakeRankings struct {
	rows []models.RankingRow
	err  error
}

func (f fakeRankings) FetchRankings() ([]models.RankingRow, error) {
	return f.rows, f.err
}

func quietLogger() *logger.Logger {
	log := logger.New("error")
	log.SetOutput(io.Discard)
	return log
}

func newEvaluator(src Source) *Evaluator {
	return New(src, cache.New(time.Minute), builder.DefaultLeagueBudget, quietLogger())
}

func TestTable_LoadsOnceAndMemoizes(t *testing.T) {
	src := &fakeSource{}
	e := newEvaluator(src)

	first, err := e.Table(valuation.DefaultParams())
	require.NoError(t, err)
	second, err := e.Table(valuation.DefaultParams())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, src.calls)
	assert.Len(t, first.Players, len(testfixtures.Roster()))
}

func TestTable_DistinctParams(t *testing.T) {
	src := &fakeSource{}
	e := newEvaluator(src)

	p := valuation.DefaultParams()
	base, err := e.Table(p)
	require.NoError(t, err)

	p.DiscountRate = 0.10
	other, err := e.Table(p)
	require.NoError(t, err)

	assert.NotSame(t, base, other)
	assert.Equal(t, 0.10, other.Params.DiscountRate)
	assert.Equal(t, 1, src.calls, "datasets are shared across parameter sets")
	assert.Equal(t, 2, e.cache.TableCount())
}

func TestTable_InvalidParams(t *testing.T) {
	e := newEvaluator(&fakeSource{})

	p := valuation.DefaultParams()
	p.GrowthPre30 = p.DiscountRate
	_, err := e.Table(p)

	var cfgErr *valuation.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestReload_DropsTables(t *testing.T) {
	src := &fakeSource{}
	e := newEvaluator(src)

	before, err := e.Table(valuation.DefaultParams())
	require.NoError(t, err)
	require.NoError(t, e.Reload())
	assert.Equal(t, 0, e.cache.TableCount())

	after, err := e.Table(valuation.DefaultParams())
	require.NoError(t, err)
	assert.NotSame(t, before, after)
	assert.Equal(t, 2, src.calls)
}

func TestReload_FailureDropsOldData(t *testing.T) {
	src := &fakeSource{}
	e := newEvaluator(src)

	_, err := e.Table(valuation.DefaultParams())
	require.NoError(t, err)

	boom := errors.New("sheet unavailable")
	src.err = boom
	assert.ErrorIs(t, e.Reload(), boom)

	_, _, found := e.cache.GetDatasets()
	assert.False(t, found)
	assert.Equal(t, 0, e.cache.TableCount())

	_, err = e.Table(valuation.DefaultParams())
	assert.ErrorIs(t, err, boom, "tables are not served from the data the reload replaced")
	assert.Equal(t, 3, src.calls)
}

func TestTable_SourceError(t *testing.T) {
	boom := errors.New("sheet unavailable")
	e := newEvaluator(&fakeSource{err: boom})

	_, err := e.Table(valuation.DefaultParams())
	assert.ErrorIs(t, err, boom)
}

func TestWithRankings(t *testing.T) {
	override := []models.RankingRow{{Player: "Alpha", Team: "NYY", Value: 5}}
	src := WithRankings{Source: &fakeSource{}, Rankings: fakeRankings{rows: override}}

	rankings, roster, err := src.LoadDatasets()
	require.NoError(t, err)
	assert.Equal(t, override, rankings)
	assert.Len(t, roster, len(testfixtures.Roster()))

	failing := WithRankings{Source: &fakeSource{}, Rankings: fakeRankings{err: errors.New("down")}}
	_, _, err = failing.LoadDatasets()
	assert.Error(t, err)
}
