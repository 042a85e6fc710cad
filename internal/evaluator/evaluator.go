// Package evaluator owns the loaded datasets and hands out enriched tables,
// building each parameter set once per load.
package evaluator

import (
	"fmt"
	"sync"

	"github.com/pmurley/ulb-trade-eval/internal/builder"
	"github.com/pmurley/ulb-trade-eval/internal/cache"
	"github.com/pmurley/ulb-trade-eval/internal/models"
	"github.com/pmurley/ulb-trade-eval/internal/valuation"
	"github.com/pmurley/ulb-trade-eval/pkg/logger"
)

// Source loads the rankings and roster datasets
type Source interface {
	LoadDatasets() ([]models.RankingRow, []models.RosterRow, error)
}

// RankingsFetcher provides rankings from somewhere other than the main source
type RankingsFetcher interface {
	FetchRankings() ([]models.RankingRow, error)
}

// WithRankings takes the roster from Source and the rankings from Rankings
type WithRankings struct {
	Source   Source
	Rankings RankingsFetcher
}

func (w WithRankings) LoadDatasets() ([]models.RankingRow, []models.RosterRow, error) {
	_, roster, err := w.Source.LoadDatasets()
	if err != nil {
		return nil, nil, err
	}
	rankings, err := w.Rankings.FetchRankings()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch rankings: %w", err)
	}
	return rankings, roster, nil
}

type Evaluator struct {
	source Source
	cache  *cache.Cache
	budget float64
	logger *logger.Logger

	// serializes loads and builds so a cold cache is filled once
	mu sync.Mutex
}

func New(source Source, c *cache.Cache, budget float64, log *logger.Logger) *Evaluator {
	return &Evaluator{
		source: source,
		cache:  c,
		budget: budget,
		logger: log,
	}
}

// Reload discards the cached datasets and every memoized table, then loads the
// datasets again. A failed reload leaves the cache empty, so the next Table call
// retries the source rather than serving the old data.
func (e *Evaluator) Reload() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cache.Flush()
	_, _, err := e.load()
	return err
}

func (e *Evaluator) load() ([]models.RankingRow, []models.RosterRow, error) {
	rankings, roster, err := e.source.LoadDatasets()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load datasets: %w", err)
	}
	e.cache.SetDatasets(rankings, roster)
	e.logger.WithFields(logger.Fields{
		"rankings": len(rankings),
		"roster":   len(roster),
	}).Info("Loaded player datasets")
	return rankings, roster, nil
}

// Table returns the enriched table for p, loading the datasets if the cache has expired
func (e *Evaluator) Table(p valuation.Params) (*models.Table, error) {
	if table, found := e.cache.GetTable(p); found {
		e.logger.Debug("Table cache hit for ", p.Key())
		return table, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if table, found := e.cache.GetTable(p); found {
		return table, nil
	}

	rankings, roster, found := e.cache.GetDatasets()
	if !found {
		e.logger.Info("Cache expired, auto-reloading player data...")
		var err error
		if rankings, roster, err = e.load(); err != nil {
			return nil, err
		}
	}

	table, err := builder.Build(rankings, roster, p, e.budget)
	if err != nil {
		return nil, err
	}
	e.cache.SetTable(table)

	e.logger.WithFields(logger.Fields{
		"params":  p.Key(),
		"players": len(table.Players),
		"dpp":     table.DollarsPerPoint,
		"ddpp":    table.DynastyDollarsPerPoint,
	}).Debug("Built valuation table")
	return table, nil
}
