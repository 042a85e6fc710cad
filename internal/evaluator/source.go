package evaluator

import (
	"fmt"

	"github.com/pmurley/ulb-trade-eval/internal/config"
	"github.com/pmurley/ulb-trade-eval/internal/rankings"
	"github.com/pmurley/ulb-trade-eval/internal/sheets"
)

// NewSource picks the dataset source: the Google sheet when configured, otherwise local
// CSV files. A rankings URL replaces the rankings dataset of either.
func NewSource(cfg *config.Config) (Source, error) {
	var source Source
	if cfg.GoogleSheetsID != "" {
		sheetsClient, err := sheets.NewClient(cfg.GoogleSheetsID, cfg.RankingsGID, cfg.RosterGID)
		if err != nil {
			return nil, fmt.Errorf("failed to create sheets client: %w", err)
		}
		source = sheetsClient
	} else {
		source = sheets.NewFileSource(cfg.RankingsCSV, cfg.RosterCSV)
	}

	if cfg.RankingsURL != "" {
		source = WithRankings{Source: source, Rankings: rankings.NewClient(cfg.RankingsURL)}
	}
	return source, nil
}
