package sheets

import (
	"fmt"
	"os"

	"github.com/pmurley/ulb-trade-eval/internal/models"
)

// FileSource reads both datasets from local CSV exports
type FileSource struct {
	RankingsPath string
	RosterPath   string
}

func NewFileSource(rankingsPath, rosterPath string) *FileSource {
	return &FileSource{RankingsPath: rankingsPath, RosterPath: rosterPath}
}

func (f *FileSource) LoadDatasets() ([]models.RankingRow, []models.RosterRow, error) {
	rankingData, err := readFile(f.RankingsPath)
	if err != nil {
		return nil, nil, err
	}
	rosterData, err := readFile(f.RosterPath)
	if err != nil {
		return nil, nil, err
	}
	return decode(rankingData, rosterData)
}

func readFile(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	data, err := readCSV(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}
