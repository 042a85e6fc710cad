package sheets

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pmurley/ulb-trade-eval/internal/dataset"
	"github.com/pmurley/ulb-trade-eval/internal/models"
)

const defaultBaseURL = "https://docs.google.com"

// Client fetches both datasets from tabs of a public Google Sheet using CSV export
type Client struct {
	spreadsheetID string
	rankingsGID   string
	rosterGID     string
	baseURL       string
	httpClient    *http.Client
}

func NewClient(spreadsheetID, rankingsGID, rosterGID string) (*Client, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID is required")
	}
	if rankingsGID == "" || rosterGID == "" {
		return nil, fmt.Errorf("both rankings and roster sheet GIDs are required")
	}
	return &Client{
		spreadsheetID: spreadsheetID,
		rankingsGID:   rankingsGID,
		rosterGID:     rosterGID,
		baseURL:       defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// LoadDatasets fetches and decodes the rankings and roster tabs
func (c *Client) LoadDatasets() ([]models.RankingRow, []models.RosterRow, error) {
	rankingData, err := c.GetSheetDataCSV(c.rankingsGID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load rankings sheet: %w", err)
	}
	rosterData, err := c.GetSheetDataCSV(c.rosterGID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load roster sheet: %w", err)
	}
	return decode(rankingData, rosterData)
}

// GetSheetDataCSV fetches data from a specific sheet tab as CSV
func (c *Client) GetSheetDataCSV(gid string) ([][]string, error) {
	url := fmt.Sprintf("%s/spreadsheets/d/%s/export?format=csv&gid=%s", c.baseURL, c.spreadsheetID, gid)

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return readCSV(resp.Body)
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	var data [][]string

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		data = append(data, record)
	}

	return data, nil
}

func decode(rankingData, rosterData [][]string) ([]models.RankingRow, []models.RosterRow, error) {
	rankings, err := dataset.DecodeRankings(rankingData)
	if err != nil {
		return nil, nil, err
	}
	roster, err := dataset.DecodeRoster(rosterData)
	if err != nil {
		return nil, nil, err
	}
	return rankings, roster, nil
}
