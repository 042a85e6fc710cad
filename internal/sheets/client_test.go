package sheets

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/pmurley/ulb-trade-eval/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rankingsCSV = `Rank,Name,Team,Age,Positions,Value
1,Alpha,NYY,26,SS,80
2,Delta,BOS,28,C,70
`

const rosterCSV = `RkOv,Player,Team,Position,Status,Age,Opponent,Salary,Contract,Score,+/-
1,Alpha,NYY,"SS,2B",Sharks,26,@BOS,10,3yr,400,0
2,Delta,BOS,C,Expos,28,NYY,15,2yr,350,0
`

func TestClientLoadDatasets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spreadsheets/d/sheet-123/export", r.URL.Path)
		assert.Equal(t, "csv", r.URL.Query().Get("format"))
		switch r.URL.Query().Get("gid") {
		case "11":
			fmt.Fprint(w, rankingsCSV)
		case "22":
			fmt.Fprint(w, rosterCSV)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c, err := NewClient("sheet-123", "11", "22")
	require.NoError(t, err)
	c.baseURL = server.URL

	rankings, roster, err := c.LoadDatasets()
	require.NoError(t, err)
	require.Len(t, rankings, 2)
	require.Len(t, roster, 2)
	assert.Equal(t, "SS,2B", roster[0].Position)
	assert.Equal(t, 3, roster[0].ContractYears)
	assert.Equal(t, 70.0, rankings[1].Value)
}

func TestClientBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	c, err := NewClient("sheet-123", "11", "22")
	require.NoError(t, err)
	c.baseURL = server.URL

	_, _, err = c.LoadDatasets()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient("", "1", "2")
	assert.Error(t, err)
	_, err = NewClient("id", "", "2")
	assert.Error(t, err)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	rankingsPath := filepath.Join(dir, "rankings.csv")
	rosterPath := filepath.Join(dir, "roster.csv")
	require.NoError(t, os.WriteFile(rankingsPath, []byte(rankingsCSV), 0644))
	require.NoError(t, os.WriteFile(rosterPath, []byte(rosterCSV), 0644))

	rankings, roster, err := NewFileSource(rankingsPath, rosterPath).LoadDatasets()
	require.NoError(t, err)
	assert.Len(t, rankings, 2)
	assert.Len(t, roster, 2)
}

func TestFileSourceDataIntegrity(t *testing.T) {
	dir := t.TempDir()
	rankingsPath := filepath.Join(dir, "rankings.csv")
	rosterPath := filepath.Join(dir, "roster.csv")
	require.NoError(t, os.WriteFile(rankingsPath, []byte(rankingsCSV), 0644))
	require.NoError(t, os.WriteFile(rosterPath, []byte(`Player,Team,Position,Status,Age,Salary,Contract,Score
Alpha,NYY,SS,Sharks,26,10,long,400
`), 0644))

	_, _, err := NewFileSource(rankingsPath, rosterPath).LoadDatasets()
	var dataErr *dataset.DataIntegrityError
	require.True(t, errors.As(err, &dataErr))
	assert.Equal(t, "Alpha", dataErr.Player)
}

func TestFileSourceMissingFile(t *testing.T) {
	_, _, err := NewFileSource("/nonexistent/a.csv", "/nonexistent/b.csv").LoadDatasets()
	assert.Error(t, err)
}
