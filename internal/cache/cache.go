package cache

import (
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pmurley/ulb-trade-eval/internal/models"
	"github.com/pmurley/ulb-trade-eval/internal/valuation"
)

const (
	rankingsKey = "rankings"
	rosterKey   = "roster"
	tablePrefix = "table:"
)

// Cache memoizes the raw datasets and every enriched table built from them.
// Tables are keyed by the full parameter tuple.
type Cache struct {
	cache    *gocache.Cache
	mu       sync.RWMutex
	duration time.Duration
}

func New(duration time.Duration) *Cache {
	return &Cache{
		cache:    gocache.New(duration, duration*2),
		duration: duration,
	}
}

// SetDatasets stores freshly loaded datasets and drops every table built from older ones
func (c *Cache) SetDatasets(rankings []models.RankingRow, roster []models.RosterRow) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Flush()
	c.cache.Set(rankingsKey, rankings, c.duration)
	c.cache.Set(rosterKey, roster, c.duration)
}

func (c *Cache) GetDatasets() ([]models.RankingRow, []models.RosterRow, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rankings, found := c.cache.Get(rankingsKey)
	if !found {
		return nil, nil, false
	}
	roster, found := c.cache.Get(rosterKey)
	if !found {
		return nil, nil, false
	}
	return rankings.([]models.RankingRow), roster.([]models.RosterRow), true
}

// SetTable stores a table under its own parameters, expiring with the datasets
// it was built from. Without cached datasets the table is not kept.
func (c *Cache) SetTable(table *models.Table) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, expires, found := c.cache.GetWithExpiration(rosterKey)
	if !found {
		return
	}
	ttl := c.duration
	if !expires.IsZero() {
		ttl = time.Until(expires)
		if ttl <= 0 {
			return
		}
	}
	c.cache.Set(tablePrefix+table.Params.Key(), table, ttl)
}

func (c *Cache) GetTable(p valuation.Params) (*models.Table, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if table, found := c.cache.Get(tablePrefix + p.Key()); found {
		return table.(*models.Table), true
	}
	return nil, false
}

// TableCount reports how many parameter sets are currently memoized
func (c *Cache) TableCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for k := range c.cache.Items() {
		if strings.HasPrefix(k, tablePrefix) {
			n++
		}
	}
	return n
}

func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Flush()
}
