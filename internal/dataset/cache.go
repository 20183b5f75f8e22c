package dataset

import (
	"os"
	"sync"
	"time"

	"childcare-insights-go/internal/logger"
	"childcare-insights-go/internal/types"
)

// Cache hands out the loaded dataset without reparsing on every filter
// change. A local source is keyed by path plus file modification time
// and reloads when the file changes on disk; a remote source is fetched
// once per process. Invalidate forces the next read to reload.
type Cache struct {
	source string

	mu      sync.Mutex
	loaded  bool
	modTime time.Time
	records []types.SurveyRecord
}

func NewCache(source string) *Cache {
	return &Cache{source: source}
}

// Records returns the cached record set, loading or reloading it first
// when needed. Callers must not mutate the returned slice; narrowing
// goes through Apply, which copies.
func (c *Cache) Records() ([]types.SurveyRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if isRemote(c.source) {
		if c.loaded {
			return c.records, nil
		}
		return c.reload(time.Time{})
	}

	info, err := os.Stat(c.source)
	if err != nil {
		return nil, err
	}
	if c.loaded && c.modTime.Equal(info.ModTime()) {
		return c.records, nil
	}
	return c.reload(info.ModTime())
}

func (c *Cache) reload(modTime time.Time) ([]types.SurveyRecord, error) {
	log := logger.New().WithField("component", "dataset.cache").WithField("source", c.source)
	if c.loaded {
		log.Info("source changed, reloading dataset")
	}

	records, err := Load(c.source)
	if err != nil {
		return nil, err
	}
	c.records = records
	c.modTime = modTime
	c.loaded = true
	return c.records, nil
}

// Invalidate drops the cached dataset so the next Records call reloads.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
	c.records = nil
}
