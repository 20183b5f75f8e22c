package dataset

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheServesWithoutReparsing(t *testing.T) {
	path := writeCSV(t, testRow)
	info, err := os.Stat(path)
	require.NoError(t, err)

	c := NewCache(path)
	first, err := c.Records()
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Rewrite the file but pin the mtime: the cache must keep serving
	// the loaded dataset.
	content := testHeader + "\n" + testRow + "\n" + testRow
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, info.ModTime(), info.ModTime()))

	cached, err := c.Records()
	require.NoError(t, err)
	assert.Len(t, cached, 1)
}

func TestCacheReloadsOnModTimeChange(t *testing.T) {
	path := writeCSV(t, testRow)

	c := NewCache(path)
	first, err := c.Records()
	require.NoError(t, err)
	require.Len(t, first, 1)

	content := testHeader + "\n" + testRow + "\n" + testRow
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, time.Now().Add(time.Hour), time.Now().Add(time.Hour)))

	reloaded, err := c.Records()
	require.NoError(t, err)
	assert.Len(t, reloaded, 2)
}

func TestCacheInvalidate(t *testing.T) {
	path := writeCSV(t, testRow)
	info, err := os.Stat(path)
	require.NoError(t, err)

	c := NewCache(path)
	_, err = c.Records()
	require.NoError(t, err)

	content := testHeader + "\n" + testRow + "\n" + testRow
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, info.ModTime(), info.ModTime()))

	c.Invalidate()
	reloaded, err := c.Records()
	require.NoError(t, err)
	assert.Len(t, reloaded, 2)
}

func TestCacheRemoteSourceLoadsOnce(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(testHeader + "\n" + testRow))
	}))
	defer srv.Close()

	c := NewCache(srv.URL + "/export.csv")
	for i := 0; i < 3; i++ {
		records, err := c.Records()
		require.NoError(t, err)
		assert.Len(t, records, 1)
	}
	assert.Equal(t, 1, hits)
}

func TestCacheMissingFile(t *testing.T) {
	c := NewCache(strings.TrimSuffix(writeCSV(t, testRow), "survey.csv") + "missing.csv")
	_, err := c.Records()
	require.Error(t, err)
}
