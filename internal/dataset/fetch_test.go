package dataset

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRemoteCSV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testHeader + "\n" + testRow))
	}))
	defer srv.Close()

	records, err := Load(srv.URL + "/export.csv")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Dubai", records[0].City)
}

func TestLoadRemoteRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(testHeader + "\n" + testRow))
	}))
	defer srv.Close()

	records, err := Load(srv.URL + "/export.csv")
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.GreaterOrEqual(t, attempts, 2)
}

func TestLoadRemoteClientErrorIsPermanent(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Load(srv.URL + "/export.csv")
	require.Error(t, err)
	assert.Equal(t, 1, attempts, "4xx must not be retried")
}
