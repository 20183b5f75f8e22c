package main

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/nps?from=2024-01-01&to=2024-02-29&cities=Dubai,%20Sharjah", nil)
	f, err := parseFilter(r)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", f.From.Format("2006-01-02"))
	assert.Equal(t, "2024-02-29", f.To.Format("2006-01-02"))
	assert.Equal(t, []string{"Dubai", "Sharjah"}, f.Cities)
}

func TestParseFilterUnset(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/nps", nil)
	f, err := parseFilter(r)
	require.NoError(t, err)
	assert.True(t, f.From.IsZero())
	assert.True(t, f.To.IsZero())
	assert.Empty(t, f.Cities)
}

func TestParseFilterBadDate(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/nps?from=01-2024", nil)
	_, err := parseFilter(r)
	require.Error(t, err)
}

func TestEnvOr(t *testing.T) {
	t.Setenv("SOME_KEY", "set")
	assert.Equal(t, "set", envOr("SOME_KEY", "fallback"))
	assert.Equal(t, "fallback", envOr("SOME_OTHER_KEY", "fallback"))
}
