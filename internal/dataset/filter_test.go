package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"childcare-insights-go/internal/types"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleRecords() []types.SurveyRecord {
	return []types.SurveyRecord{
		{City: "Dubai", ResponseDate: day("2024-01-10")},
		{City: "Sharjah", ResponseDate: day("2024-01-20")},
		{City: "Dubai", ResponseDate: day("2024-02-05")},
	}
}

func TestApplyZeroFilterPassesEverything(t *testing.T) {
	base := sampleRecords()
	out := Apply(base, Filter{})
	assert.Equal(t, base, out)
}

func TestApplyDateRangeInclusive(t *testing.T) {
	base := sampleRecords()
	out := Apply(base, Filter{From: day("2024-01-10"), To: day("2024-01-20")})
	require.Len(t, out, 2)
	assert.Equal(t, "Dubai", out[0].City)
	assert.Equal(t, "Sharjah", out[1].City)
}

func TestApplyDateRangeTruncatesTime(t *testing.T) {
	// A response late on the To day still falls inside the range.
	base := []types.SurveyRecord{
		{City: "Dubai", ResponseDate: day("2024-01-20").Add(23 * time.Hour)},
	}
	out := Apply(base, Filter{To: day("2024-01-20")})
	assert.Len(t, out, 1)
}

func TestApplyCities(t *testing.T) {
	base := sampleRecords()
	out := Apply(base, Filter{Cities: []string{"Sharjah"}})
	require.Len(t, out, 1)
	assert.Equal(t, "Sharjah", out[0].City)

	// Empty city list means no city filtering.
	assert.Len(t, Apply(base, Filter{Cities: nil}), 3)
}

func TestApplyIdempotent(t *testing.T) {
	base := sampleRecords()
	f := Filter{From: day("2024-01-01"), To: day("2024-01-31"), Cities: []string{"Dubai"}}

	once := Apply(base, f)
	twice := Apply(once, f)
	assert.Equal(t, once, twice)
}

func TestApplyNeverMutatesBase(t *testing.T) {
	base := sampleRecords()
	out := Apply(base, Filter{Cities: []string{"Dubai"}})
	require.NotEmpty(t, out)

	out[0].City = "changed"
	assert.Equal(t, "Dubai", base[0].City)
	assert.Len(t, base, 3)
}
