package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"childcare-insights-go/internal/types"
)

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, ParseTags("a, b"))
	assert.Equal(t, []string{"c"}, ParseTags(`"c"`))
	assert.Nil(t, ParseTags("nan"))
	assert.Nil(t, ParseTags("NaN"))
	assert.Nil(t, ParseTags(""))
	assert.Nil(t, ParseTags(" , ,"))
	assert.Equal(t, []string{"High Fees", "Safety"}, ParseTags(` "High Fees" , Safety `))
}

func TestCategoryCountsPoolsBothFields(t *testing.T) {
	records := []types.SurveyRecord{
		{NPSFeedback: "a, b", ImprovementFeedback: `"c"`},
		{NPSFeedback: "nan", ImprovementFeedback: ""},
	}
	counts := CategoryCounts(records)
	assert.Equal(t, []CategoryCount{
		{Name: "a", Count: 1},
		{Name: "b", Count: 1},
		{Name: "c", Count: 1},
	}, counts)
}

func TestCategoryCountsRanking(t *testing.T) {
	records := []types.SurveyRecord{
		{NPSFeedback: "Staff, Fees"},
		{NPSFeedback: "Fees"},
		{ImprovementFeedback: "Meals"},
		{ImprovementFeedback: "Fees, Staff"},
	}
	counts := CategoryCounts(records)
	assert.Equal(t, []CategoryCount{
		{Name: "Fees", Count: 3},
		{Name: "Staff", Count: 2},
		{Name: "Meals", Count: 1},
	}, counts)
}

func TestCategoryCountsTieOrder(t *testing.T) {
	// Equal counts keep first-appearance order in the pooled sequence.
	records := []types.SurveyRecord{
		{NPSFeedback: "z"},
		{NPSFeedback: "a"},
	}
	counts := CategoryCounts(records)
	assert.Equal(t, []CategoryCount{
		{Name: "z", Count: 1},
		{Name: "a", Count: 1},
	}, counts)
}

func TestTop(t *testing.T) {
	counts := []CategoryCount{{Name: "a", Count: 3}, {Name: "b", Count: 2}, {Name: "c", Count: 1}}
	assert.Len(t, Top(counts, 2), 2)
	assert.Equal(t, counts, Top(counts, 10))
	assert.Empty(t, Top(nil, 10))
}

func TestTopConcernsImprovementOnly(t *testing.T) {
	records := []types.SurveyRecord{
		{NPSFeedback: "Praise", ImprovementFeedback: "Fees"},
		{NPSFeedback: "Praise", ImprovementFeedback: "Fees, Parking"},
	}
	concerns := TopConcerns(records)
	assert.Equal(t, []CategoryCount{
		{Name: "Fees", Count: 2},
		{Name: "Parking", Count: 1},
	}, concerns)
}

func TestCategoryCountsEmpty(t *testing.T) {
	assert.Empty(t, CategoryCounts(nil))
	assert.Empty(t, TopConcerns(nil))
}
