package aggregator

import (
	"time"

	"childcare-insights-go/internal/rating"
	"childcare-insights-go/internal/types"
)

// rec builds a minimal record for aggregation tests. Rating columns
// missing from scores stay invalid, matching unmapped survey text.
func rec(label string, nps float64, month string, scores map[string]int) types.SurveyRecord {
	r := types.SurveyRecord{
		NPSLabel:      label,
		NPS:           nps,
		NPSValid:      true,
		ResponseMonth: month,
		Scores:        make(map[string]rating.Score),
	}
	for col, v := range scores {
		r.Scores[col] = rating.Score{Value: v, Valid: true}
	}
	return r
}

func onDate(r types.SurveyRecord, date string) types.SurveyRecord {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	r.ResponseDate = t
	return r
}
