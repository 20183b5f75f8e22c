package report

import (
	"time"

	"childcare-insights-go/internal/actionable"
	"childcare-insights-go/internal/aggregator"
	"childcare-insights-go/internal/dataset"
	"childcare-insights-go/internal/types"
)

// topCategoriesShown caps the ranked category table for display; the
// full table stays available through the aggregator package.
const topCategoriesShown = 10

// Report bundles every aggregate for one filtered view of the dataset.
// It is plain data: the HTTP layer serializes it and the charts layer
// renders it, neither feeds back into it.
type Report struct {
	Total         int                        `json:"total"`
	NPS           aggregator.Distribution    `json:"nps_distribution"`
	OverallNPS    float64                    `json:"overall_nps"`
	Correlation   aggregator.Correlation     `json:"correlation"`
	TopCategories []aggregator.CategoryCount `json:"top_categories"`
	TopConcerns   []aggregator.CategoryCount `json:"top_concerns"`
	Weekly        []aggregator.WeekCount     `json:"weekly_responses"`
	Monthly       []aggregator.MonthlyTrend  `json:"monthly_trends"`
	NPSTrend      []aggregator.MonthScore    `json:"nps_trend"`
	Satisfaction  map[string]*float64        `json:"satisfaction_averages"`
	ActionCard    actionable.Card            `json:"action_card"`
	DurationMs    int64                      `json:"duration_ms"`
}

// Build filters the base record set and runs every aggregator over the
// resulting view. Aggregators are independent pure functions; an empty
// view produces a neutral report, never an error.
func Build(records []types.SurveyRecord, f dataset.Filter) Report {
	start := time.Now()

	view := dataset.Apply(records, f)

	dist := aggregator.NPSDistribution(view)
	concerns := aggregator.TopConcerns(view)
	satisfaction := aggregator.SatisfactionAverages(view)

	rep := Report{
		Total:         len(view),
		NPS:           dist,
		OverallNPS:    dist.Score(),
		Correlation:   aggregator.Correlate(view),
		TopCategories: aggregator.Top(aggregator.CategoryCounts(view), topCategoriesShown),
		TopConcerns:   concerns,
		Weekly:        aggregator.WeeklyResponseRate(view),
		Monthly:       aggregator.MonthlyTrends(view),
		NPSTrend:      aggregator.NPSTrend(view),
		Satisfaction:  satisfaction,
		ActionCard:    actionable.Generate(concerns, satisfaction),
	}
	rep.DurationMs = time.Since(start).Milliseconds()
	return rep
}
