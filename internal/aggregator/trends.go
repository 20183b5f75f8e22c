package aggregator

import (
	"math"
	"sort"
	"time"

	"childcare-insights-go/internal/types"
)

// WeekCount is the response count for one calendar week, labeled by the
// week-end date.
type WeekCount struct {
	WeekEnd time.Time `json:"week_end"`
	Count   int       `json:"count"`
}

// WeeklyResponseRate buckets responses into calendar weeks ending
// Sunday and returns a gapless series from the first to the last week
// in range, zero-count weeks included. No responses yields an empty
// series.
func WeeklyResponseRate(records []types.SurveyRecord) []WeekCount {
	if len(records) == 0 {
		return nil
	}

	counts := make(map[time.Time]int)
	var first, last time.Time
	for _, r := range records {
		w := weekEnd(r.ResponseDate)
		counts[w]++
		if first.IsZero() || w.Before(first) {
			first = w
		}
		if w.After(last) {
			last = w
		}
	}

	var series []WeekCount
	for w := first; !w.After(last); w = w.AddDate(0, 0, 7) {
		series = append(series, WeekCount{WeekEnd: w, Count: counts[w]})
	}
	return series
}

// weekEnd maps a timestamp to the Sunday ending its calendar week, a
// Sunday mapping to itself.
func weekEnd(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (7 - int(d.Weekday())) % 7
	return d.AddDate(0, 0, offset)
}

// TrendMetrics are the four monthly-trend series: the NPS value plus
// three headline rating scores.
var TrendMetrics = []string{
	types.ColNPS,
	"Ambience And Atmosphere",
	"Curriculum and Activities",
	"Value For Money",
}

// MonthlyTrend carries the per-metric means for one response month.
// A metric with no valid observations in the month is nil.
type MonthlyTrend struct {
	Month string              `json:"month"`
	Means map[string]*float64 `json:"means"`
}

// MonthlyTrends groups records by the precomputed response-month bucket
// and averages each trend metric per group, skipping invalid scores in
// that metric only. Means are rounded to 2 decimals and months come
// back in ascending order (lexicographic equals chronological for the
// YYYY-MM labels).
func MonthlyTrends(records []types.SurveyRecord) []MonthlyTrend {
	type acc struct {
		sum   map[string]float64
		count map[string]int
	}
	byMonth := make(map[string]*acc)

	for _, r := range records {
		if r.ResponseMonth == "" {
			continue
		}
		a := byMonth[r.ResponseMonth]
		if a == nil {
			a = &acc{sum: make(map[string]float64), count: make(map[string]int)}
			byMonth[r.ResponseMonth] = a
		}
		for _, m := range TrendMetrics {
			if v, ok := metricValue(r, m); ok {
				a.sum[m] += v
				a.count[m]++
			}
		}
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	trends := make([]MonthlyTrend, 0, len(months))
	for _, month := range months {
		a := byMonth[month]
		means := make(map[string]*float64, len(TrendMetrics))
		for _, m := range TrendMetrics {
			if a.count[m] > 0 {
				v := round2(a.sum[m] / float64(a.count[m]))
				means[m] = &v
			} else {
				means[m] = nil
			}
		}
		trends = append(trends, MonthlyTrend{Month: month, Means: means})
	}
	return trends
}

func metricValue(r types.SurveyRecord, metric string) (float64, bool) {
	if metric == types.ColNPS {
		return r.NPS, r.NPSValid
	}
	return r.Scores[metric].Float()
}

// MonthScore is the overall NPS score for one response month.
type MonthScore struct {
	Month string  `json:"month"`
	Score float64 `json:"score"`
}

// NPSTrend computes the overall NPS score per response month, rounded
// to one decimal, in ascending month order.
func NPSTrend(records []types.SurveyRecord) []MonthScore {
	byMonth := make(map[string][]types.SurveyRecord)
	for _, r := range records {
		if r.ResponseMonth == "" {
			continue
		}
		byMonth[r.ResponseMonth] = append(byMonth[r.ResponseMonth], r)
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	trend := make([]MonthScore, 0, len(months))
	for _, month := range months {
		score := NPSDistribution(byMonth[month]).Score()
		trend = append(trend, MonthScore{Month: month, Score: round1(score)})
	}
	return trend
}

// SatisfactionAverages computes the mean normalized score per rating
// column over the whole set, invalid scores skipped. A column with no
// valid observations is nil.
func SatisfactionAverages(records []types.SurveyRecord) map[string]*float64 {
	avgs := make(map[string]*float64, len(types.RatingColumns))
	for _, col := range types.RatingColumns {
		var sum float64
		var count int
		for _, r := range records {
			if v, ok := r.Scores[col].Float(); ok {
				sum += v
				count++
			}
		}
		if count > 0 {
			v := round2(sum / float64(count))
			avgs[col] = &v
		} else {
			avgs[col] = nil
		}
	}
	return avgs
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round1(v float64) float64 { return math.Round(v*10) / 10 }
