package aggregator

import (
	"sort"
	"strings"

	"childcare-insights-go/internal/types"
)

// CategoryCount is one ranked feedback category.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ParseTags splits a raw category cell into clean tags: comma
// separated, whitespace and surrounding quote characters stripped.
// Empty tokens and the literal "nan" left behind by upstream exports
// are dropped.
func ParseTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, tok := range strings.Split(raw, ",") {
		t := strings.TrimSpace(tok)
		t = strings.Trim(t, `"`)
		t = strings.TrimSpace(t)
		if t == "" || strings.EqualFold(t, "nan") {
			continue
		}
		tags = append(tags, t)
	}
	return tags
}

// CategoryCounts pools the tags from both feedback fields across all
// records into one multiset and ranks it by descending frequency. Ties
// keep first-appearance order in the pooled sequence.
func CategoryCounts(records []types.SurveyRecord) []CategoryCount {
	var pooled []string
	for _, r := range records {
		pooled = append(pooled, ParseTags(r.NPSFeedback)...)
		pooled = append(pooled, ParseTags(r.ImprovementFeedback)...)
	}
	return rankTags(pooled)
}

// TopConcerns ranks the improvement-feedback categories only.
func TopConcerns(records []types.SurveyRecord) []CategoryCount {
	var pooled []string
	for _, r := range records {
		pooled = append(pooled, ParseTags(r.ImprovementFeedback)...)
	}
	return rankTags(pooled)
}

// Top returns the first n entries of a ranked table for display.
func Top(counts []CategoryCount, n int) []CategoryCount {
	if len(counts) <= n {
		return counts
	}
	return counts[:n]
}

func rankTags(pooled []string) []CategoryCount {
	counts := make(map[string]int)
	var order []string
	for _, tag := range pooled {
		if counts[tag] == 0 {
			order = append(order, tag)
		}
		counts[tag]++
	}

	ranked := make([]CategoryCount, 0, len(order))
	for _, tag := range order {
		ranked = append(ranked, CategoryCount{Name: tag, Count: counts[tag]})
	}
	// Stable: equal counts keep first-appearance order.
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })
	return ranked
}
