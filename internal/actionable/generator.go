package actionable

import (
	"fmt"

	"childcare-insights-go/internal/aggregator"
)

// Card is a one-glance recommendation derived from the aggregates.
type Card struct {
	Insight string `json:"insight"`
	Action  string `json:"action"`
	Impact  string `json:"impact"`
}

// A satisfaction average below this marks a metric as a weak spot on a
// five-point scale.
const weakScoreThreshold = 3.5

// Generate builds an action card from the ranked improvement concerns
// and the per-metric satisfaction averages.
func Generate(concerns []aggregator.CategoryCount, satisfaction map[string]*float64) Card {
	weakest := ""
	lowest := 0.0
	for metric, avg := range satisfaction {
		if avg == nil {
			continue
		}
		if weakest == "" || *avg < lowest {
			weakest = metric
			lowest = *avg
		}
	}

	if weakest != "" && lowest < weakScoreThreshold {
		card := Card{
			Insight: fmt.Sprintf("%s averages %.2f/5, the weakest satisfaction metric", weakest, lowest),
			Action:  fmt.Sprintf("Review %s with center leads and follow up with recent detractors", weakest),
			Impact:  "Lift the weakest satisfaction driver and overall NPS",
		}
		if len(concerns) > 0 {
			card.Insight = fmt.Sprintf("%s; top concern raised: %q (%d mentions)",
				card.Insight, concerns[0].Name, concerns[0].Count)
		}
		return card
	}

	if len(concerns) > 0 {
		return Card{
			Insight: fmt.Sprintf("Satisfaction metrics are healthy; most-raised concern is %q (%d mentions)",
				concerns[0].Name, concerns[0].Count),
			Action: "Track the top concern in the next survey cycle",
			Impact: "Early warning before scores move",
		}
	}
	return Card{
		Insight: "No weak satisfaction metric or dominant concern detected",
		Action:  "Monitor and collect more responses",
		Impact:  "Low immediate intervention",
	}
}
