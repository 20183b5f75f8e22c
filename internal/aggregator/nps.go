package aggregator

import "childcare-insights-go/internal/types"

// Distribution holds the NPS bucket percentages over a record set.
// Percentages are computed over the full set, ratings included or not;
// the NPS label is independent of the rating columns.
type Distribution struct {
	Total      int     `json:"total"`
	Promoters  float64 `json:"promoters_pct"`
	Passives   float64 `json:"passives_pct"`
	Detractors float64 `json:"detractors_pct"`
}

// NPSDistribution counts the pre-classified labels and converts them to
// percentages. An empty record set yields the zero Distribution.
func NPSDistribution(records []types.SurveyRecord) Distribution {
	d := Distribution{Total: len(records)}
	if d.Total == 0 {
		return d
	}

	var promoters, passives, detractors int
	for _, r := range records {
		switch r.NPSLabel {
		case types.LabelPromoter:
			promoters++
		case types.LabelNeutral:
			passives++
		case types.LabelDetractor:
			detractors++
		}
	}

	total := float64(d.Total)
	d.Promoters = float64(promoters) / total * 100
	d.Passives = float64(passives) / total * 100
	d.Detractors = float64(detractors) / total * 100
	return d
}

// Score is the overall NPS: Promoters% minus Detractors%, in [-100,100].
func (d Distribution) Score() float64 {
	return d.Promoters - d.Detractors
}
