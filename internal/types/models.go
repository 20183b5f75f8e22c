package types

import (
	"time"

	"childcare-insights-go/internal/rating"
)

// Column names as they appear in the survey export header.
const (
	ColResponseDate        = "Survey Response Date [GMT]"
	ColSentDate            = "Survey Sent Date [GMT]"
	ColStartDate           = "Start Date"
	ColCity                = "City"
	ColNPS                 = "NPS"
	ColNPSLabel            = "NPS Label"
	ColNPSFeedback         = "NPS Feedback Categories"
	ColImprovementFeedback = "Improvement Feedback Categories"
	ColResponseMonth       = "Response Month (YYYY-MM)"
)

// NPS respondent classes, pre-computed upstream by the survey platform.
const (
	LabelPromoter  = "Promoter"
	LabelNeutral   = "Neutral"
	LabelDetractor = "Detractor"
)

// RatingColumns lists the seven Likert rating columns in dashboard order.
var RatingColumns = []string{
	"Ambience And Atmosphere",
	"Curriculum and Activities",
	"Environment And Facilities",
	"Information and Experience",
	"Questions",
	"Nutritious Meals",
	"Value For Money",
}

// SurveyRecord is one submitted survey response. Records form an ordered
// sequence, not a keyed collection; the export carries no primary key.
type SurveyRecord struct {
	ResponseDate        time.Time `json:"response_date"`
	SentDate            time.Time `json:"sent_date"`
	StartDate           time.Time `json:"start_date"`
	City                string    `json:"city"`
	NPS                 float64   `json:"nps"`
	NPSValid            bool      `json:"nps_valid"`
	NPSLabel            string    `json:"nps_label"`
	NPSFeedback         string    `json:"nps_feedback_categories"`
	ImprovementFeedback string    `json:"improvement_feedback_categories"`
	ResponseMonth       string    `json:"response_month"`

	// Scores holds the normalized Likert score per rating column.
	Scores map[string]rating.Score `json:"scores"`
}
