package rating

// Score is a normalized five-point Likert score. Valid is false when the
// raw survey text did not match the vocabulary.
type Score struct {
	Value int  `json:"value"`
	Valid bool `json:"valid"`
}

// vocabulary maps the exact export phrases to integer scores, highest
// agreement first. Survey exports occasionally carry stray or legacy
// text; anything outside the vocabulary stays unmapped rather than
// failing the load.
var vocabulary = map[string]int{
	"5. Strongly Agree":             5,
	"4. Agree":                      4,
	"3. Neither Agree nor Disagree": 3,
	"2. Disagree":                   2,
	"1. Strongly Disagree":          1,
}

// Normalize maps one raw rating cell to a Score. Unrecognized or empty
// text yields an invalid Score, never zero and never an error.
func Normalize(raw string) Score {
	v, ok := vocabulary[raw]
	if !ok {
		return Score{}
	}
	return Score{Value: v, Valid: true}
}

// Float returns the score as a float64 plus its validity, for use in
// means and correlations where invalid scores must be skipped.
func (s Score) Float() (float64, bool) {
	return float64(s.Value), s.Valid
}
