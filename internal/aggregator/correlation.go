package aggregator

import (
	"math"

	"childcare-insights-go/internal/types"
)

// Correlation is a symmetric Pearson matrix over the NPS value and the
// seven rating scores. A nil cell is undefined (fewer than two joint
// observations, or zero variance in either column) and is distinct
// from a real 0 correlation.
type Correlation struct {
	Labels []string     `json:"labels"`
	Matrix [][]*float64 `json:"matrix"`
}

// Correlate computes pairwise-complete correlations: for each column
// pair only the rows where both values are valid contribute, without
// dropping those rows from any other pair.
func Correlate(records []types.SurveyRecord) Correlation {
	labels := append([]string{types.ColNPS}, types.RatingColumns...)
	n := len(labels)

	// Column-major series with per-row validity.
	values := make([][]float64, n)
	valid := make([][]bool, n)
	for i := range values {
		values[i] = make([]float64, len(records))
		valid[i] = make([]bool, len(records))
	}
	for row, r := range records {
		values[0][row], valid[0][row] = r.NPS, r.NPSValid
		for i, col := range types.RatingColumns {
			values[i+1][row], valid[i+1][row] = r.Scores[col].Float()
		}
	}

	matrix := make([][]*float64, n)
	for i := range matrix {
		matrix[i] = make([]*float64, n)
	}
	for i := 0; i < n; i++ {
		if anyValid(valid[i]) {
			matrix[i][i] = ptr(1.0)
		}
		for j := i + 1; j < n; j++ {
			c := pearson(values[i], valid[i], values[j], valid[j])
			matrix[i][j] = c
			matrix[j][i] = c
		}
	}

	return Correlation{Labels: labels, Matrix: matrix}
}

func anyValid(valid []bool) bool {
	for _, v := range valid {
		if v {
			return true
		}
	}
	return false
}

// pearson computes the correlation over the jointly valid rows of x and
// y. Undefined results come back nil.
func pearson(x []float64, xOK []bool, y []float64, yOK []bool) *float64 {
	var n float64
	var sumX, sumY, sumXX, sumYY, sumXY float64
	for i := range x {
		if !xOK[i] || !yOK[i] {
			continue
		}
		n++
		sumX += x[i]
		sumY += y[i]
		sumXX += x[i] * x[i]
		sumYY += y[i] * y[i]
		sumXY += x[i] * y[i]
	}
	if n < 2 {
		return nil
	}

	varX := sumXX - sumX*sumX/n
	varY := sumYY - sumY*sumY/n
	if varX <= 0 || varY <= 0 {
		return nil
	}

	cov := sumXY - sumX*sumY/n
	r := cov / math.Sqrt(varX*varY)
	// Clamp floating noise at the boundaries.
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return ptr(r)
}

func ptr(v float64) *float64 { return &v }
