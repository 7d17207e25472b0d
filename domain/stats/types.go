package stats

import (
	"fmt"
	"math"

	"surveyreport/domain/survey"
)

// YearCount is one bucket of the counts-by-year aggregation. Years absent
// from the data do not get a YearCount; a zero row is never synthesized.
type YearCount struct {
	Year  int
	Count int
}

// GroupMean is the mean weight of one (sex, site) group. A group whose
// members all have missing weight keeps its row with Defined=false and a
// NaN mean; it is never reported as zero.
type GroupMean struct {
	Sex     survey.Sex
	Site    string
	Mean    float64
	N       int // records with a valid weight
	Defined bool
}

// SampleStats holds descriptive statistics for one weight sample.
// StdDev uses the n-1 denominator and is NaN when N < 2.
type SampleStats struct {
	Mean   float64
	StdDev float64
	N      int
}

// TestResult is the outcome of a Welch two-sample comparison.
type TestResult struct {
	T        float64
	DF       float64 // Welch-Satterthwaite approximation
	P        float64 // two-sided
	MeanDiff float64 // mean(A) - mean(B)
}

// EffectBand labels an absolute Cohen's d for the narrative. The bands are
// the standard fixed thresholds and carry no pass/fail semantics.
type EffectBand string

const (
	BandNegligible EffectBand = "negligible"
	BandSmall      EffectBand = "small"
	BandMedium     EffectBand = "medium"
	BandLarge      EffectBand = "large"
)

// BandFor classifies an effect size d.
func BandFor(d float64) EffectBand {
	abs := math.Abs(d)
	switch {
	case abs < 0.2:
		return BandNegligible
	case abs < 0.5:
		return BandSmall
	case abs < 0.8:
		return BandMedium
	default:
		return BandLarge
	}
}

// RegressionResult is a single-predictor OLS fit artifact.
type RegressionResult struct {
	Predictor   string
	Response    string
	Slope       float64
	Intercept   float64
	RSquaredAdj float64
	R           float64 // Pearson correlation over the fitted pairs
	P           float64 // two-sided p-value for the slope term
	N           int     // valid pairs used
}

// Equation renders the fitted line for the narrative, e.g.
// "weight = 5.00 + 3.00*hindfoot_length".
func (r RegressionResult) Equation() string {
	op := "+"
	slope := r.Slope
	if slope < 0 {
		op = "-"
		slope = -slope
	}
	return fmt.Sprintf("%s = %.2f %s %.2f*%s", r.Response, r.Intercept, op, slope, r.Predictor)
}
