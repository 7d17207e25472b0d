package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"surveyreport/domain/stats"
	"surveyreport/domain/survey"
	"surveyreport/internal/errors"
)

// FitWeightOnHindfoot fits the report's single linear model: weight in
// grams regressed on hind-foot length in millimeters.
func FitWeightOnHindfoot(ds survey.Dataset) (stats.RegressionResult, error) {
	x, y := ds.Pairs()
	return Fit(x, y, "hindfoot_length", "weight")
}

// Fit computes an ordinary least-squares line of y on x. Pairs with either
// value missing must already be excluded by the caller. It fails with
// INSUFFICIENT_DATA for fewer than 2 pairs and DEGENERATE_INPUT when the
// predictor has zero variance, instead of dividing by zero.
func Fit(x, y []float64, predictor, response string) (stats.RegressionResult, error) {
	if len(x) != len(y) {
		return stats.RegressionResult{}, errors.DegenerateInput("predictor and response lengths differ")
	}
	n := len(x)
	if n < 2 {
		return stats.RegressionResult{}, errors.InsufficientData("regression needs at least 2 valid pairs")
	}

	meanX := stat.Mean(x, nil)
	sxx := 0.0
	for _, v := range x {
		d := v - meanX
		sxx += d * d
	}
	if sxx == 0 {
		return stats.RegressionResult{}, errors.DegenerateInput("predictor has zero variance, cannot fit a slope")
	}

	intercept, slope := stat.LinearRegression(x, y, nil, false)
	r2 := stat.RSquared(x, y, nil, intercept, slope)
	r := stat.Correlation(x, y, nil)

	// Adjusted R² for a single predictor.
	r2adj := r2
	if n > 2 {
		fn := float64(n)
		r2adj = 1 - (1-r2)*(fn-1)/(fn-2)
	}

	p := slopePValue(x, y, intercept, slope, sxx)

	return stats.RegressionResult{
		Predictor:   predictor,
		Response:    response,
		Slope:       slope,
		Intercept:   intercept,
		RSquaredAdj: r2adj,
		R:           r,
		P:           p,
		N:           n,
	}, nil
}

// slopePValue computes the two-sided p-value for the slope coefficient
// under the standard t-distribution of OLS estimates with n-2 degrees of
// freedom.
func slopePValue(x, y []float64, intercept, slope, sxx float64) float64 {
	n := len(x)
	if n <= 2 {
		// No residual degrees of freedom; the fit is exact by construction.
		return math.NaN()
	}

	sse := 0.0
	for i := range x {
		resid := y[i] - (intercept + slope*x[i])
		sse += resid * resid
	}
	if sse == 0 {
		// Perfect fit: the slope estimate has zero standard error.
		return 0
	}

	se := math.Sqrt(sse / float64(n-2) / sxx)
	t := slope / se

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
	return 2 * (1 - tDist.CDF(math.Abs(t)))
}
