package analysis

import (
	"math"

	montstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"surveyreport/domain/stats"
	"surveyreport/domain/survey"
	"surveyreport/internal/errors"
)

// Describe computes descriptive statistics for the valid weights of one sex
// group. It fails with EMPTY_SAMPLE when the group has no valid weight at
// all; a single observation yields a valid mean with a NaN standard
// deviation rather than a division by zero.
func Describe(ds survey.Dataset, sex survey.Sex) (stats.SampleStats, error) {
	weights := ds.Weights(sex)
	if len(weights) == 0 {
		return stats.SampleStats{}, errors.EmptySample("no valid weight observations for sex " + string(sex))
	}

	mean, _ := montstats.Mean(weights)
	out := stats.SampleStats{Mean: mean, N: len(weights)}
	if len(weights) < 2 {
		out.StdDev = math.NaN()
		return out, nil
	}
	out.StdDev, _ = montstats.StandardDeviationSample(weights)
	return out, nil
}

// CompareMeans performs a Welch two-sample t-test on the two samples:
// unequal variances assumed, degrees of freedom from the Welch-Satterthwaite
// approximation, two-sided p-value from the t-distribution. Each sample
// needs at least two observations to form a variance.
func CompareMeans(a, b []float64) (stats.TestResult, error) {
	if len(a) < 2 || len(b) < 2 {
		return stats.TestResult{}, errors.EmptySample("each sample needs at least 2 observations for a Welch t-test")
	}

	n1, n2 := float64(len(a)), float64(len(b))
	mean1, _ := montstats.Mean(a)
	mean2, _ := montstats.Mean(b)
	var1, _ := montstats.SampleVariance(a)
	var2, _ := montstats.SampleVariance(b)

	se := math.Sqrt(var1/n1 + var2/n2)
	if se == 0 {
		return stats.TestResult{}, errors.DegenerateInput("both samples have zero variance")
	}
	tStat := (mean1 - mean2) / se

	// Welch-Satterthwaite degrees of freedom
	df := math.Pow(var1/n1+var2/n2, 2) /
		(math.Pow(var1/n1, 2)/(n1-1) + math.Pow(var2/n2, 2)/(n2-1))

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * (1 - tDist.CDF(math.Abs(tStat)))

	return stats.TestResult{
		T:        tStat,
		DF:       df,
		P:        p,
		MeanDiff: mean1 - mean2,
	}, nil
}

// EffectSize computes Cohen's d as the difference of sample means divided by
// the pooled standard deviation. Pooling weights each group's variance by
// n-1, the conventional pooled-SD formula.
func EffectSize(a, b []float64) (float64, error) {
	if len(a) < 2 || len(b) < 2 {
		return 0, errors.EmptySample("each sample needs at least 2 observations for an effect size")
	}

	n1, n2 := float64(len(a)), float64(len(b))
	mean1, _ := montstats.Mean(a)
	mean2, _ := montstats.Mean(b)
	var1, _ := montstats.SampleVariance(a)
	var2, _ := montstats.SampleVariance(b)

	pooledSD := math.Sqrt(((n1-1)*var1 + (n2-1)*var2) / (n1 + n2 - 2))
	if pooledSD == 0 {
		return 0, errors.DegenerateInput("pooled standard deviation is zero")
	}
	return (mean1 - mean2) / pooledSD, nil
}

// RelativeDiffPercent expresses the difference of two means as a percentage
// of their average: 100*(a-b)/((a+b)/2).
func RelativeDiffPercent(meanA, meanB float64) float64 {
	avg := (meanA + meanB) / 2
	if avg == 0 {
		return math.NaN()
	}
	return 100 * (meanA - meanB) / avg
}

// WeightComparison bundles everything the narrative needs about the
// male/female weight contrast.
type WeightComparison struct {
	Male       stats.SampleStats
	Female     stats.SampleStats
	Test       stats.TestResult
	CohenD     float64
	Band       stats.EffectBand
	RelDiffPct float64
}

// CompareWeightBySex runs the full male-versus-female weight comparison
// over the dataset. Missing weights are excluded before partitioning.
func CompareWeightBySex(ds survey.Dataset) (WeightComparison, error) {
	male, err := Describe(ds, survey.SexMale)
	if err != nil {
		return WeightComparison{}, errors.Wrap(err, "describing male weights")
	}
	female, err := Describe(ds, survey.SexFemale)
	if err != nil {
		return WeightComparison{}, errors.Wrap(err, "describing female weights")
	}

	maleW := ds.Weights(survey.SexMale)
	femaleW := ds.Weights(survey.SexFemale)

	test, err := CompareMeans(maleW, femaleW)
	if err != nil {
		return WeightComparison{}, errors.Wrap(err, "comparing weight means by sex")
	}
	d, err := EffectSize(maleW, femaleW)
	if err != nil {
		return WeightComparison{}, errors.Wrap(err, "computing weight effect size")
	}

	return WeightComparison{
		Male:       male,
		Female:     female,
		Test:       test,
		CohenD:     d,
		Band:       stats.BandFor(d),
		RelDiffPct: RelativeDiffPercent(male.Mean, female.Mean),
	}, nil
}
