package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"surveyreport/domain/stats"
	"surveyreport/domain/survey"
	"surveyreport/internal/errors"
)

func TestCompareMeans_WorkedExample(t *testing.T) {
	male := []float64{1400, 1500, 1600}
	female := []float64{1200, 1300, 1400}

	res, err := CompareMeans(male, female)
	require.NoError(t, err)

	require.InDelta(t, 200, res.MeanDiff, 1e-9, "male mean 1500 vs female mean 1300")
	require.Greater(t, res.T, 0.0)
	require.Greater(t, res.P, 0.0)
	require.Less(t, res.P, 1.0)
	// Equal variances: Welch df collapses to n1+n2-2.
	require.InDelta(t, 4.0, res.DF, 1e-9)
}

func TestEffectSize_WorkedExample(t *testing.T) {
	male := []float64{1400, 1500, 1600}
	female := []float64{1200, 1300, 1400}

	d, err := EffectSize(male, female)
	require.NoError(t, err)

	// Both groups have sample SD 100, so the (n-1)-weighted pooled SD is 100
	// and d = 200/100. Comfortably a large effect either way.
	require.InDelta(t, 2.0, d, 1e-9)
	require.Equal(t, stats.BandLarge, stats.BandFor(d))
}

func TestCompareMeans_TooSmallSample(t *testing.T) {
	_, err := CompareMeans([]float64{1}, []float64{2, 3})
	require.Error(t, err)
	require.True(t, errors.HasCode(err, errors.CodeEmptySample), "got code %s", errors.GetCode(err))
}

func TestCompareMeans_ZeroVarianceBothSides(t *testing.T) {
	_, err := CompareMeans([]float64{5, 5, 5}, []float64{7, 7})
	require.Error(t, err)
	require.True(t, errors.HasCode(err, errors.CodeDegenerateInput), "got code %s", errors.GetCode(err))
}

func TestDescribe_EmptySampleFailsNotNaN(t *testing.T) {
	ds := survey.Dataset{
		rec(1977, "2", survey.SexMale, survey.None()), // missing weight only
	}

	_, err := Describe(ds, survey.SexMale)
	require.Error(t, err)
	require.True(t, errors.HasCode(err, errors.CodeEmptySample), "got code %s", errors.GetCode(err))

	_, err = Describe(ds, survey.SexFemale)
	require.Error(t, err, "sex with no records at all is also an empty sample")
}

func TestDescribe_SingleObservation(t *testing.T) {
	ds := survey.Dataset{
		rec(1977, "2", survey.SexFemale, survey.Some(41)),
	}

	st, err := Describe(ds, survey.SexFemale)
	require.NoError(t, err)
	require.Equal(t, 1, st.N)
	require.InDelta(t, 41, st.Mean, 1e-9)
	require.True(t, math.IsNaN(st.StdDev), "SD of one observation is undefined, not zero")
}

func TestRelativeDiffPercent(t *testing.T) {
	// Percentage-of-average convention: 100*(a-b)/((a+b)/2).
	require.InDelta(t, 100*200/1400.0, RelativeDiffPercent(1500, 1300), 1e-9)
	require.True(t, math.IsNaN(RelativeDiffPercent(1, -1)))
}

func TestCompareWeightBySex_EndToEnd(t *testing.T) {
	ds := survey.Dataset{
		rec(1977, "2", survey.SexMale, survey.Some(1400)),
		rec(1977, "2", survey.SexMale, survey.Some(1500)),
		rec(1977, "3", survey.SexMale, survey.Some(1600)),
		rec(1977, "2", survey.SexFemale, survey.Some(1200)),
		rec(1977, "3", survey.SexFemale, survey.Some(1300)),
		rec(1978, "3", survey.SexFemale, survey.Some(1400)),
		rec(1978, "3", survey.SexFemale, survey.None()), // excluded before partitioning
	}

	c, err := CompareWeightBySex(ds)
	require.NoError(t, err)

	require.Equal(t, 3, c.Male.N)
	require.Equal(t, 3, c.Female.N)
	require.InDelta(t, 200, c.Test.MeanDiff, 1e-9)
	require.InDelta(t, 2.0, c.CohenD, 1e-9)
	require.Equal(t, stats.BandLarge, c.Band)
	require.InDelta(t, 14.2857, c.RelDiffPct, 1e-3)
}
