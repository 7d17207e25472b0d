package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"surveyreport/domain/survey"
	"surveyreport/internal/errors"
)

func TestFit_RecoversPerfectLine(t *testing.T) {
	// y = 3x + 5 with no noise.
	var x, y []float64
	for i := 1; i <= 10; i++ {
		x = append(x, float64(i))
		y = append(y, 3*float64(i)+5)
	}

	res, err := Fit(x, y, "hindfoot_length", "weight")
	require.NoError(t, err)

	require.InDelta(t, 3.0, res.Slope, 1e-9)
	require.InDelta(t, 5.0, res.Intercept, 1e-9)
	require.InDelta(t, 1.0, res.RSquaredAdj, 1e-9)
	require.InDelta(t, 1.0, res.R, 1e-9)
	require.InDelta(t, 0.0, res.P, 1e-9, "perfect fit has zero slope standard error")
	require.Equal(t, 10, res.N)
	require.Equal(t, "weight = 5.00 + 3.00*hindfoot_length", res.Equation())
}

func TestFit_NoisySlopeHasSaneP(t *testing.T) {
	x := []float64{31, 33, 34, 35, 36, 36, 37, 38, 39, 41}
	y := []float64{38, 41, 40, 45, 44, 47, 46, 50, 49, 55}

	res, err := Fit(x, y, "hindfoot_length", "weight")
	require.NoError(t, err)

	require.Greater(t, res.Slope, 0.0)
	require.Greater(t, res.P, 0.0)
	require.Less(t, res.P, 0.05, "a clear positive trend over 10 points should be significant")
	require.Less(t, res.RSquaredAdj, 1.0)
}

func TestFitWeightOnHindfoot_SkipsIncompletePairs(t *testing.T) {
	ds := survey.Dataset{
		rec(1977, "2", survey.SexFemale, survey.Some(8)),  // no hindfoot
		rec(1977, "2", survey.SexMale, survey.Some(11)),   // pair below
		rec(1977, "2", survey.SexMale, survey.Some(14)),   // pair below
		rec(1977, "2", survey.SexMale, survey.Some(17)),   // pair below
	}
	ds[1].HindfootMM = survey.Some(2)
	ds[2].HindfootMM = survey.Some(3)
	ds[3].HindfootMM = survey.Some(4)

	res, err := FitWeightOnHindfoot(ds)
	require.NoError(t, err)
	require.Equal(t, 3, res.N, "records missing either value are excluded")
	require.InDelta(t, 3.0, res.Slope, 1e-9)
	require.InDelta(t, 5.0, res.Intercept, 1e-9)
}

func TestFit_InsufficientData(t *testing.T) {
	_, err := Fit([]float64{36}, []float64{40}, "hindfoot_length", "weight")
	require.Error(t, err)
	require.True(t, errors.HasCode(err, errors.CodeInsufficientData), "got code %s", errors.GetCode(err))
}

func TestFit_ZeroVariancePredictor(t *testing.T) {
	_, err := Fit([]float64{36, 36, 36}, []float64{40, 42, 44}, "hindfoot_length", "weight")
	require.Error(t, err)
	require.True(t, errors.HasCode(err, errors.CodeDegenerateInput), "got code %s", errors.GetCode(err))
}
