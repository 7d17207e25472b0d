// Package analysis holds the statistical core of a report run: grouped
// aggregation, the two-sample weight comparison, and the OLS fit. Every
// function is a pure function of the dataset it is handed.
package analysis

import (
	"math"
	"sort"

	montstats "github.com/montanaflynn/stats"

	"surveyreport/domain/stats"
	"surveyreport/domain/survey"
)

// groupBy buckets records by an arbitrary key.
func groupBy[K comparable](ds survey.Dataset, key func(survey.Record) K) map[K][]survey.Record {
	groups := make(map[K][]survey.Record)
	for _, r := range ds {
		k := key(r)
		groups[k] = append(groups[k], r)
	}
	return groups
}

// CountByYear counts records per derived year, ordered ascending by year.
// Years with no records simply do not appear; a year the survey skipped is
// not the same thing as a year with zero captures, so nothing is imputed.
func CountByYear(ds survey.Dataset) []stats.YearCount {
	groups := groupBy(ds, func(r survey.Record) int { return r.Year })

	out := make([]stats.YearCount, 0, len(groups))
	for year, recs := range groups {
		out = append(out, stats.YearCount{Year: year, Count: len(recs)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

type sexSite struct {
	sex  survey.Sex
	site string
}

// MeanWeightBySexSite computes the mean weight for every (sex, site) group,
// ignoring missing weights within a group. A group whose every member has a
// missing weight is kept with a NaN mean and Defined=false; it must never
// collapse to zero or vanish from the output. Output order is sex, then site.
func MeanWeightBySexSite(ds survey.Dataset) []stats.GroupMean {
	groups := groupBy(ds, func(r survey.Record) sexSite {
		return sexSite{sex: r.Sex, site: r.Site}
	})

	out := make([]stats.GroupMean, 0, len(groups))
	for key, recs := range groups {
		var weights []float64
		for _, r := range recs {
			if r.WeightG.Valid {
				weights = append(weights, r.WeightG.Value)
			}
		}

		gm := stats.GroupMean{Sex: key.sex, Site: key.site, N: len(weights)}
		if len(weights) > 0 {
			gm.Mean, _ = montstats.Mean(weights)
			gm.Defined = true
		} else {
			gm.Mean = math.NaN()
		}
		out = append(out, gm)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Sex != out[j].Sex {
			return out[i].Sex < out[j].Sex
		}
		return out[i].Site < out[j].Site
	})
	return out
}
