// Package report assembles and renders the juvenile trapping survey
// report: narrative text with computed values interpolated, plus the data
// tables behind the report's three charts. Chart styling itself is left to
// downstream tooling.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/google/uuid"

	"surveyreport/domain/stats"
	"surveyreport/domain/survey"
	"surveyreport/internal/analysis"
)

// Report is the complete computed output of one run. It is a pure function
// of the loaded dataset; building it twice from the same input yields
// identical numbers.
type Report struct {
	RunID      string
	InputPath  string
	TotalCount int

	YearCounts []stats.YearCount
	GroupMeans []stats.GroupMean
	Comparison analysis.WeightComparison
	Regression stats.RegressionResult

	alpha float64
}

// Build runs the aggregation, comparison, and regression stages over the
// juvenile dataset and collects their results.
func Build(inputPath string, ds survey.Dataset, alpha float64) (*Report, error) {
	comparison, err := analysis.CompareWeightBySex(ds)
	if err != nil {
		return nil, err
	}
	regression, err := analysis.FitWeightOnHindfoot(ds)
	if err != nil {
		return nil, err
	}

	return &Report{
		RunID:      uuid.NewString(),
		InputPath:  inputPath,
		TotalCount: len(ds),
		YearCounts: analysis.CountByYear(ds),
		GroupMeans: analysis.MeanWeightBySexSite(ds),
		Comparison: comparison,
		Regression: regression,
		alpha:      alpha,
	}, nil
}

// RenderMarkdown produces the full report as markdown.
func (r *Report) RenderMarkdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Juvenile trapping survey report\n\n")
	fmt.Fprintf(&b, "Run `%s` over `%s`: %d juvenile records.\n\n", r.RunID, r.InputPath, r.TotalCount)

	b.WriteString("## Captures by year\n\n")
	b.WriteString("| Year | Captures |\n|---|---|\n")
	for _, yc := range r.YearCounts {
		fmt.Fprintf(&b, "| %d | %d |\n", yc.Year, yc.Count)
	}
	b.WriteString("\nYears without a row had no juvenile captures recorded; no zero rows are imputed.\n\n")

	b.WriteString("## Mean weight by sex and site\n\n")
	b.WriteString("| Sex | Site | Mean weight (g) | n |\n|---|---|---|---|\n")
	for _, gm := range r.GroupMeans {
		fmt.Fprintf(&b, "| %s | %s | %s | %d |\n", gm.Sex, gm.Site, formatMean(gm), gm.N)
	}
	b.WriteString("\n")

	b.WriteString("## Weight by sex\n\n")
	c := r.Comparison
	fmt.Fprintf(&b, "Males weighed %.1f g on average (SD %.1f, n=%d) and females %.1f g (SD %.1f, n=%d), "+
		"a difference of %.1f g (%.1f%% of the average weight).\n\n",
		c.Male.Mean, c.Male.StdDev, c.Male.N,
		c.Female.Mean, c.Female.StdDev, c.Female.N,
		c.Test.MeanDiff, c.RelDiffPct)
	fmt.Fprintf(&b, "A Welch two-sample t-test gives t=%.3f (df=%.1f), p=%.4f; the difference is %s at α=%.2f. "+
		"Cohen's d is %.2f, a %s effect.\n\n",
		c.Test.T, c.Test.DF, c.Test.P, significanceWord(c.Test.P, r.alpha), r.alpha, c.CohenD, c.Band)

	b.WriteString("## Weight and hind-foot length\n\n")
	reg := r.Regression
	fmt.Fprintf(&b, "Over %d records with both measurements, the least-squares fit is `%s` "+
		"(adjusted R²=%.3f, Pearson's r=%.3f, slope p=%.4f).\n",
		reg.N, reg.Equation(), reg.RSquaredAdj, reg.R, reg.P)

	return b.String()
}

// RenderHTML converts the markdown report to a standalone HTML fragment.
func (r *Report) RenderHTML() []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(r.RenderMarkdown()), p, renderer)
}

// formatMean renders a group mean, keeping undefined means visibly
// undefined instead of collapsing them to a number.
func formatMean(gm stats.GroupMean) string {
	if !gm.Defined || math.IsNaN(gm.Mean) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", gm.Mean)
}

func significanceWord(p, alpha float64) string {
	if p < alpha {
		return "significant"
	}
	return "not significant"
}
