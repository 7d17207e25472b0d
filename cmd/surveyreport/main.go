package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"surveyreport/adapters/tabular"
	"surveyreport/internal"
	"surveyreport/internal/config"
	"surveyreport/internal/loader"
	"surveyreport/internal/report"
)

func main() {
	// Optional .env for ambient settings; absence is fine.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "surveyreport",
		Short: "One-shot statistical report over a juvenile trapping survey",
	}
	rootCmd.AddCommand(newReportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newReportCmd() *cobra.Command {
	var outPath string
	var asHTML bool

	cmd := &cobra.Command{
		Use:   "report [input-file]",
		Short: "Generate the juvenile survey report from a CSV or XLSX source",
		Long: `Load the trapping survey, filter to juvenile records, compute yearly
counts, sex-by-site mean weights, the Welch weight comparison by sex, and the
weight-on-hindfoot-length regression, then render the narrative report.

Example: surveyreport report surveys.csv --out report.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(args[0], outPath, asHTML)
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "Write the report to this path instead of stdout")
	cmd.Flags().BoolVar(&asHTML, "html", false, "Render HTML instead of markdown")

	return cmd
}

func runReport(inputPath, outPath string, asHTML bool) error {
	log := internal.DefaultLogger

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	table, err := tabular.NewDataReader(inputPath, cfg.SheetName).ReadData()
	if err != nil {
		return fmt.Errorf("loading %s: %w", inputPath, err)
	}

	ds, err := loader.New(cfg.JuvenileCode).Load(table)
	if err != nil {
		return fmt.Errorf("building dataset from %s: %w", inputPath, err)
	}

	rep, err := report.Build(inputPath, ds, cfg.Alpha)
	if err != nil {
		return fmt.Errorf("computing report: %w", err)
	}

	var out []byte
	if asHTML {
		out = rep.RenderHTML()
	} else {
		out = []byte(rep.RenderMarkdown())
	}

	if outPath == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(outPath, out, 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	log.Info("[Report] run %s written to %s", rep.RunID, outPath)
	return nil
}
