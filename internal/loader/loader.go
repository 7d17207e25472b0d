// Package loader turns a raw tabular source into the working juvenile
// Dataset: it normalizes column names, parses dates, derives the year,
// recodes sex labels, and keeps only records with the juvenile age code.
package loader

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"surveyreport/adapters/tabular"
	"surveyreport/domain/survey"
	"surveyreport/internal"
	"surveyreport/internal/errors"
)

// Dates in the source are written month/day/year.
const dateLayout = "1/2/2006"

// Canonical column names after normalization. Each canonical column has a
// set of accepted aliases seen across survey exports.
const (
	colID       = "record_id"
	colAge      = "age"
	colDate     = "date"
	colSex      = "sex"
	colSite     = "site"
	colWeight   = "weight"
	colHindfoot = "hindfoot_length"
)

var columnAliases = map[string]string{
	"record_id":          colID,
	"id":                 colID,
	"age":                colAge,
	"age_class":          colAge,
	"date":               colDate,
	"sex":                colSex,
	"site":               colSite,
	"plot":               colSite,
	"plot_id":            colSite,
	"grid":               colSite,
	"weight":             colWeight,
	"weight_g":           colWeight,
	"hindfoot_length":    colHindfoot,
	"hindfoot_len":       colHindfoot,
	"hindfoot_length_mm": colHindfoot,
	"hindfoot":           colHindfoot,
}

// required lists the columns a source must carry. record_id is optional;
// rows without one are identified by their position.
var required = []string{colAge, colDate, colSex, colSite, colWeight, colHindfoot}

// Loader builds a Dataset from raw tables.
type Loader struct {
	juvenileCode string
	log          *internal.Logger
}

// New creates a Loader that keeps records whose age code matches
// juvenileCode (case-insensitive).
func New(juvenileCode string) *Loader {
	return &Loader{
		juvenileCode: strings.ToLower(juvenileCode),
		log:          internal.DefaultLogger,
	}
}

// Load converts the table into the juvenile Dataset. It fails with a
// PARSE_ERROR if a required column is absent, a date cannot be parsed, or a
// numeric field holds a non-numeric non-blank value. Blank numeric cells
// are retained as missing measures, never as zero.
func (l *Loader) Load(table *tabular.Table) (survey.Dataset, error) {
	columns, err := resolveColumns(table.Headers)
	if err != nil {
		return nil, err
	}

	ds := make(survey.Dataset, 0, len(table.Rows))
	for i, row := range table.Rows {
		// Row numbers in diagnostics count from 1 and exclude the header.
		rowNum := i + 1

		age := strings.ToLower(strings.TrimSpace(row[columns[colAge]]))
		if age != l.juvenileCode {
			continue
		}

		rec, err := l.buildRecord(row, columns, rowNum)
		if err != nil {
			return nil, err
		}
		rec.Age = age
		ds = append(ds, rec)
	}

	l.log.Info("[Loader] %d of %d rows retained as juveniles", len(ds), len(table.Rows))
	return ds, nil
}

func (l *Loader) buildRecord(row tabular.RowData, columns map[string]string, rowNum int) (survey.Record, error) {
	rawDate := row[columns[colDate]]
	date, err := time.Parse(dateLayout, rawDate)
	if err != nil {
		return survey.Record{}, errors.ParseErrorf("row %d: cannot parse date %q (expected month/day/year)", rowNum, rawDate)
	}

	weight, err := parseMeasure(row[columns[colWeight]])
	if err != nil {
		return survey.Record{}, errors.ParseErrorf("row %d: weight: %v", rowNum, err)
	}
	hindfoot, err := parseMeasure(row[columns[colHindfoot]])
	if err != nil {
		return survey.Record{}, errors.ParseErrorf("row %d: hindfoot_length: %v", rowNum, err)
	}

	id := fmt.Sprintf("row-%d", rowNum)
	if header, ok := columns[colID]; ok {
		if raw := row[header]; raw != "" {
			id = raw
		}
	}

	return survey.Record{
		ID:         id,
		Date:       date,
		Year:       date.Year(),
		Site:       row[columns[colSite]],
		Sex:        survey.RecodeSex(strings.ToLower(strings.TrimSpace(row[columns[colSex]]))),
		WeightG:    weight,
		HindfootMM: hindfoot,
	}, nil
}

// resolveColumns maps canonical column names to the source headers that
// provide them. Missing required columns fail the whole load; there is no
// row-level recovery for a structurally incomplete source.
func resolveColumns(headers []string) (map[string]string, error) {
	columns := make(map[string]string, len(required)+1)
	for _, header := range headers {
		canonical, ok := columnAliases[normalizeHeader(header)]
		if !ok {
			continue
		}
		if _, seen := columns[canonical]; !seen {
			columns[canonical] = header
		}
	}

	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, errors.ParseErrorf("required column %q is absent from the source", name)
		}
	}
	return columns, nil
}

// normalizeHeader canonicalizes a header: trimmed, lowercased, spaces and
// dashes collapsed to underscores.
func normalizeHeader(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	return h
}

// parseMeasure converts a numeric cell to an optional measure. Blank cells
// are missing values, not zeros.
func parseMeasure(raw string) (survey.Measure, error) {
	if raw == "" {
		return survey.None(), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return survey.None(), fmt.Errorf("invalid numeric value %q", raw)
	}
	return survey.Some(v), nil
}
