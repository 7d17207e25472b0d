package tabular

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"surveyreport/internal"
	"surveyreport/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading CSV and XLSX survey files into a raw Table.
type DataReader struct {
	filePath string
	sheet    string
	fileType string // "csv" or "xlsx"
	log      *internal.Logger
}

// NewDataReader creates a reader for the given path. The sheet name is only
// used for XLSX inputs.
func NewDataReader(filePath, sheet string) *DataReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &DataReader{
		filePath: filePath,
		sheet:    sheet,
		fileType: fileType,
		log:      internal.DefaultLogger,
	}
}

// ReadData reads the source into a Table. The source must carry a header
// row and at least one data row.
func (r *DataReader) ReadData() (*Table, error) {
	if _, err := os.Stat(r.filePath); err != nil {
		return nil, errors.IOError("source file not found: "+r.filePath, err)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, errors.ParseErrorf("%s must have a header row and at least one data row", r.filePath)
	}

	table := r.processRows(rows)
	r.log.Debug("[DataReader] %s read (%d columns, %d rows)", r.filePath, len(table.Headers), len(table.Rows))
	return table, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.IOError("failed to open CSV file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // ragged rows are handled per-cell
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.IOError("failed to read CSV file", err), "reading "+r.filePath)
	}
	return rows, nil
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.IOError("failed to open XLSX file", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, errors.Wrap(errors.IOError("failed to read sheet "+r.sheet, err), "reading "+r.filePath)
	}
	return rows, nil
}

// processRows converts raw string rows into Table format. Cells are trimmed;
// short rows leave their trailing columns blank.
func (r *DataReader) processRows(rows [][]string) *Table {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := make([]RowData, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rowData := make(RowData, len(headers))
		for j, header := range headers {
			if j < len(row) {
				rowData[header] = strings.TrimSpace(row[j])
			} else {
				rowData[header] = ""
			}
		}
		dataRows = append(dataRows, rowData)
	}

	return &Table{Headers: headers, Rows: dataRows}
}
