package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"surveyreport/internal/errors"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "surveys.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestReadData_CSV(t *testing.T) {
	path := writeTempCSV(t, "record_id,date,sex\n1, 7/16/1977 ,f\n2,7/17/1977,\n")

	table, err := NewDataReader(path, "Sheet1").ReadData()
	if err != nil {
		t.Fatalf("ReadData: %v", err)
	}

	if len(table.Headers) != 3 {
		t.Fatalf("expected 3 headers, got %v", table.Headers)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[0]["date"] != "7/16/1977" {
		t.Errorf("expected trimmed cell, got %q", table.Rows[0]["date"])
	}
	if table.Rows[1]["sex"] != "" {
		t.Errorf("expected blank cell to stay blank, got %q", table.Rows[1]["sex"])
	}
}

func TestReadData_ShortRowsLeaveBlanks(t *testing.T) {
	path := writeTempCSV(t, "a,b,c\n1,2\n")

	table, err := NewDataReader(path, "Sheet1").ReadData()
	if err != nil {
		t.Fatalf("ReadData: %v", err)
	}
	if table.Rows[0]["c"] != "" {
		t.Errorf("expected missing trailing cell to be blank, got %q", table.Rows[0]["c"])
	}
}

func TestReadData_MissingFileIsIOError(t *testing.T) {
	_, err := NewDataReader("no/such/file.csv", "Sheet1").ReadData()
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.HasCode(err, errors.CodeIOError) {
		t.Errorf("expected IO_ERROR, got code %s (%v)", errors.GetCode(err), err)
	}
}

func TestReadData_HeaderOnlyIsParseError(t *testing.T) {
	path := writeTempCSV(t, "record_id,date,sex\n")

	_, err := NewDataReader(path, "Sheet1").ReadData()
	if err == nil {
		t.Fatal("expected error for header-only file")
	}
	if !errors.HasCode(err, errors.CodeParseError) {
		t.Errorf("expected PARSE_ERROR, got code %s (%v)", errors.GetCode(err), err)
	}
}
