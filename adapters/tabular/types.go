package tabular

// RowData represents one raw data row as string key-value pairs keyed by
// the trimmed source header.
type RowData map[string]string

// Table represents the complete raw tabular source.
type Table struct {
	Headers []string  // Column headers, in source order
	Rows    []RowData // Data rows
}
