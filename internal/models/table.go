package models

// Row is one raw spreadsheet row keyed by source-column identifier.
type Row map[string]string

// Table is a batch of raw rows plus the schema (column identifiers) they were read with.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
	// FirstRow is the source line number of Rows[0]; zero means 1.
	FirstRow int `json:"firstRow,omitempty"`
}

// NewTable builds a table with an explicit column schema.
func NewTable(columns []string, rows ...Row) Table {
	return Table{Columns: columns, Rows: rows}
}

// Schema returns the set of known column identifiers.
// Without explicit columns the schema is the union of all row keys.
func (t Table) Schema() map[string]struct{} {
	schema := make(map[string]struct{}, len(t.Columns))

	if len(t.Columns) > 0 {
		for _, c := range t.Columns {
			schema[c] = struct{}{}
		}

		return schema
	}

	for _, row := range t.Rows {
		for c := range row {
			schema[c] = struct{}{}
		}
	}

	return schema
}

// IsEmpty reports whether the table carries neither a schema nor rows.
func (t Table) IsEmpty() bool {
	return len(t.Columns) == 0 && len(t.Rows) == 0
}

// RowNumber returns the source line number of Rows[i].
func (t Table) RowNumber(i int) int {
	if t.FirstRow <= 0 {
		return i + 1
	}

	return t.FirstRow + i
}
