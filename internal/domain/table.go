package domain

// ColumnKind is the inferred data type of a table column
type ColumnKind string

const (
	ColumnKindNumeric ColumnKind = "NUMERIC"
	ColumnKindText    ColumnKind = "TEXT"
)

// Column describes one column of an imported table
type Column struct {
	Name string
	Kind ColumnKind
}

// Row maps a column name to the raw cell text
type Row map[string]string

// Table represents a raw tabular import before it is accepted as records.
// Columns keep the header order of the source.
type Table struct {
	Columns []Column
	Rows    []Row
}

// ColumnNames returns the table's column names in header order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Validate gate-keeps an imported table before its rows become records.
// Logic:
//  1. Every required column must be present; otherwise a SchemaError lists all missing ones
//  2. At least one column must be numeric; otherwise NoNumericDataError
//
// The table is never modified. A table with zero rows passes when its header
// is complete, because column kinds are inferred from cells and are numeric
// when no cell contradicts them.
func (t *Table) Validate() error {
	present := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		present[c.Name] = true
	}

	var missing []string
	for _, name := range RequiredColumns {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}

	for _, c := range t.Columns {
		if c.Kind == ColumnKindNumeric {
			return nil
		}
	}
	return &NoNumericDataError{Columns: t.ColumnNames()}
}

// Records converts every row into a PropertyRecord, stopping at the first
// row that cannot be converted. Callers are expected to Validate first.
func (t *Table) Records() ([]PropertyRecord, error) {
	records := make([]PropertyRecord, 0, len(t.Rows))
	for i, row := range t.Rows {
		rec, err := RecordFromRow(i, row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
