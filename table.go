package hiveserver2

// TableColumn is one column of a described table.
type TableColumn struct {
	Name    string
	Type    string
	Comment string
}

// Table combines a table's catalog row with its DESCRIBE EXTENDED output.
//
// Part of the metadata only exists inside the textual extended description,
// so some accessors scrape that text; implementing the metastore API would
// be the robust alternative.
type Table struct {
	table   Row
	results *RowSet
	parser  ExtendedDescriptionParser
}

// newTable builds the catalog view from the table-listing result page and
// the DESCRIBE EXTENDED result page. Returns ErrNoSuchObject when the
// catalog lookup matched nothing.
func newTable(tableResults, descResults *RowSet, parser ExtendedDescriptionParser) (*Table, error) {
	if tableResults == nil || tableResults.IsEmpty() {
		return nil, ErrNoSuchObject
	}
	if parser == nil {
		parser = regexDescriptionParser{}
	}
	return &Table{
		table:   Row{row: tableResults.rows[0], schema: tableResults.schema},
		results: descResults,
		parser:  parser,
	}, nil
}

// Name returns the table name from the catalog row.
func (t *Table) Name() (string, error) {
	return t.catalogCol("TABLE_NAME")
}

// IsView reports whether the catalog row marks the table as a view.
func (t *Table) IsView() (bool, error) {
	tableType, err := t.catalogCol("TABLE_TYPE")
	if err != nil {
		return false, err
	}
	return tableType == "VIRTUAL_VIEW", nil
}

// Comment returns the table comment from the catalog row.
func (t *Table) Comment() (string, error) {
	return t.catalogCol("REMARKS")
}

func (t *Table) catalogCol(name string) (string, error) {
	value, err := t.table.Col(name)
	if err != nil {
		return "", err
	}
	return stringOrEmpty(value), nil
}

// Cols returns the described columns. The trailing rows of an extended
// describe are blank padding and the embedded description text rather than
// real columns; when any row has an empty name the last two rows are
// dropped.
func (t *Table) Cols() ([]TableColumn, error) {
	cols, err := t.describeCols()
	if err != nil {
		return nil, err
	}
	for _, col := range cols {
		if col.Name == "" {
			if len(cols) < 2 {
				return nil, nil
			}
			return cols[:len(cols)-2], nil
		}
	}
	return cols, nil
}

func (t *Table) describeCols() ([]TableColumn, error) {
	rows, err := t.results.Cols("col_name", "data_type", "comment")
	if err != nil {
		return nil, err
	}
	cols := make([]TableColumn, len(rows))
	for i, row := range rows {
		cols[i] = TableColumn{
			Name:    stringOrEmpty(row["col_name"]),
			Type:    stringOrEmpty(row["data_type"]),
			Comment: stringOrEmpty(row["comment"]),
		}
	}
	return cols, nil
}

// ExtendedDescribe returns the raw extended description text, carried in the
// data_type cell of the last describe row.
func (t *Table) ExtendedDescribe() (string, error) {
	cols, err := t.describeCols()
	if err != nil {
		return "", err
	}
	if len(cols) == 0 {
		return "", nil
	}
	return cols[len(cols)-1].Type, nil
}

// PartitionKeys returns the table's partitioning columns.
func (t *Table) PartitionKeys() ([]PartitionKey, error) {
	describe, err := t.ExtendedDescribe()
	if err != nil {
		return nil, err
	}
	return t.parser.Parse(describe).PartitionKeys, nil
}

// Location returns the table's storage location.
func (t *Table) Location() (string, error) {
	describe, err := t.ExtendedDescribe()
	if err != nil {
		return "", err
	}
	return t.parser.Parse(describe).Location, nil
}

// Parameters returns the table parameters key/value map.
func (t *Table) Parameters() (map[string]string, error) {
	describe, err := t.ExtendedDescribe()
	if err != nil {
		return nil, err
	}
	return t.parser.Parse(describe).Parameters, nil
}
