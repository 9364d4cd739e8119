package hiveserver2

import "github.com/anandnalya/hue/tcliservice"

// columnPosition returns the index of the named column in the schema. The
// first match wins; callers must supply exact, unique names.
func columnPosition(schema *tcliservice.TableSchema, name string) (int, error) {
	if schema != nil {
		for i, col := range schema.Columns {
			if col.ColumnName == name {
				return i, nil
			}
		}
	}
	return 0, &ColumnNotFoundError{Column: name}
}

// Row gives name-based access over one positional wire row. The row and
// schema must come from the same result set or lookups are undefined.
type Row struct {
	row    *tcliservice.Row
	schema *tcliservice.TableSchema
}

// Col returns the decoded value of the named column.
func (r Row) Col(name string) (any, error) {
	pos, err := columnPosition(r.schema, name)
	if err != nil {
		return nil, err
	}
	return decodeColumnValue(r.row.ColVals[pos]), nil
}

// Fields decodes every column in wire order.
func (r Row) Fields() []any {
	fields := make([]any, len(r.row.ColVals))
	for i, v := range r.row.ColVals {
		fields[i] = decodeColumnValue(v)
	}
	return fields
}

// RowSet pairs one fetched page of wire rows with its schema. Iteration via
// Next is destructive: each call pops the front row, and a consumed row set
// cannot be traversed again without a new fetch.
type RowSet struct {
	rows   []*tcliservice.Row
	schema *tcliservice.TableSchema

	// StartRowOffset is reported by the server but is always zero for this
	// protocol family; it cannot be used for resumable pagination.
	StartRowOffset int64
}

func newRowSet(rowSet *tcliservice.RowSet, schema *tcliservice.TableSchema) *RowSet {
	rs := &RowSet{schema: schema}
	if rowSet != nil {
		rs.rows = rowSet.Rows
		rs.StartRowOffset = rowSet.StartRowOffset
	}
	return rs
}

// IsEmpty reports whether the page holds no more rows.
func (rs *RowSet) IsEmpty() bool {
	return len(rs.rows) == 0
}

// Next pops and returns the next row. ok is false once the page is consumed.
func (rs *RowSet) Next() (row Row, ok bool) {
	if len(rs.rows) == 0 {
		return Row{}, false
	}
	r := rs.rows[0]
	rs.rows = rs.rows[1:]
	return Row{row: r, schema: rs.schema}, true
}

// Cols projects the named columns of every remaining row into per-row maps,
// without consuming the page.
func (rs *RowSet) Cols(names ...string) ([]map[string]any, error) {
	projected := make([]map[string]any, 0, len(rs.rows))
	for _, wireRow := range rs.rows {
		row := Row{row: wireRow, schema: rs.schema}
		cols := make(map[string]any, len(names))
		for _, name := range names {
			value, err := row.Col(name)
			if err != nil {
				return nil, err
			}
			cols[name] = value
		}
		projected = append(projected, cols)
	}
	return projected, nil
}

// ColumnDesc wraps one wire column descriptor.
type ColumnDesc struct {
	col *tcliservice.ColumnDesc
}

// Name returns the column name.
func (c ColumnDesc) Name() string {
	return c.col.ColumnName
}

// Comment returns the column comment.
func (c ColumnDesc) Comment() string {
	return c.col.Comment
}

// Type returns the canonical primitive type name, or the nested type entry
// for complex types.
func (c ColumnDesc) Type() any {
	return resolveType(c.col.TypeDesc)
}

// DataTable wraps one fetched result page plus its schema as an iterable
// table.
//
// HasMore approximates "more data available" as "this page was non-empty":
// HiveServer2 misreports hasMoreRows, so callers must keep fetching until an
// empty page comes back instead of trusting the server flag.
type DataTable struct {
	schema *tcliservice.TableSchema
	rowSet *RowSet

	HasMore        bool
	StartRowOffset int64
}

func newDataTable(results *tcliservice.FetchResultsResp, schema *tcliservice.GetResultSetMetadataResp) *DataTable {
	var tableSchema *tcliservice.TableSchema
	if schema != nil {
		tableSchema = schema.Schema
	}
	var wireRows *tcliservice.RowSet
	if results != nil {
		wireRows = results.Results
	}
	rowSet := newRowSet(wireRows, tableSchema)
	return &DataTable{
		schema:         tableSchema,
		rowSet:         rowSet,
		HasMore:        !rowSet.IsEmpty(),
		StartRowOffset: rowSet.StartRowOffset,
	}
}

// Columns returns the result column descriptors in wire order.
func (t *DataTable) Columns() []ColumnDesc {
	if t.schema == nil {
		return nil
	}
	cols := make([]ColumnDesc, len(t.schema.Columns))
	for i, col := range t.schema.Columns {
		cols[i] = ColumnDesc{col: col}
	}
	return cols
}

// Next pops and returns the decoded fields of the next row. The traversal is
// forward-only and single-pass; re-reading requires a new fetch.
func (t *DataTable) Next() ([]any, bool) {
	row, ok := t.rowSet.Next()
	if !ok {
		return nil, false
	}
	return row.Fields(), true
}
