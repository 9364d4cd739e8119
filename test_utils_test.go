package hiveserver2

import (
	"github.com/google/uuid"

	"github.com/anandnalya/hue/tcliservice"
)

/** This file contains wire-format fixture builders for tests only. **/

func successStatus() *tcliservice.Status {
	return &tcliservice.Status{StatusCode: tcliservice.StatusSuccess}
}

func errorStatus(message string) *tcliservice.Status {
	return &tcliservice.Status{StatusCode: tcliservice.StatusError, ErrorMessage: message}
}

func boolColVal(v bool) *tcliservice.ColumnValue {
	return &tcliservice.ColumnValue{BoolVal: &tcliservice.BoolValue{Value: v}}
}

func i32ColVal(v int32) *tcliservice.ColumnValue {
	return &tcliservice.ColumnValue{I32Val: &tcliservice.I32Value{Value: v}}
}

func stringColVal(v string) *tcliservice.ColumnValue {
	return &tcliservice.ColumnValue{StringVal: &tcliservice.StringValue{Value: v}}
}

func nullColVal() *tcliservice.ColumnValue {
	return &tcliservice.ColumnValue{}
}

func wireRow(vals ...*tcliservice.ColumnValue) *tcliservice.Row {
	return &tcliservice.Row{ColVals: vals}
}

func stringRow(vals ...string) *tcliservice.Row {
	colVals := make([]*tcliservice.ColumnValue, len(vals))
	for i, v := range vals {
		colVals[i] = stringColVal(v)
	}
	return &tcliservice.Row{ColVals: colVals}
}

func primitiveTypeDesc(id tcliservice.TypeID) *tcliservice.TypeDesc {
	return &tcliservice.TypeDesc{
		Types: []*tcliservice.TypeEntry{
			{PrimitiveEntry: &tcliservice.PrimitiveTypeEntry{Type: id}},
		},
	}
}

func wireSchema(names ...string) *tcliservice.TableSchema {
	cols := make([]*tcliservice.ColumnDesc, len(names))
	for i, name := range names {
		cols[i] = &tcliservice.ColumnDesc{
			ColumnName: name,
			TypeDesc:   primitiveTypeDesc(tcliservice.TypeString),
			Position:   int32(i),
		}
	}
	return &tcliservice.TableSchema{Columns: cols}
}

func wirePage(rows ...*tcliservice.Row) *tcliservice.RowSet {
	return &tcliservice.RowSet{Rows: rows}
}

func newHandleIdentifier() tcliservice.HandleIdentifier {
	guid := uuid.New()
	secret := uuid.New()
	return tcliservice.HandleIdentifier{GUID: guid[:], Secret: secret[:]}
}

func testOperationHandle(hasResultSet bool) *tcliservice.OperationHandle {
	return &tcliservice.OperationHandle{
		OperationID:   newHandleIdentifier(),
		OperationType: tcliservice.OperationTypeExecuteStatement,
		HasResultSet:  hasResultSet,
	}
}
