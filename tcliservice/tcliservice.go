// Package tcliservice models the typed request/response surface of the
// HiveServer2 TCLIService Thrift API. It is the stub boundary of the client:
// wire-level marshaling is provided by the transport implementation behind
// the CLIService interface, not by this package.
package tcliservice

import "context"

// StatusCode is the status of one RPC response.
type StatusCode int32

const (
	StatusSuccess StatusCode = iota
	StatusSuccessWithInfo
	StatusStillExecuting
	StatusError
	// StatusInvalidHandle is defined by the protocol but not returned by
	// current HiveServer2 or Impala builds.
	StatusInvalidHandle
)

func (s StatusCode) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS_STATUS"
	case StatusSuccessWithInfo:
		return "SUCCESS_WITH_INFO_STATUS"
	case StatusStillExecuting:
		return "STILL_EXECUTING_STATUS"
	case StatusError:
		return "ERROR_STATUS"
	case StatusInvalidHandle:
		return "INVALID_HANDLE_STATUS"
	}
	return "UNKNOWN_STATUS"
}

// OperationState is the server-side state of a submitted operation.
type OperationState int32

const (
	OperationInitialized OperationState = iota
	OperationRunning
	OperationFinished
	OperationCanceled
	OperationClosed
	OperationError
	OperationUnknown
	OperationPending
)

func (s OperationState) String() string {
	switch s {
	case OperationInitialized:
		return "INITIALIZED_STATE"
	case OperationRunning:
		return "RUNNING_STATE"
	case OperationFinished:
		return "FINISHED_STATE"
	case OperationCanceled:
		return "CANCELED_STATE"
	case OperationClosed:
		return "CLOSED_STATE"
	case OperationError:
		return "ERROR_STATE"
	case OperationPending:
		return "PENDING_STATE"
	}
	return "UKNOWN_STATE"
}

// OperationType describes what kind of request produced an operation handle.
type OperationType int32

const (
	OperationTypeExecuteStatement OperationType = iota
	OperationTypeGetTypeInfo
	OperationTypeGetCatalogs
	OperationTypeGetSchemas
	OperationTypeGetTables
	OperationTypeGetTableTypes
	OperationTypeGetColumns
	OperationTypeGetFunctions
	OperationTypeUnknown
)

// FetchOrientation selects where a FetchResults call reads from.
type FetchOrientation int32

const (
	FetchNext FetchOrientation = iota
	FetchPrior
	FetchRelative
	FetchAbsolute
	FetchFirst
	FetchLast
)

// ProtocolVersion is the negotiated TCLIService protocol version.
type ProtocolVersion int32

const (
	ProtocolV1 ProtocolVersion = iota + 1
	ProtocolV2
	ProtocolV3
	ProtocolV4
	ProtocolV5
)

// TypeID enumerates primitive column types.
type TypeID int32

const (
	TypeBoolean TypeID = iota
	TypeTinyint
	TypeSmallint
	TypeInt
	TypeBigint
	TypeFloat
	TypeDouble
	TypeString
	TypeTimestamp
	TypeBinary
	TypeArray
	TypeMap
	TypeStruct
	TypeUnion
	TypeUserDefined
	TypeDecimal
)

var typeNames = [...]string{
	"BOOLEAN_TYPE", "TINYINT_TYPE", "SMALLINT_TYPE", "INT_TYPE",
	"BIGINT_TYPE", "FLOAT_TYPE", "DOUBLE_TYPE", "STRING_TYPE",
	"TIMESTAMP_TYPE", "BINARY_TYPE", "ARRAY_TYPE", "MAP_TYPE",
	"STRUCT_TYPE", "UNION_TYPE", "USER_DEFINED_TYPE", "DECIMAL_TYPE",
}

func (t TypeID) String() string {
	if int(t) < 0 || int(t) >= len(typeNames) {
		return "UNKNOWN_TYPE"
	}
	return typeNames[t]
}

// Status carries the outcome of an RPC.
type Status struct {
	StatusCode   StatusCode
	InfoMessages []string
	SQLState     string
	ErrorCode    int32
	ErrorMessage string
}

// HandleIdentifier is the opaque secret/guid pair identifying a session or
// operation on the server.
type HandleIdentifier struct {
	GUID   []byte
	Secret []byte
}

// SessionHandle identifies a client's execution context.
type SessionHandle struct {
	SessionID HandleIdentifier
}

// OperationHandle identifies one submitted statement or metadata request.
type OperationHandle struct {
	OperationID      HandleIdentifier
	OperationType    OperationType
	HasResultSet     bool
	ModifiedRowCount *float64
}

// Column value variants. Exactly one variant is populated for a non-null
// column; a SQL NULL leaves every variant unset.

// BoolValue holds a boolean column value.
type BoolValue struct {
	Value bool
}

// ByteValue holds a tinyint column value.
type ByteValue struct {
	Value int8
}

// I16Value holds a smallint column value.
type I16Value struct {
	Value int16
}

// I32Value holds an int column value.
type I32Value struct {
	Value int32
}

// I64Value holds a bigint column value.
type I64Value struct {
	Value int64
}

// DoubleValue holds a double column value.
type DoubleValue struct {
	Value float64
}

// StringValue holds a string column value.
type StringValue struct {
	Value string
}

// ColumnValue is the tagged union of column value variants.
type ColumnValue struct {
	BoolVal   *BoolValue
	ByteVal   *ByteValue
	I16Val    *I16Value
	I32Val    *I32Value
	I64Val    *I64Value
	DoubleVal *DoubleValue
	StringVal *StringValue
}

// Row is one result row in wire order.
type Row struct {
	ColVals []*ColumnValue
}

// RowSet is one fetched page of rows.
type RowSet struct {
	StartRowOffset int64
	Rows           []*Row
}

// PrimitiveTypeEntry names a primitive type.
type PrimitiveTypeEntry struct {
	Type TypeID
}

// ArrayTypeEntry references the element type of an array column.
type ArrayTypeEntry struct {
	ObjectTypePtr int32
}

// MapTypeEntry references the key and value types of a map column.
type MapTypeEntry struct {
	KeyTypePtr   int32
	ValueTypePtr int32
}

// StructTypeEntry maps struct field names to their types.
type StructTypeEntry struct {
	NameToTypePtr map[string]int32
}

// UnionTypeEntry maps union alternative names to their types.
type UnionTypeEntry struct {
	NameToTypePtr map[string]int32
}

// UserDefinedTypeEntry names a user defined type.
type UserDefinedTypeEntry struct {
	TypeClassName string
}

// TypeEntry is the tagged union of type descriptor entries.
type TypeEntry struct {
	PrimitiveEntry       *PrimitiveTypeEntry
	ArrayEntry           *ArrayTypeEntry
	MapEntry             *MapTypeEntry
	StructEntry          *StructTypeEntry
	UnionEntry           *UnionTypeEntry
	UserDefinedTypeEntry *UserDefinedTypeEntry
}

// TypeDesc describes a column type as a flattened list of type entries.
type TypeDesc struct {
	Types []*TypeEntry
}

// ColumnDesc describes one result column.
type ColumnDesc struct {
	ColumnName string
	TypeDesc   *TypeDesc
	Position   int32
	Comment    string
}

// TableSchema is the ordered column descriptor list of a result set.
type TableSchema struct {
	Columns []*ColumnDesc
}

// Requests and responses.

// OpenSessionReq opens a new server-side session.
type OpenSessionReq struct {
	ClientProtocol ProtocolVersion
	Username       string
	Password       string
	Configuration  map[string]string
}

// OpenSessionResp is the response to OpenSession.
type OpenSessionResp struct {
	Status                *Status
	ServerProtocolVersion ProtocolVersion
	SessionHandle         *SessionHandle
	Configuration         map[string]string
}

// CloseSessionReq closes a server-side session.
type CloseSessionReq struct {
	SessionHandle *SessionHandle
}

// CloseSessionResp is the response to CloseSession.
type CloseSessionResp struct {
	Status *Status
}

// ExecuteStatementReq submits a statement for execution.
type ExecuteStatementReq struct {
	SessionHandle *SessionHandle
	Statement     string
	ConfOverlay   map[string]string
}

// ExecuteStatementResp is the response to ExecuteStatement.
type ExecuteStatementResp struct {
	Status          *Status
	OperationHandle *OperationHandle
}

// GetSchemasReq lists schemas (databases).
type GetSchemasReq struct {
	SessionHandle *SessionHandle
	CatalogName   string
	SchemaName    string
}

// GetSchemasResp is the response to GetSchemas.
type GetSchemasResp struct {
	Status          *Status
	OperationHandle *OperationHandle
}

// GetTablesReq lists tables by schema and table name pattern.
type GetTablesReq struct {
	SessionHandle *SessionHandle
	CatalogName   string
	SchemaName    string
	TableName     string
	TableTypes    []string
}

// GetTablesResp is the response to GetTables.
type GetTablesResp struct {
	Status          *Status
	OperationHandle *OperationHandle
}

// GetColumnsReq lists columns of a table.
type GetColumnsReq struct {
	SessionHandle *SessionHandle
	CatalogName   string
	SchemaName    string
	TableName     string
	ColumnName    string
}

// GetColumnsResp is the response to GetColumns.
type GetColumnsResp struct {
	Status          *Status
	OperationHandle *OperationHandle
}

// GetResultSetMetadataReq fetches the schema of an operation's result set.
type GetResultSetMetadataReq struct {
	OperationHandle *OperationHandle
}

// GetResultSetMetadataResp is the response to GetResultSetMetadata.
type GetResultSetMetadataResp struct {
	Status *Status
	Schema *TableSchema
}

// FetchResultsReq fetches one page of an operation's results.
type FetchResultsReq struct {
	OperationHandle *OperationHandle
	Orientation     FetchOrientation
	MaxRows         int64
}

// FetchResultsResp is the response to FetchResults.
type FetchResultsResp struct {
	Status      *Status
	HasMoreRows bool
	Results     *RowSet
}

// GetOperationStatusReq polls the state of a running operation.
type GetOperationStatusReq struct {
	OperationHandle *OperationHandle
}

// GetOperationStatusResp is the response to GetOperationStatus.
type GetOperationStatusResp struct {
	Status         *Status
	OperationState OperationState
	SQLState       string
	ErrorCode      int32
	ErrorMessage   string
}

// GetLogReq fetches the execution log of an operation.
type GetLogReq struct {
	OperationHandle *OperationHandle
}

// GetLogResp is the response to GetLog.
type GetLogResp struct {
	Status *Status
	Log    string
}

// GetStatus implementations let callers inspect responses uniformly.

// GetStatus returns the RPC status.
func (r *OpenSessionResp) GetStatus() *Status { return r.Status }

// GetStatus returns the RPC status.
func (r *CloseSessionResp) GetStatus() *Status { return r.Status }

// GetStatus returns the RPC status.
func (r *ExecuteStatementResp) GetStatus() *Status { return r.Status }

// GetStatus returns the RPC status.
func (r *GetSchemasResp) GetStatus() *Status { return r.Status }

// GetStatus returns the RPC status.
func (r *GetTablesResp) GetStatus() *Status { return r.Status }

// GetStatus returns the RPC status.
func (r *GetColumnsResp) GetStatus() *Status { return r.Status }

// GetStatus returns the RPC status.
func (r *GetResultSetMetadataResp) GetStatus() *Status { return r.Status }

// GetStatus returns the RPC status.
func (r *FetchResultsResp) GetStatus() *Status { return r.Status }

// GetStatus returns the RPC status.
func (r *GetOperationStatusResp) GetStatus() *Status { return r.Status }

// GetStatus returns the RPC status.
func (r *GetLogResp) GetStatus() *Status { return r.Status }

// Session handle accessors for requests that carry one.

// GetSessionHandle returns the bound session handle, if any.
func (r *ExecuteStatementReq) GetSessionHandle() *SessionHandle { return r.SessionHandle }

// SetSessionHandle binds a session handle to the request.
func (r *ExecuteStatementReq) SetSessionHandle(h *SessionHandle) { r.SessionHandle = h }

// GetSessionHandle returns the bound session handle, if any.
func (r *GetSchemasReq) GetSessionHandle() *SessionHandle { return r.SessionHandle }

// SetSessionHandle binds a session handle to the request.
func (r *GetSchemasReq) SetSessionHandle(h *SessionHandle) { r.SessionHandle = h }

// GetSessionHandle returns the bound session handle, if any.
func (r *GetTablesReq) GetSessionHandle() *SessionHandle { return r.SessionHandle }

// SetSessionHandle binds a session handle to the request.
func (r *GetTablesReq) SetSessionHandle(h *SessionHandle) { r.SessionHandle = h }

// GetSessionHandle returns the bound session handle, if any.
func (r *GetColumnsReq) GetSessionHandle() *SessionHandle { return r.SessionHandle }

// SetSessionHandle binds a session handle to the request.
func (r *GetColumnsReq) SetSessionHandle(h *SessionHandle) { r.SessionHandle = h }

// Response is implemented by every RPC response.
type Response interface {
	GetStatus() *Status
}

// SessionRequest is implemented by requests that carry a session handle.
type SessionRequest interface {
	GetSessionHandle() *SessionHandle
	SetSessionHandle(*SessionHandle)
}

// CLIService is the client stub for the TCLIService RPC interface. Transport,
// security negotiation and wire encoding live behind implementations of this
// interface; a returned error means the call itself failed, while server-side
// failures surface through the response Status.
//
// Implementations are not required to be safe for concurrent use. Callers
// needing concurrency should use one stub per client instance.
type CLIService interface {
	OpenSession(ctx context.Context, req *OpenSessionReq) (*OpenSessionResp, error)
	CloseSession(ctx context.Context, req *CloseSessionReq) (*CloseSessionResp, error)
	ExecuteStatement(ctx context.Context, req *ExecuteStatementReq) (*ExecuteStatementResp, error)
	GetSchemas(ctx context.Context, req *GetSchemasReq) (*GetSchemasResp, error)
	GetTables(ctx context.Context, req *GetTablesReq) (*GetTablesResp, error)
	GetColumns(ctx context.Context, req *GetColumnsReq) (*GetColumnsResp, error)
	GetResultSetMetadata(ctx context.Context, req *GetResultSetMetadataReq) (*GetResultSetMetadataResp, error)
	FetchResults(ctx context.Context, req *FetchResultsReq) (*FetchResultsResp, error)
	GetOperationStatus(ctx context.Context, req *GetOperationStatusReq) (*GetOperationStatusResp, error)
	GetLog(ctx context.Context, req *GetLogReq) (*GetLogResp, error)
}
