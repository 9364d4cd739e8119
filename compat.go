package hiveserver2

import (
	"context"

	"github.com/anandnalya/hue/tcliservice"
)

// QueryState is the facade's closed set of logical query states.
type QueryState int

const (
	StateSubmitted QueryState = iota
	StateRunning
	StateAvailable
	StateExpired
	StateFailed
)

func (s QueryState) String() string {
	switch s {
	case StateSubmitted:
		return "submitted"
	case StateRunning:
		return "running"
	case StateAvailable:
		return "available"
	case StateExpired:
		return "expired"
	}
	return "failed"
}

// stateMap folds the raw operation states onto the logical state set.
var stateMap = map[tcliservice.OperationState]QueryState{
	tcliservice.OperationInitialized: StateSubmitted,
	tcliservice.OperationPending:     StateSubmitted,
	tcliservice.OperationRunning:     StateRunning,
	tcliservice.OperationFinished:    StateAvailable,
	tcliservice.OperationCanceled:    StateExpired,
	tcliservice.OperationClosed:      StateExpired,
	tcliservice.OperationError:       StateFailed,
	tcliservice.OperationUnknown:     StateFailed,
}

const (
	notAvailableMsg      = "Does not exist in HS2"
	defaultCompatMaxRows = 10000
)

// ClientCompatible re-exposes Client under the older synchronous engine API
// shape, for callers written against that contract.
type ClientCompatible struct {
	client *Client

	// User and QueryServer mirror the wrapped client for existing callers.
	User        string
	QueryServer *QueryServer
}

// NewClientCompatible wraps a client in the older API shape.
func NewClientCompatible(client *Client) *ClientCompatible {
	return &ClientCompatible{
		client:      client,
		User:        client.user,
		QueryServer: client.queryServer,
	}
}

// Query submits one statement of the query asynchronously.
func (c *ClientCompatible) Query(ctx context.Context, query Query, statement int) (*QueryHandle, error) {
	return c.client.ExecuteAsyncQuery(ctx, query, statement)
}

// GetState polls the operation and maps its raw state onto the logical state
// set. Unmappable states report as failed.
func (c *ClientCompatible) GetState(ctx context.Context, handle *QueryHandle) (QueryState, error) {
	operationHandle, err := handle.RPCHandle()
	if err != nil {
		return StateFailed, err
	}
	res, err := c.client.GetOperationStatus(ctx, operationHandle)
	if err != nil {
		return StateFailed, err
	}
	state, ok := stateMap[res.OperationState]
	if !ok {
		return StateFailed, nil
	}
	return state, nil
}

// Explain has no HiveServer2 equivalent.
func (c *ClientCompatible) Explain(ctx context.Context, query Query) error {
	return ErrNotSupported
}

// Fetch fetches one result page of a submitted statement. startOver selects
// fetching from the start, which Impala does not support: there it silently
// degrades to a fetch-next.
func (c *ClientCompatible) Fetch(ctx context.Context, handle *QueryHandle, startOver bool, maxRows int64) (*ResultCompatible, error) {
	operationHandle, err := handle.RPCHandle()
	if err != nil {
		return nil, err
	}
	if maxRows <= 0 {
		maxRows = defaultCompatMaxRows
	}

	if !c.client.variant.supportsFetchFirst {
		startOver = false
	}
	orientation := tcliservice.FetchNext
	if startOver {
		orientation = tcliservice.FetchFirst
	}

	dataTable, err := c.client.FetchData(ctx, operationHandle, orientation, maxRows)
	if err != nil {
		return nil, err
	}
	return newResultCompatible(dataTable), nil
}

// DumpConfig is kept for backward compatibility with the older engine.
func (c *ClientCompatible) DumpConfig() string {
	return notAvailableMsg
}

// Echo is kept for backward compatibility with the older engine.
func (c *ClientCompatible) Echo(msg string) string {
	return notAvailableMsg
}

// GetLog fetches the execution log of a submitted statement.
func (c *ClientCompatible) GetLog(ctx context.Context, handle *QueryHandle) (string, error) {
	operationHandle, err := handle.RPCHandle()
	if err != nil {
		return "", err
	}
	return c.client.GetLog(ctx, operationHandle)
}

// GetDatabases returns database names.
func (c *ClientCompatible) GetDatabases(ctx context.Context) ([]string, error) {
	col := c.client.variant.schemaColumnName
	rows, err := c.client.GetDatabases(ctx)
	if err != nil {
		return nil, err
	}
	databases := make([]string, 0, len(rows))
	for _, row := range rows {
		databases = append(databases, stringOrEmpty(row[col]))
	}
	return databases, nil
}

// GetTables returns the names of tables matching the pattern.
func (c *ClientCompatible) GetTables(ctx context.Context, database, tableNames string) ([]string, error) {
	rows, err := c.client.GetTables(ctx, database, tableNames)
	if err != nil {
		return nil, err
	}
	tables := make([]string, 0, len(rows))
	for _, row := range rows {
		tables = append(tables, stringOrEmpty(row["TABLE_NAME"]))
	}
	return tables, nil
}

// GetTable returns the combined catalog view of a table.
func (c *ClientCompatible) GetTable(ctx context.Context, database, tableName string) (*TableCompatible, error) {
	table, err := c.client.GetTable(ctx, database, tableName)
	if err != nil {
		return nil, err
	}
	return &TableCompatible{Table: table}, nil
}

// GetDefaultConfiguration mirrors the older engine's call; HiveServer2 has
// no equivalent, so the set is always empty.
func (c *ClientCompatible) GetDefaultConfiguration(includeHadoop bool) []Setting {
	return nil
}

// CreateDatabase has no HiveServer2 equivalent.
func (c *ClientCompatible) CreateDatabase(ctx context.Context, name, description string) error {
	return ErrNotSupported
}

// GetDatabase has no HiveServer2 equivalent.
func (c *ClientCompatible) GetDatabase(ctx context.Context, name string) error {
	return ErrNotSupported
}

// AlterTable has no HiveServer2 equivalent.
func (c *ClientCompatible) AlterTable(ctx context.Context, database, tableName string) error {
	return ErrNotSupported
}

// AddPartition has no HiveServer2 equivalent.
func (c *ClientCompatible) AddPartition(ctx context.Context, database, tableName string, values []string) error {
	return ErrNotSupported
}

// GetPartition has no HiveServer2 equivalent.
func (c *ClientCompatible) GetPartition(ctx context.Context, database, tableName string, values []string) error {
	return ErrNotSupported
}

// AlterPartition has no HiveServer2 equivalent.
func (c *ClientCompatible) AlterPartition(ctx context.Context, database, tableName string, values []string) error {
	return ErrNotSupported
}

// GetPartitions lists at most the last maxParts partitions of a table.
func (c *ClientCompatible) GetPartitions(ctx context.Context, database, tableName string, maxParts int) ([]Partition, error) {
	return c.client.GetPartitions(ctx, database, tableName, maxParts)
}

// ResultCompatible adapts a DataTable to the older result shape.
type ResultCompatible struct {
	dataTable *DataTable

	HasMore  bool
	StartRow int64
	Ready    bool
}

func newResultCompatible(dataTable *DataTable) *ResultCompatible {
	return &ResultCompatible{
		dataTable: dataTable,
		HasMore:   dataTable.HasMore,
		StartRow:  dataTable.StartRowOffset,
		Ready:     true,
	}
}

// Columns returns the result column names.
func (r *ResultCompatible) Columns() []string {
	cols := r.dataTable.Columns()
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.Name()
	}
	return names
}

// Next pops and returns the decoded fields of the next row.
func (r *ResultCompatible) Next() ([]any, bool) {
	return r.dataTable.Next()
}

// TableCompatible re-exposes Table to callers of the older engine API. The
// column shape is shared, so it is a thin named wrapper.
type TableCompatible struct {
	*Table
}
