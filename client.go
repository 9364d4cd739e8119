package hiveserver2

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/anandnalya/hue/tcliservice"
)

const defaultFetchRows = 100

// serviceVariant captures the behavioral differences between the engines
// behind the protocol, resolved once at client construction.
type serviceVariant struct {
	// syncModeSettable: the engine honors the session-scoped
	// hive.server2.blocking.query setting.
	syncModeSettable bool
	// supportsFetchFirst: the engine accepts the FETCH_FIRST orientation.
	supportsFetchFirst bool
	// schemaColumnName: catalog column holding the database name in
	// GetSchemas results.
	schemaColumnName string
}

func variantFor(serverName string) serviceVariant {
	switch serverName {
	case "impala":
		return serviceVariant{
			syncModeSettable:   false,
			supportsFetchFirst: false,
			schemaColumnName:   "TABLE_SCHEM",
		}
	case "beeswax":
		return serviceVariant{
			syncModeSettable:   true,
			supportsFetchFirst: true,
			schemaColumnName:   "TABLE_SCHEMA",
		}
	}
	return serviceVariant{
		supportsFetchFirst: true,
		schemaColumnName:   "TABLE_SCHEMA",
	}
}

// Setting is one key/value configuration override applied per execution.
type Setting struct {
	Key   string
	Value string
}

// Query is the caller-supplied bundle of statement text and configuration.
type Query interface {
	// Statement returns the i-th statement of a multi-statement query.
	Statement(i int) string
	// Configuration returns resource statements applied to the session
	// before the first statement executes.
	Configuration() []string
	// Settings returns key/value settings overlaid per execution.
	Settings() []Setting
}

// QueryHandle identifies one submitted statement across its lifetime. Secret
// and GUID hold the base64 encoding of the server's operation identifier.
// Immutable once created.
type QueryHandle struct {
	Secret           string
	GUID             string
	OperationType    tcliservice.OperationType
	HasResultSet     bool
	ModifiedRowCount float64
}

// RPCHandle rebuilds the wire operation handle.
func (h *QueryHandle) RPCHandle() (*tcliservice.OperationHandle, error) {
	secret, guid, err := decodeHandleID(h.Secret, h.GUID)
	if err != nil {
		return nil, err
	}
	return &tcliservice.OperationHandle{
		OperationID:   tcliservice.HandleIdentifier{GUID: guid, Secret: secret},
		OperationType: h.OperationType,
		HasResultSet:  h.HasResultSet,
	}, nil
}

var invalidSessionRe = regexp.MustCompile(`(?i)Invalid SessionHandle|Invalid session`)

// Client is the session and execution client for one (user, query server)
// pair. Neither the client nor the underlying stub is safe for concurrent
// use; callers needing concurrency should use independent clients.
type Client struct {
	queryServer *QueryServer
	user        string
	variant     serviceVariant
	cli         tcliservice.CLIService
	store       SessionStore
	parser      ExtendedDescriptionParser
}

// NewClient wraps an RPC stub and a session store into a client for the
// given user and query server.
func NewClient(queryServer *QueryServer, user string, cli tcliservice.CLIService, store SessionStore) *Client {
	return &Client{
		queryServer: queryServer,
		user:        user,
		variant:     variantFor(queryServer.ServerName),
		cli:         cli,
		store:       store,
		parser:      regexDescriptionParser{},
	}
}

// SetExtendedDescriptionParser swaps the DESCRIBE EXTENDED parser, e.g. for
// a server version with a different describe grammar.
func (c *Client) SetExtendedDescriptionParser(p ExtendedDescriptionParser) {
	c.parser = p
}

// OpenSession opens a server-side session for the user and persists the new
// record, replacing any prior one for the (user, server) key. Exactly one
// server-side session is created per call.
func (c *Client) OpenSession(ctx context.Context, user string) (*Session, error) {
	req := &tcliservice.OpenSessionReq{Username: user, Configuration: map[string]string{}}
	res, err := c.cli.OpenSession(ctx, req)
	if err != nil {
		return nil, err
	}
	if !successful(res.GetStatus()) || res.SessionHandle == nil {
		return nil, &QueryServerError{
			Message:  fmt.Sprintf("bad status for request %+v:\n%+v", req, res),
			Request:  req,
			Response: res,
		}
	}

	sessionID := res.SessionHandle.SessionID
	logger.WithContext(ctx).Infof("opening session %x", sessionID.GUID)

	secret, guid := encodeHandleID(sessionID)
	var statusCode tcliservice.StatusCode
	if res.Status != nil {
		statusCode = res.Status.StatusCode
	}
	return c.store.Create(user, c.queryServer.ServerName, secret, guid, res.ServerProtocolVersion, statusCode)
}

// session returns the tracked session for the client's key, opening one when
// none exists. The check-then-open sequence is not locked: concurrent
// callers sharing a key may race and create duplicate server-side sessions,
// with the store keeping the last one written.
func (c *Client) session(ctx context.Context) (*Session, error) {
	if session, ok := c.store.Get(c.user, c.queryServer.ServerName); ok {
		return session, nil
	}
	return c.OpenSession(ctx, c.user)
}

// call dispatches one RPC with transparent session renewal: a request with
// an unset session handle is bound to the tracked session (opening one if
// needed), and a response reporting an invalid session triggers exactly one
// open-new-session-and-retry. A second stale-session failure propagates as
// QueryServerError instead of looping.
func call[Req any, Resp tcliservice.Response](ctx context.Context, c *Client, fn func(context.Context, Req) (Resp, error), req Req) (Resp, error) {
	return dispatch(ctx, c, fn, req, true)
}

// callNoCheck dispatches like call but skips response status validation;
// used for status-polling calls whose non-success codes are meaningful.
func callNoCheck[Req any, Resp tcliservice.Response](ctx context.Context, c *Client, fn func(context.Context, Req) (Resp, error), req Req) (Resp, error) {
	return dispatch(ctx, c, fn, req, false)
}

func dispatch[Req any, Resp tcliservice.Response](ctx context.Context, c *Client, fn func(context.Context, Req) (Resp, error), req Req, checkStatus bool) (Resp, error) {
	var zero Resp

	session, err := c.session(ctx)
	if err != nil {
		return zero, err
	}
	sessionReq, carriesSession := any(req).(tcliservice.SessionRequest)
	if carriesSession && sessionReq.GetSessionHandle() == nil {
		handle, err := session.Handle()
		if err != nil {
			return zero, err
		}
		sessionReq.SetSessionHandle(handle)
	}

	res, err := fn(ctx, req)
	if err != nil {
		return zero, err
	}

	// INVALID_HANDLE_STATUS is not returned by current servers; a stale
	// session surfaces as ERROR_STATUS with a recognizable message.
	if status := res.GetStatus(); status != nil &&
		status.StatusCode == tcliservice.StatusError &&
		invalidSessionRe.MatchString(status.ErrorMessage) {
		logger.WithContext(ctx).Infof("retrying with a new session because of: %s", status.ErrorMessage)

		session, err = c.OpenSession(ctx, c.user)
		if err != nil {
			return zero, err
		}
		if carriesSession {
			handle, err := session.Handle()
			if err != nil {
				return zero, err
			}
			sessionReq.SetSessionHandle(handle)
		}
		// Single-shot retry: a second stale-session error falls through
		// to the status check below.
		res, err = fn(ctx, req)
		if err != nil {
			return zero, err
		}
	}

	if checkStatus && !successful(res.GetStatus()) {
		return zero, &QueryServerError{
			Message:  fmt.Sprintf("bad status for request %+v:\n%+v", req, res),
			Request:  req,
			Response: res,
		}
	}
	return res, nil
}

func successful(status *tcliservice.Status) bool {
	if status == nil {
		return false
	}
	switch status.StatusCode {
	case tcliservice.StatusSuccess, tcliservice.StatusSuccessWithInfo, tcliservice.StatusStillExecuting:
		return true
	}
	return false
}

// CloseSession closes the tracked session on the server. The local record is
// not removed, so a later call will find the stale session and renew it
// through the invalid-session retry path.
func (c *Client) CloseSession(ctx context.Context) (*tcliservice.CloseSessionResp, error) {
	session, ok := c.store.Get(c.user, c.queryServer.ServerName)
	if !ok {
		return nil, ErrNoSession
	}
	handle, err := session.Handle()
	if err != nil {
		return nil, err
	}
	return c.cli.CloseSession(ctx, &tcliservice.CloseSessionReq{SessionHandle: handle})
}

// setBlocking toggles the session-scoped synchronous execution mode. A no-op
// for engines that do not honor the setting.
func (c *Client) setBlocking(ctx context.Context, blocking bool) error {
	if !c.variant.syncModeSettable {
		return nil
	}
	statement := "SET hive.server2.blocking.query=" + strconv.FormatBool(blocking)
	_, _, err := c.executeStatement(ctx, statement, defaultFetchRows)
	return err
}

// GetDatabases lists databases as per-row projections of the catalog column
// holding the database name. GetCatalogs is not implemented by HiveServer2,
// so the schema listing is used instead.
func (c *Client) GetDatabases(ctx context.Context) ([]map[string]any, error) {
	res, err := call(ctx, c, c.cli.GetSchemas, &tcliservice.GetSchemasReq{})
	if err != nil {
		return nil, err
	}
	results, schema, err := c.fetchResult(ctx, res.OperationHandle, tcliservice.FetchNext, defaultFetchRows)
	if err != nil {
		return nil, err
	}
	return newDataTable(results, schema).rowSet.Cols(c.variant.schemaColumnName)
}

// GetTables lists tables by schema and table name pattern, projected on
// TABLE_NAME.
func (c *Client) GetTables(ctx context.Context, database, tableNames string) ([]map[string]any, error) {
	req := &tcliservice.GetTablesReq{SchemaName: database, TableName: tableNames}
	res, err := call(ctx, c, c.cli.GetTables, req)
	if err != nil {
		return nil, err
	}
	results, schema, err := c.fetchResult(ctx, res.OperationHandle, tcliservice.FetchNext, defaultFetchRows)
	if err != nil {
		return nil, err
	}
	return newDataTable(results, schema).rowSet.Cols("TABLE_NAME")
}

// GetTable combines a table's catalog row with its DESCRIBE EXTENDED output.
// The catalog call omits column comments, which only surface through the
// describe statement.
func (c *Client) GetTable(ctx context.Context, database, tableName string) (*Table, error) {
	req := &tcliservice.GetTablesReq{SchemaName: database, TableName: tableName}
	res, err := call(ctx, c, c.cli.GetTables, req)
	if err != nil {
		return nil, err
	}
	tableResults, tableSchema, err := c.fetchResult(ctx, res.OperationHandle, tcliservice.FetchNext, defaultFetchRows)
	if err != nil {
		return nil, err
	}

	if err := c.setBlocking(ctx, true); err != nil {
		return nil, err
	}
	descResults, descSchema, err := c.executeStatement(ctx, "DESCRIBE EXTENDED "+tableName, defaultFetchRows)
	if err != nil {
		return nil, err
	}
	return newTable(
		newRowSet(resultRows(tableResults), resultSchema(tableSchema)),
		newRowSet(resultRows(descResults), resultSchema(descSchema)),
		c.parser,
	)
}

// ExecuteQuery runs the query's first statement synchronously and returns up
// to maxRows rows.
func (c *Client) ExecuteQuery(ctx context.Context, query Query, maxRows int64) (*DataTable, error) {
	return c.ExecuteQueryStatement(ctx, query.Statement(0), maxRows)
}

// ExecuteQueryStatement runs one statement synchronously. Per-call
// configuration is only supported by ExecuteAsyncQuery.
func (c *Client) ExecuteQueryStatement(ctx context.Context, statement string, maxRows int64) (*DataTable, error) {
	if maxRows <= 0 {
		maxRows = defaultFetchRows
	}
	if err := c.setBlocking(ctx, true); err != nil {
		return nil, err
	}
	results, schema, err := c.executeStatement(ctx, statement, maxRows)
	if err != nil {
		return nil, err
	}
	return newDataTable(results, schema), nil
}

// ExecuteAsyncQuery submits one statement of a multi-statement query for
// asynchronous execution and returns its operation handle.
//
// On the first statement the query's configuration resources are applied as
// session-scoped settings: HiveServer2 ignores the per-call configuration
// overlay, so these settings leak into the session for its remaining
// lifetime.
func (c *Client) ExecuteAsyncQuery(ctx context.Context, query Query, statement int) (*QueryHandle, error) {
	if statement == 0 {
		if err := c.setBlocking(ctx, true); err != nil {
			return nil, err
		}
		for _, resource := range query.Configuration() {
			if _, _, err := c.executeStatement(ctx, strings.TrimSpace(resource), defaultFetchRows); err != nil {
				return nil, err
			}
		}
	}

	if err := c.setBlocking(ctx, false); err != nil {
		return nil, err
	}

	confOverlay := make(map[string]string)
	for _, setting := range query.Settings() {
		confOverlay[setting.Key] = setting.Value
	}
	return c.executeAsyncStatement(ctx, query.Statement(statement), confOverlay)
}

func (c *Client) executeStatement(ctx context.Context, statement string, maxRows int64) (*tcliservice.FetchResultsResp, *tcliservice.GetResultSetMetadataResp, error) {
	req := &tcliservice.ExecuteStatementReq{Statement: statement, ConfOverlay: map[string]string{}}
	res, err := call(ctx, c, c.cli.ExecuteStatement, req)
	if err != nil {
		return nil, nil, err
	}
	return c.fetchResult(ctx, res.OperationHandle, tcliservice.FetchNext, maxRows)
}

func (c *Client) executeAsyncStatement(ctx context.Context, statement string, confOverlay map[string]string) (*QueryHandle, error) {
	req := &tcliservice.ExecuteStatementReq{Statement: statement, ConfOverlay: confOverlay}
	res, err := call(ctx, c, c.cli.ExecuteStatement, req)
	if err != nil {
		return nil, err
	}
	op := res.OperationHandle
	if op == nil {
		return nil, &QueryServerError{
			Message:  fmt.Sprintf("no operation handle for request %+v:\n%+v", req, res),
			Request:  req,
			Response: res,
		}
	}
	secret, guid := encodeHandleID(op.OperationID)
	handle := &QueryHandle{
		Secret:        secret,
		GUID:          guid,
		OperationType: op.OperationType,
		HasResultSet:  op.HasResultSet,
	}
	if op.ModifiedRowCount != nil {
		handle.ModifiedRowCount = *op.ModifiedRowCount
	}
	return handle, nil
}

// FetchData fetches one page of an operation's results. Callers must keep
// fetching until an empty page is returned; DataTable.HasMore only reflects
// whether this page was non-empty.
func (c *Client) FetchData(ctx context.Context, handle *tcliservice.OperationHandle, orientation tcliservice.FetchOrientation, maxRows int64) (*DataTable, error) {
	if maxRows <= 0 {
		maxRows = defaultFetchRows
	}
	results, schema, err := c.fetchResult(ctx, handle, orientation, maxRows)
	if err != nil {
		return nil, err
	}
	return newDataTable(results, schema), nil
}

// GetColumns fetches the column listing of a table.
func (c *Client) GetColumns(ctx context.Context, database, table string) (*tcliservice.FetchResultsResp, *tcliservice.GetResultSetMetadataResp, error) {
	req := &tcliservice.GetColumnsReq{SchemaName: database, TableName: table}
	res, err := call(ctx, c, c.cli.GetColumns, req)
	if err != nil {
		return nil, nil, err
	}
	return c.fetchResult(ctx, res.OperationHandle, tcliservice.FetchNext, defaultFetchRows)
}

// fetchResult fetches one result page and, when the operation yields a
// result set, its schema.
func (c *Client) fetchResult(ctx context.Context, operationHandle *tcliservice.OperationHandle, orientation tcliservice.FetchOrientation, maxRows int64) (*tcliservice.FetchResultsResp, *tcliservice.GetResultSetMetadataResp, error) {
	fetchReq := &tcliservice.FetchResultsReq{
		OperationHandle: operationHandle,
		Orientation:     orientation,
		MaxRows:         maxRows,
	}
	res, err := call(ctx, c, c.cli.FetchResults, fetchReq)
	if err != nil {
		return nil, nil, err
	}

	var schema *tcliservice.GetResultSetMetadataResp
	if operationHandle != nil && operationHandle.HasResultSet {
		metaReq := &tcliservice.GetResultSetMetadataReq{OperationHandle: operationHandle}
		schema, err = call(ctx, c, c.cli.GetResultSetMetadata, metaReq)
		if err != nil {
			return nil, nil, err
		}
	}
	return res, schema, nil
}

// GetOperationStatus polls the state of a running operation. Status
// validation is skipped: non-success codes are part of a polling response's
// semantics.
func (c *Client) GetOperationStatus(ctx context.Context, handle *tcliservice.OperationHandle) (*tcliservice.GetOperationStatusResp, error) {
	req := &tcliservice.GetOperationStatusReq{OperationHandle: handle}
	return callNoCheck(ctx, c, c.cli.GetOperationStatus, req)
}

// GetLog fetches the execution log of an operation.
func (c *Client) GetLog(ctx context.Context, handle *tcliservice.OperationHandle) (string, error) {
	req := &tcliservice.GetLogReq{OperationHandle: handle}
	res, err := call(ctx, c, c.cli.GetLog, req)
	if err != nil {
		return "", err
	}
	return res.Log, nil
}

// Partition is one partition of a table: the partition spec values plus the
// storage path derived from the table location.
type Partition struct {
	Values   []string
	Location string
}

// GetPartitions lists the table's partitions, keeping at most the last
// maxParts entries in original order. SHOW PARTITIONS does not accept a
// database-qualified name.
func (c *Client) GetPartitions(ctx context.Context, database, tableName string, maxParts int) ([]Partition, error) {
	table, err := c.GetTable(ctx, database, tableName)
	if err != nil {
		return nil, err
	}
	if err := c.setBlocking(ctx, true); err != nil {
		return nil, err
	}
	partitionTable, err := c.ExecuteQueryStatement(ctx, "SHOW PARTITIONS "+tableName, defaultFetchRows)
	if err != nil {
		return nil, err
	}
	location, err := table.Location()
	if err != nil {
		return nil, err
	}

	var partitions []Partition
	for {
		fields, ok := partitionTable.Next()
		if !ok {
			break
		}
		partitions = append(partitions, newPartition(fields, location))
	}
	if maxParts > 0 && maxParts < len(partitions) {
		partitions = partitions[len(partitions)-maxParts:]
	}
	return partitions, nil
}

// newPartition parses one SHOW PARTITIONS row such as ["datehour=2013022516"].
func newPartition(fields []any, tableLocation string) Partition {
	specs := make([]string, 0, len(fields))
	values := make([]string, 0, len(fields))
	for _, field := range fields {
		spec := stringOrEmpty(field)
		specs = append(specs, spec)
		if _, value, found := strings.Cut(spec, "="); found {
			values = append(values, value)
		}
	}
	return Partition{
		Values:   values,
		Location: tableLocation + "/" + strings.Join(specs, ","),
	}
}

func resultRows(results *tcliservice.FetchResultsResp) *tcliservice.RowSet {
	if results == nil {
		return nil
	}
	return results.Results
}

func resultSchema(schema *tcliservice.GetResultSetMetadataResp) *tcliservice.TableSchema {
	if schema == nil {
		return nil
	}
	return schema.Schema
}
