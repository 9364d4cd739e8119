package hiveserver2

import (
	"context"
	"testing"

	"github.com/anandnalya/hue/tcliservice"
)

func newTestCompat(serverName string) (*ClientCompatible, *fakeCLIService) {
	client, fake := newTestClient(serverName)
	return NewClientCompatible(client), fake
}

func compatQueryHandle() *QueryHandle {
	op := testOperationHandle(true)
	secret, guid := encodeHandleID(op.OperationID)
	return &QueryHandle{
		Secret:        secret,
		GUID:          guid,
		OperationType: op.OperationType,
		HasResultSet:  op.HasResultSet,
	}
}

func TestGetStateMapping(t *testing.T) {
	testcases := []struct {
		raw      tcliservice.OperationState
		expected QueryState
	}{
		{tcliservice.OperationInitialized, StateSubmitted},
		{tcliservice.OperationPending, StateSubmitted},
		{tcliservice.OperationRunning, StateRunning},
		{tcliservice.OperationFinished, StateAvailable},
		{tcliservice.OperationCanceled, StateExpired},
		{tcliservice.OperationClosed, StateExpired},
		{tcliservice.OperationError, StateFailed},
		{tcliservice.OperationUnknown, StateFailed},
		{tcliservice.OperationState(42), StateFailed},
	}
	compat, fake := newTestCompat("beeswax")
	handle := compatQueryHandle()
	for _, tc := range testcases {
		t.Run(tc.raw.String(), func(t *testing.T) {
			fake.operationStatus = &tcliservice.GetOperationStatusResp{
				Status:         successStatus(),
				OperationState: tc.raw,
			}
			state, err := compat.GetState(context.Background(), handle)
			assertNilF(t, err)
			assertEqualE(t, state, tc.expected)
		})
	}
}

func TestFetchStartOverOrientation(t *testing.T) {
	compat, fake := newTestCompat("beeswax")

	_, err := compat.Fetch(context.Background(), compatQueryHandle(), true, 0)
	assertNilF(t, err)

	assertEqualF(t, len(fake.fetchReqs), 1)
	assertEqualE(t, fake.fetchReqs[0].Orientation, tcliservice.FetchFirst)
	assertEqualE(t, fake.fetchReqs[0].MaxRows, int64(defaultCompatMaxRows))
}

func TestFetchStartOverDegradesOnImpala(t *testing.T) {
	compat, fake := newTestCompat("impala")

	_, err := compat.Fetch(context.Background(), compatQueryHandle(), true, 50)
	assertNilF(t, err)

	assertEqualF(t, len(fake.fetchReqs), 1)
	assertEqualE(t, fake.fetchReqs[0].Orientation, tcliservice.FetchNext)
	assertEqualE(t, fake.fetchReqs[0].MaxRows, int64(50))
}

func TestFetchResultShape(t *testing.T) {
	compat, fake := newTestCompat("impala")
	fake.pages = []*tcliservice.RowSet{wirePage(stringRow("a1", "b1"))}
	fake.schemas = []*tcliservice.TableSchema{wireSchema("a", "b")}

	result, err := compat.Fetch(context.Background(), compatQueryHandle(), false, 10)
	assertNilF(t, err)

	assertTrueE(t, result.Ready)
	assertTrueE(t, result.HasMore)
	assertEqualE(t, result.StartRow, int64(0))
	assertDeepEqualE(t, result.Columns(), []string{"a", "b"})

	fields, ok := result.Next()
	assertTrueF(t, ok)
	assertDeepEqualE(t, fields, []any{"a1", "b1"})
	_, ok = result.Next()
	assertFalseE(t, ok)
}

func TestQueryDelegatesToAsyncExecute(t *testing.T) {
	compat, fake := newTestCompat("impala")
	query := testQuery{
		statements: []string{"SELECT 1"},
		settings:   []Setting{{Key: "request_pool", Value: "default"}},
	}

	handle, err := compat.Query(context.Background(), query, 0)
	assertNilF(t, err)
	assertNotNilF(t, handle)

	assertEqualF(t, len(fake.executeReqs), 1)
	assertEqualE(t, fake.executeReqs[0].Statement, "SELECT 1")
	assertDeepEqualE(t, fake.executeReqs[0].ConfOverlay, map[string]string{"request_pool": "default"})
}

func TestCompatGetDatabases(t *testing.T) {
	compat, fake := newTestCompat("impala")
	fake.pages = []*tcliservice.RowSet{wirePage(stringRow("default"), stringRow("web"))}
	fake.schemas = []*tcliservice.TableSchema{wireSchema("TABLE_SCHEM")}

	databases, err := compat.GetDatabases(context.Background())
	assertNilF(t, err)
	assertDeepEqualE(t, databases, []string{"default", "web"})
}

func TestCompatGetTables(t *testing.T) {
	compat, fake := newTestCompat("beeswax")
	fake.pages = []*tcliservice.RowSet{wirePage(
		stringRow("page_views", "MANAGED_TABLE", ""),
		stringRow("users", "MANAGED_TABLE", ""),
	)}
	fake.schemas = []*tcliservice.TableSchema{catalogSchema()}

	tables, err := compat.GetTables(context.Background(), "default", "*")
	assertNilF(t, err)
	assertDeepEqualE(t, tables, []string{"page_views", "users"})
}

func TestCompatGetTable(t *testing.T) {
	compat, fake := newTestCompat("impala")
	fake.pages = []*tcliservice.RowSet{
		wirePage(stringRow("page_views", "MANAGED_TABLE", "")),
		wirePage(testDescribeRows()...),
	}
	fake.schemas = []*tcliservice.TableSchema{catalogSchema(), describeSchema()}

	table, err := compat.GetTable(context.Background(), "default", "page_views")
	assertNilF(t, err)

	name, err := table.Name()
	assertNilF(t, err)
	assertEqualE(t, name, "page_views")
}

func TestCompatGetLog(t *testing.T) {
	compat, fake := newTestCompat("impala")
	fake.logText = "done"

	log, err := compat.GetLog(context.Background(), compatQueryHandle())
	assertNilF(t, err)
	assertEqualE(t, log, "done")
}

func TestCompatUnsupportedOperations(t *testing.T) {
	compat, _ := newTestCompat("beeswax")
	ctx := context.Background()

	assertErrIsE(t, compat.Explain(ctx, testQuery{statements: []string{"SELECT 1"}}), ErrNotSupported)
	assertErrIsE(t, compat.CreateDatabase(ctx, "db", "desc"), ErrNotSupported)
	assertErrIsE(t, compat.GetDatabase(ctx, "db"), ErrNotSupported)
	assertErrIsE(t, compat.AlterTable(ctx, "db", "t"), ErrNotSupported)
	assertErrIsE(t, compat.AddPartition(ctx, "db", "t", []string{"1"}), ErrNotSupported)
	assertErrIsE(t, compat.GetPartition(ctx, "db", "t", []string{"1"}), ErrNotSupported)
	assertErrIsE(t, compat.AlterPartition(ctx, "db", "t", []string{"1"}), ErrNotSupported)
}

func TestCompatNotAvailableStrings(t *testing.T) {
	compat, _ := newTestCompat("beeswax")
	assertEqualE(t, compat.DumpConfig(), "Does not exist in HS2")
	assertEqualE(t, compat.Echo("hello"), "Does not exist in HS2")
}

func TestCompatGetDefaultConfiguration(t *testing.T) {
	compat, _ := newTestCompat("beeswax")
	assertNilE(t, compat.GetDefaultConfiguration(true))
	assertNilE(t, compat.GetDefaultConfiguration(false))
}

func TestQueryStateString(t *testing.T) {
	assertEqualE(t, StateSubmitted.String(), "submitted")
	assertEqualE(t, StateRunning.String(), "running")
	assertEqualE(t, StateAvailable.String(), "available")
	assertEqualE(t, StateExpired.String(), "expired")
	assertEqualE(t, StateFailed.String(), "failed")
	assertEqualE(t, QueryState(42).String(), "failed")
}
