package hiveserver2

import (
	"testing"

	"github.com/anandnalya/hue/tcliservice"
)

func TestMemorySessionStoreGetAbsent(t *testing.T) {
	store := NewMemorySessionStore()
	_, ok := store.Get("bob", "beeswax")
	assertFalseE(t, ok)
}

func TestMemorySessionStoreCreateAndGet(t *testing.T) {
	store := NewMemorySessionStore()
	id := newHandleIdentifier()
	secret, guid := encodeHandleID(id)

	created, err := store.Create("bob", "beeswax", secret, guid, tcliservice.ProtocolV1, tcliservice.StatusSuccess)
	assertNilF(t, err)
	assertNotNilF(t, created)
	assertEqualE(t, created.Owner, "bob")
	assertEqualE(t, created.Application, "beeswax")

	got, ok := store.Get("bob", "beeswax")
	assertTrueF(t, ok)
	assertEqualE(t, got.ID, created.ID)

	// Sessions are keyed per (owner, application).
	_, ok = store.Get("bob", "impala")
	assertFalseE(t, ok)
	_, ok = store.Get("alice", "beeswax")
	assertFalseE(t, ok)
}

func TestMemorySessionStoreCreateReplaces(t *testing.T) {
	store := NewMemorySessionStore()
	secret, guid := encodeHandleID(newHandleIdentifier())

	first, err := store.Create("bob", "beeswax", secret, guid, tcliservice.ProtocolV1, tcliservice.StatusSuccess)
	assertNilF(t, err)

	secret2, guid2 := encodeHandleID(newHandleIdentifier())
	second, err := store.Create("bob", "beeswax", secret2, guid2, tcliservice.ProtocolV1, tcliservice.StatusSuccess)
	assertNilF(t, err)

	got, ok := store.Get("bob", "beeswax")
	assertTrueF(t, ok)
	assertEqualE(t, got.ID, second.ID)
	assertTrueE(t, got.ID != first.ID, "last write wins")
}

func TestSessionHandleRoundTrip(t *testing.T) {
	id := newHandleIdentifier()
	secret, guid := encodeHandleID(id)
	session := &Session{Owner: "bob", Application: "beeswax", Secret: secret, GUID: guid}

	handle, err := session.Handle()
	assertNilF(t, err)
	assertDeepEqualE(t, handle.SessionID, id)
}

func TestSessionHandleBadEncoding(t *testing.T) {
	session := &Session{Secret: "not base64!", GUID: "also not"}
	_, err := session.Handle()
	assertNotNilF(t, err)
}

func TestQueryHandleRPCHandleRoundTrip(t *testing.T) {
	id := newHandleIdentifier()
	secret, guid := encodeHandleID(id)
	handle := &QueryHandle{
		Secret:        secret,
		GUID:          guid,
		OperationType: tcliservice.OperationTypeExecuteStatement,
		HasResultSet:  true,
	}

	rpcHandle, err := handle.RPCHandle()
	assertNilF(t, err)
	assertDeepEqualE(t, rpcHandle.OperationID, id)
	assertEqualE(t, rpcHandle.OperationType, tcliservice.OperationTypeExecuteStatement)
	assertTrueE(t, rpcHandle.HasResultSet)
}
