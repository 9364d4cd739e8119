package hiveserver2

import (
	"encoding/base64"
	"sync"

	"github.com/google/uuid"

	"github.com/anandnalya/hue/tcliservice"
)

// Session is one tracked server-side execution context, keyed by
// (owner, application). Secret and GUID hold the base64 encoding of the
// server's opaque handle identifier.
type Session struct {
	ID                    string
	Owner                 string
	Application           string
	Secret                string
	GUID                  string
	ServerProtocolVersion tcliservice.ProtocolVersion
	StatusCode            tcliservice.StatusCode
}

// Handle rebuilds the wire session handle from the stored encoding.
func (s *Session) Handle() (*tcliservice.SessionHandle, error) {
	secret, guid, err := decodeHandleID(s.Secret, s.GUID)
	if err != nil {
		return nil, err
	}
	return &tcliservice.SessionHandle{
		SessionID: tcliservice.HandleIdentifier{GUID: guid, Secret: secret},
	}, nil
}

func encodeHandleID(id tcliservice.HandleIdentifier) (secret, guid string) {
	return base64.StdEncoding.EncodeToString(id.Secret),
		base64.StdEncoding.EncodeToString(id.GUID)
}

func decodeHandleID(secret, guid string) ([]byte, []byte, error) {
	s, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, nil, err
	}
	g, err := base64.StdEncoding.DecodeString(guid)
	if err != nil {
		return nil, nil, err
	}
	return s, g, nil
}

// SessionStore persists session records. At most one live session is tracked
// per (owner, application) pair: Create replaces any prior record for the
// key with last-write-wins semantics. The store is the sole owner of the
// records it returns.
type SessionStore interface {
	// Get returns the tracked session for the key, or ok=false when none
	// exists.
	Get(owner, application string) (session *Session, ok bool)

	// Create persists a new session record, replacing any prior one for
	// the same key.
	Create(owner, application, secret, guid string, protocolVersion tcliservice.ProtocolVersion, statusCode tcliservice.StatusCode) (*Session, error)
}

// MemorySessionStore is a mutex-guarded in-memory SessionStore.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewMemorySessionStore returns an empty in-memory store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*Session)}
}

func sessionKey(owner, application string) string {
	return owner + "/" + application
}

// Get returns the tracked session for the key.
func (s *MemorySessionStore) Get(owner, application string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionKey(owner, application)]
	return session, ok
}

// Create persists a new session record under a fresh id, replacing any prior
// record for the key.
func (s *MemorySessionStore) Create(owner, application, secret, guid string, protocolVersion tcliservice.ProtocolVersion, statusCode tcliservice.StatusCode) (*Session, error) {
	session := &Session{
		ID:                    uuid.NewString(),
		Owner:                 owner,
		Application:           application,
		Secret:                secret,
		GUID:                  guid,
		ServerProtocolVersion: protocolVersion,
		StatusCode:            statusCode,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionKey(owner, application)] = session
	return session, nil
}
