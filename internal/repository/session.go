package repository

import (
	"encoding/json"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/myanycart/anycart-go/internal/model"
)

const sessionFile = "session.json"

// SessionStore persists the current session (token pair plus cached user)
// as a single JSON file in the data directory. All operations fail soft:
// a missing or unreadable file reads as "no session", and write failures
// degrade to in-memory-only for that operation.
type SessionStore struct {
	mu   sync.Mutex
	path string
}

// NewSessionStore creates a SessionStore rooted at the given data directory.
func NewSessionStore(dataDir string) *SessionStore {
	return &SessionStore{path: filepath.Join(dataDir, sessionFile)}
}

// Get returns the persisted session, or nil when none exists or the
// persisted record is missing either token.
func (s *SessionStore) Get() *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Set persists the session. Best-effort: errors are logged and swallowed.
func (s *SessionStore) Set(sess model.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.write(sess)
}

// Clear removes the persisted session. Used on logout.
func (s *SessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	removeFile(s.path)
}

// SetAccess replaces only the access token, preserving the refresh token
// and cached user. No-op when no session is persisted. Used exclusively
// by the token-refresh path.
func (s *SessionStore) SetAccess(access string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.read()
	if sess == nil {
		return
	}
	sess.Access = access
	s.write(*sess)
}

func (s *SessionStore) read() *model.Session {
	data := readFile(s.path)
	if data == nil {
		return nil
	}

	var sess model.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil
	}
	if sess.Access == "" || sess.Refresh == "" {
		return nil
	}
	return &sess
}

func (s *SessionStore) write(sess model.Session) {
	data, err := json.Marshal(sess)
	if err != nil {
		slog.Debug("encoding session failed", "error", err)
		return
	}
	// Tokens are credentials: keep the file owner-only.
	if err := writeFileAtomic(s.path, data, 0o600); err != nil {
		slog.Debug("persisting session failed", "error", err)
	}
}
