package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// SessionState mirrors what the web frontend keeps in local storage.
type SessionState struct {
	UserID   string          `json:"userId"`
	UserRole string          `json:"userRole"`
	User     json.RawMessage `json:"user,omitempty"`
	Token    string          `json:"token"`
}

// Session holds the signed-in user. A file-backed session persists across processes; the last
// writer wins and expired tokens are left to the server to reject.
type Session struct {
	mu    sync.RWMutex
	path  string
	state SessionState
}

// NewMemorySession returns a session that is never written to disk.
func NewMemorySession() *Session {
	return &Session{}
}

// OpenSession loads the session stored at path. A missing file yields an empty session.
func OpenSession(path string) (*Session, error) {
	s := &Session{path: path}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if err := json.Unmarshal(b, &s.state); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", path, err)
	}
	return s, nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SignedIn reports whether a token is stored.
func (s *Session) SignedIn() bool {
	return s.Token() != ""
}

// User decodes the stored user, or returns nil when signed out.
func (s *Session) User() (*User, error) {
	s.mu.RLock()
	raw := s.state.User
	s.mu.RUnlock()
	if len(raw) == 0 {
		return nil, nil
	}
	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode session user: %w", err)
	}
	return &u, nil
}

// Save stores user and token.
func (s *Session) Save(user User, token string) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = SessionState{
		UserID:   user.ID,
		UserRole: string(user.Role),
		User:     raw,
		Token:    token,
	}
	return s.persist()
}

// Clear forgets the user and removes the file.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = SessionState{}
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// persist writes via a temp file and rename. Callers hold s.mu.
func (s *Session) persist() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
