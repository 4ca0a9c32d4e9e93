package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// SessionStore is the durable cell holding the session token and the
// remembered login email. It is injected rather than being a package-level
// singleton so tests and embedders can substitute their own persistence.
type SessionStore interface {
	Token() (string, bool)
	SetToken(token string) error
	ClearToken() error

	// RememberedEmail pre-fills the login form; UX only, not security
	// sensitive.
	RememberedEmail() string
	SetRememberedEmail(email string) error
}

// MemoryStore keeps session state in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	email string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

func (s *MemoryStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

func (s *MemoryStore) RememberedEmail() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.email
}

func (s *MemoryStore) SetRememberedEmail(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.email = email
	return nil
}

type fileState struct {
	Token           string `json:"token,omitempty"`
	RememberedEmail string `json:"remembered_email,omitempty"`
}

// FileStore persists session state as a JSON file so a session survives
// process restarts. Concurrent processes sharing the same file are not
// synchronized: a logout in one process does not notify another.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore builds a store backed by path. The parent directory is
// created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.read()
	return state.Token, state.Token != ""
}

func (s *FileStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.read()
	state.Token = token
	return s.write(state)
}

func (s *FileStore) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.read()
	if state.Token == "" {
		return nil
	}
	state.Token = ""
	return s.write(state)
}

func (s *FileStore) RememberedEmail() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().RememberedEmail
}

func (s *FileStore) SetRememberedEmail(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.read()
	state.RememberedEmail = email
	return s.write(state)
}

func (s *FileStore) read() fileState {
	var state fileState
	data, err := os.ReadFile(s.path)
	if err != nil {
		return state
	}
	_ = json.Unmarshal(data, &state)
	return state
}

func (s *FileStore) write(state fileState) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
