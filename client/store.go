package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

const (
	storeDirPerm  = 0o700
	storeFilePerm = 0o600
)

// Session is the token blob persisted between CLI runs.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	Role         string    `json:"role"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Valid reports whether the blob carries a token that has not expired at now.
func (s Session) Valid(now time.Time) bool {
	return s.AccessToken != "" && !s.ExpiresAt.IsZero() && now.Before(s.ExpiresAt)
}

type Store interface {
	Load() ([]byte, error)
	Save(blob []byte) error
	Clear() error
}

// FileStore keeps the session blob in a single file readable by the current user only.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Load() ([]byte, error) {
	blob, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	return blob, nil
}

func (f *FileStore) Save(blob []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.path), storeDirPerm); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	if err := os.WriteFile(f.path, blob, storeFilePerm); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	return nil
}

func saveSession(store Store, session Session) error {
	blob, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	return store.Save(blob)
}

// loadSession returns ErrNoSession for a missing or unreadable blob.
func loadSession(store Store) (Session, error) {
	var session Session

	blob, err := store.Load()
	if err != nil || len(blob) == 0 {
		return session, ErrNoSession
	}

	if err = json.Unmarshal(blob, &session); err != nil {
		return session, ErrNoSession
	}

	return session, nil
}
