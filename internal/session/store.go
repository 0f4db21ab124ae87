package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/frostyfucker/HotelBrendle/internal/auth"
)

const sessionFile = "session.json"

// ErrNoSession is returned when no session record exists (or an unreadable
// one was discarded).
var ErrNoSession = errors.New("no active session")

// Session is the authenticated identity the rest of the dashboard consumes.
type Session struct {
	SubjectID string    `json:"subject_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      auth.Role `json:"role"`
	AvatarURL string    `json:"avatar_url,omitempty"`
}

// Store persists the session record across restarts.
type Store interface {
	Save(session *Session) error
	Load() (*Session, error)
	Delete() error
}

// FileStore implements Store using a JSON file in the data directory.
type FileStore struct {
	path string
}

// Ensure FileStore implements Store at compile time.
var _ Store = (*FileStore)(nil)

// NewFileStore creates a FileStore rooted in the data directory.
func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{path: filepath.Join(dataDir, sessionFile)}, nil
}

// Save writes the session record.
func (s *FileStore) Save(session *Session) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Load reads the session record. A corrupt record is discarded so the next
// start begins cleanly unauthenticated instead of failing forever.
func (s *FileStore) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		log.Printf("discarding unreadable session record: %v", err)
		if removeErr := os.Remove(s.path); removeErr != nil {
			log.Printf("failed to remove session record: %v", removeErr)
		}
		return nil, ErrNoSession
	}
	return &session, nil
}

// Delete removes the session record. Missing records are not an error.
func (s *FileStore) Delete() error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(s.path)
}
