package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/onlyscores/onlyscores-data/internal/scoreboard"
)

// Store keys. These namespaces are the contract with the persisted state a
// device accumulates; changing one orphans the data stored under it.
const (
	KeySnapshots     = "scores:snapshots"
	KeyCardOrder     = "cards:order"
	KeySelection     = "selection:preferences"
	KeyPrefs         = "cards:notifications"
	KeyRefreshSecond = "settings:refresh-interval-seconds"
	KeyLatestOnly    = "settings:latest-only"
	KeyPushToken     = "notifications:push-token"
)

// Store is the local persistent key-value collaborator: JSON-serializable
// values by string key. Implementations must tolerate concurrent use.
type Store interface {
	// Read unmarshals the stored value into out, reporting whether a value
	// existed.
	Read(key string, out any) (bool, error)
	Write(key string, value any) error
	Remove(key string) error
}

// Snapshot is one cached score-card set, namespaced by selection
// fingerprint so switching selections never shows another selection's
// stale data.
type Snapshot struct {
	SelectionID string            `json:"selectionId"`
	FetchedAt   string            `json:"fetchedAt"`
	Cards       []scoreboard.Card `json:"cards"`
}

// SnapshotsBySelection is the stored shape under KeySnapshots.
type SnapshotsBySelection map[string]Snapshot

// --------------------------------------------------------------------------
// File-backed store
// --------------------------------------------------------------------------

// FileStore persists each key as a JSON file in a directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the backing directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Read(key string, out any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		// Corrupt entries read as absent; the next write repairs them.
		return false, nil
	}
	return true, nil
}

func (s *FileStore) Write(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) path(key string) string {
	sanitized := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '.' {
			return r
		}
		return '_'
	}, strings.ToLower(key))
	return filepath.Join(s.dir, sanitized+".json")
}

// --------------------------------------------------------------------------
// In-memory store
// --------------------------------------------------------------------------

// MemoryStore is an ephemeral Store for tests and one-shot commands.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

func (s *MemoryStore) Read(key string, out any) (bool, error) {
	s.mu.Lock()
	data, ok := s.entries[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) Write(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	s.mu.Lock()
	s.entries[key] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}
