// Package session is the durable local state of the client: the last
// identification snapshot, the last growth preview, and the schedule set.
//
// Each key is one JSON file under the data directory. Keys are
// independent slots with last-write-wins semantics — no history, no
// expiry, no cross-key transaction.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"go.uber.org/zap"

	"github.com/saessak-labs/planterm/internal/logging"
)

// Store keys. Enumerated here so a future backing store swap touches
// nothing but this package.
const (
	KeyIdentification = "identification"
	KeyGrowthPreview  = "growth-preview"
	KeySchedules      = "schedules"
)

var keyPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Store persists JSON values under a data directory.
type Store struct {
	dir string
	mu  sync.Mutex
	log *logging.Logger
}

// Open creates the data directory if needed and returns a store over it.
func Open(dir string, log *logging.Logger) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("data directory is empty")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &Store{dir: dir, log: log.Named("session")}, nil
}

// Save serializes value to the key's file. The write goes through a temp
// file and rename so a crash never leaves a half-written slot.
func (s *Store) Save(key string, value any) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

// Load deserializes the key's file into out. A missing or unparseable
// file reads as absent: Load returns false and leaves out untouched,
// never an error the caller must branch on.
func (s *Store) Load(key string, out any) bool {
	path, err := s.keyPath(key)
	if err != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.log.Warn(context.Background(), "corrupt session file treated as absent",
			zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Clear removes the key's file. Clearing an absent key is not an error.
func (s *Store) Clear(key string) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear %s: %w", key, err)
	}
	return nil
}

func (s *Store) keyPath(key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", fmt.Errorf("invalid store key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}
