// Package store persists the extracted calendar, either on local disk or
// in a Cloud Storage bucket.
package store

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// CalendarKey is the store key the fetched calendar is saved under. On the
// local store this becomes calendar.json.
const CalendarKey = "calendar"

// Store is the interface for a persistent key-value store. No TTL - data
// persists until overwritten.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	GetJSON(key string, v interface{}) bool
	SetJSON(key string, v interface{}) error
}

// marshalJSON renders v as indented JSON with HTML escaping off, so
// Swedish text is stored as readable UTF-8 rather than \u escapes.
func marshalJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LocalStore is a file-based implementation of Store.
type LocalStore struct {
	dir string
	mu  sync.RWMutex
}

// NewLocal creates a LocalStore rooted at the specified directory.
func NewLocal(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

// Get retrieves a value by key. Returns the value and true if found,
// or nil and false if not found.
func (s *LocalStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.keyPath(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores a value with the given key.
func (s *LocalStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return os.WriteFile(s.keyPath(key), value, 0644)
}

// GetJSON retrieves and unmarshals a JSON value.
func (s *LocalStore) GetJSON(key string, v interface{}) bool {
	data, ok := s.Get(key)
	if !ok {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// SetJSON marshals and stores a value as JSON.
func (s *LocalStore) SetJSON(key string, v interface{}) error {
	data, err := marshalJSON(v)
	if err != nil {
		return err
	}
	return s.Set(key, data)
}

func (s *LocalStore) keyPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}
