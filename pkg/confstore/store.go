// Package confstore persists a namespaced JSON document in the user's config
// directory. Top-level keys hold independent values; a reserved internal key
// records the application version the document was last migrated to.
package confstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"

	"github.com/forge-dev/forge/pkg/paths"
)

// FileName is the name of the document inside the config directory.
const FileName = "config.json"

const internalKey = "__internal__"

var ErrNotFound = errors.New("key not found")

type internalState struct {
	Migrations struct {
		Version string `json:"version"`
	} `json:"migrations"`
}

// Store is a JSON document of top-level keys backed by a single file.
type Store struct {
	path string

	mu  sync.Mutex
	doc map[string]json.RawMessage
}

// Path returns the default location of the config document.
func Path() string {
	return filepath.Join(paths.GetConfigDir(), FileName)
}

// Open loads the document at path and applies the migrations that fall
// between the last migrated version and appVersion.
func Open(path, appVersion string, migrations []Migration) (*Store, error) {
	s := &Store{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	if err := s.migrate(appVersion, migrations); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.doc = make(map[string]json.RawMessage)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, &s.doc); err != nil {
		return fmt.Errorf("parsing config %s: %w", s.path, err)
	}
	return nil
}

// Raw returns the stored JSON for key.
func (s *Store) Raw(key string) (json.RawMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.doc[key]
	return raw, ok
}

// Get decodes the value stored under key into v.
func (s *Store) Get(key string, v any) error {
	raw, ok := s.Raw(key)
	if !ok {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return json.Unmarshal(raw, v)
}

// Set stores v under key and writes the document to disk.
func (s *Store) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc[key] = data
	return s.save()
}

// Delete removes key and writes the document to disk. Deleting a missing key
// is not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.doc[key]; !ok {
		return nil
	}
	delete(s.doc, key)
	return s.save()
}

func (s *Store) snapshot() map[string]json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.doc)
}

func (s *Store) restore(doc map[string]json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
}

// save must be called with s.mu held.
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(s.doc, "", "\t")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	data = append(data, '\n')

	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
